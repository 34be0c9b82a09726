package adaptor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"smartride-portal/internal/data/entity"
	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"
	"smartride-portal/internal/listview"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuth struct {
	usecase.AuthService
	loggedOut []uuid.UUID
}

func (f *fakeAuth) Logout(_ context.Context, token uuid.UUID) error {
	f.loggedOut = append(f.loggedOut, token)
	return nil
}

func testBase(auth usecase.AuthService) base {
	return base{auth: auth, log: zap.NewNop()}
}

func answer(t *testing.T, b base, r *http.Request, err error) (*httptest.ResponseRecorder, utils.Response) {
	t.Helper()
	rec := httptest.NewRecorder()
	b.handleServiceError(rec, r, err, "test", "Fallback text")

	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return rec, resp
}

func TestServiceErrorMapping(t *testing.T) {
	b := testBase(&fakeAuth{})
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"validation", fmt.Errorf("%w: seats is required", usecase.ErrValidation), http.StatusBadRequest, "validation failed: seats is required"},
		{"user error", &usecase.UserError{Message: "Booking is cancelled."}, http.StatusBadRequest, "Booking is cancelled."},
		{"confirmation", &usecase.ConfirmationError{Prompt: "Verify this driver?"}, http.StatusConflict, "Verify this driver?"},
		{"busy row", listview.ErrBusy, http.StatusConflict, "Action already in progress"},
		{"unknown table", usecase.ErrUnknownTable, http.StatusNotFound, "unknown table"},
		{"login failure", &gateway.AuthError{Message: "Invalid credentials", Err: &gateway.APIError{Status: 401}}, http.StatusUnauthorized, "Invalid credentials"},
		{"forbidden", &gateway.APIError{Status: 403, Message: "Not your ride"}, http.StatusForbidden, "Not your ride"},
		{"not found", &gateway.APIError{Status: 404}, http.StatusNotFound, "Fallback text"},
		{"backend down", fmt.Errorf("%w: dial tcp: refused", gateway.ErrUnavailable), http.StatusBadGateway, "Fallback text"},
		{"backend 500", &gateway.APIError{Status: 500, Message: "Ride is full"}, http.StatusBadGateway, "Ride is full"},
		{"backend 400", &gateway.APIError{Status: 400}, http.StatusBadRequest, "Fallback text"},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := answer(t, b, r, tt.err)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, tt.message, resp.Message)
			assert.False(t, resp.Status)
		})
	}
}

func TestConfirmationCarriesPrompt(t *testing.T) {
	b := testBase(&fakeAuth{})
	r := httptest.NewRequest(http.MethodPost, "/", nil)

	rec, _ := answer(t, b, r, &usecase.ConfirmationError{Prompt: "Block user \"Ravi\"?"})
	var body struct {
		Data response.ConfirmPrompt `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Block user \"Ravi\"?", body.Data.Prompt)
}

func TestBackendUnauthorizedExpiresSession(t *testing.T) {
	auth := &fakeAuth{}
	b := testBase(auth)

	session := &entity.Session{Token: uuid.New(), Role: entity.RoleDriver, ExpiresAt: time.Now().Add(time.Hour)}
	r := httptest.NewRequest(http.MethodGet, "/driver/rides", nil)
	r = r.WithContext(utils.SetSessionContext(r.Context(), session))

	rec, resp := answer(t, b, r, &gateway.APIError{Status: http.StatusUnauthorized})
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/driver/login", rec.Header().Get("Location"))
	assert.Equal(t, "Unauthorized. Please login.", resp.Message)
	assert.Equal(t, []uuid.UUID{session.Token}, auth.loggedOut)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, utils.SessionCookie, cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}

func TestConfirmedReadsQueryOrBody(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/x?confirm=true", nil)
	assert.True(t, confirmed(r))

	body, _ := json.Marshal(request.ConfirmRequest{Confirm: true})
	r = httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader(body))
	assert.True(t, confirmed(r))

	r = httptest.NewRequest(http.MethodPost, "/x", nil)
	assert.False(t, confirmed(r))

	r = httptest.NewRequest(http.MethodPost, "/x", bytes.NewReader([]byte(`not json`)))
	assert.False(t, confirmed(r))
}
