package adaptor

import (
	"context"
	"net/http"
	"strconv"

	"smartride-portal/internal/dto/request"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/usecase"
	"smartride-portal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	base
	service usecase.AdminService
}

func NewAdminHandler(b base, service usecase.AdminService) *AdminHandler {
	return &AdminHandler{
		base:    b,
		service: service,
	}
}

// Dashboard handles GET /admin/dashboard
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}
	utils.ResponseSuccess(w, "success", h.service.Dashboard(r.Context(), session.Token))
}

// Withdraw handles POST /admin/dashboard/withdraw
func (h *AdminHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	result, err := h.service.WithdrawCommission(r.Context(), session.Token, confirmed(r))
	if err != nil {
		h.handleServiceError(w, r, err, "withdraw commission", "Withdraw failed")
		return
	}
	utils.ResponseSuccess(w, result.Message, result.Items)
}

// Table handles GET /admin/dashboard/{table}?search=&sort=&desc=&page=
func (h *AdminHandler) Table(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	query := r.URL.Query()
	desc, _ := strconv.ParseBool(query.Get("desc"))
	q := &request.TableQuery{
		Search: query.Get("search"),
		Sort:   query.Get("sort"),
		Desc:   desc,
		Page:   utils.ParseInt(query.Get("page"), 1),
	}

	table, err := h.service.Table(r.Context(), session.Token, chi.URLParam(r, "table"), q)
	if err != nil {
		h.handleServiceError(w, r, err, "load table", "Action failed")
		return
	}
	utils.ResponseSuccess(w, "success", table)
}

// Refresh handles POST /admin/dashboard/{table}/refresh
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	table, err := h.service.Refresh(r.Context(), session.Token, chi.URLParam(r, "table"))
	if err != nil {
		h.handleServiceError(w, r, err, "refresh table", "Action failed")
		return
	}
	utils.ResponseSuccess(w, "success", table)
}

// Close handles DELETE /admin/dashboard/{table}
func (h *AdminHandler) Close(w http.ResponseWriter, r *http.Request) {
	session, ok := utils.GetSessionFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
		return
	}

	if err := h.service.CloseTable(session.Token, chi.URLParam(r, "table")); err != nil {
		h.handleServiceError(w, r, err, "close table", "Action failed")
		return
	}
	utils.ResponseSuccess(w, "Table closed", nil)
}

type rowAction func(ctx context.Context, session uuid.UUID, id int64, confirm bool) (*response.ActionResult[any], error)

// Row wraps a confirmed row action: POST /admin/dashboard/{table}/{id}/{action}
func (h *AdminHandler) Row(operation string, action rowAction) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := utils.GetSessionFromContext(r.Context())
		if !ok {
			utils.ResponseUnauthorized(w, "Unauthorized. Please login.")
			return
		}

		id, err := pathID(r, "id")
		if err != nil {
			utils.ResponseBadRequest(w, "Invalid ID", nil)
			return
		}

		result, err := action(r.Context(), session.Token, id, confirmed(r))
		if err != nil {
			h.handleServiceError(w, r, err, operation, "Action failed")
			return
		}
		utils.ResponseSuccess(w, result.Message, result.Items)
	}
}

func (h *AdminHandler) BlockUser() http.HandlerFunc {
	return h.Row("block user", h.service.BlockUser)
}

func (h *AdminHandler) VerifyDriver() http.HandlerFunc {
	return h.Row("verify driver", h.service.VerifyDriver)
}

func (h *AdminHandler) ApproveBooking() http.HandlerFunc {
	return h.Row("approve booking", h.service.ApproveBooking)
}

func (h *AdminHandler) RejectBooking() http.HandlerFunc {
	return h.Row("reject booking", h.service.RejectBooking)
}

func (h *AdminHandler) MarkPaymentPaid() http.HandlerFunc {
	return h.Row("mark payment", h.service.MarkPaymentPaid)
}

func (h *AdminHandler) MarkRidePaid() http.HandlerFunc {
	return h.Row("mark ride paid", h.service.MarkRidePaid)
}
