package usecase

import (
	"context"
	"net/http"
	"sync/atomic"
	"testing"

	"smartride-portal/internal/cache"
	"smartride-portal/internal/gateway"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newProfileService(t *testing.T, routes map[string]http.HandlerFunc) ProfileService {
	t.Helper()
	return NewProfileService(newBackend(t, routes), cache.NewMemory[gateway.UserProfile](), zap.NewNop())
}

func counted(n *atomic.Int32, h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n.Add(1)
		h(w, r)
	}
}

func TestOpenProfileMergesWithoutOverwriting(t *testing.T) {
	svc := newProfileService(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/4": writeJSON(`{"id":4,"name":"","email":"k@smartride.io","role":"DRIVER","vehicleModel":"Innova","createdAt":"2025-03-01T10:00:00"}`),
		"GET /api/v1/reviews/user/4": writeJSON(`{"avgRating":4.5,"reviewCount":2,"reviews":[]}`),
	})

	resp := svc.OpenProfile(context.Background(), gateway.UserProfile{ID: 4, Name: "Kiran"})

	assert.Empty(t, resp.ProfileError)
	assert.Empty(t, resp.ReviewsError)
	assert.Equal(t, "Kiran", resp.Profile.Name)
	assert.Equal(t, "k@smartride.io", resp.Profile.Email)
	assert.Equal(t, "Innova", resp.Profile.VehicleModel)
	require.NotNil(t, resp.Profile.CreatedAt)
	require.NotNil(t, resp.Profile.AvgRating)
	assert.InDelta(t, 4.5, *resp.Profile.AvgRating, 0.001)
	require.NotNil(t, resp.Profile.ReviewCount)
	assert.Equal(t, 2, *resp.Profile.ReviewCount)
}

func TestOpenProfileSkipsFetchForFullStub(t *testing.T) {
	var fetched atomic.Int32
	svc := newProfileService(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/4":        counted(&fetched, writeJSON(`{"id":4}`)),
		"GET /api/v1/reviews/user/4": writeJSON(`{"reviews":[]}`),
	})

	resp := svc.OpenProfile(context.Background(), gateway.UserProfile{ID: 4, Name: "Kiran", Email: "k@smartride.io"})
	assert.Zero(t, fetched.Load())
	assert.Equal(t, "k@smartride.io", resp.Profile.Email)
}

func TestOpenProfileHalvesFailIndependently(t *testing.T) {
	svc := newProfileService(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/4":        writeError(http.StatusInternalServerError, ``),
		"GET /api/v1/reviews/user/4": writeJSON(`{"reviews":[{"id":1,"revieweeId":4,"rating":5,"reviewerName":"Meera"}]}`),
	})

	resp := svc.OpenProfile(context.Background(), gateway.UserProfile{ID: 4, Name: "Kiran"})
	assert.Equal(t, "Failed to load profile", resp.ProfileError)
	assert.Empty(t, resp.ReviewsError)
	assert.Equal(t, "Kiran", resp.Profile.Name)
	require.Len(t, resp.Reviews, 1)

	svc = newProfileService(t, map[string]http.HandlerFunc{
		"GET /api/v1/users/4":        writeJSON(`{"id":4,"email":"k@smartride.io"}`),
		"GET /api/v1/reviews/user/4": writeError(http.StatusNotFound, ``),
	})

	resp = svc.OpenProfile(context.Background(), gateway.UserProfile{ID: 4})
	assert.Empty(t, resp.ProfileError)
	assert.Equal(t, "Failed to load reviews", resp.ReviewsError)
	assert.NotNil(t, resp.Reviews)
	assert.Empty(t, resp.Reviews)
}

func TestReviewersAreFetchedOncePerDistinctID(t *testing.T) {
	var reviewer7, reviewer8 atomic.Int32
	svc := newProfileService(t, map[string]http.HandlerFunc{
		"GET /api/v1/reviews/user/4": writeJSON(`{"reviews":[
			{"id":1,"reviewerId":7,"revieweeId":4,"rating":5},
			{"id":2,"reviewerId":7,"revieweeId":4,"rating":4},
			{"id":3,"reviewerId":8,"revieweeId":4,"rating":3},
			{"id":4,"reviewerId":9,"revieweeId":4,"rating":2,"reviewerName":"Known"}
		]}`),
		"GET /api/v1/users/7": counted(&reviewer7, writeJSON(`{"id":7,"name":"Anil","email":"a@smartride.io"}`)),
		"GET /api/v1/users/8": counted(&reviewer8, writeError(http.StatusInternalServerError, ``)),
	})

	stub := gateway.UserProfile{ID: 4, Name: "Kiran", Email: "k@smartride.io"}
	resp := svc.OpenProfile(context.Background(), stub)

	require.Len(t, resp.Reviews, 4)
	assert.Equal(t, "Anil", resp.Reviews[0].ReviewerName)
	assert.Equal(t, "a@smartride.io", resp.Reviews[0].ReviewerEmail)
	assert.Equal(t, "Anil", resp.Reviews[1].ReviewerName)
	assert.Empty(t, resp.Reviews[2].ReviewerName)
	assert.Equal(t, "Known", resp.Reviews[3].ReviewerName)
	assert.Equal(t, int32(1), reviewer7.Load())
	assert.Equal(t, int32(1), reviewer8.Load())

	// Reviewer 7 now comes from the cache; the failed lookup is retried.
	svc.OpenProfile(context.Background(), stub)
	assert.Equal(t, int32(1), reviewer7.Load())
	assert.Equal(t, int32(2), reviewer8.Load())
}
