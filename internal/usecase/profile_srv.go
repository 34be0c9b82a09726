package usecase

import (
	"context"
	"strconv"

	"smartride-portal/internal/cache"
	"smartride-portal/internal/dto/response"
	"smartride-portal/internal/gateway"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	profileLoadError = "Failed to load profile"
	reviewsLoadError = "Failed to load reviews"
)

type ProfileService interface {
	// OpenProfile renders stub at once, completing it from the backend
	// when it lacks the full fields. Either half may fail alone.
	OpenProfile(ctx context.Context, stub gateway.UserProfile) *response.ProfileResponse
}

type profileService struct {
	gateway  *gateway.Client
	profiles cache.Cache[gateway.UserProfile]
	log      *zap.Logger
}

func NewProfileService(gw *gateway.Client, profiles cache.Cache[gateway.UserProfile], log *zap.Logger) ProfileService {
	return &profileService{
		gateway:  gw,
		profiles: profiles,
		log:      log.With(zap.String("service", "profile")),
	}
}

func (s *profileService) OpenProfile(ctx context.Context, stub gateway.UserProfile) *response.ProfileResponse {
	resp := &response.ProfileResponse{
		Profile: stub,
		Reviews: []gateway.Review{},
	}

	var (
		full    *gateway.UserProfile
		reviews *gateway.UserReviews
	)

	// Neither load cancels the other, so the group never returns an error.
	var g errgroup.Group
	if !isFull(stub) {
		g.Go(func() error {
			p, err := s.profile(ctx, stub.ID)
			if err != nil {
				s.log.Warn("Failed to load profile", zap.Error(err), zap.Int64("user_id", stub.ID))
				resp.ProfileError = profileLoadError
				return nil
			}
			full = &p
			return nil
		})
	}
	g.Go(func() error {
		r, err := s.gateway.UserReviews(ctx, stub.ID)
		if err != nil {
			s.log.Warn("Failed to load reviews", zap.Error(err), zap.Int64("user_id", stub.ID))
			resp.ReviewsError = reviewsLoadError
			return nil
		}
		reviews = r
		return nil
	})
	_ = g.Wait()

	if full != nil {
		resp.Profile = mergeProfile(resp.Profile, *full)
	}
	if reviews != nil {
		if reviews.AvgRating != nil {
			resp.Profile.AvgRating = reviews.AvgRating
		}
		if reviews.ReviewCount != nil {
			resp.Profile.ReviewCount = reviews.ReviewCount
		}
		resp.Reviews = s.backfillReviewers(ctx, reviews.Reviews)
	}
	return resp
}

func (s *profileService) profile(ctx context.Context, id int64) (gateway.UserProfile, error) {
	return s.profiles.GetOrFetch(ctx, strconv.FormatInt(id, 10), func(ctx context.Context) (gateway.UserProfile, error) {
		p, err := s.gateway.UserProfile(ctx, id)
		if err != nil {
			return gateway.UserProfile{}, err
		}
		return *p, nil
	})
}

// backfillReviewers fills reviewer name and email for reviews that came
// without them. Each distinct reviewer is fetched once, concurrently;
// failures leave the review as it was.
func (s *profileService) backfillReviewers(ctx context.Context, reviews []gateway.Review) []gateway.Review {
	var ids []int64
	seen := map[int64]bool{}
	for _, r := range reviews {
		if r.ReviewerName != "" || r.ReviewerID == nil || seen[*r.ReviewerID] {
			continue
		}
		seen[*r.ReviewerID] = true
		ids = append(ids, *r.ReviewerID)
	}
	if len(ids) == 0 {
		return reviews
	}

	found := make([]*gateway.UserProfile, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		g.Go(func() error {
			p, err := s.profile(ctx, id)
			if err != nil {
				s.log.Debug("Failed to fetch reviewer", zap.Error(err), zap.Int64("reviewer_id", id))
				return nil
			}
			found[i] = &p
			return nil
		})
	}
	_ = g.Wait()

	byID := make(map[int64]*gateway.UserProfile, len(ids))
	for i, id := range ids {
		if found[i] != nil {
			byID[id] = found[i]
		}
	}

	out := make([]gateway.Review, len(reviews))
	for i, r := range reviews {
		out[i] = r
		if r.ReviewerName != "" || r.ReviewerEmail != "" || r.ReviewerID == nil {
			continue
		}
		p, ok := byID[*r.ReviewerID]
		if !ok {
			continue
		}
		if p.Name != "" {
			out[i].ReviewerName = p.Name
		}
		if p.Email != "" {
			out[i].ReviewerEmail = p.Email
		}
	}
	return out
}

// isFull reports whether a profile already carries the fields only the
// profile endpoint returns.
func isFull(p gateway.UserProfile) bool {
	return p.CreatedAt != nil || p.Email != "" || p.VehicleModel != ""
}

// mergeProfile overlays fetched on base. Empty fetched fields never
// replace present ones.
func mergeProfile(base, fetched gateway.UserProfile) gateway.UserProfile {
	out := base
	if out.ID == 0 {
		out.ID = fetched.ID
	}
	setString(&out.Name, fetched.Name)
	setString(&out.Email, fetched.Email)
	setString(&out.Phone, fetched.Phone)
	setString(&out.Role, fetched.Role)
	setString(&out.VehicleModel, fetched.VehicleModel)
	setString(&out.LicensePlate, fetched.LicensePlate)
	if fetched.Capacity != nil {
		out.Capacity = fetched.Capacity
	}
	if fetched.CreatedAt != nil {
		out.CreatedAt = fetched.CreatedAt
	}
	if fetched.AvgRating != nil {
		out.AvgRating = fetched.AvgRating
	}
	if fetched.ReviewCount != nil {
		out.ReviewCount = fetched.ReviewCount
	}
	return out
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
