package service

import (
	"context"
	"errors"
	"time"

	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/dto"
	apperrors "github.com/voluntree/backend/internal/errors"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
)

// ProfileService serves the aggregated profile page. The aggregate is
// cached per username; isFollowing depends on the viewer, so it is always
// computed fresh and never cached.
type ProfileService struct {
	profiles ProfileStore
	follows  FollowStore
	cache    ProfileCache
	cacheTTL time.Duration
}

func NewProfileService(profiles ProfileStore, follows FollowStore, cache ProfileCache, cacheTTL time.Duration) *ProfileService {
	return &ProfileService{
		profiles: profiles,
		follows:  follows,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// GetProfile returns the profile for a username as seen by the viewer.
// A zero viewerID means an unauthenticated or irrelevant viewer; their
// isFollowing is always false, as is a user's own profile.
func (s *ProfileService) GetProfile(ctx context.Context, viewerID uint, username string) (*dto.ProfileResponse, error) {
	ctx = ctxutil.Tag(ctx, "profile_service", "GetProfile")

	resp, err := s.loadAggregate(ctx, username)
	if err != nil {
		return nil, err
	}

	if viewerID != 0 && viewerID != resp.User.ID {
		following, err := s.follows.Exists(ctx, viewerID, resp.User.ID)
		if err != nil {
			return nil, err
		}
		resp.IsFollowing = following
	}

	return resp, nil
}

// loadAggregate fetches the viewer-independent part of the profile, from
// cache when possible. Cache failures fall through to the store.
func (s *ProfileService) loadAggregate(ctx context.Context, username string) (*dto.ProfileResponse, error) {
	cacheKey := constants.CacheKeyProfile + username

	if s.cache != nil {
		var cached dto.ProfileResponse
		err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil && cached.User != nil {
			logger.DebugWithContext(ctx, "profile served from cache").
				String("username", username).
				Log()
			cached.IsFollowing = false
			return &cached, nil
		}
	}

	agg, err := s.profiles.Aggregate(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
		}
		return nil, err
	}

	resp := &dto.ProfileResponse{
		User:           dto.NewUserResponse(agg.User),
		FollowersCount: agg.FollowersCount,
		FollowingCount: agg.FollowingCount,
		OwnProjects:    dto.NewProfileProjects(agg.Projects),
		Posts:          dto.NewProfilePosts(agg.Posts),
		JoinedProjects: dto.NewProfileProjects(agg.JoinedProjects),
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, cacheKey, resp, s.cacheTTL); err != nil {
			logger.WarnWithContext(ctx, "profile cache write failed").
				String("username", username).
				Err(err).
				Log()
		}
	}

	return resp, nil
}
