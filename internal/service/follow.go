package service

import (
	"context"
	"errors"

	"github.com/voluntree/backend/internal/constants"
	"github.com/voluntree/backend/internal/dto"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
	ctxutil "github.com/voluntree/backend/pkg/context"
	"github.com/voluntree/backend/pkg/logger"
)

// FollowService manages the social graph. Duplicate edges are ultimately
// rejected by the store's unique constraint; the pre-checks here only
// produce friendlier errors.
type FollowService struct {
	users   UserStore
	follows FollowStore
	cache   ProfileCache
}

func NewFollowService(users UserStore, follows FollowStore, cache ProfileCache) *FollowService {
	return &FollowService{users: users, follows: follows, cache: cache}
}

// Follow creates an edge from the authenticated user to the target
// username. Following yourself or someone you already follow is rejected.
func (s *FollowService) Follow(ctx context.Context, followerID uint, targetUsername string) error {
	ctx = ctxutil.Tag(ctx, "follow_service", "Follow")

	follower, err := s.users.GetByID(ctx, followerID)
	if err != nil {
		return err
	}

	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
		}
		return err
	}

	if target.ID == followerID {
		return apperrors.WithMessage(apperrors.ErrInvalidOperation, "You cannot follow yourself")
	}

	exists, err := s.follows.Exists(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if exists {
		return apperrors.WithMessage(apperrors.ErrConflict, "You are already following this user")
	}

	edge := &model.Follow{FollowerID: followerID, FollowingID: target.ID}
	if err := s.follows.Create(ctx, edge); err != nil {
		// A concurrent duplicate insert lands here via the unique constraint
		if errors.Is(err, apperrors.ErrConflict) {
			return apperrors.WithMessage(apperrors.ErrConflict, "You are already following this user")
		}
		return err
	}

	s.invalidateProfiles(ctx, follower.Username, target.Username)

	logger.InfoWithContext(ctx, "user followed").
		Uint("follower_id", followerID).
		Uint("following_id", target.ID).
		Log()

	return nil
}

// Unfollow removes the edge from the authenticated user to the target
// username. After deletion the edge is re-checked; if it somehow survived,
// that is an internal failure, not a success.
func (s *FollowService) Unfollow(ctx context.Context, followerID uint, targetUsername string) error {
	ctx = ctxutil.Tag(ctx, "follow_service", "Unfollow")

	follower, err := s.users.GetByID(ctx, followerID)
	if err != nil {
		return err
	}

	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
		}
		return err
	}

	if target.ID == followerID {
		return apperrors.WithMessage(apperrors.ErrInvalidOperation, "You cannot unfollow yourself")
	}

	if err := s.follows.Delete(ctx, followerID, target.ID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.WithMessage(apperrors.ErrNotFound, "You are not following this user")
		}
		return err
	}

	stillExists, err := s.follows.Exists(ctx, followerID, target.ID)
	if err != nil {
		return err
	}
	if stillExists {
		logger.ErrorWithContext(ctx, "follow edge survived deletion").
			Uint("follower_id", followerID).
			Uint("following_id", target.ID).
			Log()
		return apperrors.WithMessage(apperrors.ErrInternal, "Failed to unfollow user")
	}

	s.invalidateProfiles(ctx, follower.Username, target.Username)

	logger.InfoWithContext(ctx, "user unfollowed").
		Uint("follower_id", followerID).
		Uint("following_id", target.ID).
		Log()

	return nil
}

// ListFollowers returns the users following the given username, newest
// edge first.
func (s *FollowService) ListFollowers(ctx context.Context, username string, params constants.PaginationParams) (*dto.EdgeListResponse, error) {
	ctx = ctxutil.Tag(ctx, "follow_service", "ListFollowers")

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
		}
		return nil, err
	}

	edges, err := s.follows.ListFollowers(ctx, user.ID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.EdgeEntry, 0, len(edges))
	for i := range edges {
		entries = append(entries, dto.NewEdgeEntry(&edges[i], edges[i].Follower))
	}

	return &dto.EdgeListResponse{Entries: entries, Page: params.Page, Limit: params.Limit}, nil
}

// ListFollowings returns the users the given username follows, newest
// edge first.
func (s *FollowService) ListFollowings(ctx context.Context, username string, params constants.PaginationParams) (*dto.EdgeListResponse, error) {
	ctx = ctxutil.Tag(ctx, "follow_service", "ListFollowings")

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.WithMessage(apperrors.ErrNotFound, "User not found")
		}
		return nil, err
	}

	edges, err := s.follows.ListFollowings(ctx, user.ID, params.Limit, params.Offset)
	if err != nil {
		return nil, err
	}

	entries := make([]dto.EdgeEntry, 0, len(edges))
	for i := range edges {
		entries = append(entries, dto.NewEdgeEntry(&edges[i], edges[i].Following))
	}

	return &dto.EdgeListResponse{Entries: entries, Page: params.Page, Limit: params.Limit}, nil
}

// invalidateProfiles drops the cached profiles of both edge endpoints.
// Cache trouble is logged, never surfaced; the TTL bounds staleness anyway.
func (s *FollowService) invalidateProfiles(ctx context.Context, usernames ...string) {
	if s.cache == nil {
		return
	}

	keys := make([]string, 0, len(usernames))
	for _, username := range usernames {
		keys = append(keys, constants.CacheKeyProfile+username)
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		logger.WarnWithContext(ctx, "profile cache invalidation failed").
			Err(err).
			Log()
	}
}
