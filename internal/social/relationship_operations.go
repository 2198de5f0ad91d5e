package social

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/events"
)

// ============================================================================
// Relationship Orchestration
// ============================================================================
//
// Each operation fetches snapshots, validates the precondition before
// any write, applies the pure transforms, and persists the affected
// documents in sequence. There is no pairwise transaction: concurrent
// mutations between the same two users can race, and a transport
// failure mid-sequence leaves the earlier writes in place.

// FollowUser makes currentID follow targetID. Rejected with
// ErrInvalidOperation if already following or if the target is
// blocked.
func (r *Repository) FollowUser(ctx context.Context, currentID, targetID string) error {
	current, err := r.GetUser(ctx, currentID)
	if err != nil {
		return r.done("follow", err)
	}
	target, err := r.GetUser(ctx, targetID)
	if err != nil {
		return r.done("follow", err)
	}

	if !CanFollow(*current, targetID) {
		return r.done("follow", ErrInvalidOperation{
			Operation: "follow",
			UserID:    currentID,
			TargetID:  targetID,
			Reason:    "already following or target is blocked",
		})
	}

	updatedCurrent := AddFollowing(*current, targetID)
	updatedTarget := AddFollower(*target, currentID)

	if err := r.persistPair(ctx, updatedCurrent, updatedTarget); err != nil {
		return r.done("follow", err)
	}

	r.cache.Put(currentID, updatedCurrent.Profile)
	r.cache.Put(targetID, updatedTarget.Profile)
	r.events.UserChanged(currentID, events.KindRelationship)
	r.events.UserChanged(targetID, events.KindRelationship)
	r.logger.Info("User followed",
		zap.String("user_id", currentID),
		zap.String("target_id", targetID),
	)
	return r.done("follow", nil)
}

// UnfollowUser removes the follow edge from currentID to targetID.
// Rejected if the target is not currently followed.
func (r *Repository) UnfollowUser(ctx context.Context, currentID, targetID string) error {
	current, err := r.GetUser(ctx, currentID)
	if err != nil {
		return r.done("unfollow", err)
	}
	target, err := r.GetUser(ctx, targetID)
	if err != nil {
		return r.done("unfollow", err)
	}

	if !CanUnfollow(*current, targetID) {
		return r.done("unfollow", ErrInvalidOperation{
			Operation: "unfollow",
			UserID:    currentID,
			TargetID:  targetID,
			Reason:    "not following",
		})
	}

	updatedCurrent := RemoveFollowing(*current, targetID)
	updatedTarget := RemoveFollower(*target, currentID)

	if err := r.persistPair(ctx, updatedCurrent, updatedTarget); err != nil {
		return r.done("unfollow", err)
	}

	r.cache.Put(currentID, updatedCurrent.Profile)
	r.cache.Put(targetID, updatedTarget.Profile)
	r.events.UserChanged(currentID, events.KindRelationship)
	r.events.UserChanged(targetID, events.KindRelationship)
	return r.done("unfollow", nil)
}

// BlockUser blocks targetID for currentID, evicting any follow
// edges between them on both sides. Rejected on self-block or if
// already blocked. The target's record is also cleaned up: the
// blocker is removed from its follower list if present.
func (r *Repository) BlockUser(ctx context.Context, currentID, targetID string) error {
	current, err := r.GetUser(ctx, currentID)
	if err != nil {
		return r.done("block", err)
	}

	if !CanBlock(*current, targetID) {
		reason := "already blocked"
		if targetID == currentID {
			reason = "cannot block yourself"
		}
		return r.done("block", ErrInvalidOperation{
			Operation: "block",
			UserID:    currentID,
			TargetID:  targetID,
			Reason:    reason,
		})
	}

	updated := BlockUser(*current, targetID)
	if err := r.persistUser(ctx, updated); err != nil {
		return r.done("block", err)
	}
	r.cache.Put(currentID, updated.Profile)

	// Keep the relation symmetric: any follow edge between the pair
	// also disappears from the target's record. A missing target is
	// fine; a transport failure is not.
	target, err := r.GetUser(ctx, targetID)
	switch {
	case err == nil:
		if IsFollower(*target, currentID) || IsFollowing(*target, currentID) {
			updatedTarget := RemoveFollower(*target, currentID)
			updatedTarget = RemoveFollowing(updatedTarget, currentID)
			if err := r.persistUser(ctx, updatedTarget); err != nil {
				return r.done("block", err)
			}
			r.cache.Put(targetID, updatedTarget.Profile)
			r.events.UserChanged(targetID, events.KindRelationship)
		}
	case IsNotFound(err):
	default:
		return r.done("block", err)
	}

	r.events.UserChanged(currentID, events.KindRelationship)
	r.logger.Info("User blocked",
		zap.String("user_id", currentID),
		zap.String("target_id", targetID),
	)
	return r.done("block", nil)
}

// UnblockUser removes targetID from currentID's blocked list.
// Prior follow edges are not restored. Rejected if not blocked.
func (r *Repository) UnblockUser(ctx context.Context, currentID, targetID string) error {
	current, err := r.GetUser(ctx, currentID)
	if err != nil {
		return r.done("unblock", err)
	}

	if !CanUnblock(*current, targetID) {
		return r.done("unblock", ErrInvalidOperation{
			Operation: "unblock",
			UserID:    currentID,
			TargetID:  targetID,
			Reason:    "not blocked",
		})
	}

	updated := UnblockUser(*current, targetID)
	if err := r.store.Set(ctx, usersCollection, currentID, userToDoc(updated)); err != nil {
		return r.done("unblock", fmt.Errorf("failed to persist user %s: %w", currentID, err))
	}

	r.cache.Put(currentID, updated.Profile)
	r.events.UserChanged(currentID, events.KindRelationship)
	return r.done("unblock", nil)
}

// GetRelationshipStatus classifies currentID's edges toward targetID.
func (r *Repository) GetRelationshipStatus(ctx context.Context, currentID, targetID string) (RelationshipStatus, error) {
	current, err := r.GetUser(ctx, currentID)
	if err != nil {
		return StatusNone, err
	}
	return StatusOf(*current, targetID), nil
}

// GetRelationshipInfo returns the full derived relationship view of
// currentID toward targetID.
func (r *Repository) GetRelationshipInfo(ctx context.Context, currentID, targetID string) (RelationshipInfo, error) {
	current, err := r.GetUser(ctx, currentID)
	if err != nil {
		return RelationshipInfo{}, err
	}
	return InfoOf(*current, targetID), nil
}

// persistPair writes both user documents first, then both profile
// denormalizations, in a fixed order. No rollback on failure.
func (r *Repository) persistPair(ctx context.Context, first, second domain.User) error {
	if err := r.store.Set(ctx, usersCollection, first.ID, userToDoc(first)); err != nil {
		return fmt.Errorf("failed to persist user %s: %w", first.ID, err)
	}
	if err := r.store.Set(ctx, usersCollection, second.ID, userToDoc(second)); err != nil {
		return fmt.Errorf("failed to persist user %s: %w", second.ID, err)
	}
	if err := r.store.Set(ctx, profilesCollection, first.ID, profileToDoc(first.Profile)); err != nil {
		return fmt.Errorf("failed to persist profile %s: %w", first.ID, err)
	}
	if err := r.store.Set(ctx, profilesCollection, second.ID, profileToDoc(second.Profile)); err != nil {
		return fmt.Errorf("failed to persist profile %s: %w", second.ID, err)
	}
	return nil
}

// persistUser writes one user document and its profile denormalization.
func (r *Repository) persistUser(ctx context.Context, u domain.User) error {
	if err := r.store.Set(ctx, usersCollection, u.ID, userToDoc(u)); err != nil {
		return fmt.Errorf("failed to persist user %s: %w", u.ID, err)
	}
	if err := r.store.Set(ctx, profilesCollection, u.ID, profileToDoc(u.Profile)); err != nil {
		return fmt.Errorf("failed to persist profile %s: %w", u.ID, err)
	}
	return nil
}
