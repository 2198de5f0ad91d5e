package social

import "github.com/nidoham/Social-v2/internal/domain"

// ============================================================================
// Relationship Predicates
// ============================================================================

// RelationshipStatus classifies the directed edges between two users.
// It is derived, never stored. Blocked takes precedence over every
// other classification.
type RelationshipStatus string

const (
	StatusNone      RelationshipStatus = "none"
	StatusFollowing RelationshipStatus = "following"
	StatusFollower  RelationshipStatus = "follower"
	StatusMutual    RelationshipStatus = "mutual"
	StatusBlocked   RelationshipStatus = "blocked"
)

// RelationshipInfo is the full derived view of one user's edges toward
// another.
type RelationshipInfo struct {
	IsFollowing bool               `json:"is_following"`
	IsFollower  bool               `json:"is_follower"`
	IsMutual    bool               `json:"is_mutual"`
	IsBlocked   bool               `json:"is_blocked"`
	Status      RelationshipStatus `json:"status"`
}

// IsFollowing reports whether u follows userID.
func IsFollowing(u domain.User, userID string) bool {
	return containsID(u.Following, userID)
}

// IsFollower reports whether userID follows u.
func IsFollower(u domain.User, userID string) bool {
	return containsID(u.Followers, userID)
}

// IsBlocked reports whether u has blocked userID.
func IsBlocked(u domain.User, userID string) bool {
	return containsID(u.Blocked, userID)
}

// IsMutual reports whether u and userID follow each other.
func IsMutual(u domain.User, userID string) bool {
	return IsFollowing(u, userID) && IsFollower(u, userID)
}

// MutualFollowers returns the ids following both users, in u1's
// follower order.
func MutualFollowers(u1, u2 domain.User) []string {
	other := make(map[string]struct{}, len(u2.Followers))
	for _, id := range u2.Followers {
		other[id] = struct{}{}
	}

	var mutual []string
	for _, id := range u1.Followers {
		if _, ok := other[id]; ok {
			mutual = append(mutual, id)
		}
	}
	return mutual
}

// FollowersNotFollowedBack returns followers of u that u does not
// follow back.
func FollowersNotFollowedBack(u domain.User) []string {
	var ids []string
	for _, id := range u.Followers {
		if !containsID(u.Following, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// FollowingNotFollowingBack returns users u follows that do not follow
// u back.
func FollowingNotFollowingBack(u domain.User) []string {
	var ids []string
	for _, id := range u.Following {
		if !containsID(u.Followers, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// CanFollow reports whether u may follow targetID: not already
// followed and not blocked by u.
func CanFollow(u domain.User, targetID string) bool {
	return !IsFollowing(u, targetID) && !IsBlocked(u, targetID)
}

// CanUnfollow reports whether u currently follows targetID.
func CanUnfollow(u domain.User, targetID string) bool {
	return IsFollowing(u, targetID)
}

// CanBlock reports whether u may block targetID: not already blocked
// and not u itself.
func CanBlock(u domain.User, targetID string) bool {
	return !IsBlocked(u, targetID) && targetID != u.ID
}

// CanUnblock reports whether u currently blocks targetID.
func CanUnblock(u domain.User, targetID string) bool {
	return IsBlocked(u, targetID)
}

// StatusOf classifies current's edges toward targetID.
func StatusOf(current domain.User, targetID string) RelationshipStatus {
	if IsBlocked(current, targetID) {
		return StatusBlocked
	}

	following := IsFollowing(current, targetID)
	follower := IsFollower(current, targetID)

	switch {
	case following && follower:
		return StatusMutual
	case following:
		return StatusFollowing
	case follower:
		return StatusFollower
	}
	return StatusNone
}

// InfoOf returns the full derived relationship view of current toward
// targetID.
func InfoOf(current domain.User, targetID string) RelationshipInfo {
	following := IsFollowing(current, targetID)
	follower := IsFollower(current, targetID)

	return RelationshipInfo{
		IsFollowing: following,
		IsFollower:  follower,
		IsMutual:    following && follower,
		IsBlocked:   IsBlocked(current, targetID),
		Status:      StatusOf(current, targetID),
	}
}
