package social

import "github.com/nidoham/Social-v2/internal/domain"

// ============================================================================
// Relationship Engine
// ============================================================================
//
// Pure, total transforms over immutable user values. No I/O happens
// here: the repository applies these to fetched snapshots and persists
// the results, which keeps each document write atomic even though the
// pair of documents is not.

func incrementFollowers(p domain.Profile) domain.Profile {
	p.Followers++
	return p
}

func decrementFollowers(p domain.Profile) domain.Profile {
	if p.Followers > 0 {
		p.Followers--
	}
	return p
}

func incrementFollowing(p domain.Profile) domain.Profile {
	p.Following++
	return p
}

func decrementFollowing(p domain.Profile) domain.Profile {
	if p.Following > 0 {
		p.Following--
	}
	return p
}

// IncrementPosts bumps the post counter.
func IncrementPosts(p domain.Profile) domain.Profile {
	p.Posts++
	return p
}

// DecrementPosts lowers the post counter, floored at zero.
func DecrementPosts(p domain.Profile) domain.Profile {
	if p.Posts > 0 {
		p.Posts--
	}
	return p
}

// AddFollower appends followerID to the follower list and increments
// the follower counter. Returns the input unchanged if the id is
// already present.
func AddFollower(u domain.User, followerID string) domain.User {
	if containsID(u.Followers, followerID) {
		return u
	}
	u.Followers = appendID(u.Followers, followerID)
	u.Profile = incrementFollowers(u.Profile)
	return u
}

// RemoveFollower deletes followerID from the follower list and
// decrements the follower counter. Returns the input unchanged if the
// id is not present.
func RemoveFollower(u domain.User, followerID string) domain.User {
	if !containsID(u.Followers, followerID) {
		return u
	}
	u.Followers = removeID(u.Followers, followerID)
	u.Profile = decrementFollowers(u.Profile)
	return u
}

// AddFollowing appends followingID to the following list and
// increments the following counter. Idempotent.
func AddFollowing(u domain.User, followingID string) domain.User {
	if containsID(u.Following, followingID) {
		return u
	}
	u.Following = appendID(u.Following, followingID)
	u.Profile = incrementFollowing(u.Profile)
	return u
}

// RemoveFollowing deletes followingID from the following list and
// decrements the following counter. Idempotent.
func RemoveFollowing(u domain.User, followingID string) domain.User {
	if !containsID(u.Following, followingID) {
		return u
	}
	u.Following = removeID(u.Following, followingID)
	u.Profile = decrementFollowing(u.Profile)
	return u
}

// BlockUser appends blockedID to the blocked list and evicts it from
// both follow lists, keeping the counters consistent. Returns the
// input unchanged if already blocked.
func BlockUser(u domain.User, blockedID string) domain.User {
	if containsID(u.Blocked, blockedID) {
		return u
	}
	u.Blocked = appendID(u.Blocked, blockedID)
	u = RemoveFollower(u, blockedID)
	u = RemoveFollowing(u, blockedID)
	return u
}

// UnblockUser removes blockedID from the blocked list only; prior
// follow edges are not restored. Idempotent.
func UnblockUser(u domain.User, blockedID string) domain.User {
	if !containsID(u.Blocked, blockedID) {
		return u
	}
	u.Blocked = removeID(u.Blocked, blockedID)
	return u
}

// Follow is AddFollowing from the acting user's perspective.
func Follow(current domain.User, targetID string) domain.User {
	return AddFollowing(current, targetID)
}

// Unfollow is RemoveFollowing from the acting user's perspective.
func Unfollow(current domain.User, targetID string) domain.User {
	return RemoveFollowing(current, targetID)
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

// appendID copies before appending so shared backing arrays of the
// input value are never mutated.
func appendID(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	out = append(out, ids...)
	return append(out, id)
}

func removeID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}
