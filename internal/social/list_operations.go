package social

import (
	"context"

	"github.com/nidoham/Social-v2/internal/domain"
)

// ============================================================================
// Paged Relationship Lists
// ============================================================================
//
// The full id list comes from the user document in one read; paging is
// pure slicing. Id-to-profile resolution is the only O(n) part and it
// is batched and cache-first.

// GetFollowers returns one page of the user's follower profiles.
func (r *Repository) GetFollowers(ctx context.Context, userID string, page, size int) (domain.Paging[domain.Profile], error) {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), err
	}
	return r.pageProfiles(ctx, u.Followers, page, size)
}

// GetFollowing returns one page of the profiles the user follows.
func (r *Repository) GetFollowing(ctx context.Context, userID string, page, size int) (domain.Paging[domain.Profile], error) {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), err
	}
	return r.pageProfiles(ctx, u.Following, page, size)
}

// GetBlocked returns one page of the user's blocked profiles.
func (r *Repository) GetBlocked(ctx context.Context, userID string, page, size int) (domain.Paging[domain.Profile], error) {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), err
	}
	return r.pageProfiles(ctx, u.Blocked, page, size)
}

// GetMutualFollowers returns one page of the profiles following both
// users.
func (r *Repository) GetMutualFollowers(ctx context.Context, userID, targetID string, page, size int) (domain.Paging[domain.Profile], error) {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), err
	}
	target, err := r.GetUser(ctx, targetID)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), err
	}

	return r.pageProfiles(ctx, MutualFollowers(*u, *target), page, size)
}

// pageProfiles slices the id list for the requested page and resolves
// the slice to profiles.
func (r *Repository) pageProfiles(ctx context.Context, ids []string, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)
	if len(ids) == 0 {
		return domain.EmptyPage[domain.Profile](page, size), nil
	}

	pageIDs, hasNext := sliceIDs(ids, page, size)

	profiles, err := r.GetProfiles(ctx, pageIDs)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), err
	}

	return domain.Paging[domain.Profile]{
		Data:    profiles,
		Page:    page,
		Size:    size,
		Total:   len(ids),
		HasNext: hasNext,
	}, nil
}

// normalizePage clamps a page request to sane values: pages are
// 1-based and a non-positive size falls back to the default.
func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	return page, size
}

// sliceIDs returns the page's slice of ids and whether more pages
// follow. A page past the end yields an empty slice.
func sliceIDs(ids []string, page, size int) ([]string, bool) {
	start := (page - 1) * size
	if start >= len(ids) {
		return []string{}, false
	}

	end := start + size
	if end > len(ids) {
		end = len(ids)
	}
	return ids[start:end], end < len(ids)
}
