package social

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/store"
)

// ============================================================================
// Discovery
// ============================================================================

// maxSuggestionFetches bounds the concurrent second-hop user fetches
// during suggestion expansion.
const maxSuggestionFetches = 8

// GetNewUsers lists profiles by creation time, newest first.
func (r *Repository) GetNewUsers(ctx context.Context, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)
	q := store.NewQuery(profilesCollection).OrderBy("created", true)
	return r.pageQuery(ctx, q, store.NewQuery(profilesCollection), page, size)
}

// GetPopularUsers lists profiles by follower count, highest first.
func (r *Repository) GetPopularUsers(ctx context.Context, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)
	q := store.NewQuery(profilesCollection).OrderBy("followers", true)
	return r.pageQuery(ctx, q, store.NewQuery(profilesCollection), page, size)
}

// GetActiveUsers lists profiles by post count, highest first.
func (r *Repository) GetActiveUsers(ctx context.Context, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)
	q := store.NewQuery(profilesCollection).OrderBy("posts", true)
	return r.pageQuery(ctx, q, store.NewQuery(profilesCollection), page, size)
}

// GetVerifiedUsers lists verified profiles by follower count.
func (r *Repository) GetVerifiedUsers(ctx context.Context, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)
	q := store.NewQuery(profilesCollection).WhereEqualTo("verified", true).OrderBy("followers", true)
	countQ := store.NewQuery(profilesCollection).WhereEqualTo("verified", true)
	return r.pageQuery(ctx, q, countQ, page, size)
}

// GetSuggestedUsers expands the follow graph two hops out
// (friends-of-friends), deduplicates the candidates and excludes the
// requesting user, anyone already followed and anyone blocked. An
// empty candidate set falls back to the popularity listing. Candidates
// get a stable ordering before the standard slicing rule applies.
//
// Cost is O(F x Fof) store reads; acceptable only while following
// lists stay small. The expansion is not cached.
func (r *Repository) GetSuggestedUsers(ctx context.Context, userID string, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)

	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), r.done("suggested", err)
	}

	exclude := make(map[string]struct{}, len(u.Following)+len(u.Blocked)+1)
	exclude[userID] = struct{}{}
	for _, id := range u.Following {
		exclude[id] = struct{}{}
	}
	for _, id := range u.Blocked {
		exclude[id] = struct{}{}
	}

	var (
		mu         sync.Mutex
		candidates = make(map[string]struct{})
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxSuggestionFetches)

	for _, followedID := range u.Following {
		id := followedID
		g.Go(func() error {
			friend, err := r.GetUser(gctx, id)
			if err != nil {
				if IsNotFound(err) {
					// A dangling follow edge; nothing to expand.
					return nil
				}
				return err
			}

			mu.Lock()
			for _, fof := range friend.Following {
				if _, skip := exclude[fof]; !skip {
					candidates[fof] = struct{}{}
				}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return domain.EmptyPage[domain.Profile](page, size), r.done("suggested", err)
	}

	if len(candidates) == 0 {
		result, err := r.GetPopularUsers(ctx, page, size)
		return result, r.done("suggested", err)
	}

	ids := make([]string, 0, len(candidates))
	for id := range candidates {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	result, err := r.pageProfiles(ctx, ids, page, size)
	return result, r.done("suggested", err)
}
