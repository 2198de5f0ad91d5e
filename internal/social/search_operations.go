package social

import (
	"context"
	"fmt"
	"strings"

	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/store"
)

// ============================================================================
// Search
// ============================================================================

// prefixEnd is the highest code point the store orders after every
// practical handle; query..query+prefixEnd spans all handles with the
// query as prefix.
const prefixEnd = "\uf8ff"

// SearchProfiles runs a filtered, ordered profile search. Equality and
// range predicates combine conjunctively. A non-empty text query turns
// into a prefix range on the handle and forces relevance ordering by
// handle; otherwise the filter's sort key and direction pick the
// order-by field. The total count and the page fetch are two
// independent round trips and may observe slightly different data.
func (r *Repository) SearchProfiles(ctx context.Context, filter domain.SearchFilter, page, size int) (domain.Paging[domain.Profile], error) {
	page, size = normalizePage(page, size)

	q := store.NewQuery(profilesCollection)

	if filter.Verified != nil {
		q = q.WhereEqualTo("verified", *filter.Verified)
	}
	if filter.Banned != nil {
		q = q.WhereEqualTo("banned", *filter.Banned)
	}
	if filter.Gender != nil && *filter.Gender != "" {
		q = q.WhereEqualTo("gender", *filter.Gender)
	}
	if filter.MinFollowers != nil {
		q = q.WhereGreaterThanOrEqualTo("followers", *filter.MinFollowers)
	}
	if filter.MaxFollowers != nil {
		q = q.WhereLessThanOrEqualTo("followers", *filter.MaxFollowers)
	}

	if text := strings.TrimSpace(filter.Query); text != "" {
		q = q.OrderBy("username", false).StartAt(text).EndAt(text + prefixEnd)
	} else {
		descending := filter.Order != domain.OrderAsc
		switch filter.SortBy {
		case domain.SortByName:
			q = q.OrderBy("name", descending)
		case domain.SortByFollowers:
			q = q.OrderBy("followers", descending)
		case domain.SortByCreated:
			q = q.OrderBy("created", descending)
		case domain.SortByUpdated:
			q = q.OrderBy("updated", descending)
		case domain.SortByRelevant:
			// Store order; nothing to pin without a text query.
		}
	}

	result, err := r.pageQuery(ctx, q, q, page, size)
	return result, r.done("search", err)
}

// pageQuery counts the unpaged countQuery, fetches up to page*size
// documents of pageQuery and slices the requested page locally; the
// store contract has no offset. Fetched profiles warm the cache.
func (r *Repository) pageQuery(ctx context.Context, pageQuery, countQuery store.Query, page, size int) (domain.Paging[domain.Profile], error) {
	total, err := r.store.Count(ctx, countQuery)
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), fmt.Errorf("failed to count profiles: %w", err)
	}

	docs, err := r.store.Find(ctx, pageQuery.Limit(page*size))
	if err != nil {
		return domain.EmptyPage[domain.Profile](page, size), fmt.Errorf("failed to fetch profiles: %w", err)
	}

	profiles := make([]domain.Profile, 0, len(docs))
	for _, doc := range docs {
		profiles = append(profiles, profileFromDoc(doc))
	}
	r.cache.PutAll(profiles)

	start := (page - 1) * size
	data := []domain.Profile{}
	if start < len(profiles) {
		end := start + size
		if end > len(profiles) {
			end = len(profiles)
		}
		data = profiles[start:end]
	}

	return domain.Paging[domain.Profile]{
		Data:    data,
		Page:    page,
		Size:    size,
		Total:   total,
		HasNext: total > page*size,
	}, nil
}
