// Package social implements the relationship-consistency repository:
// profile and user documents kept mutually consistent across the users
// and profiles collections, cached profile reads, paginated relation
// queries, search and suggestions.
package social

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/nidoham/Social-v2/internal/cache"
	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/events"
	"github.com/nidoham/Social-v2/internal/metrics"
	"github.com/nidoham/Social-v2/internal/store"
	"github.com/nidoham/Social-v2/pkg/logger"
)

const (
	usersCollection    = "users"
	profilesCollection = "profiles"

	// The store caps where-in cardinality; batched lookups respect it.
	whereInBatchSize = 10

	defaultPageSize = 20
)

// Repository orchestrates the document store, the profile cache and
// the relationship engine. There is no cross-document transaction: a
// failed write mid-operation leaves prior writes in place and the
// error is surfaced for the caller to retry the whole operation.
type Repository struct {
	store  store.Store
	cache  *cache.ProfileCache
	events *events.Publisher
	logger *zap.Logger
}

// NewRepository creates a repository over the given store and cache.
// The publisher may be nil; change events are then not published.
func NewRepository(st store.Store, profileCache *cache.ProfileCache, publisher *events.Publisher) *Repository {
	return &Repository{
		store:  st,
		cache:  profileCache,
		events: publisher,
		logger: logger.Named("social"),
	}
}

// done records the operation outcome and passes the error through.
func (r *Repository) done(op string, err error) error {
	metrics.RepositoryOp(op, err)
	return err
}

// ==================== USER CRUD ====================

// CreateUser persists the user document and the denormalized profile
// document, then fills the cache. Both writes are attempted even if
// one fails; the operation fails if either failed.
func (r *Repository) CreateUser(ctx context.Context, u domain.User) error {
	userErr := r.store.Set(ctx, usersCollection, u.ID, userToDoc(u))
	profileErr := r.store.Set(ctx, profilesCollection, u.ID, profileToDoc(u.Profile))
	if userErr != nil || profileErr != nil {
		return r.done("create_user", fmt.Errorf("failed to create user %s: %w", u.ID, errors.Join(userErr, profileErr)))
	}

	r.cache.Put(u.ID, u.Profile)
	r.events.UserChanged(u.ID, events.KindCreated)
	r.logger.Info("User created", zap.String("user_id", u.ID))
	return r.done("create_user", nil)
}

// GetUser returns the user with the cached profile merged over a
// freshly fetched user document. The relationship lists are always
// store-fresh; the profile may be up to one TTL stale.
func (r *Repository) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	cached, hit := r.cache.Get(userID)

	u, err := r.fetchUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if hit {
		u.Profile = cached
	} else {
		r.cache.Put(userID, u.Profile)
	}
	return &u, nil
}

// UpdateUser rewrites both documents and refreshes the cache. Both
// writes are attempted even if one fails.
func (r *Repository) UpdateUser(ctx context.Context, u domain.User) error {
	userErr := r.store.Set(ctx, usersCollection, u.ID, userToDoc(u))
	profileErr := r.store.Set(ctx, profilesCollection, u.ID, profileToDoc(u.Profile))
	if userErr != nil || profileErr != nil {
		return r.done("update_user", fmt.Errorf("failed to update user %s: %w", u.ID, errors.Join(userErr, profileErr)))
	}

	r.cache.Put(u.ID, u.Profile)
	r.events.UserChanged(u.ID, events.KindUpdated)
	return r.done("update_user", nil)
}

// DeleteUser removes both documents and the cache entry. The deletes
// are sequential and not transactional: a failure after the first
// leaves a dangling profile document, surfaced as an error and not
// auto-repaired.
func (r *Repository) DeleteUser(ctx context.Context, userID string) error {
	if err := r.store.Delete(ctx, usersCollection, userID); err != nil {
		return r.done("delete_user", fmt.Errorf("failed to delete user %s: %w", userID, err))
	}
	if err := r.store.Delete(ctx, profilesCollection, userID); err != nil {
		return r.done("delete_user", fmt.Errorf("failed to delete profile %s (user document already deleted): %w", userID, err))
	}

	r.cache.Remove(userID)
	r.events.UserChanged(userID, events.KindDeleted)
	r.logger.Info("User deleted", zap.String("user_id", userID))
	return r.done("delete_user", nil)
}

// WatchUser subscribes to best-effort change events for the user.
func (r *Repository) WatchUser(userID string) (<-chan events.UserEvent, func(), error) {
	return r.events.WatchUser(userID)
}

// ==================== PROFILE OPERATIONS ====================

// GetProfile returns the profile by handle, served from cache when
// fresh, otherwise from the profiles collection with a cache fill.
func (r *Repository) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	if cached, ok := r.cache.Get(userID); ok {
		return &cached, nil
	}

	doc, err := r.store.Get(ctx, profilesCollection, userID)
	if err != nil {
		var notFound store.ErrNotFound
		if errors.As(err, &notFound) {
			return nil, ErrUserNotFound{UserID: userID}
		}
		return nil, fmt.Errorf("failed to fetch profile %s: %w", userID, err)
	}

	profile := profileFromDoc(doc)
	r.cache.Put(userID, profile)
	return &profile, nil
}

// GetProfileByUsername looks a profile up by its unique handle field.
func (r *Repository) GetProfileByUsername(ctx context.Context, username string) (*domain.Profile, error) {
	return r.getProfileByField(ctx, "username", username)
}

// GetProfileByEmail looks a profile up by its email field.
func (r *Repository) GetProfileByEmail(ctx context.Context, email string) (*domain.Profile, error) {
	return r.getProfileByField(ctx, "email", email)
}

func (r *Repository) getProfileByField(ctx context.Context, field, value string) (*domain.Profile, error) {
	q := store.NewQuery(profilesCollection).WhereEqualTo(field, value).Limit(1)
	docs, err := r.store.Find(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query profile by %s: %w", field, err)
	}
	if len(docs) == 0 {
		return nil, ErrUserNotFound{UserID: value}
	}

	profile := profileFromDoc(docs[0])
	r.cache.Put(profile.Username, profile)
	return &profile, nil
}

// GetProfiles resolves a batch of handles to profiles, cache-first,
// fetching the remainder in where-in batches and backfilling the
// cache. Results come back in the requested order; handles with no
// profile are skipped.
func (r *Repository) GetProfiles(ctx context.Context, userIDs []string) ([]domain.Profile, error) {
	if len(userIDs) == 0 {
		return []domain.Profile{}, nil
	}

	found := make(map[string]domain.Profile, len(userIDs))
	for _, p := range r.cache.GetAll(userIDs) {
		found[p.Username] = p
	}

	var missing []string
	for _, id := range userIDs {
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}

	for start := 0; start < len(missing); start += whereInBatchSize {
		end := start + whereInBatchSize
		if end > len(missing) {
			end = len(missing)
		}

		q := store.NewQuery(profilesCollection).WhereIn("username", stringsToValues(missing[start:end]))
		docs, err := r.store.Find(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profiles batch: %w", err)
		}

		fetched := make([]domain.Profile, 0, len(docs))
		for _, doc := range docs {
			p := profileFromDoc(doc)
			fetched = append(fetched, p)
			found[p.Username] = p
		}
		r.cache.PutAll(fetched)
	}

	profiles := make([]domain.Profile, 0, len(userIDs))
	for _, id := range userIDs {
		if p, ok := found[id]; ok {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// UpdateProfile rewrites the profile document, refreshes the embedded
// copy on the user document if one exists, and refreshes the cache.
func (r *Repository) UpdateProfile(ctx context.Context, userID string, profile domain.Profile) error {
	if err := r.store.Set(ctx, profilesCollection, userID, profileToDoc(profile)); err != nil {
		return r.done("update_profile", fmt.Errorf("failed to update profile %s: %w", userID, err))
	}

	u, err := r.fetchUser(ctx, userID)
	switch {
	case err == nil:
		u.Profile = profile
		if err := r.store.Set(ctx, usersCollection, userID, userToDoc(u)); err != nil {
			return r.done("update_profile", fmt.Errorf("failed to refresh embedded profile %s: %w", userID, err))
		}
	case IsNotFound(err):
		// Profile without a user document; nothing to refresh.
	default:
		return r.done("update_profile", err)
	}

	r.cache.Put(userID, profile)
	r.events.UserChanged(userID, events.KindUpdated)
	return r.done("update_profile", nil)
}

// ==================== VALIDATION LOOKUPS ====================

// IsUsernameAvailable reports whether no profile holds the handle.
func (r *Repository) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	_, err := r.GetProfileByUsername(ctx, username)
	if err != nil {
		if IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// IsEmailAvailable reports whether no profile holds the email.
func (r *Repository) IsEmailAvailable(ctx context.Context, email string) (bool, error) {
	_, err := r.GetProfileByEmail(ctx, email)
	if err != nil {
		if IsNotFound(err) {
			return true, nil
		}
		return false, err
	}
	return false, nil
}

// ==================== COUNTERS & PRESENCE ====================

// IncrementPostCount bumps the post counter on both documents.
func (r *Repository) IncrementPostCount(ctx context.Context, userID string) error {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return r.done("increment_posts", err)
	}

	u.Profile = IncrementPosts(u.Profile)
	return r.done("increment_posts", r.UpdateUser(ctx, *u))
}

// DecrementPostCount lowers the post counter, floored at zero.
func (r *Repository) DecrementPostCount(ctx context.Context, userID string) error {
	u, err := r.GetUser(ctx, userID)
	if err != nil {
		return r.done("decrement_posts", err)
	}

	u.Profile = DecrementPosts(u.Profile)
	return r.done("decrement_posts", r.UpdateUser(ctx, *u))
}

// UpdateOnlineStatus stamps the profile's online timestamp. Only the
// profile document and the cache are touched; the embedded copy on
// the user document catches up on the next full write.
func (r *Repository) UpdateOnlineStatus(ctx context.Context, userID string) error {
	return r.done("update_online", r.stampProfile(ctx, userID, "online"))
}

// UpdateSeenStatus stamps the profile's last-seen timestamp.
func (r *Repository) UpdateSeenStatus(ctx context.Context, userID string) error {
	return r.done("update_seen", r.stampProfile(ctx, userID, "seen"))
}

func (r *Repository) stampProfile(ctx context.Context, userID, field string) error {
	doc, err := r.store.Get(ctx, profilesCollection, userID)
	if err != nil {
		var notFound store.ErrNotFound
		if errors.As(err, &notFound) {
			return ErrUserNotFound{UserID: userID}
		}
		return fmt.Errorf("failed to fetch profile %s: %w", userID, err)
	}

	doc[field] = time.Now().UTC()
	if err := r.store.Set(ctx, profilesCollection, userID, doc); err != nil {
		return fmt.Errorf("failed to stamp %s on profile %s: %w", field, userID, err)
	}

	r.cache.Put(userID, profileFromDoc(doc))
	return nil
}

// fetchUser reads the user document directly from the store.
func (r *Repository) fetchUser(ctx context.Context, userID string) (domain.User, error) {
	doc, err := r.store.Get(ctx, usersCollection, userID)
	if err != nil {
		var notFound store.ErrNotFound
		if errors.As(err, &notFound) {
			return domain.User{}, ErrUserNotFound{UserID: userID}
		}
		return domain.User{}, fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}
	return userFromDoc(doc), nil
}
