package social

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nidoham/Social-v2/internal/cache"
	"github.com/nidoham/Social-v2/internal/domain"
	"github.com/nidoham/Social-v2/internal/store"
)

func newTestRepository() (*Repository, *store.MemoryStore) {
	st := store.NewMemoryStore()
	return NewRepository(st, cache.NewProfileCache(cache.DefaultTTL), nil), st
}

func seedUser(t *testing.T, repo *Repository, id string) domain.User {
	t.Helper()

	u := domain.User{
		ID: id,
		Profile: domain.Profile{
			Name:     "Test " + id,
			Username: id,
			Email:    id + "@example.com",
			Created:  time.Now().UTC(),
			Updated:  time.Now().UTC(),
		},
	}
	if err := repo.CreateUser(context.Background(), u); err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", id, err)
	}
	return u
}

func TestCreateAndGetUser(t *testing.T) {
	repo, st := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")

	u, err := repo.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if u.ID != "alice" || u.Profile.Username != "alice" {
		t.Errorf("Expected alice, got %+v", u)
	}
	if u.Profile.Followers != 0 || len(u.Followers) != 0 {
		t.Errorf("Expected a fresh record, got %+v", u)
	}

	// Both documents exist after creation.
	if _, err := st.Get(ctx, "users", "alice"); err != nil {
		t.Errorf("Expected user document, got %v", err)
	}
	if _, err := st.Get(ctx, "profiles", "alice"); err != nil {
		t.Errorf("Expected profile document, got %v", err)
	}
}

func TestGetUserNotFound(t *testing.T) {
	repo, _ := newTestRepository()

	_, err := repo.GetUser(context.Background(), "ghost")
	if !IsNotFound(err) {
		t.Errorf("Expected not-found error, got %v", err)
	}
}

func TestDeleteUserRemovesBothDocuments(t *testing.T) {
	repo, st := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")
	if err := repo.DeleteUser(ctx, "alice"); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := repo.GetUser(ctx, "alice"); !IsNotFound(err) {
		t.Errorf("Expected not-found after delete, got %v", err)
	}
	if _, err := st.Get(ctx, "profiles", "alice"); err == nil {
		t.Error("Expected profile document removed")
	}
}

func TestGetUserServesCachedProfileOverFreshLists(t *testing.T) {
	repo, st := newTestRepository()
	ctx := context.Background()

	u := seedUser(t, repo, "alice")

	// Mutate the stored relationship lists behind the cache's back.
	u.Followers = []string{"bob"}
	u.Profile.Bio = "stale copy should not surface"
	if err := st.Set(ctx, "users", "alice", userToDoc(u)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, err := repo.GetUser(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if len(got.Followers) != 1 {
		t.Errorf("Expected store-fresh follower list, got %v", got.Followers)
	}
	if got.Profile.Bio != "" {
		t.Errorf("Expected the cached profile, got bio %q", got.Profile.Bio)
	}
}

func TestGetProfileServedFromCache(t *testing.T) {
	repo, st := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")

	// The profile document can vanish; the cache still serves.
	if err := st.Delete(ctx, "profiles", "alice"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	p, err := repo.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Username != "alice" {
		t.Errorf("Expected alice, got %q", p.Username)
	}

	repo.cache.Remove("alice")
	if _, err := repo.GetProfile(ctx, "alice"); !IsNotFound(err) {
		t.Errorf("Expected not-found on cold cache, got %v", err)
	}
}

func TestGetProfileByUsername(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")

	p, err := repo.GetProfileByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfileByUsername failed: %v", err)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("Expected alice@example.com, got %q", p.Email)
	}

	if _, err := repo.GetProfileByUsername(ctx, "ghost"); !IsNotFound(err) {
		t.Errorf("Expected not-found, got %v", err)
	}
}

func TestAvailabilityChecks(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")

	tests := []struct {
		name  string
		check func() (bool, error)
		want  bool
	}{
		{"taken username", func() (bool, error) { return repo.IsUsernameAvailable(ctx, "alice") }, false},
		{"free username", func() (bool, error) { return repo.IsUsernameAvailable(ctx, "bob") }, true},
		{"taken email", func() (bool, error) { return repo.IsEmailAvailable(ctx, "alice@example.com") }, false},
		{"free email", func() (bool, error) { return repo.IsEmailAvailable(ctx, "bob@example.com") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.check()
			if err != nil {
				t.Fatalf("Availability check failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestGetProfilesKeepsRequestOrderAndSkipsMissing(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")
	seedUser(t, repo, "bob")
	seedUser(t, repo, "carol")

	profiles, err := repo.GetProfiles(ctx, []string{"carol", "ghost", "alice"})
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}

	if len(profiles) != 2 {
		t.Fatalf("Expected 2 profiles, got %d", len(profiles))
	}
	if profiles[0].Username != "carol" || profiles[1].Username != "alice" {
		t.Errorf("Expected [carol alice], got [%s %s]", profiles[0].Username, profiles[1].Username)
	}
}

func TestGetProfilesBatchesColdLookups(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	ids := make([]string, 0, 25)
	for i := 0; i < 25; i++ {
		id := fmt.Sprintf("user%02d", i)
		seedUser(t, repo, id)
		ids = append(ids, id)
	}
	// Force every lookup through the batched store path.
	repo.cache.Clear()

	profiles, err := repo.GetProfiles(ctx, ids)
	if err != nil {
		t.Fatalf("GetProfiles failed: %v", err)
	}
	if len(profiles) != len(ids) {
		t.Fatalf("Expected %d profiles, got %d", len(ids), len(profiles))
	}
	for i, p := range profiles {
		if p.Username != ids[i] {
			t.Errorf("Expected %s at position %d, got %s", ids[i], i, p.Username)
		}
	}
}

func TestUpdateProfileRefreshesEmbeddedCopy(t *testing.T) {
	repo, st := newTestRepository()
	ctx := context.Background()

	u := seedUser(t, repo, "alice")

	updated := u.Profile
	updated.Bio = "hello"
	if err := repo.UpdateProfile(ctx, "alice", updated); err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}

	doc, err := st.Get(ctx, "users", "alice")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got := userFromDoc(doc); got.Profile.Bio != "hello" {
		t.Errorf("Expected embedded bio refreshed, got %q", got.Profile.Bio)
	}

	p, err := repo.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Bio != "hello" {
		t.Errorf("Expected cached bio refreshed, got %q", p.Bio)
	}
}

func TestPostCounterRoundTrip(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")

	if err := repo.IncrementPostCount(ctx, "alice"); err != nil {
		t.Fatalf("IncrementPostCount failed: %v", err)
	}
	if err := repo.IncrementPostCount(ctx, "alice"); err != nil {
		t.Fatalf("IncrementPostCount failed: %v", err)
	}
	if err := repo.DecrementPostCount(ctx, "alice"); err != nil {
		t.Fatalf("DecrementPostCount failed: %v", err)
	}

	p, err := repo.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Posts != 1 {
		t.Errorf("Expected 1 post, got %d", p.Posts)
	}

	// Floored at zero.
	if err := repo.DecrementPostCount(ctx, "alice"); err != nil {
		t.Fatalf("DecrementPostCount failed: %v", err)
	}
	if err := repo.DecrementPostCount(ctx, "alice"); err != nil {
		t.Fatalf("DecrementPostCount failed: %v", err)
	}
	p, _ = repo.GetProfile(ctx, "alice")
	if p.Posts != 0 {
		t.Errorf("Expected 0 posts, got %d", p.Posts)
	}
}

func TestPresenceStamps(t *testing.T) {
	repo, _ := newTestRepository()
	ctx := context.Background()

	seedUser(t, repo, "alice")

	if err := repo.UpdateOnlineStatus(ctx, "alice"); err != nil {
		t.Fatalf("UpdateOnlineStatus failed: %v", err)
	}
	if err := repo.UpdateSeenStatus(ctx, "alice"); err != nil {
		t.Fatalf("UpdateSeenStatus failed: %v", err)
	}

	p, err := repo.GetProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("GetProfile failed: %v", err)
	}
	if p.Online == nil || p.Seen == nil {
		t.Errorf("Expected both stamps set, got online=%v seen=%v", p.Online, p.Seen)
	}

	if err := repo.UpdateOnlineStatus(ctx, "ghost"); !IsNotFound(err) {
		t.Errorf("Expected not-found for unknown user, got %v", err)
	}
}
