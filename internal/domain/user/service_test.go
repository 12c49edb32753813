package user

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/peopledir/peopledir-api/internal/pkg/token"
)

type fakeRepo struct {
	users      map[uuid.UUID]*User
	lastFilter *SearchFilter
	searchOut  []*User
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[uuid.UUID]*User{}}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	for _, existing := range f.users {
		if existing.Username == u.Username {
			return ErrUsernameTaken
		}
	}
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.users, id)
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeRepo) Search(ctx context.Context, filter *SearchFilter) ([]*User, error) {
	f.lastFilter = filter
	return f.searchOut, nil
}

type fakeCache struct {
	entries map[uuid.UUID]*User
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[uuid.UUID]*User{}}
}

func (f *fakeCache) Get(ctx context.Context, id uuid.UUID) (*User, error) {
	u, ok := f.entries[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeCache) Set(ctx context.Context, u *User) error {
	cp := *u
	f.entries[u.ID] = &cp
	f.sets++
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, id uuid.UUID) error {
	delete(f.entries, id)
	return nil
}

// expire simulates the TTL elapsing for an entry.
func (f *fakeCache) expire(id uuid.UUID) {
	delete(f.entries, id)
}

type fakeBlockLister struct {
	blocked []uuid.UUID
}

func (f *fakeBlockLister) ListBlockedIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return f.blocked, nil
}

func newTestService(repo *fakeRepo, cache Cache) *Service {
	return NewService(repo, cache, token.NewService("test-secret"), &fakeBlockLister{})
}

func seedUser(repo *fakeRepo, username string) *User {
	u := &User{
		ID:        uuid.New(),
		Name:      "Test",
		Username:  username,
		Birthdate: time.Date(1995, 4, 1, 0, 0, 0, 0, time.UTC),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	repo.users[u.ID] = u
	return u
}

func TestSignUpIssuesVerifiableToken(t *testing.T) {
	repo := newFakeRepo()
	tokenSvc := token.NewService("test-secret")
	svc := NewService(repo, nil, tokenSvc, &fakeBlockLister{})

	result, err := svc.SignUp(context.Background(), &SignUpRequest{
		Name:      "Jane",
		Surname:   "Doe",
		Username:  "janedoe",
		Birthdate: "1996-02-29",
	})
	if err != nil {
		t.Fatalf("sign up failed: %v", err)
	}

	subject, err := tokenSvc.Validate(result.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if subject != result.User.ID {
		t.Fatalf("token subject %s does not match user %s", subject, result.User.ID)
	}
	if _, ok := repo.users[result.User.ID]; !ok {
		t.Fatal("user was not persisted")
	}
}

func TestSignUpDuplicateUsername(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	seedUser(repo, "taken")

	_, err := svc.SignUp(context.Background(), &SignUpRequest{
		Name:      "Jane",
		Username:  "taken",
		Birthdate: "1990-01-01",
	})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestCurrentMissFillsCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := newTestService(repo, cache)
	u := seedUser(repo, "alice")

	got, err := svc.Current(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("expected alice, got %s", got.Username)
	}
	if _, ok := cache.entries[u.ID]; !ok {
		t.Fatal("cache was not filled on miss")
	}
}

func TestCurrentServesStaleSnapshotUntilExpiry(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := newTestService(repo, cache)
	u := seedUser(repo, "alice")

	if _, err := svc.Current(context.Background(), u.ID); err != nil {
		t.Fatalf("current failed: %v", err)
	}

	// Mutate the store out-of-band; the snapshot keeps winning until the
	// TTL elapses.
	repo.users[u.ID].Username = "alice_renamed"

	got, err := svc.Current(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if got.Username != "alice" {
		t.Fatalf("expected stale cached username, got %s", got.Username)
	}

	cache.expire(u.ID)

	got, err = svc.Current(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if got.Username != "alice_renamed" {
		t.Fatalf("expected store value after expiry, got %s", got.Username)
	}
}

func TestCurrentNotFoundIsNotCached(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := newTestService(repo, cache)

	_, err := svc.Current(context.Background(), uuid.New())
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if cache.sets != 0 {
		t.Fatal("absence must not be cached")
	}
}

func TestCurrentWithoutCache(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)
	u := seedUser(repo, "alice")

	got, err := svc.Current(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected %s, got %s", u.ID, got.ID)
	}
}

func TestUpdateOverwritesCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := newTestService(repo, cache)
	u := seedUser(repo, "alice")

	// Warm the cache first so the update has a snapshot to beat.
	if _, err := svc.Current(context.Background(), u.ID); err != nil {
		t.Fatalf("current failed: %v", err)
	}

	newName := "Alicia"
	if _, err := svc.Update(context.Background(), u.ID, &UpdateRequest{Name: &newName}); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.Current(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if got.Name != "Alicia" {
		t.Fatalf("update not visible through cache, got %s", got.Name)
	}
}

func TestUpdateMissingUser(t *testing.T) {
	svc := newTestService(newFakeRepo(), nil)

	name := "x"
	_, err := svc.Update(context.Background(), uuid.New(), &UpdateRequest{Name: &name})
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDeleteEvictsCache(t *testing.T) {
	repo := newFakeRepo()
	cache := newFakeCache()
	svc := newTestService(repo, cache)
	u := seedUser(repo, "alice")

	if _, err := svc.Current(context.Background(), u.ID); err != nil {
		t.Fatalf("current failed: %v", err)
	}

	if err := svc.Delete(context.Background(), u.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, ok := cache.entries[u.ID]; ok {
		t.Fatal("cache entry survived delete")
	}
	if _, ok := repo.users[u.ID]; ok {
		t.Fatal("store record survived delete")
	}
}

func TestSearchExcludesActorAndBlocked(t *testing.T) {
	repo := newFakeRepo()
	blocked := uuid.New()
	svc := NewService(repo, nil, token.NewService("test-secret"), &fakeBlockLister{blocked: []uuid.UUID{blocked}})

	actor := uuid.New()
	fragment := "doe"
	_, err := svc.Search(context.Background(), actor, &SearchOptions{Username: &fragment})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	filter := repo.lastFilter
	if filter == nil {
		t.Fatal("repository search was not called")
	}
	found := map[uuid.UUID]bool{}
	for _, id := range filter.ExcludeIDs {
		found[id] = true
	}
	if !found[actor] || !found[blocked] {
		t.Fatalf("exclusion set %v missing actor or blocked user", filter.ExcludeIDs)
	}
	if filter.UsernameFragment == nil || *filter.UsernameFragment != "doe" {
		t.Fatal("username fragment not forwarded")
	}
	if filter.BornAfter != nil || filter.BornBefore != nil {
		t.Fatal("unexpected age window without age bounds")
	}
}

func TestSearchInvertedAgeRangeDropsWindow(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, nil)

	minAge, maxAge := 40, 20
	_, err := svc.Search(context.Background(), uuid.New(), &SearchOptions{MinAge: &minAge, MaxAge: &maxAge})
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}

	if repo.lastFilter.BornAfter != nil || repo.lastFilter.BornBefore != nil {
		t.Fatal("inverted age range must drop the window")
	}
}
