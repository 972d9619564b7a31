package auth

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/culturalite/backend/internal/domain"
)

/*
Fakes for ports
*/

type userRecord struct {
	user    domain.User
	profile domain.Profile
}

type fakeUserRepo struct {
	mu sync.Mutex

	byID    map[string]userRecord
	byEmail map[string]userRecord

	// injected errors (if set, method returns error)
	getByEmailErr error
	emailTakenErr error
	createErr     error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byID:    map[string]userRecord{},
		byEmail: map[string]userRecord{},
	}
}

func (f *fakeUserRepo) put(u domain.User, p domain.Profile) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec := userRecord{user: u, profile: p}
	f.byID[u.ID] = rec
	f.byEmail[u.Email] = rec
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getByEmailErr != nil {
		return domain.User{}, domain.Profile{}, f.getByEmailErr
	}
	rec, ok := f.byEmail[email]
	if !ok {
		return domain.User{}, domain.Profile{}, domain.ErrUserNotFound()
	}
	return rec.user, rec.profile, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (domain.User, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.byID[id]
	if !ok {
		return domain.User{}, domain.Profile{}, domain.ErrUserNotFound()
	}
	return rec.user, rec.profile, nil
}

func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailTakenErr != nil {
		return false, f.emailTakenErr
	}
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeUserRepo) CreateWithProfile(ctx context.Context, u domain.User, p domain.Profile) (domain.User, domain.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return domain.User{}, domain.Profile{}, f.createErr
	}
	if _, ok := f.byEmail[u.Email]; ok {
		return domain.User{}, domain.Profile{}, domain.ErrEmailAlreadyExists()
	}
	u.CreatedAt = time.Now()
	p.CreatedAt = u.CreatedAt
	p.UpdatedAt = u.CreatedAt
	rec := userRecord{user: u, profile: p}
	f.byID[u.ID] = rec
	f.byEmail[u.Email] = rec
	return u, p, nil
}

type fakeHasher struct {
	hashFn func(pw string) (string, error)
}

func (f *fakeHasher) Hash(pw string) (string, error) {
	if f.hashFn != nil {
		return f.hashFn(pw)
	}
	return "hash:" + pw, nil
}

func (f *fakeHasher) Compare(hash, pw string) error {
	if hash == "hash:"+pw {
		return nil
	}
	return fmt.Errorf("mismatch")
}

// fakeSigner issues deterministic tokens and verifies them by lookup.
type fakeSigner struct {
	mu     sync.Mutex
	n      int
	tokens map[string]TokenClaims

	signAccessErr  error
	signRefreshErr error
}

func newFakeSigner() *fakeSigner {
	return &fakeSigner{tokens: map[string]TokenClaims{}}
}

func (f *fakeSigner) SignAccessToken(userID, role, name string, ttl time.Duration) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signAccessErr != nil {
		return "", f.signAccessErr
	}
	f.n++
	tok := fmt.Sprintf("access-%d", f.n)
	f.tokens[tok] = TokenClaims{UserID: userID, Role: role, Name: name, Exp: time.Now().Add(ttl)}
	return tok, nil
}

func (f *fakeSigner) SignRefreshToken(userID, role, name string, ttl time.Duration) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signRefreshErr != nil {
		return "", "", f.signRefreshErr
	}
	f.n++
	tok := fmt.Sprintf("refresh-%d", f.n)
	jti := fmt.Sprintf("jti-%d", f.n)
	f.tokens[tok] = TokenClaims{UserID: userID, Role: role, Name: name, JTI: jti, Exp: time.Now().Add(ttl)}
	return tok, jti, nil
}

func (f *fakeSigner) VerifyAccessToken(token string) (TokenClaims, error) {
	return f.verify(token, "access-")
}

func (f *fakeSigner) VerifyRefreshToken(token string) (TokenClaims, error) {
	return f.verify(token, "refresh-")
}

func (f *fakeSigner) verify(token, prefix string) (TokenClaims, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.tokens[token]
	if !ok || !strings.HasPrefix(token, prefix) || time.Now().After(c.Exp) {
		return TokenClaims{}, domain.ErrTokenInvalid()
	}
	return c, nil
}

type fakeBlacklist struct {
	mu      sync.Mutex
	entries map[string]struct{}

	addErr error
}

func newFakeBlacklist() *fakeBlacklist {
	return &fakeBlacklist{entries: map[string]struct{}{}}
}

func (f *fakeBlacklist) Add(ctx context.Context, jti string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return f.addErr
	}
	f.entries[jti] = struct{}{}
	return nil
}

func (f *fakeBlacklist) AddIfAbsent(ctx context.Context, jti string, ttl time.Duration) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.addErr != nil {
		return false, f.addErr
	}
	if _, ok := f.entries[jti]; ok {
		return false, nil
	}
	f.entries[jti] = struct{}{}
	return true, nil
}

func (f *fakeBlacklist) Contains(ctx context.Context, jti string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[jti]
	return ok, nil
}

/*
Helpers
*/

func newSvcForTest(t *testing.T, cfg Config) (*Service, *fakeUserRepo, *fakeHasher, *fakeSigner, *fakeBlacklist) {
	t.Helper()
	users := newFakeUserRepo()
	hasher := &fakeHasher{}
	signer := newFakeSigner()
	bl := newFakeBlacklist()
	return NewService(users, hasher, signer, bl, cfg), users, hasher, signer, bl
}

func requireDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error with code %q, got nil", code)
	}
	if !domain.Is(err, code) {
		t.Fatalf("expected code %q, got %v", code, err)
	}
}

func seedVendor(t *testing.T, users *fakeUserRepo) (domain.User, domain.Profile) {
	t.Helper()
	u := domain.User{
		ID:           "user-1",
		Email:        "vendor@example.com",
		PasswordHash: "hash:CorrectHorse9",
		FirstName:    "Asha",
		LastName:     "Iyer",
	}
	p := domain.Profile{
		ID:               "profile-1",
		UserID:           u.ID,
		Role:             string(domain.RoleVendor),
		OrganizationName: "Chennai Arts Collective",
	}
	users.put(u, p)
	return u, p
}
