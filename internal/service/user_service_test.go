package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"UserAPI/internal/auth"
	dom "UserAPI/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// fakeRepo is an in-memory UserRepo with the same error semantics as the
// Postgres implementation: pgx.ErrNoRows on miss, pg error 23505 on a
// duplicate email.
type fakeRepo struct {
	mu        sync.Mutex
	users     map[string]dom.User
	failTouch bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: map[string]dom.User{}}
}

func (r *fakeRepo) Create(_ context.Context, email, username, passwordHash string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return dom.User{}, &pgconn.PgError{Code: "23505"}
		}
	}
	u := dom.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}
	r.users[u.ID] = u
	return u, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (dom.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return dom.User{}, pgx.ErrNoRows
}

func (r *fakeRepo) TouchLastLogin(_ context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failTouch {
		return errors.New("connection reset")
	}
	u, ok := r.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.LastLoginAt = &at
	r.users[id] = u
	return nil
}

func newTestService(r *fakeRepo) (*UserService, *auth.Codec) {
	codec := auth.NewCodec("test-secret", "auth", "acme", time.Hour)
	return NewUserService(r, nil, auth.NewHasher(bcrypt.MinCost), codec), codec
}

func TestRegister_HashesPassword(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	u, err := svc.Register(context.Background(), "a@b.com", "a", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, u.ID)
	require.NotEmpty(t, u.PasswordHash)
	require.NotEqual(t, "secret", u.PasswordHash)
	require.Nil(t, u.LastLoginAt)
}

func TestRegister_EmptyPassword(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(newFakeRepo())

	_, err := svc.Register(context.Background(), "a@b.com", "a", "")
	require.ErrorIs(t, err, ErrPasswordRequired)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "a", "secret")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "a@b.com", "b", "other")
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_UnknownEmailAndWrongPasswordAreIndistinguishable(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	_, err := svc.Register(context.Background(), "a@b.com", "a", "secret")
	require.NoError(t, err)

	_, errUnknown := svc.Login(context.Background(), "nobody@b.com", "secret")
	_, errWrongPw := svc.Login(context.Background(), "a@b.com", "wrong")

	require.ErrorIs(t, errUnknown, ErrInvalidCredentials)
	require.ErrorIs(t, errWrongPw, ErrInvalidCredentials)
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, codec := newTestService(repo)

	u, err := svc.Register(context.Background(), "a@b.com", "a", "secret")
	require.NoError(t, err)

	token, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.LastLoginAt)
}

func TestLogin_TouchFailureKeepsToken(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, codec := newTestService(repo)

	u, err := svc.Register(context.Background(), "a@b.com", "a", "secret")
	require.NoError(t, err)

	repo.failTouch = true
	token, err := svc.Login(context.Background(), "a@b.com", "secret")
	require.NoError(t, err, "token issuance is not transactional with the last-login update")

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	require.Equal(t, u.ID, claims.UserID)

	stored, err := repo.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Nil(t, stored.LastLoginAt)
}

func TestGetByID_NotFound(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService(newFakeRepo())

	_, err := svc.GetByID(context.Background(), "no-such-id")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestGetByID_Found(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc, _ := newTestService(repo)

	u, err := svc.Register(context.Background(), "a@b.com", "a", "secret")
	require.NoError(t, err)

	got, err := svc.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	require.Equal(t, u.ID, got.ID)
	require.Equal(t, "a@b.com", got.Email)
}
