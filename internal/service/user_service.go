package service

import (
	"context"
	"errors"
	"time"

	"UserAPI/internal/auth"
	"UserAPI/internal/cache"
	dom "UserAPI/internal/domain"
	"UserAPI/internal/repo"
	"UserAPI/internal/utils"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrInvalidCredentials is deliberately opaque: unknown email and wrong
	// password both map here so the response never reveals which it was.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordRequired   = errors.New("password must not be empty")
	ErrNotFound           = errors.New("not found")
)

// UserService handles registration, login and user reads.
type UserService struct {
	repo   repo.UserRepo
	cache  *cache.UserCache
	hasher *auth.Hasher
	codec  *auth.Codec
	sf     singleflight.Group
}

// NewUserService creates a UserService. If c is nil, caching is disabled.
func NewUserService(r repo.UserRepo, c *cache.UserCache, h *auth.Hasher, codec *auth.Codec) *UserService {
	return &UserService{repo: r, cache: c, hasher: h, codec: codec}
}

// Register hashes the password and creates the user. Beyond a non-empty
// password there is no semantic validation; field presence is enforced at
// the binding layer.
func (s *UserService) Register(ctx context.Context, email, username, password string) (dom.User, error) {
	if password == "" {
		return dom.User{}, ErrPasswordRequired
	}
	hash, err := s.hasher.HashPassword(password)
	if err != nil {
		return dom.User{}, err
	}
	u, err := s.repo.Create(ctx, email, username, hash)
	if err != nil {
		if utils.IsPGUniqueViolation(err) {
			return dom.User{}, ErrEmailTaken
		}
		return dom.User{}, err
	}
	return u, nil
}

// Login checks the credentials for email and returns a signed access token.
// Unknown email and password mismatch are indistinguishable to the caller.
// The last-login timestamp is updated after the token is issued; a failure
// there is logged but does not invalidate the token.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	ok, err := s.hasher.CheckPassword(password, u.PasswordHash)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", ErrInvalidCredentials
	}
	token, err := s.codec.Issue(u.ID)
	if err != nil {
		return "", err
	}
	log.Info().Str("email", u.Email).Msg("user logged in")

	if err := s.repo.TouchLastLogin(ctx, u.ID, time.Now().UTC()); err != nil {
		log.Error().Err(err).Str("user_id", u.ID).Msg("update last_login_at failed")
	} else {
		s.invalidateCache(ctx, u.ID)
	}
	return token, nil
}

// GetByID returns the user by ID, through the cache when enabled.
func (s *UserService) GetByID(ctx context.Context, id string) (dom.User, error) {
	if s.cache != nil {
		v, err, _ := s.sf.Do("user:"+id, func() (interface{}, error) {
			if u, err := s.cache.Get(ctx, id); err == nil && u != nil {
				return *u, nil
			}
			u, err := s.repo.GetByID(ctx, id)
			if err != nil {
				return nil, err
			}
			_ = s.cache.Set(ctx, u)
			return u, nil
		})
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return dom.User{}, ErrNotFound
			}
			return dom.User{}, err
		}
		return v.(dom.User), nil
	}
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return dom.User{}, ErrNotFound
		}
		return dom.User{}, err
	}
	return u, nil
}

func (s *UserService) invalidateCache(ctx context.Context, id string) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx, id)
	}
}
