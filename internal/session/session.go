package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"atelier/internal/models"
	"atelier/internal/storage"

	"github.com/rs/zerolog"
)

const (
	tokenKeyPrefix = "auth.token:"
	userKeyPrefix  = "auth.user:"
)

// AccessLevel is the visitor's standing, collapsing the role and
// approval flags into one tagged state so every reachable combination
// has a name.
type AccessLevel int

const (
	Anonymous AccessLevel = iota
	PendingApproval
	Approved
	Admin
)

func (l AccessLevel) String() string {
	switch l {
	case PendingApproval:
		return "pending_approval"
	case Approved:
		return "approved"
	case Admin:
		return "admin"
	default:
		return "anonymous"
	}
}

// Session mirrors the upstream trust decision for one visitor: an API
// token plus the user record it belongs to. Token and user are set
// together or not at all.
type Session struct {
	mu       sync.Mutex
	identity *models.Identity
	store    storage.Store
	tokenKey string
	userKey  string
	logger   zerolog.Logger
}

// Open restores a visitor's session from storage. If only one of the
// token/user keys survived (a partial write), both are evicted and the
// session comes up unauthenticated.
func Open(ctx context.Context, store storage.Store, sessionID string, logger zerolog.Logger) *Session {
	s := &Session{
		store:    store,
		tokenKey: tokenKeyPrefix + sessionID,
		userKey:  userKeyPrefix + sessionID,
		logger:   logger,
	}

	tokenData, tokenErr := store.Get(ctx, s.tokenKey)
	userData, userErr := store.Get(ctx, s.userKey)

	if tokenErr != nil || userErr != nil {
		if tokenErr != nil && !errors.Is(tokenErr, storage.ErrNotFound) {
			logger.Warn().Err(tokenErr).Msg("Session token read failed")
		}
		if userErr != nil && !errors.Is(userErr, storage.ErrNotFound) {
			logger.Warn().Err(userErr).Msg("Session user read failed")
		}
		// Half a session means a partial write happened at some point;
		// evict the orphan so it cannot resurface. A transient read
		// error is not treated as partial.
		partial := (tokenErr == nil && errors.Is(userErr, storage.ErrNotFound)) ||
			(userErr == nil && errors.Is(tokenErr, storage.ErrNotFound))
		if partial {
			s.evict(ctx)
		}
		return s
	}

	var user models.User
	if err := json.Unmarshal(userData, &user); err != nil {
		logger.Warn().Err(err).Msg("Corrupt session user record, evicting")
		s.evict(ctx)
		return s
	}

	s.identity = &models.Identity{Token: string(tokenData), User: &user}
	return s
}

func (s *Session) evict(ctx context.Context) {
	if err := s.store.Delete(ctx, s.tokenKey, s.userKey); err != nil {
		s.logger.Warn().Err(err).Msg("Session eviction failed")
	}
}

// Login installs the token/user pair and persists both keys. If the
// second write fails the first is rolled back so storage never holds a
// partial session.
func (s *Session) Login(ctx context.Context, token string, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token == "" || user == nil {
		return errors.New("token and user are required")
	}

	if err := s.store.Set(ctx, s.tokenKey, []byte(token)); err != nil {
		return err
	}
	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.userKey, userData); err != nil {
		if delErr := s.store.Delete(ctx, s.tokenKey); delErr != nil {
			s.logger.Error().Err(delErr).Msg("Login rollback failed")
		}
		return err
	}

	s.identity = &models.Identity{Token: token, User: user}
	s.logger.Info().Int("user_id", user.ID).Str("role", user.Role).Msg("Session established")
	return nil
}

// Logout clears the session and removes both persisted keys. Safe to
// call on an already-anonymous session.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.identity = nil
	return s.store.Delete(ctx, s.tokenKey, s.userKey)
}

// SetUser replaces the stored user record after a profile update.
// The token is untouched.
func (s *Session) SetUser(ctx context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return errors.New("no active session")
	}
	if user == nil {
		return errors.New("user is required")
	}

	userData, err := json.Marshal(user)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.userKey, userData); err != nil {
		return err
	}

	s.identity.User = user
	return nil
}

func (s *Session) Authenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity != nil
}

// Token returns the upstream API token, empty when anonymous.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return ""
	}
	return s.identity.Token
}

// User returns a copy of the session user, nil when anonymous.
func (s *Session) User() *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.identity == nil {
		return nil
	}
	user := *s.identity.User
	return &user
}

// Level maps the session onto the access ladder. Admins sit at the top
// regardless of the approval flag.
func (s *Session) Level() AccessLevel {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.identity == nil {
		return Anonymous
	}
	switch {
	case s.identity.User.Role == models.RoleAdmin:
		return Admin
	case s.identity.User.IsApproved:
		return Approved
	default:
		return PendingApproval
	}
}

// CanAccessCollections encodes the approval gate: registration alone is
// not enough, an admin must have approved the account first.
func (s *Session) CanAccessCollections() bool {
	level := s.Level()
	return level == Admin || level == Approved
}
