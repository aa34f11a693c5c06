package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/api"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/client/storage"
	"github.com/n-namstack/e-shopping-2024-sub003/internal/logging"
)

// ErrTokenMissing is returned when an auth response normalizes to a session
// without a bearer token.
var ErrTokenMissing = errors.New("token not found in response")

// Store owns the session lifecycle: it is created by login/register, mutated
// by profile edits and approval polls, destroyed by logout or a corrupt
// storage read. The store is an explicit dependency of the screens, not
// ambient state; screens subscribe via OnChange to re-render.
//
// Persisting the token under storage.KeyToken is what arms the
// Authorization header: the API client re-reads that key on every request.
type Store struct {
	api     api.Client
	storage storage.Store
	log     logging.Logger

	mu      sync.Mutex
	current *Session
	subs    []func(*Session)
}

func NewStore(client api.Client, st storage.Store, log logging.Logger) *Store {
	return &Store{api: client, storage: st, log: log}
}

// Current returns a copy of the active session, or nil when logged out.
func (s *Store) Current() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return nil
	}
	copied := *s.current
	return &copied
}

// OnChange registers a subscriber invoked with the new session (nil on
// logout) after every state change.
func (s *Store) OnChange(fn func(*Session)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

func (s *Store) setCurrent(sess *Session) {
	s.mu.Lock()
	s.current = sess
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, fn := range subs {
		fn(sess)
	}
}

// adopt makes sess the active session: persist the record and its token,
// update in-memory state, notify subscribers.
func (s *Store) adopt(ctx context.Context, sess Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to serialize session: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyUser, string(data)); err != nil {
		return fmt.Errorf("failed to persist session: %w", err)
	}
	if err := s.storage.Set(ctx, storage.KeyToken, sess.Token); err != nil {
		return fmt.Errorf("failed to persist token: %w", err)
	}
	s.setCurrent(&sess)
	return nil
}

// Login authenticates against the backend and adopts the normalized
// response. A response without a token is rejected with ErrTokenMissing.
func (s *Store) Login(ctx context.Context, email, password string) (*Session, error) {
	raw, err := s.api.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	sess := Normalize(raw)
	if !sess.Authenticated() {
		return nil, ErrTokenMissing
	}
	if err := s.adopt(ctx, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Register creates an account and adopts the resulting session, with the
// same token requirement as Login.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) (*Session, error) {
	raw, err := s.api.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	sess := Normalize(raw)
	if !sess.Authenticated() {
		return nil, ErrTokenMissing
	}
	if err := s.adopt(ctx, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Logout notifies the server (best effort; failure is logged and swallowed)
// and clears the persisted record, the token and the in-memory session.
// Both storage keys go in one transaction, so the header and the record are
// never cleared apart from each other. In-memory state is cleared even if
// the storage delete fails; that error is returned so the screen can
// surface it.
func (s *Store) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn(ctx, "server logout failed, clearing local session anyway", "error", err)
	}

	delErr := s.storage.Delete(ctx, storage.KeyUser, storage.KeyToken)
	s.setCurrent(nil)

	if delErr != nil {
		return fmt.Errorf("failed to clear persisted session: %w", delErr)
	}
	return nil
}

// CheckApprovalStatus polls the seller-approval flag for the current
// session. Returns (nil, nil) when nobody is logged in or the session has
// no id. On success the flag is merged into the stored session.
func (s *Store) CheckApprovalStatus(ctx context.Context) (*bool, error) {
	cur := s.Current()
	if cur == nil || cur.ID == "" {
		return nil, nil
	}

	approved, err := s.api.ApprovalStatus(ctx, cur.ID)
	if err != nil {
		return nil, err
	}

	updated := *cur
	updated.Approved = approved
	if err := s.adopt(ctx, updated); err != nil {
		return nil, err
	}
	return &approved, nil
}

// UpdateProfile sends a profile edit and merges the response over the
// current session, keeping the existing token when the server omits one.
func (s *Store) UpdateProfile(ctx context.Context, req api.ProfileUpdate) (*Session, error) {
	cur := s.Current()
	if cur == nil {
		return nil, fmt.Errorf("not logged in")
	}

	raw, err := s.api.UpdateProfile(ctx, req)
	if err != nil {
		return nil, err
	}

	base := cur.asMap()
	for k, v := range raw {
		base[k] = v
	}
	sess := Normalize(base)
	if sess.Token == "" {
		sess.Token = cur.Token
	}
	if err := s.adopt(ctx, sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Restore loads the persisted session at startup. Any read or parse failure
// leaves the store unauthenticated (a corrupt record is deleted best
// effort). A restored session without a token is adopted so the screens can
// show who was logged in, but Authenticated stays false and a warning is
// logged.
func (s *Store) Restore(ctx context.Context) *Session {
	data, err := s.storage.Get(ctx, storage.KeyUser)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.log.Warn(ctx, "failed to read persisted session, starting unauthenticated", "error", err)
		}
		return nil
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(data), &raw); err != nil {
		s.log.Warn(ctx, "persisted session is corrupt, starting unauthenticated", "error", err)
		_ = s.storage.Delete(ctx, storage.KeyUser, storage.KeyToken)
		return nil
	}

	sess := Normalize(raw)
	if sess.Token == "" {
		s.log.Warn(ctx, "restored session has no token, API calls will be unauthenticated", "user", sess.Email)
	} else if err := s.storage.Set(ctx, storage.KeyToken, sess.Token); err != nil {
		s.log.Warn(ctx, "failed to re-arm persisted token", "error", err)
	}

	s.setCurrent(&sess)
	return &sess
}
