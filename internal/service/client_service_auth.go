package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-study-sync/internal/adapter"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/models"
)

type clientAuthService struct {
	localStore *store.ClientStorages
	adapter    adapter.ServerAdapter
	logger     *logger.Logger

	mu      sync.RWMutex
	current *store.Session
}

func NewClientAuthService(localStore *store.ClientStorages, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{localStore: localStore, adapter: serverAdapter, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, user models.User) (models.User, error) {
	registered, err := a.adapter.Register(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrRegisterOnServer, err)
	}

	a.storeSession(registered)

	return registered, nil
}

func (a *clientAuthService) Login(ctx context.Context, user models.User) (models.User, error) {
	found, err := a.adapter.Login(ctx, user)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrLoginOnServer, err)
	}

	a.storeSession(found)

	return found, nil
}

func (a *clientAuthService) RestoreSession(ctx context.Context) (store.Session, error) {
	session, err := a.localStore.SessionStore.LoadSession()
	if err != nil {
		return store.Session{}, fmt.Errorf("restore session: %w", err)
	}

	a.adapter.SetToken(session.Token)

	a.mu.Lock()
	a.current = &session
	a.mu.Unlock()

	a.logger.Info().
		Str("func", "clientAuthService.RestoreSession").
		Str("login", session.Login).
		Msg("session restored")

	return session, nil
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.mu.Lock()
	a.current = nil
	a.mu.Unlock()

	a.adapter.SetToken("")

	if err := a.localStore.SessionStore.ClearSession(); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}

	return nil
}

func (a *clientAuthService) CurrentUserID() (int64, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()

	if a.current == nil {
		return 0, ErrNotAuthenticated
	}

	return a.current.UserID, nil
}

// storeSession records the signed-in session in memory and writes it through
// to the session file. The adapter stored the bearer token during
// Register/Login, so it is read back from there. A failed file write is
// logged and otherwise ignored: the session stays usable for this run and
// only the restart convenience is lost.
func (a *clientAuthService) storeSession(user models.User) {
	session := store.Session{
		UserID: user.UserID,
		Login:  user.Login,
		Token:  a.adapter.Token(),
	}

	a.mu.Lock()
	a.current = &session
	a.mu.Unlock()

	if err := a.localStore.SessionStore.SaveSession(session); err != nil {
		a.logger.Warn().
			Str("func", "clientAuthService.storeSession").
			Err(err).
			Msg("session not persisted, login will not survive a restart")
	}
}
