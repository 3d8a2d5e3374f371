// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/mock"
	"github.com/MKhiriev/go-study-sync/internal/store"
	"github.com/MKhiriev/go-study-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// newTestAuthSvc — хелпер для создания clientAuthService с моками
func newTestAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*clientAuthService,
	*mock.MockServerAdapter,
	*mock.MockSessionStore,
) {
	t.Helper()
	mockAdapter := mock.NewMockServerAdapter(ctrl)
	mockSessions := mock.NewMockSessionStore(ctrl)

	storages := &store.ClientStorages{
		SessionStore: mockSessions,
	}

	svc := NewClientAuthService(storages, mockAdapter, logger.Nop()).(*clientAuthService)

	return svc, mockAdapter, mockSessions
}

// ── Register ─────────────────────────────────────────────────────────────────

func TestClientAuthService_Register_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{Login: "alice", Password: "secret"}
	registered := models.User{UserID: 42, Login: "alice"}

	gomock.InOrder(
		mockAdapter.EXPECT().Register(ctx, user).Return(registered, nil),
		// Токен положил в адаптер сам Register — сервис читает его обратно
		mockAdapter.EXPECT().Token().Return("jwt-token"),
		mockSessions.EXPECT().SaveSession(gomock.Any()).DoAndReturn(
			func(session store.Session) error {
				assert.Equal(t, int64(42), session.UserID)
				assert.Equal(t, "alice", session.Login)
				assert.Equal(t, "jwt-token", session.Token)
				return nil
			},
		),
	)

	got, err := svc.Register(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, registered, got)

	userID, err := svc.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestClientAuthService_Register_AdapterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).
		Return(models.User{}, errors.New("login already taken"))

	_, err := svc.Register(ctx, models.User{Login: "alice", Password: "secret"})

	require.ErrorIs(t, err, ErrRegisterOnServer)

	_, err = svc.CurrentUserID()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientAuthService_Register_SessionWriteFailureNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Register(ctx, gomock.Any()).Return(models.User{UserID: 42, Login: "alice"}, nil)
	mockAdapter.EXPECT().Token().Return("jwt-token")
	mockSessions.EXPECT().SaveSession(gomock.Any()).Return(errors.New("disk full"))

	// Файл сессии не записался — регистрация всё равно успешна,
	// теряется только восстановление после перезапуска.
	_, err := svc.Register(ctx, models.User{Login: "alice", Password: "secret"})
	require.NoError(t, err)

	userID, err := svc.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestClientAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	user := models.User{Login: "alice", Password: "secret"}
	found := models.User{
		UserID:      42,
		Login:       "alice",
		Preferences: models.Preferences{Theme: "dark", DailyGoalMinutes: 60},
	}

	gomock.InOrder(
		mockAdapter.EXPECT().Login(ctx, user).Return(found, nil),
		mockAdapter.EXPECT().Token().Return("jwt-token"),
		mockSessions.EXPECT().SaveSession(gomock.Any()).DoAndReturn(
			func(session store.Session) error {
				assert.Equal(t, int64(42), session.UserID)
				assert.Equal(t, "jwt-token", session.Token)
				return nil
			},
		),
	)

	got, err := svc.Login(ctx, user)

	require.NoError(t, err)
	assert.Equal(t, found, got)

	userID, err := svc.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
}

func TestClientAuthService_Login_AdapterError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, _ := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).
		Return(models.User{}, errors.New("wrong credentials"))

	_, err := svc.Login(ctx, models.User{Login: "alice", Password: "bad"})

	require.ErrorIs(t, err, ErrLoginOnServer)
}

func TestClientAuthService_Login_SessionWriteFailureNotFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockAdapter.EXPECT().Login(ctx, gomock.Any()).Return(models.User{UserID: 7, Login: "bob"}, nil)
	mockAdapter.EXPECT().Token().Return("jwt-token")
	mockSessions.EXPECT().SaveSession(gomock.Any()).Return(errors.New("read-only fs"))

	_, err := svc.Login(ctx, models.User{Login: "bob", Password: "secret"})
	require.NoError(t, err)

	userID, err := svc.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

// ── RestoreSession ───────────────────────────────────────────────────────────

func TestClientAuthService_RestoreSession_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	saved := store.Session{UserID: 7, Login: "alice", Token: "saved-token"}

	gomock.InOrder(
		mockSessions.EXPECT().LoadSession().Return(saved, nil),
		// Адаптер перевооружается токеном прошлого запуска
		mockAdapter.EXPECT().SetToken("saved-token"),
	)

	got, err := svc.RestoreSession(ctx)

	require.NoError(t, err)
	assert.Equal(t, saved, got)

	userID, err := svc.CurrentUserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestClientAuthService_RestoreSession_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockSessions := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	mockSessions.EXPECT().LoadSession().Return(store.Session{}, store.ErrLocalSessionNotFound)

	_, err := svc.RestoreSession(ctx)

	require.ErrorIs(t, err, store.ErrLocalSessionNotFound)

	_, err = svc.CurrentUserID()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestClientAuthService_Logout_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	svc.current = &store.Session{UserID: 7, Login: "alice", Token: "tok"}
	ctx := context.Background()

	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearSession().Return(nil)

	err := svc.Logout(ctx)

	require.NoError(t, err)

	_, err = svc.CurrentUserID()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestClientAuthService_Logout_ClearSessionError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockAdapter, mockSessions := newTestAuthSvc(t, ctrl)
	svc.current = &store.Session{UserID: 7}
	ctx := context.Background()

	mockAdapter.EXPECT().SetToken("")
	mockSessions.EXPECT().ClearSession().Return(errors.New("file locked"))

	err := svc.Logout(ctx)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear session")

	// Сессия в памяти забыта до записи на диск
	_, err = svc.CurrentUserID()
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

// ── CurrentUserID ────────────────────────────────────────────────────────────

func TestClientAuthService_CurrentUserID_NotAuthenticated(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.CurrentUserID()

	require.ErrorIs(t, err, ErrNotAuthenticated)
}
