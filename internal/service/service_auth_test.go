// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/go-study-sync/internal/config"
	"github.com/MKhiriev/go-study-sync/internal/logger"
	"github.com/MKhiriev/go-study-sync/internal/mock"
	"github.com/MKhiriev/go-study-sync/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestServerAuthSvc(
	t *testing.T,
	ctrl *gomock.Controller,
) (
	*authService,
	*mock.MockUserRepository,
	*mock.MockPasswordHasher,
) {
	t.Helper()
	mockUsers := mock.NewMockUserRepository(ctrl)
	mockHasher := mock.NewMockPasswordHasher(ctrl)

	cfg := config.App{
		TokenSignKey:  "test-sign-key",
		TokenIssuer:   "study-sync",
		TokenDuration: time.Hour,
	}

	svc := NewAuthService(mockUsers, mockHasher, cfg, logger.Nop()).(*authService)

	return svc, mockUsers, mockHasher
}

// ─────────────────────────────────────────────
// RegisterUser
// ─────────────────────────────────────────────

func TestAuthService_RegisterUser_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockHasher := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	mockHasher.EXPECT().Hash("secret").Return("$argon2id$v=19$m=65536,t=3,p=2$salt$hash", nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, u models.User) (models.User, error) {
			// the plaintext must be dropped before the repository sees the user
			assert.Empty(t, u.Password)
			assert.Equal(t, "$argon2id$v=19$m=65536,t=3,p=2$salt$hash", u.PasswordHash)
			u.UserID = 42
			return u, nil
		},
	)

	registered, err := svc.RegisterUser(ctx, models.User{Login: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), registered.UserID)
	assert.Equal(t, "alice", registered.Login)
}

func TestAuthService_RegisterUser_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	_, err := svc.RegisterUser(ctx, models.User{Login: "", Password: "secret"})
	require.ErrorIs(t, err, ErrInvalidDataProvided)

	_, err = svc.RegisterUser(ctx, models.User{Login: "alice", Password: ""})
	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_RegisterUser_HasherError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, mockHasher := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	mockHasher.EXPECT().Hash("secret").Return("", errStorage)

	_, err := svc.RegisterUser(ctx, models.User{Login: "alice", Password: "secret"})

	require.ErrorIs(t, err, errStorage)
}

func TestAuthService_RegisterUser_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockHasher := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	mockHasher.EXPECT().Hash(gomock.Any()).Return("encoded", nil)
	mockUsers.EXPECT().CreateUser(ctx, gomock.Any()).Return(models.User{}, errStorage)

	_, err := svc.RegisterUser(ctx, models.User{Login: "alice", Password: "secret"})

	require.ErrorIs(t, err, errStorage)
}

// ─────────────────────────────────────────────
// Login
// ─────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockHasher := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	stored := models.User{UserID: 42, Login: "alice", PasswordHash: "encoded-hash"}

	mockUsers.EXPECT().FindUserByLogin(ctx, gomock.Any()).Return(stored, nil)
	mockHasher.EXPECT().Verify("secret", "encoded-hash").Return(true, nil)

	found, err := svc.Login(ctx, models.User{Login: "alice", Password: "secret"})

	require.NoError(t, err)
	assert.Equal(t, int64(42), found.UserID)
	assert.Empty(t, found.Password)
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), models.User{Login: "alice"})

	require.ErrorIs(t, err, ErrInvalidDataProvided)
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, _ := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByLogin(ctx, gomock.Any()).Return(models.User{}, errStorage)

	_, err := svc.Login(ctx, models.User{Login: "ghost", Password: "secret"})

	require.ErrorIs(t, err, errStorage)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockHasher := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByLogin(ctx, gomock.Any()).
		Return(models.User{UserID: 42, Login: "alice", PasswordHash: "encoded-hash"}, nil)
	mockHasher.EXPECT().Verify("bad", "encoded-hash").Return(false, nil)

	_, err := svc.Login(ctx, models.User{Login: "alice", Password: "bad"})

	require.ErrorIs(t, err, ErrWrongPassword)
}

func TestAuthService_Login_VerifyError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mockUsers, mockHasher := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	mockUsers.EXPECT().FindUserByLogin(ctx, gomock.Any()).
		Return(models.User{UserID: 42, PasswordHash: "garbage"}, nil)
	mockHasher.EXPECT().Verify(gomock.Any(), "garbage").Return(false, errStorage)

	_, err := svc.Login(ctx, models.User{Login: "alice", Password: "secret"})

	require.ErrorIs(t, err, errStorage)
	assert.NotErrorIs(t, err, ErrWrongPassword)
}

// ─────────────────────────────────────────────
// CreateToken / ParseToken
// ─────────────────────────────────────────────

func TestAuthService_CreateToken_RoundTrip(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42, Login: "alice"})
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := svc.ParseToken(ctx, token.SignedString)
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestAuthService_CreateToken_MissingSignKey(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)
	svc.tokenSignKey = ""

	_, err := svc.CreateToken(context.Background(), models.User{UserID: 42})

	require.ErrorIs(t, err, ErrTokenCreationFailed)
}

func TestAuthService_ParseToken_Garbage(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)

	_, err := svc.ParseToken(context.Background(), "not-a-jwt")

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_WrongIssuer(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)

	svc.tokenIssuer = "someone-else"

	_, err = svc.ParseToken(ctx, token.SignedString)

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestServerAuthSvc(t, ctrl)
	svc.tokenDuration = -time.Minute
	ctx := context.Background()

	token, err := svc.CreateToken(ctx, models.User{UserID: 42})
	require.NoError(t, err)

	_, err = svc.ParseToken(ctx, token.SignedString)

	require.ErrorIs(t, err, ErrTokenIsExpiredOrInvalid)
}
