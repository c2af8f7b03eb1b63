package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userFixture struct {
	store   *fakeStore
	service usecase.UserUsecase
}

func createTestUserService(t *testing.T) *userFixture {
	t.Helper()

	store := newFakeStore()
	service := NewUserService(UserServiceParams{
		TxManager:    store,
		UserRepo:     fakeUserRepo{store},
		Hasher:       fakeHasher{},
		TokenService: fakeTokenService{},
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &userFixture{store: store, service: service}
}

func TestUserService_Register_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	out, err := fx.service.Register(ctx, &usecase.RegisterInput{
		FullName: "Maria Souza",
		Email:    "Maria@Example.com",
		Phone:    "+55 41 99999-0000",
		Password: "s3nh4-forte",
		Building: "Bloco B, Apto 42",
	})
	require.NoError(t, err)
	require.NotNil(t, out.User)
	assert.NotEmpty(t, out.AccessToken)

	// Email is normalized to lower case before storage.
	assert.Equal(t, "maria@example.com", out.User.Email)
	assert.Equal(t, "hashed:s3nh4-forte", fx.store.users[out.User.ID].PasswordHash)

	// Registration leaves exactly one unread welcome notification.
	assert.Equal(t, 1, out.User.NotificationsCount)
	require.Len(t, fx.store.notifications, 1)
	for _, notification := range fx.store.notifications {
		assert.Equal(t, "Bem-vindo ao Condor Center!", notification.Title)
		assert.Equal(t, entity.NotificationTypeWelcome, notification.Type)
		assert.False(t, notification.Read)
	}
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	fx.store.putUser(&entity.User{Email: "maria@example.com"})

	_, err := fx.service.Register(ctx, &usecase.RegisterInput{
		FullName: "Outra Maria",
		Email:    "MARIA@example.com",
		Password: "senha",
	})
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
	assert.Len(t, fx.store.users, 1)
	assert.Empty(t, fx.store.notifications)
}

func TestUserService_Login_Success(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	fx.store.putUser(&entity.User{Email: "maria@example.com", PasswordHash: "hashed:s3nh4-forte"})

	out, err := fx.service.Login(ctx, &usecase.LoginInput{Email: " Maria@Example.com ", Password: "s3nh4-forte"})
	require.NoError(t, err)
	assert.Equal(t, "maria@example.com", out.User.Email)
	assert.NotEmpty(t, out.AccessToken)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	fx.store.putUser(&entity.User{Email: "maria@example.com", PasswordHash: "hashed:s3nh4-forte"})

	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "maria@example.com", Password: "errada"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownEmail(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()

	// Unknown accounts fail the same way as wrong passwords.
	_, err := fx.service.Login(ctx, &usecase.LoginInput{Email: "ghost@example.com", Password: "senha"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_GetProfile(t *testing.T) {
	fx := createTestUserService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "maria@example.com", CashbackBalance: 12.34})

	profile, err := fx.service.GetProfile(ctx, user.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12.34, profile.CashbackBalance, 1e-9)

	_, err = fx.service.GetProfile(ctx, 9999)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_Register_NilInput(t *testing.T) {
	fx := createTestUserService(t)

	output, err := fx.service.Register(context.Background(), nil)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, output)
	assert.Empty(t, fx.store.users)
}

func TestUserService_Login_NilInput(t *testing.T) {
	fx := createTestUserService(t)

	output, err := fx.service.Login(context.Background(), nil)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, output)
}
