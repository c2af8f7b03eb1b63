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

type paymentFixture struct {
	store   *fakeStore
	service usecase.PaymentMethodUsecase
}

func createTestPaymentService(t *testing.T) *paymentFixture {
	t.Helper()

	store := newFakeStore()
	service := NewPaymentService(PaymentServiceParams{
		TxManager:  store,
		MethodRepo: fakeMethodRepo{store},
		Locks:      NewUserLocks(),
		Logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &paymentFixture{store: store, service: service}
}

// preferredCount counts the user's preferred methods; the invariant demands
// exactly one whenever the user has any method at all.
func (fx *paymentFixture) preferredCount(userID int64) int {
	count := 0
	for _, method := range fx.store.methods {
		if method.UserID == userID && method.Preferred {
			count++
		}
	}

	return count
}

func TestPaymentService_AddMethod_FirstBecomesPreferred(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})

	method, err := fx.service.AddMethod(ctx, user.ID, &usecase.AddPaymentMethodInput{
		Kind:           entity.PaymentMethodCard,
		CardNumber:     "4242 4242 4242 4242",
		CardholderName: "Maria Souza",
		ExpiryDate:     "12/27",
		Brand:          "Visa",
	})
	require.NoError(t, err)
	assert.True(t, method.Preferred)
	assert.Equal(t, "•••• 4242", method.CardNumber)
	assert.Equal(t, 1, fx.preferredCount(user.ID))
}

func TestPaymentService_AddMethod_SecondStaysUnpreferred(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	first := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard, Preferred: true})

	method, err := fx.service.AddMethod(ctx, user.ID, &usecase.AddPaymentMethodInput{Kind: entity.PaymentMethodPix})
	require.NoError(t, err)
	assert.False(t, method.Preferred)
	assert.True(t, fx.store.methods[first.ID].Preferred)
	assert.Equal(t, 1, fx.preferredCount(user.ID))
}

func TestPaymentService_AddMethod_ExplicitPreferredDisplacesCurrent(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	first := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard, Preferred: true})

	method, err := fx.service.AddMethod(ctx, user.ID, &usecase.AddPaymentMethodInput{Kind: entity.PaymentMethodPix, Preferred: true})
	require.NoError(t, err)
	assert.True(t, method.Preferred)
	assert.False(t, fx.store.methods[first.ID].Preferred)
	assert.Equal(t, 1, fx.preferredCount(user.ID))
}

func TestPaymentService_AddMethod_UnknownKind(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})

	_, err := fx.service.AddMethod(ctx, user.ID, &usecase.AddPaymentMethodInput{Kind: "boleto"})
	require.Error(t, err)
	assert.Empty(t, fx.store.methods)
}

func TestPaymentService_SetPreferred_FlipsExactlyOne(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	card := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard, Preferred: true})
	pix := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodPix})

	require.NoError(t, fx.service.SetPreferred(ctx, user.ID, pix.ID))
	assert.True(t, fx.store.methods[pix.ID].Preferred)
	assert.False(t, fx.store.methods[card.ID].Preferred)
	assert.Equal(t, 1, fx.preferredCount(user.ID))
}

func TestPaymentService_SetPreferred_OtherUsersMethod(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	owner := fx.store.putUser(&entity.User{Email: "owner@example.com"})
	intruder := fx.store.putUser(&entity.User{Email: "intruder@example.com"})
	method := fx.store.putMethod(&entity.PaymentMethod{UserID: owner.ID, Kind: entity.PaymentMethodPix, Preferred: true})

	err := fx.service.SetPreferred(ctx, intruder.ID, method.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.True(t, fx.store.methods[method.ID].Preferred)
}

func TestPaymentService_RemoveMethod_PromotesOldestRemaining(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	preferred := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard, Preferred: true})
	oldest := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodPix})
	fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard})

	require.NoError(t, fx.service.RemoveMethod(ctx, user.ID, preferred.ID))
	assert.Nil(t, fx.store.methods[preferred.ID])
	assert.True(t, fx.store.methods[oldest.ID].Preferred)
	assert.Equal(t, 1, fx.preferredCount(user.ID))
}

func TestPaymentService_RemoveMethod_UnpreferredLeavesFlagAlone(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	preferred := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard, Preferred: true})
	extra := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodPix})

	require.NoError(t, fx.service.RemoveMethod(ctx, user.ID, extra.ID))
	assert.True(t, fx.store.methods[preferred.ID].Preferred)
	assert.Equal(t, 1, fx.preferredCount(user.ID))
}

func TestPaymentService_RemoveMethod_LastOne(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	only := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodPix, Preferred: true})

	require.NoError(t, fx.service.RemoveMethod(ctx, user.ID, only.ID))
	assert.Empty(t, fx.store.methods)
	assert.Equal(t, 0, fx.preferredCount(user.ID))
}

func TestPaymentService_ListMethods_InsertionOrder(t *testing.T) {
	fx := createTestPaymentService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})
	first := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodCard, Preferred: true})
	second := fx.store.putMethod(&entity.PaymentMethod{UserID: user.ID, Kind: entity.PaymentMethodPix})

	methods, err := fx.service.ListMethods(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, methods, 2)
	assert.Equal(t, first.ID, methods[0].ID)
	assert.Equal(t, second.ID, methods[1].ID)
}

func TestMaskCardNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		number   string
		expected string
	}{
		{name: "full card number", number: "4242 4242 4242 4242", expected: "•••• 4242"},
		{name: "digits only", number: "5555444433332222", expected: "•••• 2222"},
		{name: "short input kept as-is", number: "1234", expected: "1234"},
		{name: "empty", number: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, maskCardNumber(tt.number))
		})
	}
}

func TestPaymentService_AddMethod_NilInput(t *testing.T) {
	fx := createTestPaymentService(t)
	user := fx.store.putUser(&entity.User{Email: "pay@example.com"})

	method, err := fx.service.AddMethod(context.Background(), user.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, method)
	assert.Empty(t, fx.store.methods)
}
