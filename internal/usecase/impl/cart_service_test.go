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

type cartFixture struct {
	store   *fakeStore
	service usecase.CartUsecase
}

func createTestCartService(t *testing.T) *cartFixture {
	t.Helper()

	store := newFakeStore()
	service := NewCartService(CartServiceParams{
		CartRepo:    fakeCartRepo{store},
		ProductRepo: fakeProductRepo{store},
		Locks:       NewUserLocks(),
		Logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	})

	return &cartFixture{store: store, service: service}
}

func TestCartService_AddItem_NewEntry(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Arroz Integral 1kg", Price: 8.90})

	item, err := fx.service.AddItem(ctx, user.ID, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, item.Quantity)
	require.NotNil(t, item.Product)
	assert.Equal(t, product.Name, item.Product.Name)
	assert.Len(t, fx.store.cartItems, 1)
}

func TestCartService_AddItem_IncrementsExisting(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Feijão Preto 1kg", Price: 4.99})

	_, err := fx.service.AddItem(ctx, user.ID, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 1})
	require.NoError(t, err)

	item, err := fx.service.AddItem(ctx, user.ID, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 3})
	require.NoError(t, err)
	assert.Equal(t, 4, item.Quantity)

	// Still a single entry for the (user, product) pair.
	assert.Len(t, fx.store.cartItems, 1)
}

func TestCartService_AddItem_DefaultsQuantityToOne(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Café 500g", Price: 15.50})

	item, err := fx.service.AddItem(ctx, user.ID, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, item.Quantity)
}

func TestCartService_AddItem_UnknownProduct(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})

	_, err := fx.service.AddItem(ctx, user.ID, &usecase.AddCartItemInput{ProductID: 9999, Quantity: 1})
	assert.ErrorIs(t, err, domainerrors.ErrProductMissing)
	assert.Empty(t, fx.store.cartItems)
}

func TestCartService_SetQuantity_Update(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Leite 1L", Price: 6.49})
	entry := fx.store.putCartItem(&entity.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	item, err := fx.service.SetQuantity(ctx, user.ID, entry.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, item.Quantity)
	assert.Equal(t, 5, fx.store.cartItems[entry.ID].Quantity)
}

func TestCartService_SetQuantity_ZeroDeletes(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Leite 1L", Price: 6.49})
	entry := fx.store.putCartItem(&entity.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 2})

	item, err := fx.service.SetQuantity(ctx, user.ID, entry.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, item)
	assert.Empty(t, fx.store.cartItems)

	// Deleting the same entry again is not an error.
	item, err = fx.service.SetQuantity(ctx, user.ID, entry.ID, 0)
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestCartService_SetQuantity_OtherUsersEntry(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	owner := fx.store.putUser(&entity.User{Email: "owner@example.com"})
	intruder := fx.store.putUser(&entity.User{Email: "intruder@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Café 500g", Price: 15.50})
	entry := fx.store.putCartItem(&entity.CartItem{UserID: owner.ID, ProductID: product.ID, Quantity: 1})

	_, err := fx.service.SetQuantity(ctx, intruder.ID, entry.ID, 3)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
	assert.Equal(t, 1, fx.store.cartItems[entry.ID].Quantity)
}

func TestCartService_RemoveItem(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Pão Francês kg", Price: 12.00})
	entry := fx.store.putCartItem(&entity.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})

	require.NoError(t, fx.service.RemoveItem(ctx, user.ID, entry.ID))
	assert.Empty(t, fx.store.cartItems)

	err := fx.service.RemoveItem(ctx, user.ID, entry.ID)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestCartService_ListItems_InsertionOrderWithProducts(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	rice := fx.store.putProduct(&entity.Product{Name: "Arroz Integral 1kg", Price: 8.90})
	beans := fx.store.putProduct(&entity.Product{Name: "Feijão Preto 1kg", Price: 4.99})
	fx.store.putCartItem(&entity.CartItem{UserID: user.ID, ProductID: rice.ID, Quantity: 2})
	fx.store.putCartItem(&entity.CartItem{UserID: user.ID, ProductID: beans.ID, Quantity: 1})

	items, err := fx.service.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, rice.ID, items[0].ProductID)
	assert.Equal(t, beans.ID, items[1].ProductID)
	require.NotNil(t, items[0].Product)
	assert.InDelta(t, 8.90, items[0].Product.Price, 1e-9)
}

func TestCartService_Clear(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	other := fx.store.putUser(&entity.User{Email: "other@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Café 500g", Price: 15.50})
	fx.store.putCartItem(&entity.CartItem{UserID: user.ID, ProductID: product.ID, Quantity: 1})
	kept := fx.store.putCartItem(&entity.CartItem{UserID: other.ID, ProductID: product.ID, Quantity: 1})

	require.NoError(t, fx.service.Clear(ctx, user.ID))
	require.Len(t, fx.store.cartItems, 1)
	assert.NotNil(t, fx.store.cartItems[kept.ID])

	// Clearing an already-empty cart is fine.
	require.NoError(t, fx.service.Clear(ctx, user.ID))
}

func TestCartService_AddItem_NilInput(t *testing.T) {
	fx := createTestCartService(t)
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})

	item, err := fx.service.AddItem(context.Background(), user.ID, nil)
	require.ErrorIs(t, err, domainerrors.ErrValidationFailed)
	assert.Nil(t, item)
	assert.Empty(t, fx.store.cartItems)
}

func TestCartService_ListItems_UsesLivePrices(t *testing.T) {
	fx := createTestCartService(t)
	ctx := context.Background()
	user := fx.store.putUser(&entity.User{Email: "cart@example.com"})
	product := fx.store.putProduct(&entity.Product{Name: "Arroz Integral 1kg", Price: 8.90})

	_, err := fx.service.AddItem(ctx, user.ID, &usecase.AddCartItemInput{ProductID: product.ID, Quantity: 2})
	require.NoError(t, err)

	// A catalog price change after the add must show up on the next list.
	fx.store.products[product.ID].Price = 9.90

	items, err := fx.service.ListItems(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Product)
	assert.InDelta(t, 9.90, items[0].Product.Price, 1e-9)
}
