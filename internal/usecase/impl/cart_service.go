package impl

import (
	"context"
	"log/slog"

	deliverycontext "condor/internal/delivery/context"
	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/domain/repository"
	"condor/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	locks       *UserLocks
	logger      *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	CartRepo    repository.CartRepository
	ProductRepo repository.ProductRepository
	Locks       *UserLocks
	Logger      *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		cartRepo:    params.CartRepo,
		productRepo: params.ProductRepo,
		locks:       params.Locks,
		logger:      params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListItems returns the user's cart joined with live product data.
func (srv *cartService) ListItems(ctx context.Context, userID int64) ([]*entity.CartItem, error) {
	items, err := srv.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart items")
	}

	return items, nil
}

// AddItem adds a product to the cart, incrementing the quantity when an entry
// for the (user, product) pair already exists.
func (srv *cartService) AddItem(ctx context.Context, userID int64, input *usecase.AddCartItemInput) (*entity.CartItem, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}

	qty := input.Quantity
	if qty <= 0 {
		qty = 1
	}

	product, err := srv.productRepo.FindByID(ctx, input.ProductID)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductMissing
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve product")
	}

	// The upsert below is read-then-write; serialize per user so two
	// concurrent adds of the same product don't create duplicate entries.
	unlock := srv.locks.Lock(userID)
	defer unlock()

	existing, err := srv.cartRepo.FindByUserAndProduct(ctx, userID, input.ProductID)
	if err != nil && !errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, errors.Wrap(err, "failed to look up cart entry")
	}

	if existing != nil {
		existing.Quantity += qty
		if err := srv.cartRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity); err != nil {
			return nil, errors.Wrap(err, "failed to update cart quantity")
		}
		existing.Product = product

		return existing, nil
	}

	item := &entity.CartItem{
		UserID:    userID,
		ProductID: input.ProductID,
		Quantity:  qty,
	}
	if err := srv.cartRepo.Create(ctx, item); err != nil {
		return nil, errors.Wrap(err, "failed to create cart entry")
	}
	item.Product = product

	srv.log(ctx).Debug("Cart item added",
		slog.Int64("userID", userID),
		slog.Int64("productID", input.ProductID),
		slog.Int("quantity", item.Quantity),
	)

	return item, nil
}

// SetQuantity replaces an entry's quantity; zero or less deletes the entry.
func (srv *cartService) SetQuantity(ctx context.Context, userID, itemID int64, quantity int) (*entity.CartItem, error) {
	item, err := srv.findOwned(ctx, userID, itemID)
	if err != nil {
		if quantity <= 0 && errors.Is(err, domainerrors.ErrNotFound) {
			// Deleting an already-deleted entry is idempotent.
			return nil, nil
		}

		return nil, err
	}

	if quantity <= 0 {
		if err := srv.cartRepo.Delete(ctx, item.ID); err != nil {
			return nil, errors.Wrap(err, "failed to delete cart entry")
		}

		return nil, nil
	}

	if err := srv.cartRepo.UpdateQuantity(ctx, item.ID, quantity); err != nil {
		return nil, errors.Wrap(err, "failed to update cart quantity")
	}
	item.Quantity = quantity

	if item.Product == nil {
		product, err := srv.productRepo.FindByID(ctx, item.ProductID)
		if err == nil {
			item.Product = product
		}
	}

	return item, nil
}

// RemoveItem deletes a single owned entry.
func (srv *cartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	item, err := srv.findOwned(ctx, userID, itemID)
	if err != nil {
		return err
	}

	if err := srv.cartRepo.Delete(ctx, item.ID); err != nil {
		return errors.Wrap(err, "failed to delete cart entry")
	}

	return nil
}

// Clear removes every entry from the user's cart.
func (srv *cartService) Clear(ctx context.Context, userID int64) error {
	if err := srv.cartRepo.ClearByUser(ctx, userID); err != nil {
		return errors.Wrap(err, "failed to clear cart")
	}

	return nil
}

// findOwned loads an entry and hides other users' entries behind NotFound.
func (srv *cartService) findOwned(ctx context.Context, userID, itemID int64) (*entity.CartItem, error) {
	item, err := srv.cartRepo.FindByID(ctx, itemID)
	if errors.Is(err, repository.ErrCartItemNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find cart entry")
	}
	if item.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}

	return item, nil
}
