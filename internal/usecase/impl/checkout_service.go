// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"condor/config"
	deliverycontext "condor/internal/delivery/context"
	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/domain/repository"
	"condor/internal/domain/service"
	"condor/internal/usecase"
	"condor/internal/util"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// checkoutService implements the CheckoutUsecase interface. It is the only
// path that clears a cart and credits cashback.
type checkoutService struct {
	txManager      repository.TransactionManager
	purchaseRepo   repository.PurchaseRepository
	eventPublisher service.EventPublisher
	pixService     service.PixChargeService
	cashbackRate   float64
	locks          *UserLocks
	logger         *slog.Logger
}

// CheckoutServiceParams holds dependencies for CheckoutService, injected by Fx.
type CheckoutServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	PurchaseRepo   repository.PurchaseRepository
	EventPublisher service.EventPublisher
	PixService     service.PixChargeService
	Locks          *UserLocks
	Config         *config.Config
	Logger         *slog.Logger
}

// NewCheckoutService is the constructor for checkoutService.
func NewCheckoutService(params CheckoutServiceParams) usecase.CheckoutUsecase {
	return &checkoutService{
		txManager:      params.TxManager,
		purchaseRepo:   params.PurchaseRepo,
		eventPublisher: params.EventPublisher,
		pixService:     params.PixService,
		cashbackRate:   params.Config.Cashback.Rate,
		locks:          params.Locks,
		logger:         params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *checkoutService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Checkout converts the user's current cart into a purchase.
//
// The whole commit phase runs inside one transaction: purchase + items,
// cashback credit, cart clear and the purchase notification land together or
// not at all. The per-user lock serializes concurrent checkouts for the same
// user so the read-compute-write sequence never interleaves.
func (srv *checkoutService) Checkout(ctx context.Context, userID int64, input *usecase.CheckoutInput) (*entity.Purchase, error) {
	unlock := srv.locks.Lock(userID)
	defer unlock()

	var methodID *int64
	if input != nil {
		methodID = input.PaymentMethodID
	}

	var created *entity.Purchase
	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		purchase, err := srv.buildPurchase(ctx, repos, userID, methodID)
		if err != nil {
			return err
		}

		if err := repos.PurchaseRepo().Create(ctx, purchase); err != nil {
			return errors.Wrap(err, "failed to persist purchase")
		}

		if err := repos.UserRepo().CreditCashback(ctx, userID, purchase.CashbackEarned); err != nil {
			return errors.Wrap(err, "failed to credit cashback")
		}

		if err := repos.CartRepo().ClearByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart")
		}

		notification := &entity.Notification{
			UserID:  userID,
			Title:   "Compra Confirmada",
			Message: fmt.Sprintf("Sua compra de %s foi concluída com sucesso! Você ganhou %s em cashback.", util.FormatBRL(purchase.Total), util.FormatBRL(purchase.CashbackEarned)),
			Type:    entity.NotificationTypePurchase,
		}
		if err := repos.NotificationRepo().Create(ctx, notification); err != nil {
			return errors.Wrap(err, "failed to create purchase notification")
		}
		if err := repos.UserRepo().AdjustUnreadCount(ctx, userID, 1); err != nil {
			return errors.Wrap(err, "failed to bump unread counter")
		}

		created = purchase

		return nil
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Checkout committed",
		slog.Int64("userID", userID),
		slog.Int64("purchaseID", created.ID),
		slog.Float64("total", created.Total),
		slog.Float64("cashback", created.CashbackEarned),
	)

	srv.publishPurchaseEvent(ctx, created)

	return created, nil
}

// buildPurchase validates the cart and payment method and assembles the
// purchase record with prices snapshotted at this instant.
func (srv *checkoutService) buildPurchase(ctx context.Context, repos repository.RepositoryFactory, userID int64, methodID *int64) (*entity.Purchase, error) {
	items, err := repos.CartRepo().ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load cart")
	}
	if len(items) == 0 {
		return nil, domainerrors.ErrEmptyCart
	}

	purchase := &entity.Purchase{
		UserID: userID,
		Date:   time.Now(),
		Items:  make([]*entity.PurchaseItem, 0, len(items)),
	}

	var total float64
	for _, item := range items {
		product := item.Product
		if product == nil {
			// Cart rows can outlive their product join.
			product, err = repos.ProductRepo().FindByID(ctx, item.ProductID)
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, domainerrors.ErrProductMissing
			}
			if err != nil {
				return nil, errors.Wrap(err, "failed to resolve product")
			}
		}

		total += product.Price * float64(item.Quantity)
		purchase.Items = append(purchase.Items, &entity.PurchaseItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	purchase.Total = util.RoundCurrency(total)
	purchase.CashbackEarned = util.RoundCurrency(purchase.Total * srv.cashbackRate)

	method, err := srv.resolvePaymentMethod(ctx, repos, userID, methodID)
	if err != nil {
		return nil, err
	}
	purchase.PaymentMethod = method.Label()

	return purchase, nil
}

// resolvePaymentMethod resolves the explicit method or falls back to the
// user's preferred one.
func (srv *checkoutService) resolvePaymentMethod(ctx context.Context, repos repository.RepositoryFactory, userID int64, methodID *int64) (*entity.PaymentMethod, error) {
	if methodID != nil {
		method, err := repos.PaymentMethodRepo().FindByID(ctx, *methodID)
		if errors.Is(err, repository.ErrPaymentMethodNotFound) {
			return nil, domainerrors.ErrInvalidPaymentMethod
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to resolve payment method")
		}
		if method.UserID != userID {
			return nil, domainerrors.ErrInvalidPaymentMethod
		}

		return method, nil
	}

	method, err := repos.PaymentMethodRepo().FindPreferredByUser(ctx, userID)
	if errors.Is(err, repository.ErrPaymentMethodNotFound) {
		return nil, domainerrors.ErrNoPaymentMethod
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve preferred payment method")
	}

	return method, nil
}

// publishPurchaseEvent emits the post-commit event. Fire-and-forget: a publish
// failure is logged and never surfaces to the caller.
func (srv *checkoutService) publishPurchaseEvent(ctx context.Context, purchase *entity.Purchase) {
	if srv.eventPublisher == nil {
		return
	}

	event := &service.PurchaseEvent{
		PurchaseID:     purchase.ID,
		UserID:         purchase.UserID,
		Total:          purchase.Total,
		CashbackEarned: purchase.CashbackEarned,
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
	}
	if err := srv.eventPublisher.PublishPurchaseEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish purchase event",
			slog.Int64("purchaseID", purchase.ID),
			slog.Any("error", err),
		)
	}
}

// ListPurchases returns the user's purchase history, newest first.
func (srv *checkoutService) ListPurchases(ctx context.Context, userID int64) ([]*entity.Purchase, error) {
	purchases, err := srv.purchaseRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list purchases")
	}

	return purchases, nil
}

// GetPurchasePixQR renders a static pix charge QR for an owned purchase.
func (srv *checkoutService) GetPurchasePixQR(ctx context.Context, userID, purchaseID int64) ([]byte, error) {
	purchase, err := srv.purchaseRepo.FindByID(ctx, purchaseID)
	if errors.Is(err, repository.ErrPurchaseNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load purchase")
	}
	if purchase.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}

	png, err := srv.pixService.GenerateQR(purchase.Total, fmt.Sprintf("CONDOR%d", purchase.ID))
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate pix QR")
	}

	return png, nil
}
