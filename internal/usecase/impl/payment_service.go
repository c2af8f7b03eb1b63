package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "condor/internal/delivery/context"
	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/domain/repository"
	"condor/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// paymentService implements the PaymentMethodUsecase interface. Every mutation
// runs inside a transaction under the owner's lock so the exactly-one-preferred
// invariant is never observable mid-flip.
type paymentService struct {
	txManager  repository.TransactionManager
	methodRepo repository.PaymentMethodRepository
	locks      *UserLocks
	logger     *slog.Logger
}

// PaymentServiceParams holds dependencies for PaymentService, injected by Fx.
type PaymentServiceParams struct {
	fx.In

	TxManager  repository.TransactionManager
	MethodRepo repository.PaymentMethodRepository
	Locks      *UserLocks
	Logger     *slog.Logger
}

// NewPaymentService is the constructor for paymentService.
func NewPaymentService(params PaymentServiceParams) usecase.PaymentMethodUsecase {
	return &paymentService{
		txManager:  params.TxManager,
		methodRepo: params.MethodRepo,
		locks:      params.Locks,
		logger:     params.Logger,
	}
}

func (srv *paymentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListMethods returns the user's stored methods in insertion order.
func (srv *paymentService) ListMethods(ctx context.Context, userID int64) ([]*entity.PaymentMethod, error) {
	methods, err := srv.methodRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list payment methods")
	}

	return methods, nil
}

// AddMethod stores a new method, making it preferred when it is the user's
// first method or the caller asked for it.
func (srv *paymentService) AddMethod(ctx context.Context, userID int64, input *usecase.AddPaymentMethodInput) (*entity.PaymentMethod, error) {
	if input == nil {
		return nil, domainerrors.ErrValidationFailed
	}

	if input.Kind != entity.PaymentMethodCard && input.Kind != entity.PaymentMethodPix {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown payment method kind")
	}

	method := &entity.PaymentMethod{
		UserID:         userID,
		Kind:           input.Kind,
		CardholderName: input.CardholderName,
		ExpiryDate:     input.ExpiryDate,
		Brand:          input.Brand,
		CardNumber:     maskCardNumber(input.CardNumber),
	}

	unlock := srv.locks.Lock(userID)
	defer unlock()

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		methodRepo := repos.PaymentMethodRepo()

		existing, err := methodRepo.ListByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list payment methods")
		}

		method.Preferred = input.Preferred || len(existing) == 0
		if method.Preferred {
			if err := methodRepo.ClearPreferredByUser(ctx, userID); err != nil {
				return errors.Wrap(err, "failed to clear preferred flags")
			}
		}

		return errors.Wrap(methodRepo.Create(ctx, method), "failed to create payment method")
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Payment method added",
		slog.Int64("userID", userID),
		slog.String("kind", string(method.Kind)),
		slog.Bool("preferred", method.Preferred),
	)

	return method, nil
}

// SetPreferred makes one owned method preferred, unsetting every other in the
// same transaction.
func (srv *paymentService) SetPreferred(ctx context.Context, userID, methodID int64) error {
	unlock := srv.locks.Lock(userID)
	defer unlock()

	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		methodRepo := repos.PaymentMethodRepo()

		method, err := srv.findOwned(ctx, methodRepo, userID, methodID)
		if err != nil {
			return err
		}

		if err := methodRepo.ClearPreferredByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear preferred flags")
		}

		return errors.Wrap(methodRepo.SetPreferred(ctx, method.ID, true), "failed to set preferred flag")
	})
}

// RemoveMethod deletes an owned method and, when the preferred one was
// removed, promotes the oldest remaining method so a user with methods always
// has exactly one preferred.
func (srv *paymentService) RemoveMethod(ctx context.Context, userID, methodID int64) error {
	unlock := srv.locks.Lock(userID)
	defer unlock()

	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		methodRepo := repos.PaymentMethodRepo()

		method, err := srv.findOwned(ctx, methodRepo, userID, methodID)
		if err != nil {
			return err
		}

		if err := methodRepo.Delete(ctx, method.ID); err != nil {
			return errors.Wrap(err, "failed to delete payment method")
		}

		if !method.Preferred {
			return nil
		}

		remaining, err := methodRepo.ListByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list remaining methods")
		}
		if len(remaining) == 0 {
			return nil
		}

		// ListByUser is id-ordered; the first entry is the oldest.
		return errors.Wrap(methodRepo.SetPreferred(ctx, remaining[0].ID, true), "failed to promote preferred method")
	})
}

func (srv *paymentService) findOwned(ctx context.Context, methodRepo repository.PaymentMethodRepository, userID, methodID int64) (*entity.PaymentMethod, error) {
	method, err := methodRepo.FindByID(ctx, methodID)
	if errors.Is(err, repository.ErrPaymentMethodNotFound) {
		return nil, domainerrors.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find payment method")
	}
	if method.UserID != userID {
		return nil, domainerrors.ErrNotFound
	}

	return method, nil
}

// maskCardNumber keeps only the last four digits of a card number.
func maskCardNumber(number string) string {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}

		return -1
	}, number)

	if len(digits) <= 4 {
		return digits
	}

	return "•••• " + digits[len(digits)-4:]
}
