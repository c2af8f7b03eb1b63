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

// notificationService implements the NotificationUsecase interface. Flag
// changes and the user's unread counter always move in the same transaction.
type notificationService struct {
	txManager        repository.TransactionManager
	notificationRepo repository.NotificationRepository
	logger           *slog.Logger
}

// NotificationServiceParams holds dependencies for NotificationService, injected by Fx.
type NotificationServiceParams struct {
	fx.In

	TxManager        repository.TransactionManager
	NotificationRepo repository.NotificationRepository
	Logger           *slog.Logger
}

// NewNotificationService is the constructor for notificationService.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	return &notificationService{
		txManager:        params.TxManager,
		notificationRepo: params.NotificationRepo,
		logger:           params.Logger,
	}
}

func (srv *notificationService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListNotifications returns the user's notifications, newest first.
func (srv *notificationService) ListNotifications(ctx context.Context, userID int64) ([]*entity.Notification, error) {
	notifications, err := srv.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list notifications")
	}

	return notifications, nil
}

// Notify creates an unread notification and increments the unread counter in
// the same transaction.
func (srv *notificationService) Notify(ctx context.Context, userID int64, title, message, category string) (*entity.Notification, error) {
	notification := &entity.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    category,
	}

	err := srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := repos.NotificationRepo().Create(ctx, notification); err != nil {
			return errors.Wrap(err, "failed to create notification")
		}

		return errors.Wrap(repos.UserRepo().AdjustUnreadCount(ctx, userID, 1), "failed to bump unread counter")
	})
	if err != nil {
		return nil, err
	}

	return notification, nil
}

// MarkRead flips one owned notification to read and decrements the unread
// counter, floored at zero. Already-read notifications are a no-op.
func (srv *notificationService) MarkRead(ctx context.Context, userID, notificationID int64) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		notificationRepo := repos.NotificationRepo()

		notification, err := notificationRepo.FindByID(ctx, notificationID)
		if errors.Is(err, repository.ErrNotificationNotFound) {
			return domainerrors.ErrNotFound
		}
		if err != nil {
			return errors.Wrap(err, "failed to find notification")
		}
		if notification.UserID != userID {
			return domainerrors.ErrNotFound
		}
		if notification.Read {
			return nil
		}

		if err := notificationRepo.MarkRead(ctx, notification.ID); err != nil {
			return errors.Wrap(err, "failed to mark notification read")
		}

		return errors.Wrap(repos.UserRepo().AdjustUnreadCount(ctx, userID, -1), "failed to decrement unread counter")
	})
}

// MarkAllRead flips every unread notification and resets the counter to
// exactly zero. Resetting instead of decrementing heals any counter drift.
func (srv *notificationService) MarkAllRead(ctx context.Context, userID int64) error {
	return srv.txManager.Execute(ctx, func(repos repository.RepositoryFactory) error {
		flipped, err := repos.NotificationRepo().MarkAllReadByUser(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to mark notifications read")
		}

		if flipped > 0 {
			srv.log(ctx).Debug("Notifications marked read",
				slog.Int64("userID", userID),
				slog.Int64("count", flipped),
			)
		}

		return errors.Wrap(repos.UserRepo().ResetUnreadCount(ctx, userID), "failed to reset unread counter")
	})
}
