package postgres

import (
	"context"

	"condor/internal/domain/entity"
	domainerrors "condor/internal/domain/errors"
	"condor/internal/domain/repository"
	"condor/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// paymentMethodRepository implements the repository.PaymentMethodRepository interface.
type paymentMethodRepository struct {
	db *gorm.DB
}

// NewPaymentMethodRepository is the constructor for paymentMethodRepository.
func NewPaymentMethodRepository(db *gorm.DB) repository.PaymentMethodRepository {
	return &paymentMethodRepository{
		db: db,
	}
}

// ListByUser returns the user's payment methods in insertion (id) order.
func (repo *paymentMethodRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.PaymentMethod, error) {
	var methodModels []*model.PaymentMethodModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&methodModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list payment methods")
	}

	methods := make([]*entity.PaymentMethod, 0, len(methodModels))
	for _, methodM := range methodModels {
		methods = append(methods, toPaymentMethodDomain(methodM))
	}

	return methods, nil
}

// FindByID retrieves a single payment method by its unique ID.
func (repo *paymentMethodRepository) FindByID(ctx context.Context, id int64) (*entity.PaymentMethod, error) {
	var methodM model.PaymentMethodModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&methodM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentMethodNotFound
		}

		return nil, errors.Wrap(err, "failed to find payment method by ID")
	}

	return toPaymentMethodDomain(&methodM), nil
}

// FindPreferredByUser retrieves the user's preferred method.
func (repo *paymentMethodRepository) FindPreferredByUser(ctx context.Context, userID int64) (*entity.PaymentMethod, error) {
	var methodM model.PaymentMethodModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND preferred = true", userID).
		First(&methodM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPaymentMethodNotFound
		}

		return nil, errors.Wrap(err, "failed to find preferred payment method")
	}

	return toPaymentMethodDomain(&methodM), nil
}

// Create persists a new payment method and fills in the generated ID.
func (repo *paymentMethodRepository) Create(ctx context.Context, method *entity.PaymentMethod) error {
	methodM := fromPaymentMethodDomain(method)

	if err := repo.db.WithContext(ctx).Create(methodM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("missing required payment method information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create payment method")
	}

	method.ID = methodM.ID

	return nil
}

// SetPreferred flips the preferred flag of a single method.
func (repo *paymentMethodRepository) SetPreferred(ctx context.Context, id int64, preferred bool) error {
	result := repo.db.WithContext(ctx).
		Model(&model.PaymentMethodModel{}).
		Where("id = ?", id).
		Update("preferred", preferred)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to set preferred flag")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPaymentMethodNotFound
	}

	return nil
}

// ClearPreferredByUser unsets the preferred flag on every method of the user.
func (repo *paymentMethodRepository) ClearPreferredByUser(ctx context.Context, userID int64) error {
	if err := repo.db.WithContext(ctx).
		Model(&model.PaymentMethodModel{}).
		Where("user_id = ? AND preferred = true", userID).
		Update("preferred", false).Error; err != nil {
		return errors.Wrap(err, "failed to clear preferred flags")
	}

	return nil
}

// Delete removes a payment method.
func (repo *paymentMethodRepository) Delete(ctx context.Context, id int64) error {
	if err := repo.db.WithContext(ctx).
		Delete(&model.PaymentMethodModel{}, id).Error; err != nil {
		return errors.Wrap(err, "failed to delete payment method")
	}

	return nil
}

// --- Mapper Functions ---

// toPaymentMethodDomain converts a GORM PaymentMethodModel to a domain PaymentMethod entity.
func toPaymentMethodDomain(data *model.PaymentMethodModel) *entity.PaymentMethod {
	if data == nil {
		return nil
	}

	return &entity.PaymentMethod{
		ID:             data.ID,
		UserID:         data.UserID,
		Kind:           entity.PaymentMethodKind(data.Kind),
		CardNumber:     data.CardNumber,
		CardholderName: data.CardholderName,
		ExpiryDate:     data.ExpiryDate,
		Brand:          data.Brand,
		Preferred:      data.Preferred,
	}
}

// fromPaymentMethodDomain converts a domain PaymentMethod entity to a GORM PaymentMethodModel.
func fromPaymentMethodDomain(data *entity.PaymentMethod) *model.PaymentMethodModel {
	if data == nil {
		return nil
	}

	return &model.PaymentMethodModel{
		ID:             data.ID,
		UserID:         data.UserID,
		Kind:           string(data.Kind),
		CardNumber:     data.CardNumber,
		CardholderName: data.CardholderName,
		ExpiryDate:     data.ExpiryDate,
		Brand:          data.Brand,
		Preferred:      data.Preferred,
	}
}
