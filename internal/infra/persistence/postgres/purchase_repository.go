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

// purchaseRepository implements the repository.PurchaseRepository interface.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository is the constructor for purchaseRepository.
func NewPurchaseRepository(db *gorm.DB) repository.PurchaseRepository {
	return &purchaseRepository{
		db: db,
	}
}

// Create persists a purchase together with its line items. GORM cascades the
// association insert, filling in the generated purchase and item IDs.
func (repo *purchaseRepository) Create(ctx context.Context, purchase *entity.Purchase) error {
	purchaseM := fromPurchaseDomain(purchase)

	if err := repo.db.WithContext(ctx).Create(purchaseM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrProductMissing
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create purchase")
	}

	purchase.ID = purchaseM.ID
	for i, itemM := range purchaseM.Items {
		purchase.Items[i].ID = itemM.ID
		purchase.Items[i].PurchaseID = itemM.PurchaseID
	}

	return nil
}

// FindByID retrieves a purchase with its items.
func (repo *purchaseRepository) FindByID(ctx context.Context, id int64) (*entity.Purchase, error) {
	var purchaseM model.PurchaseModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("id = ?", id).
		First(&purchaseM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPurchaseNotFound
		}

		return nil, errors.Wrap(err, "failed to find purchase by ID")
	}

	return toPurchaseDomain(&purchaseM), nil
}

// ListByUser returns the user's purchases, newest first, items included.
func (repo *purchaseRepository) ListByUser(ctx context.Context, userID int64) ([]*entity.Purchase, error) {
	var purchaseModels []*model.PurchaseModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Find(&purchaseModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list purchases")
	}

	purchases := make([]*entity.Purchase, 0, len(purchaseModels))
	for _, purchaseM := range purchaseModels {
		purchases = append(purchases, toPurchaseDomain(purchaseM))
	}

	return purchases, nil
}

// --- Mapper Functions ---

// toPurchaseDomain converts a GORM PurchaseModel to a domain Purchase entity.
func toPurchaseDomain(data *model.PurchaseModel) *entity.Purchase {
	if data == nil {
		return nil
	}

	items := make([]*entity.PurchaseItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, &entity.PurchaseItem{
			ID:         itemM.ID,
			PurchaseID: itemM.PurchaseID,
			ProductID:  itemM.ProductID,
			Quantity:   itemM.Quantity,
			Price:      itemM.Price,
			Product:    toProductDomain(itemM.Product),
		})
	}

	return &entity.Purchase{
		ID:             data.ID,
		UserID:         data.UserID,
		Total:          data.Total,
		CashbackEarned: data.CashbackEarned,
		PaymentMethod:  data.PaymentMethod,
		Date:           data.Date,
		Items:          items,
	}
}

// fromPurchaseDomain converts a domain Purchase entity to a GORM PurchaseModel.
func fromPurchaseDomain(data *entity.Purchase) *model.PurchaseModel {
	if data == nil {
		return nil
	}

	items := make([]*model.PurchaseItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, &model.PurchaseItemModel{
			ID:         item.ID,
			PurchaseID: item.PurchaseID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			Price:      item.Price,
		})
	}

	return &model.PurchaseModel{
		ID:             data.ID,
		UserID:         data.UserID,
		Total:          data.Total,
		CashbackEarned: data.CashbackEarned,
		PaymentMethod:  data.PaymentMethod,
		Date:           data.Date,
		Items:          items,
	}
}
