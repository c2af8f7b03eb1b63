package postgres

import (
	"context"
	"log/slog"

	"condor/config"
	"condor/internal/domain/entity"
	"condor/internal/domain/repository"
	"condor/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// seedProducts is the initial catalog. Seeding is idempotent: rows are keyed
// by barcode and existing ones are left untouched.
var seedProducts = []*entity.Product{
	{
		Name:        "Refrigerante Cola 2L",
		Barcode:     "7891234567890",
		Price:       8.90,
		Description: "Refrigerante sabor cola garrafa 2 litros",
		ImageURL:    "https://images.unsplash.com/photo-1553456558-aff63285bdd1?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80",
	},
	{
		Name:        "Pão de Forma Integral",
		Barcode:     "7891234567891",
		Price:       6.50,
		Description: "Pão de forma integral fatiado 500g",
		ImageURL:    "https://images.unsplash.com/photo-1570448862600-2e9d083074df?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80",
	},
	{
		Name:        "Leite Integral 1L",
		Barcode:     "7891234567892",
		Price:       4.99,
		Description: "Leite UHT integral 1 litro",
		ImageURL:    "https://images.unsplash.com/photo-1550583724-b2692b85b150?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80",
	},
	{
		Name:        "Café em Pó 500g",
		Barcode:     "7891234567893",
		Price:       15.90,
		Description: "Café torrado e moído 500g",
		ImageURL:    "https://images.unsplash.com/photo-1559056199-641a0ac8b55e?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80",
	},
	{
		Name:        "Arroz Branco 5kg",
		Barcode:     "7891234567894",
		Price:       22.50,
		Description: "Arroz branco tipo 1 pacote 5kg",
		ImageURL:    "https://images.unsplash.com/photo-1594506425793-58c976ce34ab?ixlib=rb-1.2.1&auto=format&fit=crop&w=128&q=80",
	},
}

// SeederParams defines the dependencies for the catalog seeder.
type SeederParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	DB     *gorm.DB
	Logger *slog.Logger
}

// RegisterSeeder migrates the schema and seeds the product catalog on startup
// when seeding is enabled.
func RegisterSeeder(params SeederParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := migrate(params.DB.WithContext(ctx)); err != nil {
				return err
			}

			if params.Config.Seed == nil || !params.Config.Seed.Products {
				return nil
			}

			return seedCatalog(ctx, params.DB, params.Logger)
		},
	})
}

func migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.UserModel{},
		&model.ProductModel{},
		&model.CartItemModel{},
		&model.PaymentMethodModel{},
		&model.PurchaseModel{},
		&model.PurchaseItemModel{},
		&model.NotificationModel{},
		&model.UserDeviceModel{},
	)

	return errors.Wrap(err, "failed to migrate schema")
}

func seedCatalog(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	productRepo := NewProductRepository(db)

	created := 0
	for _, product := range seedProducts {
		_, err := productRepo.FindByBarcode(ctx, product.Barcode)
		if err == nil {
			continue
		}
		if !errors.Is(err, repository.ErrProductNotFound) {
			return errors.Wrap(err, "failed to check seed product")
		}

		seeded := *product
		if err := productRepo.Create(ctx, &seeded); err != nil {
			return errors.Wrap(err, "failed to seed product")
		}
		created++
	}

	if created > 0 {
		logger.Info("Product catalog seeded", slog.Int("created", created))
	}

	return nil
}
