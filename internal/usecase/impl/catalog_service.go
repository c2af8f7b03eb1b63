package impl

import (
	"context"

	domainerrors "condor/internal/domain/errors"
	"condor/internal/domain/entity"
	"condor/internal/domain/repository"
	"condor/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	productRepo repository.ProductRepository
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo repository.ProductRepository
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{productRepo: params.ProductRepo}
}

// ListProducts returns every catalog product.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	products, err := srv.productRepo.ListAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	return products, nil
}

// GetProduct returns a product by id.
func (srv *catalogService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, id)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductMissing
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product")
	}

	return product, nil
}

// GetProductByBarcode returns a product by its scanned barcode.
func (srv *catalogService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByBarcode(ctx, barcode)
	if errors.Is(err, repository.ErrProductNotFound) {
		return nil, domainerrors.ErrProductMissing
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find product by barcode")
	}

	return product, nil
}
