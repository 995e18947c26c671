package service

import (
	"errors"

	"gorm.io/gorm"

	"github.com/neoenginex/gemsutopia/internal/domain/catalog/model"
	"github.com/neoenginex/gemsutopia/internal/domain/catalog/repository"
)

var ErrProductNotFound = errors.New("product not found")

type CatalogService interface {
	CreateProduct(product *model.Product) error
	GetProduct(id string) (*model.Product, error)
	// ListProducts with activeOnly=true is the public storefront view;
	// the admin view includes inactive listings.
	ListProducts(activeOnly bool, offset, limit int) ([]model.Product, int64, error)
	UpdateProduct(product *model.Product) error
	DeleteProduct(id string) error
}

type catalogService struct {
	repo repository.ProductRepository
}

func NewCatalogService(repo repository.ProductRepository) CatalogService {
	return &catalogService{repo: repo}
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	return s.repo.Create(product)
}

func (s *catalogService) GetProduct(id string) (*model.Product, error) {
	product, err := s.repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

func (s *catalogService) ListProducts(activeOnly bool, offset, limit int) ([]model.Product, int64, error) {
	return s.repo.GetList(activeOnly, offset, limit)
}

func (s *catalogService) UpdateProduct(product *model.Product) error {
	return s.repo.Update(product)
}

func (s *catalogService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}
