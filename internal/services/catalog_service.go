package services

import (
	"strings"

	"mandaladaka/internal/domain"
	"mandaladaka/internal/repos"
)

// CatalogService owns product reads and admin writes. The aggregates only
// ever see products this service hands out.
type CatalogService struct {
	Products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

// VisibleProducts is the menu waiters order from.
func (s *CatalogService) VisibleProducts() ([]domain.Product, error) {
	return s.Products.ListVisible()
}

func (s *CatalogService) AllProducts() ([]domain.Product, error) {
	return s.Products.ListAll()
}

func (s *CatalogService) CreateProduct(p domain.Product) (*domain.Product, error) {
	if strings.TrimSpace(p.Name) == "" {
		return nil, &domain.ValidationError{Message: "product name is required"}
	}
	if p.Price <= 0 {
		return nil, &domain.ValidationError{Message: "product price must be positive"}
	}
	return s.Products.Create(&p)
}

func (s *CatalogService) UpdateProduct(id int64, patch domain.ProductPatch) (*domain.Product, error) {
	if patch.Price != nil && *patch.Price <= 0 {
		return nil, &domain.ValidationError{Message: "product price must be positive"}
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, &domain.ValidationError{Message: "product name is required"}
	}
	if err := s.Products.Update(id, patch); err != nil {
		return nil, err
	}
	return s.Products.FindByID(id)
}
