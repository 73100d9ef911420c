package repository

import "github.com/velia-co/crm-api/internal/domain/entity"

// ProductRepository acceso al catálogo de productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByCompanyAndSKU(companyID, sku string) (*entity.Product, error)
	// Search filtra por nombre o SKU con ILIKE; q vacío lista todo.
	Search(companyID, q string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
}
