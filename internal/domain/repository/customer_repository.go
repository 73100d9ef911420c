package repository

import "github.com/velia-co/crm-api/internal/domain/entity"

// CustomerRepository acceso a contactos del directorio.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	GetByCompanyAndIdentification(companyID string, identification int64) (*entity.Customer, error)
	// Search filtra por nombre o identificación con ILIKE; q vacío lista todo.
	Search(companyID, q string, limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
