// Package crm contiene los casos de uso del directorio de contactos y del
// tablero de negocios (kanban).
package crm

import (
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
	"github.com/velia-co/crm-api/pkg/dian"
)

// ContactUseCase casos de uso del directorio de contactos.
type ContactUseCase struct {
	repo repository.CustomerRepository
}

// NewContactUseCase construye el caso de uso.
func NewContactUseCase(repo repository.CustomerRepository) *ContactUseCase {
	return &ContactUseCase{repo: repo}
}

// Create crea un contacto. Si el tipo de identificación es NIT y no viene
// dígito de verificación, se calcula una vez aquí con el algoritmo de la
// DIAN; identificaciones malformadas retornan el error de pkg/dian.
func (uc *ContactUseCase) Create(companyID string, in dto.CreateContactRequest) (*dto.ContactResponse, error) {
	if in.Name == "" || in.IdentificationNumber <= 0 {
		return nil, domain.ErrInvalidInput
	}
	idType := in.IdentificationType
	if idType == "" {
		idType = dian.IdentificationTypeNIT
	}
	if !dian.ValidIdentificationTypeCodes[idType] {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByCompanyAndIdentification(companyID, in.IdentificationNumber)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	dv := in.VerificationDigit
	if dv == nil && idType == dian.IdentificationTypeNIT {
		computed, err := dian.ComputeVerificationDigit(strconv.FormatInt(in.IdentificationNumber, 10))
		if err != nil {
			return nil, err
		}
		dv = &computed
	}
	if dv != nil && (*dv < 0 || *dv > 9) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:                   uuid.New().String(),
		CompanyID:            companyID,
		Name:                 in.Name,
		IdentificationType:   idType,
		IdentificationNumber: in.IdentificationNumber,
		VerificationDigit:    dv,
		Email:                in.Email,
		Phone:                in.Phone,
		Address:              in.Address,
		City:                 in.City,
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if err := uc.repo.Create(customer); err != nil {
		return nil, err
	}
	return ToContactResponse(customer), nil
}

// Get obtiene un contacto por ID (de la misma empresa).
func (uc *ContactUseCase) Get(companyID, id string) (*dto.ContactResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return ToContactResponse(customer), nil
}

// Search búsqueda incremental paginada por nombre o identificación.
// El debounce es responsabilidad del frontend; aquí solo se pagina.
func (uc *ContactUseCase) Search(companyID string, page dto.PageRequest) ([]*dto.ContactResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.Search(companyID, page.Q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ContactResponse, 0, len(list))
	for _, c := range list {
		out = append(out, ToContactResponse(c))
	}
	return out, nil
}

// Update actualiza los campos de contacto (la identificación es inmutable).
func (uc *ContactUseCase) Update(companyID, id string, in dto.UpdateContactRequest) (*dto.ContactResponse, error) {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	customer.Name = in.Name
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	customer.City = in.City
	customer.UpdatedAt = time.Now()
	if err := uc.repo.Update(customer); err != nil {
		return nil, err
	}
	return ToContactResponse(customer), nil
}

// Delete elimina un contacto.
func (uc *ContactUseCase) Delete(companyID, id string) error {
	customer, err := uc.repo.GetByID(id)
	if err != nil || customer == nil {
		return domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// IsInvalidIdentification permite al handler mapear el error de pkg/dian a 400.
func IsInvalidIdentification(err error) bool {
	return errors.Is(err, dian.ErrInvalidIdentification)
}

// ToContactResponse mapea la entidad al DTO.
func ToContactResponse(c *entity.Customer) *dto.ContactResponse {
	return &dto.ContactResponse{
		ID:                   c.ID,
		CompanyID:            c.CompanyID,
		Name:                 c.Name,
		IdentificationType:   c.IdentificationType,
		IdentificationNumber: c.IdentificationNumber,
		VerificationDigit:    c.VerificationDigit,
		Email:                c.Email,
		Phone:                c.Phone,
		Address:              c.Address,
		City:                 c.City,
	}
}
