package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
	"github.com/velia-co/crm-api/pkg/dian"
)

// CompanyUseCase alta y consulta de la organización emisora.
type CompanyUseCase struct {
	repo repository.CompanyRepository
}

// NewCompanyUseCase construye el caso de uso.
func NewCompanyUseCase(repo repository.CompanyRepository) *CompanyUseCase {
	return &CompanyUseCase{repo: repo}
}

// Create crea la empresa. El dígito de verificación del NIT se calcula aquí,
// una sola vez, y queda persistido.
func (uc *CompanyUseCase) Create(in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	if in.Name == "" || in.NIT == "" {
		return nil, domain.ErrInvalidInput
	}
	dv, err := dian.ComputeVerificationDigit(in.NIT)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	company := &entity.Company{
		ID:                uuid.New().String(),
		Name:              in.Name,
		NIT:               in.NIT,
		VerificationDigit: dv,
		Address:           in.Address,
		City:              in.City,
		Phone:             in.Phone,
		Email:             in.Email,
		Status:            "active",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// Get obtiene una empresa por ID.
func (uc *CompanyUseCase) Get(id string) (*dto.CompanyResponse, error) {
	company, err := uc.repo.GetByID(id)
	if err != nil || company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// List lista empresas, paginado.
func (uc *CompanyUseCase) List(page dto.PageRequest) ([]*dto.CompanyResponse, error) {
	page.DefaultPage()
	companies, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, toCompanyResponse(c))
	}
	return out, nil
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:                c.ID,
		Name:              c.Name,
		NIT:               c.NIT,
		VerificationDigit: c.VerificationDigit,
		Address:           c.Address,
		City:              c.City,
		Phone:             c.Phone,
		Email:             c.Email,
		Status:            c.Status,
	}
}
