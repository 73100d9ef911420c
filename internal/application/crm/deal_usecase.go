package crm

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/billing"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

// TxRunner ejecuta un callback con un DealRepository atado a una transacción.
// Mover un deal renumera dos columnas; sin transacción un fallo a mitad deja
// el tablero con posiciones duplicadas.
type TxRunner interface {
	RunDeals(ctx context.Context, fn func(dealRepo repository.DealRepository) error) error
}

// Defaults valores por defecto del CRM, inyectados desde configuración.
type Defaults struct {
	DefaultPipelineID string
}

// DealUseCase casos de uso del tablero kanban de negocios.
type DealUseCase struct {
	dealRepo     repository.DealRepository
	pipelineRepo repository.PipelineRepository
	customerRepo repository.CustomerRepository
	txRunner     TxRunner
	defaults     Defaults
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(
	dealRepo repository.DealRepository,
	pipelineRepo repository.PipelineRepository,
	customerRepo repository.CustomerRepository,
	txRunner TxRunner,
	defaults Defaults,
) *DealUseCase {
	return &DealUseCase{
		dealRepo:     dealRepo,
		pipelineRepo: pipelineRepo,
		customerRepo: customerRepo,
		txRunner:     txRunner,
		defaults:     defaults,
	}
}

// Create crea un negocio al final de su columna. Sin pipeline explícito se
// usa el de la configuración; sin etapa explícita, la primera del pipeline.
func (uc *DealUseCase) Create(companyID, ownerID string, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if in.Title == "" || in.CustomerID == "" {
		return nil, domain.ErrInvalidInput
	}
	customer, err := uc.customerRepo.GetByID(in.CustomerID)
	if err != nil || customer == nil {
		return nil, domain.ErrNotFound
	}
	if customer.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	pipelineID := in.PipelineID
	if pipelineID == "" {
		pipelineID = uc.defaults.DefaultPipelineID
	}
	pipeline, err := uc.pipelineRepo.GetPipeline(pipelineID)
	if err != nil || pipeline == nil {
		return nil, domain.ErrNotFound
	}
	if pipeline.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	stageID := in.StageID
	if stageID == "" {
		stages, err := uc.pipelineRepo.ListStages(pipelineID)
		if err != nil {
			return nil, err
		}
		if len(stages) == 0 {
			return nil, domain.ErrConflict
		}
		stageID = stages[0].ID
	} else {
		stage, err := uc.pipelineRepo.GetStage(stageID)
		if err != nil || stage == nil {
			return nil, domain.ErrNotFound
		}
		if stage.PipelineID != pipelineID {
			return nil, domain.ErrInvalidInput
		}
	}

	existing, err := uc.dealRepo.ListByStage(stageID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	deal := &entity.Deal{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		CustomerID: in.CustomerID,
		PipelineID: pipelineID,
		StageID:    stageID,
		Title:      in.Title,
		Amount:     in.Amount,
		Position:   len(existing), // al final de la columna
		Status:     entity.DealStatusOpen,
		OwnerID:    ownerID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.dealRepo.Create(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// Move mueve un deal a otra etapa/posición (drag-and-drop). Renumera la
// columna origen y la destino dentro de una sola transacción para que las
// posiciones queden densas (0..n-1) en ambas.
func (uc *DealUseCase) Move(ctx context.Context, companyID, dealID string, in dto.MoveDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil || deal == nil {
		return nil, domain.ErrNotFound
	}
	if deal.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}

	targetStage, err := uc.pipelineRepo.GetStage(in.StageID)
	if err != nil || targetStage == nil {
		return nil, domain.ErrNotFound
	}
	if targetStage.PipelineID != deal.PipelineID {
		// Un deal solo se mueve dentro de su propio pipeline.
		return nil, domain.ErrInvalidInput
	}

	err = uc.txRunner.RunDeals(ctx, func(dealRepo repository.DealRepository) error {
		source, err := dealRepo.ListByStage(deal.StageID)
		if err != nil {
			return err
		}
		target := source
		sameStage := deal.StageID == in.StageID
		if !sameStage {
			target, err = dealRepo.ListByStage(in.StageID)
			if err != nil {
				return err
			}
		}

		// Sacar el deal de su columna actual y renumerar.
		remaining := make([]*entity.Deal, 0, len(source))
		for _, d := range source {
			if d.ID != deal.ID {
				remaining = append(remaining, d)
			}
		}
		if sameStage {
			target = remaining
		} else {
			for i, d := range remaining {
				if d.Position != i {
					if err := dealRepo.UpdatePosition(d.ID, deal.StageID, i); err != nil {
						return err
					}
				}
			}
		}

		// Insertar en la posición pedida, acotada a los extremos de la columna.
		pos := in.Position
		if pos < 0 {
			pos = 0
		}
		if pos > len(target) {
			pos = len(target)
		}
		reordered := make([]*entity.Deal, 0, len(target)+1)
		reordered = append(reordered, target[:pos]...)
		reordered = append(reordered, deal)
		reordered = append(reordered, target[pos:]...)
		for i, d := range reordered {
			if err := dealRepo.UpdatePosition(d.ID, in.StageID, i); err != nil {
				return err
			}
		}
		deal.StageID = in.StageID
		deal.Position = pos
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// UpdateStatus marca un deal como ganado o perdido.
func (uc *DealUseCase) UpdateStatus(companyID, dealID, status string) (*dto.DealResponse, error) {
	if status != entity.DealStatusOpen && status != entity.DealStatusWon && status != entity.DealStatusLost {
		return nil, domain.ErrInvalidInput
	}
	deal, err := uc.dealRepo.GetByID(dealID)
	if err != nil || deal == nil {
		return nil, domain.ErrNotFound
	}
	if deal.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	deal.Status = status
	deal.UpdatedAt = time.Now()
	if err := uc.dealRepo.Update(deal); err != nil {
		return nil, err
	}
	return toDealResponse(deal), nil
}

// Board arma el tablero completo de un pipeline: columnas en orden con sus
// deals ordenados por posición.
func (uc *DealUseCase) Board(companyID, pipelineID string) (*dto.BoardResponse, error) {
	if pipelineID == "" {
		pipelineID = uc.defaults.DefaultPipelineID
	}
	pipeline, err := uc.pipelineRepo.GetPipeline(pipelineID)
	if err != nil || pipeline == nil {
		return nil, domain.ErrNotFound
	}
	if pipeline.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	stages, err := uc.pipelineRepo.ListStages(pipelineID)
	if err != nil {
		return nil, err
	}
	deals, err := uc.dealRepo.ListByPipeline(pipelineID)
	if err != nil {
		return nil, err
	}
	byStage := make(map[string][]dto.DealResponse)
	for _, d := range deals {
		byStage[d.StageID] = append(byStage[d.StageID], *toDealResponse(d))
	}
	board := &dto.BoardResponse{
		PipelineID:   pipeline.ID,
		PipelineName: pipeline.Name,
		Columns:      make([]dto.StageColumn, 0, len(stages)),
	}
	for _, s := range stages {
		board.Columns = append(board.Columns, dto.StageColumn{
			StageID:   s.ID,
			StageName: s.Name,
			Position:  s.Position,
			Deals:     byStage[s.ID],
		})
	}
	return board, nil
}

func toDealResponse(d *entity.Deal) *dto.DealResponse {
	return &dto.DealResponse{
		ID:         d.ID,
		CustomerID: d.CustomerID,
		PipelineID: d.PipelineID,
		StageID:    d.StageID,
		Title:      d.Title,
		Amount:     billing.FormatAmount(d.Amount),
		Position:   d.Position,
		Status:     d.Status,
	}
}
