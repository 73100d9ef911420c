package crm

import (
	"time"

	"github.com/google/uuid"

	"github.com/velia-co/crm-api/internal/application/dto"
	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

// PipelineUseCase alta y consulta de pipelines con sus etapas.
type PipelineUseCase struct {
	repo repository.PipelineRepository
}

// NewPipelineUseCase construye el caso de uso.
func NewPipelineUseCase(repo repository.PipelineRepository) *PipelineUseCase {
	return &PipelineUseCase{repo: repo}
}

// Create crea un pipeline con sus etapas en el orden recibido.
func (uc *PipelineUseCase) Create(companyID string, in dto.CreatePipelineRequest) (*dto.PipelineResponse, error) {
	if in.Name == "" || len(in.Stages) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	pipeline := &entity.Pipeline{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.CreatePipeline(pipeline); err != nil {
		return nil, err
	}
	stages := make([]*entity.Stage, 0, len(in.Stages))
	for i, name := range in.Stages {
		stage := &entity.Stage{
			ID:         uuid.New().String(),
			PipelineID: pipeline.ID,
			Name:       name,
			Position:   i,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		if err := uc.repo.CreateStage(stage); err != nil {
			return nil, err
		}
		stages = append(stages, stage)
	}
	return toPipelineResponse(pipeline, stages), nil
}

// Get obtiene un pipeline con sus etapas ordenadas.
func (uc *PipelineUseCase) Get(companyID, id string) (*dto.PipelineResponse, error) {
	pipeline, err := uc.repo.GetPipeline(id)
	if err != nil || pipeline == nil {
		return nil, domain.ErrNotFound
	}
	if pipeline.CompanyID != companyID {
		return nil, domain.ErrNotFound
	}
	stages, err := uc.repo.ListStages(id)
	if err != nil {
		return nil, err
	}
	return toPipelineResponse(pipeline, stages), nil
}

// List lista los pipelines de la empresa con sus etapas.
func (uc *PipelineUseCase) List(companyID string) ([]*dto.PipelineResponse, error) {
	pipelines, err := uc.repo.ListPipelines(companyID)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PipelineResponse, 0, len(pipelines))
	for _, p := range pipelines {
		stages, err := uc.repo.ListStages(p.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toPipelineResponse(p, stages))
	}
	return out, nil
}

func toPipelineResponse(p *entity.Pipeline, stages []*entity.Stage) *dto.PipelineResponse {
	resp := &dto.PipelineResponse{
		ID:     p.ID,
		Name:   p.Name,
		Stages: make([]dto.StageResponse, 0, len(stages)),
	}
	for _, s := range stages {
		resp.Stages = append(resp.Stages, dto.StageResponse{
			ID:       s.ID,
			Name:     s.Name,
			Position: s.Position,
		})
	}
	return resp
}
