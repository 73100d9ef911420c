package repository

import "github.com/velia-co/crm-api/internal/domain/entity"

// DealRepository acceso a negocios del tablero kanban.
type DealRepository interface {
	Create(deal *entity.Deal) error
	GetByID(id string) (*entity.Deal, error)
	// ListByStage devuelve los deals de una etapa ordenados por Position.
	ListByStage(stageID string) ([]*entity.Deal, error)
	ListByPipeline(pipelineID string) ([]*entity.Deal, error)
	Update(deal *entity.Deal) error
	// UpdatePosition mueve un deal a otra etapa/posición sin tocar el resto de campos.
	UpdatePosition(dealID, stageID string, position int) error
	Delete(id string) error
}

// PipelineRepository acceso a pipelines y sus etapas.
type PipelineRepository interface {
	CreatePipeline(pipeline *entity.Pipeline) error
	GetPipeline(id string) (*entity.Pipeline, error)
	ListPipelines(companyID string) ([]*entity.Pipeline, error)
	CreateStage(stage *entity.Stage) error
	GetStage(id string) (*entity.Stage, error)
	// ListStages devuelve las etapas de un pipeline ordenadas por Position.
	ListStages(pipelineID string) ([]*entity.Stage, error)
}
