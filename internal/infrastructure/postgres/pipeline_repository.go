package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/velia-co/crm-api/internal/domain"
	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

var _ repository.PipelineRepository = (*PipelineRepo)(nil)

// PipelineRepo implementación de PipelineRepository (usable con pool o tx).
type PipelineRepo struct {
	q Querier
}

// NewPipelineRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPipelineRepository(q Querier) *PipelineRepo {
	return &PipelineRepo{q: q}
}

// CreatePipeline persiste un nuevo pipeline.
func (r *PipelineRepo) CreatePipeline(pipeline *entity.Pipeline) error {
	query := `
		INSERT INTO pipelines (id, company_id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		pipeline.ID, pipeline.CompanyID, pipeline.Name, pipeline.CreatedAt, pipeline.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert pipeline: %w", err)
	}
	return nil
}

// GetPipeline obtiene un pipeline por ID.
func (r *PipelineRepo) GetPipeline(id string) (*entity.Pipeline, error) {
	query := `SELECT id, company_id, name, created_at, updated_at FROM pipelines WHERE id = $1`
	var p entity.Pipeline
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&p.ID, &p.CompanyID, &p.Name, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get pipeline: %w", err)
	}
	return &p, nil
}

// ListPipelines lista los pipelines de la empresa.
func (r *PipelineRepo) ListPipelines(companyID string) ([]*entity.Pipeline, error) {
	query := `SELECT id, company_id, name, created_at, updated_at
		FROM pipelines WHERE company_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list pipelines: %w", err)
	}
	defer rows.Close()
	var list []*entity.Pipeline
	for rows.Next() {
		var p entity.Pipeline
		if err := rows.Scan(&p.ID, &p.CompanyID, &p.Name, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan pipeline: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// CreateStage persiste una nueva etapa.
func (r *PipelineRepo) CreateStage(stage *entity.Stage) error {
	query := `
		INSERT INTO stages (id, pipeline_id, name, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		stage.ID, stage.PipelineID, stage.Name, stage.Position, stage.CreatedAt, stage.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stage: %w", err)
	}
	return nil
}

// GetStage obtiene una etapa por ID.
func (r *PipelineRepo) GetStage(id string) (*entity.Stage, error) {
	query := `SELECT id, pipeline_id, name, position, created_at, updated_at FROM stages WHERE id = $1`
	var s entity.Stage
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&s.ID, &s.PipelineID, &s.Name, &s.Position, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stage: %w", err)
	}
	return &s, nil
}

// ListStages lista las etapas de un pipeline ordenadas por posición.
func (r *PipelineRepo) ListStages(pipelineID string) ([]*entity.Stage, error) {
	query := `SELECT id, pipeline_id, name, position, created_at, updated_at
		FROM stages WHERE pipeline_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list stages: %w", err)
	}
	defer rows.Close()
	var list []*entity.Stage
	for rows.Next() {
		var s entity.Stage
		if err := rows.Scan(&s.ID, &s.PipelineID, &s.Name, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stage: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
