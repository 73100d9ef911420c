package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/velia-co/crm-api/internal/domain/entity"
	"github.com/velia-co/crm-api/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implementación de DealRepository (usable con pool o tx; el
// movimiento kanban lo corre TxRunner.RunDeals dentro de una transacción).
type DealRepo struct {
	q Querier
}

// NewDealRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

const dealColumns = `id, company_id, customer_id, pipeline_id, stage_id, title,
		amount, position, status, owner_id, created_at, updated_at`

func scanDeal(row pgx.Row) (*entity.Deal, error) {
	var d entity.Deal
	err := row.Scan(
		&d.ID, &d.CompanyID, &d.CustomerID, &d.PipelineID, &d.StageID, &d.Title,
		&d.Amount, &d.Position, &d.Status, &d.OwnerID, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create persiste un nuevo negocio.
func (r *DealRepo) Create(deal *entity.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		deal.ID, deal.CompanyID, deal.CustomerID, deal.PipelineID, deal.StageID, deal.Title,
		deal.Amount, deal.Position, deal.Status, deal.OwnerID, deal.CreatedAt, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByID obtiene un negocio por ID.
func (r *DealRepo) GetByID(id string) (*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE id = $1`
	d, err := scanDeal(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal: %w", err)
	}
	return d, nil
}

// ListByStage lista los negocios de una etapa ordenados por posición.
func (r *DealRepo) ListByStage(stageID string) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE stage_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, stageID)
	if err != nil {
		return nil, fmt.Errorf("list deals by stage: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// ListByPipeline lista los negocios de un pipeline ordenados por etapa y posición.
func (r *DealRepo) ListByPipeline(pipelineID string) ([]*entity.Deal, error) {
	query := `SELECT ` + dealColumns + ` FROM deals WHERE pipeline_id = $1 ORDER BY stage_id, position`
	rows, err := r.q.Query(context.Background(), query, pipelineID)
	if err != nil {
		return nil, fmt.Errorf("list deals by pipeline: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables de un negocio.
func (r *DealRepo) Update(deal *entity.Deal) error {
	query := `
		UPDATE deals SET customer_id = $2, title = $3, amount = $4, status = $5,
			owner_id = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		deal.ID, deal.CustomerID, deal.Title, deal.Amount, deal.Status, deal.OwnerID, deal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update deal: %w", err)
	}
	return nil
}

// UpdatePosition mueve un negocio a otra etapa/posición sin tocar el resto.
func (r *DealRepo) UpdatePosition(dealID, stageID string, position int) error {
	query := `UPDATE deals SET stage_id = $2, position = $3, updated_at = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, dealID, stageID, position, time.Now())
	if err != nil {
		return fmt.Errorf("update deal position: %w", err)
	}
	return nil
}

// Delete elimina un negocio por ID.
func (r *DealRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM deals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete deal: %w", err)
	}
	return nil
}
