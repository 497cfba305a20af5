package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
)

var _ repository.CostCenterRepository = (*CostCenterRepo)(nil)

// CostCenterRepo implementación de CostCenterRepository sobre PostgreSQL.
type CostCenterRepo struct {
	q Querier
}

// NewCostCenterRepository construye el adaptador de centros de costo.
func NewCostCenterRepository(q Querier) *CostCenterRepo {
	return &CostCenterRepo{q: q}
}

// GetByID devuelve el centro de costo o nil si no existe.
func (r *CostCenterRepo) GetByID(id int64) (*entity.CostCenter, error) {
	query := `
		SELECT id, code, description, active, created_at, updated_at
		FROM cost_centers WHERE id = $1`
	var c entity.CostCenter
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&c.ID, &c.Code, &c.Description, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cost center: %w", err)
	}
	return &c, nil
}

// List devuelve todos los centros de costo activos.
func (r *CostCenterRepo) List() ([]*entity.CostCenter, error) {
	query := `
		SELECT id, code, description, active, created_at, updated_at
		FROM cost_centers WHERE active = true ORDER BY code`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list cost centers: %w", err)
	}
	defer rows.Close()

	var result []*entity.CostCenter
	for rows.Next() {
		var c entity.CostCenter
		if err := rows.Scan(&c.ID, &c.Code, &c.Description, &c.Active,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan cost center: %w", err)
		}
		result = append(result, &c)
	}
	return result, rows.Err()
}
