package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/rioplatense/vsm-api/internal/domain"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

// MaterialRepo implementación de MaterialRepository sobre PostgreSQL (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador de materiales. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

const materialColumns = `id, code, description, sap_class, unit_measure, warehouse_id, active, created_at, updated_at`

func scanMaterial(row pgx.Row) (*entity.Material, error) {
	var m entity.Material
	err := row.Scan(&m.ID, &m.Code, &m.Description, &m.SAPClass, &m.UnitMeasure,
		&m.WarehouseID, &m.Active, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un material; ErrDuplicate si el código ya existe.
func (r *MaterialRepo) Create(m *entity.Material) error {
	query := `
		INSERT INTO materials (code, description, sap_class, unit_measure, warehouse_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		m.Code, m.Description, m.SAPClass, m.UnitMeasure, m.WarehouseID, m.Active,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert material: %w", err)
	}
	return nil
}

// GetByID devuelve el material o nil si no existe.
func (r *MaterialRepo) GetByID(id int64) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	return m, nil
}

// GetByCode devuelve el material por código SAP o nil si no existe.
func (r *MaterialRepo) GetByCode(code string) (*entity.Material, error) {
	query := `SELECT ` + materialColumns + ` FROM materials WHERE code = $1`
	m, err := scanMaterial(r.q.QueryRow(context.Background(), query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material by code: %w", err)
	}
	return m, nil
}

// Search busca materiales activos por código o descripción (ILIKE).
// costCenterID > 0 restringe a los habilitados para ese centro de costo.
func (r *MaterialRepo) Search(query string, costCenterID int64, limit int) ([]*entity.Material, error) {
	if limit <= 0 {
		limit = 20
	}
	args := []any{"%" + query + "%", limit}
	sql := `
		SELECT ` + materialColumns + `
		FROM materials
		WHERE active = true AND (code ILIKE $1 OR description ILIKE $1)`
	if costCenterID > 0 {
		args = append(args, costCenterID)
		sql += `
		AND id IN (SELECT material_id FROM material_permissions WHERE cost_center_id = $3)`
	}
	sql += `
		ORDER BY description
		LIMIT $2`

	rows, err := r.q.Query(context.Background(), sql, args...)
	if err != nil {
		return nil, fmt.Errorf("search materials: %w", err)
	}
	defer rows.Close()

	var result []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Code, &m.Description, &m.SAPClass, &m.UnitMeasure,
			&m.WarehouseID, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

// ListByIDs devuelve los materiales cuyos IDs están en la lista.
func (r *MaterialRepo) ListByIDs(ids []int64) ([]*entity.Material, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := `SELECT ` + materialColumns + ` FROM materials WHERE id = ANY($1)`
	rows, err := r.q.Query(context.Background(), query, ids)
	if err != nil {
		return nil, fmt.Errorf("list materials: %w", err)
	}
	defer rows.Close()

	var result []*entity.Material
	for rows.Next() {
		var m entity.Material
		if err := rows.Scan(&m.ID, &m.Code, &m.Description, &m.SAPClass, &m.UnitMeasure,
			&m.WarehouseID, &m.Active, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan material: %w", err)
		}
		result = append(result, &m)
	}
	return result, rows.Err()
}

// IsAllowed indica si existe un permiso de retiro material/centro de costo.
func (r *MaterialRepo) IsAllowed(materialID, costCenterID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM material_permissions
			WHERE material_id = $1 AND cost_center_id = $2
		)`
	var allowed bool
	err := r.q.QueryRow(context.Background(), query, materialID, costCenterID).Scan(&allowed)
	if err != nil {
		return false, fmt.Errorf("check material permission: %w", err)
	}
	return allowed, nil
}
