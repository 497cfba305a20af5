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

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación de EmployeeRepository sobre PostgreSQL (usable con pool o tx).
type EmployeeRepo struct {
	q Querier
}

// NewEmployeeRepository construye el adaptador de empleados. Pasar pool o tx (Querier).
func NewEmployeeRepository(q Querier) *EmployeeRepo {
	return &EmployeeRepo{q: q}
}

// Create inserta un empleado; ErrDuplicate si el legajo ya existe.
func (r *EmployeeRepo) Create(e *entity.Employee) error {
	query := `
		INSERT INTO employees (legajo, name, cost_center_id, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		e.Legajo, e.Name, e.CostCenterID, e.Active,
	).Scan(&e.ID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

// GetByID devuelve el empleado o nil si no existe.
func (r *EmployeeRepo) GetByID(id int64) (*entity.Employee, error) {
	query := `
		SELECT id, legajo, name, cost_center_id, active, created_at, updated_at
		FROM employees WHERE id = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&e.ID, &e.Legajo, &e.Name, &e.CostCenterID, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee: %w", err)
	}
	return &e, nil
}

// GetByLegajo devuelve el empleado por número de personal o nil si no existe.
func (r *EmployeeRepo) GetByLegajo(legajo int64) (*entity.Employee, error) {
	query := `
		SELECT id, legajo, name, cost_center_id, active, created_at, updated_at
		FROM employees WHERE legajo = $1`
	var e entity.Employee
	err := r.q.QueryRow(context.Background(), query, legajo).Scan(
		&e.ID, &e.Legajo, &e.Name, &e.CostCenterID, &e.Active, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get employee by legajo: %w", err)
	}
	return &e, nil
}

// Search busca empleados activos por nombre o legajo (ILIKE sobre texto).
func (r *EmployeeRepo) Search(query string, limit int) ([]*entity.Employee, error) {
	if limit <= 0 {
		limit = 20
	}
	sql := `
		SELECT id, legajo, name, cost_center_id, active, created_at, updated_at
		FROM employees
		WHERE active = true AND (name ILIKE $1 OR legajo::text LIKE $1)
		ORDER BY name
		LIMIT $2`
	rows, err := r.q.Query(context.Background(), sql, "%"+query+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("search employees: %w", err)
	}
	defer rows.Close()

	var result []*entity.Employee
	for rows.Next() {
		var e entity.Employee
		if err := rows.Scan(&e.ID, &e.Legajo, &e.Name, &e.CostCenterID, &e.Active,
			&e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan employee: %w", err)
		}
		result = append(result, &e)
	}
	return result, rows.Err()
}
