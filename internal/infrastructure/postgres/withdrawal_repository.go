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

var _ repository.WithdrawalRepository = (*WithdrawalRepo)(nil)

// WithdrawalRepo implementación de WithdrawalRepository sobre PostgreSQL (usable con pool o tx).
type WithdrawalRepo struct {
	q Querier
}

// NewWithdrawalRepository construye el adaptador de vales. Pasar pool o tx (Querier).
func NewWithdrawalRepository(q Querier) *WithdrawalRepo {
	return &WithdrawalRepo{q: q}
}

// Create inserta la cabecera y sus items. Para atomicidad, ejecutar dentro de TxRunner.
func (r *WithdrawalRepo) Create(w *entity.Withdrawal) error {
	query := `
		INSERT INTO withdrawals (employee_id, cost_center_id, warehouse_id, requested_by,
			status, notes, sap_status, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, true, now(), now())
		RETURNING id, created_at, updated_at`
	err := r.q.QueryRow(context.Background(), query,
		w.EmployeeID, w.CostCenterID, w.WarehouseID, w.RequestedBy,
		w.Status, w.Notes, w.SAPStatus,
	).Scan(&w.ID, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInvalidInput
		}
		return fmt.Errorf("insert withdrawal: %w", err)
	}

	itemQuery := `
		INSERT INTO withdrawal_items (withdrawal_id, material_id, requested_qty, delivered_qty)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range w.Items {
		it := &w.Items[i]
		it.WithdrawalID = w.ID
		err := r.q.QueryRow(context.Background(), itemQuery,
			it.WithdrawalID, it.MaterialID, it.RequestedQty, it.DeliveredQty,
		).Scan(&it.ID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.ErrInvalidInput
			}
			return fmt.Errorf("insert withdrawal item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve el vale con sus items y materiales; nil si no existe.
func (r *WithdrawalRepo) GetByID(id int64) (*entity.Withdrawal, error) {
	// delivered_by y los campos SAP quedan NULL hasta la entrega/contabilización
	query := `
		SELECT id, employee_id, cost_center_id, warehouse_id, requested_by,
			COALESCE(delivered_by, ''), status, notes, sap_status,
			COALESCE(sap_document, ''), COALESCE(sap_year, ''), COALESCE(sap_message, ''),
			delivered_at, active, created_at, updated_at
		FROM withdrawals WHERE id = $1`
	var w entity.Withdrawal
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&w.ID, &w.EmployeeID, &w.CostCenterID, &w.WarehouseID, &w.RequestedBy, &w.DeliveredBy,
		&w.Status, &w.Notes, &w.SAPStatus, &w.SAPDocument, &w.SAPYear, &w.SAPMessage,
		&w.DeliveredAt, &w.Active, &w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get withdrawal: %w", err)
	}

	items, err := r.loadItems(w.ID)
	if err != nil {
		return nil, err
	}
	w.Items = items
	return &w, nil
}

func (r *WithdrawalRepo) loadItems(withdrawalID int64) ([]entity.WithdrawalItem, error) {
	query := `
		SELECT i.id, i.withdrawal_id, i.material_id, i.requested_qty, i.delivered_qty,
			m.id, m.code, m.description, m.sap_class, m.unit_measure, m.warehouse_id, m.active
		FROM withdrawal_items i
		JOIN materials m ON m.id = i.material_id
		WHERE i.withdrawal_id = $1
		ORDER BY i.id`
	rows, err := r.q.Query(context.Background(), query, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("list withdrawal items: %w", err)
	}
	defer rows.Close()

	var items []entity.WithdrawalItem
	for rows.Next() {
		var it entity.WithdrawalItem
		var m entity.Material
		if err := rows.Scan(
			&it.ID, &it.WithdrawalID, &it.MaterialID, &it.RequestedQty, &it.DeliveredQty,
			&m.ID, &m.Code, &m.Description, &m.SAPClass, &m.UnitMeasure, &m.WarehouseID, &m.Active,
		); err != nil {
			return nil, fmt.Errorf("scan withdrawal item: %w", err)
		}
		it.Material = &m
		items = append(items, it)
	}
	return items, rows.Err()
}

// List devuelve la página y el total de vales que cumplen el filtro (sin items).
func (r *WithdrawalRepo) List(f repository.WithdrawalFilter) ([]*entity.Withdrawal, int, error) {
	where := "WHERE active = true"
	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}
	if f.EmployeeID > 0 {
		args = append(args, f.EmployeeID)
		where += fmt.Sprintf(" AND employee_id = $%d", len(args))
	}

	var total int
	countQuery := "SELECT count(*) FROM withdrawals " + where
	if err := r.q.QueryRow(context.Background(), countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count withdrawals: %w", err)
	}

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit, f.Offset)
	query := fmt.Sprintf(`
		SELECT id, employee_id, cost_center_id, warehouse_id, requested_by,
			COALESCE(delivered_by, ''), status, notes, sap_status,
			COALESCE(sap_document, ''), COALESCE(sap_year, ''), COALESCE(sap_message, ''),
			delivered_at, active, created_at, updated_at
		FROM withdrawals %s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)-1, len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list withdrawals: %w", err)
	}
	defer rows.Close()

	var result []*entity.Withdrawal
	for rows.Next() {
		var w entity.Withdrawal
		if err := rows.Scan(
			&w.ID, &w.EmployeeID, &w.CostCenterID, &w.WarehouseID, &w.RequestedBy, &w.DeliveredBy,
			&w.Status, &w.Notes, &w.SAPStatus, &w.SAPDocument, &w.SAPYear, &w.SAPMessage,
			&w.DeliveredAt, &w.Active, &w.CreatedAt, &w.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan withdrawal: %w", err)
		}
		result = append(result, &w)
	}
	return result, total, rows.Err()
}

// Update persiste estado, datos de entrega y cantidades entregadas de los items.
func (r *WithdrawalRepo) Update(w *entity.Withdrawal) error {
	query := `
		UPDATE withdrawals
		SET status = $2, notes = $3, delivered_by = $4, delivered_at = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		w.ID, w.Status, w.Notes, w.DeliveredBy, w.DeliveredAt)
	if err != nil {
		return fmt.Errorf("update withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	itemQuery := `UPDATE withdrawal_items SET delivered_qty = $2 WHERE id = $1`
	for i := range w.Items {
		it := &w.Items[i]
		if _, err := r.q.Exec(context.Background(), itemQuery, it.ID, it.DeliveredQty); err != nil {
			return fmt.Errorf("update withdrawal item: %w", err)
		}
	}
	return nil
}

// UpdateSAPResult registra el resultado de la contabilización SAP del vale.
func (r *WithdrawalRepo) UpdateSAPResult(id int64, status, document, year, message string) error {
	query := `
		UPDATE withdrawals
		SET sap_status = $2, sap_document = $3, sap_year = $4, sap_message = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, status, document, year, message)
	if err != nil {
		return fmt.Errorf("update sap result: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Deactivate hace la baja lógica del vale.
func (r *WithdrawalRepo) Deactivate(id int64) error {
	query := `UPDATE withdrawals SET active = false, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("deactivate withdrawal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
