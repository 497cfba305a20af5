package repository

import "github.com/rioplatense/vsm-api/internal/domain/entity"

// WithdrawalFilter criterios de listado paginado de vales.
type WithdrawalFilter struct {
	Status     string // vacío = todos
	EmployeeID int64  // 0 = todos
	Limit      int
	Offset     int
}

// WithdrawalRepository define el puerto de persistencia para Withdrawal (DIP).
type WithdrawalRepository interface {
	// Create inserta cabecera e items en una sola transacción y asigna los IDs.
	Create(w *entity.Withdrawal) error
	// GetByID devuelve el vale con sus items y materiales; nil si no existe.
	GetByID(id int64) (*entity.Withdrawal, error)
	// List devuelve la página y el total de vales que cumplen el filtro.
	List(f WithdrawalFilter) ([]*entity.Withdrawal, int, error)
	// Update persiste estado, cantidades entregadas y datos de entrega.
	Update(w *entity.Withdrawal) error
	// UpdateSAPResult registra el resultado de la contabilización SAP.
	UpdateSAPResult(id int64, status, document, year, message string) error
	// Deactivate hace la baja lógica del vale.
	Deactivate(id int64) error
}
