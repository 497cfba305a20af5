package repository

import "github.com/rioplatense/vsm-api/internal/domain/entity"

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(e *entity.Employee) error
	GetByID(id int64) (*entity.Employee, error)
	GetByLegajo(legajo int64) (*entity.Employee, error)
	Search(query string, limit int) ([]*entity.Employee, error)
}
