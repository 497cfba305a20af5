package repository

import "github.com/rioplatense/vsm-api/internal/domain/entity"

// CostCenterRepository define el puerto de persistencia para CostCenter (DIP).
type CostCenterRepository interface {
	GetByID(id int64) (*entity.CostCenter, error)
	List() ([]*entity.CostCenter, error)
}
