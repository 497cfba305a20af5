package repository

import "github.com/rioplatense/vsm-api/internal/domain/entity"

// WarehouseRepository define el puerto de persistencia para Warehouse (DIP).
type WarehouseRepository interface {
	GetByID(id int64) (*entity.Warehouse, error)
	GetByCode(code string) (*entity.Warehouse, error)
	List() ([]*entity.Warehouse, error)
}
