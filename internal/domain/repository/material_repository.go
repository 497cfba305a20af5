package repository

import "github.com/rioplatense/vsm-api/internal/domain/entity"

// MaterialRepository define el puerto de persistencia para Material (DIP).
type MaterialRepository interface {
	Create(m *entity.Material) error
	GetByID(id int64) (*entity.Material, error)
	GetByCode(code string) (*entity.Material, error)
	// Search busca por código o descripción; costCenterID > 0 limita a los
	// materiales habilitados para ese centro de costo.
	Search(query string, costCenterID int64, limit int) ([]*entity.Material, error)
	ListByIDs(ids []int64) ([]*entity.Material, error)
	// IsAllowed indica si el material está habilitado para el centro de costo.
	IsAllowed(materialID, costCenterID int64) (bool, error)
}
