package withdrawal

import (
	"context"

	"github.com/rioplatense/vsm-api/internal/domain/entity"
	"github.com/rioplatense/vsm-api/internal/domain/repository"
	"github.com/rioplatense/vsm-api/internal/infrastructure/sap"
)

// TxRunner puerto para ejecutar operaciones de persistencia en una transacción.
// La implementación concreta (postgres.TxRunner) inyecta repos atados a la tx.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		wRepo repository.WithdrawalRepository,
		matRepo repository.MaterialRepository,
	) error) error
}

// DeliveryPoster puerto hacia SAP para contabilizar y anular entregas.
// Los fallos llegan como DeliveryResult con Success=false, nunca como error.
type DeliveryPoster interface {
	PostDelivery(ctx context.Context, header sap.DeliveryHeader, items []sap.DeliveryItem) sap.DeliveryResult
	ReverseDelivery(ctx context.Context, header sap.DeliveryHeader, items []sap.DeliveryItem) sap.DeliveryResult
}

// SlipGenerator puerto para generar el comprobante impreso del vale.
type SlipGenerator interface {
	GenerateSlip(ctx context.Context, w *entity.Withdrawal, emp *entity.Employee,
		cc *entity.CostCenter, wh *entity.Warehouse) ([]byte, error)
}
