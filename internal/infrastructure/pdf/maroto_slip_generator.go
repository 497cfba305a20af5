// Package pdf implementa la generación del comprobante impreso del vale de
// retiro de materiales (copia para el pañol y para el empleado).
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa / Pañol  │  N° Vale + Fecha                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RETIRANTE: Nombre + Legajo + Centro de costo               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Código | Descripción | Unidad                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SAP: documento de material + ejercicio (si contabilizó)    │
//	│  FIRMAS: entrega / recibe                                   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	appwithdrawal "github.com/rioplatense/vsm-api/internal/application/withdrawal"
	"github.com/rioplatense/vsm-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSlipGenerator implementa withdrawal.SlipGenerator usando Maroto v2.
type MarotoSlipGenerator struct{}

// NewMarotoSlipGenerator construye el generador.
func NewMarotoSlipGenerator() *MarotoSlipGenerator { return &MarotoSlipGenerator{} }

var _ appwithdrawal.SlipGenerator = (*MarotoSlipGenerator)(nil)

// GenerateSlip genera el comprobante del vale y devuelve sus bytes.
func (g *MarotoSlipGenerator) GenerateSlip(
	_ context.Context,
	w *entity.Withdrawal,
	emp *entity.Employee,
	cc *entity.CostCenter,
	wh *entity.Warehouse,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Vale de retiro N° %d", w.ID), true).
		WithAuthor(wh.Company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(w, wh))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(employeeRow(emp, cc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableItemRows(w.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(sapRow(w))
	m.AddRows(line.NewRow(6))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar comprobante: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa + pañol (izq) y N° de vale + fecha (der).
func headerRow(w *entity.Withdrawal, wh *entity.Warehouse) core.Row {
	fecha := w.CreatedAt.Format("02/01/2006 15:04")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(wh.Company, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Pañol: %s (%s / centro %s)", wh.Name, wh.Code, wh.Plant), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("VALE DE RETIRO DE MATERIALES", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("N° %d", w.ID), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// employeeRow: datos del retirante y centro de costo imputado.
func employeeRow(emp *entity.Employee, cc *entity.CostCenter) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("RETIRANTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(emp.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Legajo: %d   |   Centro de costo: %s (%s)",
				emp.Legajo, cc.Code, cc.Description,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Código", 2, align.Left),
		h("Descripción del material", 6, align.Left),
		h("Unidad", 2, align.Center),
	)
}

// tableItemRows: una fila por línea del vale; muestra la cantidad entregada
// si el vale ya se entregó, la pedida si sigue pendiente.
func tableItemRows(items []entity.WithdrawalItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty := it.RequestedQty
		if it.DeliveredQty.IsPositive() {
			qty = it.DeliveredQty
		}
		codeStr, desc, unit := "", "", ""
		if it.Material != nil {
			codeStr, desc, unit = it.Material.Code, it.Material.Description, it.Material.UnitMeasure
		}
		result = append(result, row.New(7).Add(
			col.New(2).Add(text.New(
				qty.StringFixed(3),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(2).Add(text.New(
				codeStr,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(6).Add(text.New(
				desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				unit,
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
		))
	}
	return result
}

// sapRow: referencia del documento de material SAP + QR con el número de vale.
func sapRow(w *entity.Withdrawal) core.Row {
	sapText := "Movimiento SAP pendiente de contabilización"
	if w.SAPStatus == entity.SAPProcessed {
		sapText = fmt.Sprintf("Documento de material SAP: %s / %s", w.SAPDocument, w.SAPYear)
	} else if w.SAPStatus == entity.SAPError {
		sapText = "Contabilización SAP con error; ver detalle en el sistema"
	}

	return row.New(24).Add(
		col.New(4).Add(code.NewQr(fmt.Sprintf("VSM|%d|%s", w.ID, w.Status), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New("CONTABILIZACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 3,
			}),
			text.New(sapText, props.Text{Size: 8, Top: 8, Left: 3, Color: colorGray}),
		),
	)
}

// signatureRow: líneas de firma para quien entrega y quien recibe.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("______________________________", props.Text{
				Size: 9, Align: align.Center, Top: 2,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 8, Color: colorGray,
			}),
		)
	}
	return row.New(14).Add(
		sig("Entregó (pañol)"),
		sig("Recibió (retirante)"),
	)
}
