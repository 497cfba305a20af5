package sap

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rioplatense/vsm-api/pkg/logger"
)

// RFC de movimiento de inventario (entrega y anulación).
const rfcInventoryMove = "ZRFC_INOUT_SMARTSAFETY"

// Códigos de movimiento SAP.
const (
	// MovementIssue salida de mercadería por vale (201).
	MovementIssue = "201"
	// MovementIssueReversal anulación de una salida previa (202).
	MovementIssueReversal = "202"
)

// DeliveryHeader cabecera del posteo: quién retira, cuándo, contra qué vale y
// con qué código de movimiento.
type DeliveryHeader struct {
	EmployeeID   string // legajo, se rellena a 8 dígitos
	DeliveryDate time.Time
	DocumentID   string // id del vale local, se rellena a 3 dígitos
	MovementCode string // MovementIssue o MovementIssueReversal
}

// DeliveryItem renglón del posteo.
type DeliveryItem struct {
	MaterialCode string
	Plant        string
	Warehouse    string
	Quantity     decimal.Decimal
	CostCenter   string
}

// DeliveryResult resultado estructurado del posteo. Este borde nunca deja
// escapar un error de la integración SAP hacia el workflow: el caller decide
// con Success/Error si marca el vale como procesado o pendiente.
type DeliveryResult struct {
	Success        bool
	DocumentNumber string
	DocumentYear   string
	Message        string
	Error          string
}

// DeliveryService posteo de entregas al ERP: convierte cabecera y renglones
// del vale en parámetros RFC e interpreta el documento/mensaje devuelto.
type DeliveryService struct {
	rfc RFCCaller
	log *logger.Logger
}

// NewDeliveryService construye el servicio.
func NewDeliveryService(rfc RFCCaller, log *logger.Logger) *DeliveryService {
	return &DeliveryService{rfc: rfc, log: log}
}

// PostDelivery postea la entrega de un vale. Renglones con cantidad cero o
// negativa se filtran antes de llamar; si no queda ninguno, no se llama a SAP.
//
// El posteo NO es idempotente: repostear la misma entrega sin una anulación
// compensatoria duplica el movimiento de stock en el ERP.
func (s *DeliveryService) PostDelivery(ctx context.Context, header DeliveryHeader, items []DeliveryItem) DeliveryResult {
	filtered := make([]DeliveryItem, 0, len(items))
	for _, it := range items {
		if it.Quantity.GreaterThan(decimal.Zero) {
			filtered = append(filtered, it)
		}
	}
	if len(filtered) == 0 {
		return DeliveryResult{Success: false, Error: "no items with quantity"}
	}

	rows := make(Table, 0, len(filtered))
	for _, it := range filtered {
		rows = append(rows, Struct{
			{Name: "cod_mat", Value: it.MaterialCode},
			{Name: "centro", Value: it.Plant},
			{Name: "almacen", Value: it.Warehouse},
			{Name: "cantidad", Value: it.Quantity.StringFixed(3)},
			{Name: "kostl", Value: it.CostCenter},
		})
	}
	params := Struct{
		{Name: "I_CAB", Value: Struct{
			{Name: "legajo", Value: zeroPad(header.EmployeeID, 8)},
			{Name: "fecha", Value: header.DeliveryDate.Format("02.01.2006")},
			{Name: "id_doc", Value: zeroPad(header.DocumentID, 3)},
			{Name: "cod_mov", Value: header.MovementCode},
		}},
		{Name: "IT_ITEMS", Value: rows},
	}

	result, err := s.rfc.CallRFC(ctx, rfcInventoryMove, params)
	if err != nil {
		s.log.Error().Err(err).Str("rfc", rfcInventoryMove).Str("id_doc", header.DocumentID).
			Msg("posteo de entrega SAP fallido")
		return DeliveryResult{Success: false, Error: err.Error()}
	}
	return s.interpretReturn(result, header.DocumentID)
}

// ReverseDelivery postea los mismos renglones con el código de movimiento
// inverso para deshacer una entrega ya posteada. El caller solo debe invocarlo
// cuando conoce la referencia del documento previo, y si la anulación falla el
// registro local NO debe eliminarse ni finalizarse.
func (s *DeliveryService) ReverseDelivery(ctx context.Context, header DeliveryHeader, items []DeliveryItem) DeliveryResult {
	header.MovementCode = reverseMovement(header.MovementCode)
	return s.PostDelivery(ctx, header, items)
}

func reverseMovement(code string) string {
	switch code {
	case MovementIssue:
		return MovementIssueReversal
	case MovementIssueReversal:
		return MovementIssue
	default:
		return MovementIssueReversal
	}
}

// interpretReturn lee E_RETURN: con MAT_DOC y DOC_YEAR presentes el posteo fue
// exitoso; si no, el texto devuelto se reporta como mensaje de error.
func (s *DeliveryService) interpretReturn(result Result, docID string) DeliveryResult {
	values := returnValues(result)

	matDoc := strings.TrimSpace(values["MAT_DOC"].Str())
	docYear := strings.TrimSpace(values["DOC_YEAR"].Str())
	if matDoc != "" && docYear != "" {
		s.log.Info().Str("mat_doc", matDoc).Str("doc_year", docYear).Str("id_doc", docID).
			Msg("entrega posteada en SAP")
		return DeliveryResult{Success: true, DocumentNumber: matDoc, DocumentYear: docYear}
	}

	msg := returnMessage(values)
	s.log.Warn().Str("id_doc", docID).Str("mensaje", msg).Msg("SAP no devolvió documento de material")
	if msg == "" {
		msg = "SAP no devolvió documento de material"
	}
	return DeliveryResult{Success: false, Message: msg, Error: msg}
}

// returnValues aplana la variable E_RETURN: SAP la devuelve a veces como
// estructura y a veces como tabla de una fila.
func returnValues(result Result) map[string]Value {
	ret, ok := result["E_RETURN"]
	if !ok {
		return map[string]Value{}
	}
	switch ret.Kind {
	case KindStructure:
		return ret.Structure
	case KindTable:
		if len(ret.Rows) > 0 {
			return ret.Rows[0]
		}
	}
	return map[string]Value{}
}

// returnMessage extrae el texto de error de los campos de mensaje conocidos.
func returnMessage(values map[string]Value) string {
	for _, field := range []string{"MESSAGE", "MENSAJE", "TEXT", "E_MSG"} {
		if v, ok := values[field]; ok && !v.IsNone() {
			return v.Str()
		}
	}
	return ""
}
