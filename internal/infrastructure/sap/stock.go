package sap

import (
	"context"
	"strings"

	"github.com/rioplatense/vsm-api/pkg/logger"
)

// RFC de consulta de stock multi-material.
const rfcStockQuery = "ZRFC_STOCK_SMARTSAFETY"

// El backend no es consistente con el nombre de la tabla de salida; se busca
// en este orden fijo de prioridad.
var stockTableNames = []string{"T_STOCK", "STOCK", "E_RETURN"}

// StockService consulta de stock en SAP: una llamada multi-material y mapeo
// de vuelta por código normalizado.
//
// Degrada con disponibilidad: ante cualquier fallo de transporte o
// decodificación devuelve el mapa en cero y deja un warning en el log. El
// caller ve stock 0 (posiblemente desactualizado) en vez de un error; es un
// trade-off deliberado de disponibilidad sobre exactitud.
type StockService struct {
	rfc      RFCCaller
	log      *logger.Logger
	padWidth int
}

// NewStockService construye el servicio. padWidth es el ancho de relleno con
// ceros del MATNR en la consulta (viene de configuración; los sistemas SAP
// usan 10 o 18 según versión). Con padWidth 0 el código viaja tal cual.
func NewStockService(rfc RFCCaller, log *logger.Logger, padWidth int) *StockService {
	return &StockService{rfc: rfc, log: log, padWidth: padWidth}
}

// GetStock devuelve la cantidad disponible por código de material solicitado.
//
// Garantías:
//   - el mapa resultante tiene exactamente las claves pedidas (relleno en cero
//     por adelantado: un material ausente en la respuesta queda en 0);
//   - las claves son los códigos originales; la normalización (ceros a la
//     izquierda) solo se usa para el matching;
//   - varias filas del mismo material (lotes por depósito) se suman;
//   - filas de otro almacén se descartan (comparación case-insensitive).
func (s *StockService) GetStock(ctx context.Context, codes []string, warehouseID, plant string) map[string]int {
	stock := make(map[string]int, len(codes))
	byNorm := make(map[string]string, len(codes)) // código normalizado → original
	for _, code := range codes {
		stock[code] = 0
		byNorm[strings.TrimLeft(code, "0")] = code
	}
	if len(codes) == 0 {
		return stock
	}

	materials := make(Table, 0, len(codes))
	for _, code := range codes {
		materials = append(materials, Struct{{Name: "MATNR", Value: zeroPad(code, s.padWidth)}})
	}
	params := Struct{
		{Name: "I_WERKS", Value: plant},
		{Name: "I_LGORT", Value: warehouseID},
		{Name: "T_MATNR", Value: materials},
	}

	result, err := s.rfc.CallRFC(ctx, rfcStockQuery, params)
	if err != nil {
		s.log.Warn().Err(err).Str("rfc", rfcStockQuery).
			Msg("consulta de stock SAP fallida; se devuelve stock en cero")
		return stock
	}

	wantLgort := strings.TrimLeft(warehouseID, "0")
	for _, row := range result.Table(stockTableNames...) {
		// Filtro defensivo: el backend puede devolver la unión de almacenes.
		// Si la fila trae LGORT y no coincide con el pedido, se descarta. Un
		// LGORT de solo dígitos pierde los ceros a la izquierda al decodificar,
		// así que se comparan ambos lados sin ceros.
		if lgort := strings.TrimLeft(strings.TrimSpace(row["LGORT"].Str()), "0"); lgort != "" && !strings.EqualFold(lgort, wantLgort) {
			continue
		}
		matnr := strings.TrimLeft(strings.TrimSpace(row["MATNR"].Str()), "0")
		original, requested := byNorm[matnr]
		if !requested {
			continue
		}
		// LABST llega como decimal; aguas abajo son unidades enteras.
		stock[original] += int(row["LABST"].Float64())
	}
	return stock
}

// zeroPad rellena s con ceros a la izquierda hasta width. Si s ya es más
// largo, se devuelve intacto.
func zeroPad(s string, width int) string {
	if width <= len(s) {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
