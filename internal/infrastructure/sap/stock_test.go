package sap_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplatense/vsm-api/internal/infrastructure/sap"
)

// rfcStub implementación de RFCCaller para los adaptadores. Las respuestas se
// construyen decodificando XML sintético, igual que en producción.
type rfcStub struct {
	calls      int
	lastRFC    string
	lastParams sap.Struct
	result     sap.Result
	err        error
}

func (s *rfcStub) CallRFC(_ context.Context, rfcName string, params sap.Struct) (sap.Result, error) {
	s.calls++
	s.lastRFC = rfcName
	s.lastParams = params
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func resultFromXML(t *testing.T, vars string) sap.Result {
	t.Helper()
	result, err := sap.DecodeResponse(soapResponse(vars))
	require.NoError(t, err)
	return result
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta de stock
// ──────────────────────────────────────────────────────────────────────────────

func TestGetStock_RellenoEnCeroCompleto(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `<E_RETURN></E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123", "456", "789"}, "1100", "1000")

	// El conjunto de claves es exactamente el pedido, aunque SAP no devuelva nada.
	require.Len(t, stock, 3)
	assert.Equal(t, 0, stock["123"])
	assert.Equal(t, 0, stock["456"])
	assert.Equal(t, 0, stock["789"])
}

func TestGetStock_SumaLotesDelMismoMaterial(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `
		<E_RETURN>
			<item><MATNR>000123</MATNR><LABST>5.000</LABST><LGORT>1100</LGORT></item>
			<item><MATNR>000123</MATNR><LABST>3.000</LABST><LGORT>1100</LGORT></item>
		</E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123"}, "1100", "1000")

	assert.Equal(t, 8, stock["123"], "varios lotes del mismo material se suman")
}

// La normalización de ceros a la izquierda solo afecta el matching; la clave
// devuelta es el código original.
func TestGetStock_NormalizacionDeCeros(t *testing.T) {
	vars := `
		<E_RETURN>
			<item><MATNR>000000000000000007</MATNR><LABST>4.000</LABST><LGORT>G001</LGORT></item>
		</E_RETURN>`

	stubA := &rfcStub{result: resultFromXML(t, vars)}
	stockA := sap.NewStockService(stubA, testLogger(), 18).
		GetStock(context.Background(), []string{"007"}, "G001", "1001")
	assert.Equal(t, 4, stockA["007"], "«007» debe matchear la misma fila del backend")

	stubB := &rfcStub{result: resultFromXML(t, vars)}
	stockB := sap.NewStockService(stubB, testLogger(), 18).
		GetStock(context.Background(), []string{"7"}, "G001", "1001")
	assert.Equal(t, 4, stockB["7"], "«7» debe matchear la misma fila del backend")
}

func TestGetStock_FiltraFilasDeOtroAlmacen(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `
		<E_RETURN>
			<item><MATNR>000123</MATNR><LABST>5.000</LABST><LGORT>1100</LGORT></item>
			<item><MATNR>000123</MATNR><LABST>9.000</LABST><LGORT>2200</LGORT></item>
		</E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123"}, "1100", "1000")

	assert.Equal(t, 5, stock["123"], "las filas de otro almacén se descartan")
}

func TestGetStock_AlmacenCaseInsensitive(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `
		<E_RETURN>
			<item><MATNR>000123</MATNR><LABST>5.000</LABST><LGORT>g001</LGORT></item>
		</E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123"}, "G001", "1001")

	assert.Equal(t, 5, stock["123"])
}

// Un LGORT de solo dígitos pierde los ceros a la izquierda al decodificar
// («0001» llega como 1); el filtro no debe descartar esas filas.
func TestGetStock_AlmacenConCerosALaIzquierda(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `
		<E_RETURN>
			<item><MATNR>000123</MATNR><LABST>5.000</LABST><LGORT>0001</LGORT></item>
			<item><MATNR>000123</MATNR><LABST>9.000</LABST><LGORT>0002</LGORT></item>
		</E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123"}, "0001", "1000")

	assert.Equal(t, 5, stock["123"], "el almacén pedido «0001» debe matchear la fila LGORT 0001")
}

// El backend no es consistente con el nombre de la tabla: T_STOCK, STOCK y
// E_RETURN se prueban en ese orden.
func TestGetStock_PrioridadDeNombresDeTabla(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `
		<T_STOCK>
			<item><MATNR>000123</MATNR><LABST>6.000</LABST><LGORT>1100</LGORT></item>
		</T_STOCK>
		<E_RETURN>
			<item><MATNR>000123</MATNR><LABST>99.000</LABST><LGORT>1100</LGORT></item>
		</E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123"}, "1100", "1000")

	assert.Equal(t, 6, stock["123"], "T_STOCK tiene prioridad sobre E_RETURN")
}

// Las cantidades decimales se truncan a unidades enteras.
func TestGetStock_TruncaDecimales(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `
		<E_RETURN>
			<item><MATNR>000123</MATNR><LABST>7.900</LABST><LGORT>1100</LGORT></item>
		</E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123"}, "1100", "1000")

	assert.Equal(t, 7, stock["123"])
}

// Degradación: ante fallo de transporte se devuelve el mapa en cero, no un error.
func TestGetStock_FalloDeTransporteDevuelveCeros(t *testing.T) {
	stub := &rfcStub{err: &sap.TransportError{Err: context.DeadlineExceeded}}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), []string{"123", "456"}, "1100", "1000")

	require.Len(t, stock, 2)
	assert.Equal(t, 0, stock["123"])
	assert.Equal(t, 0, stock["456"])
}

// Los parámetros del RFC llevan los nombres contractuales y el MATNR acolchado
// al ancho configurado.
func TestGetStock_ParametrosDelRFC(t *testing.T) {
	stub := &rfcStub{result: resultFromXML(t, `<E_RETURN></E_RETURN>`)}
	svc := sap.NewStockService(stub, testLogger(), 10)

	svc.GetStock(context.Background(), []string{"123"}, "1100", "1000")

	require.Equal(t, 1, stub.calls)
	assert.Equal(t, "ZRFC_STOCK_SMARTSAFETY", stub.lastRFC)

	require.Len(t, stub.lastParams, 3)
	assert.Equal(t, "I_WERKS", stub.lastParams[0].Name)
	assert.Equal(t, "1000", stub.lastParams[0].Value)
	assert.Equal(t, "I_LGORT", stub.lastParams[1].Name)
	assert.Equal(t, "1100", stub.lastParams[1].Value)
	assert.Equal(t, "T_MATNR", stub.lastParams[2].Name)

	rows, ok := stub.lastParams[2].Value.(sap.Table)
	require.True(t, ok)
	require.Len(t, rows, 1)
	row, ok := rows[0].(sap.Struct)
	require.True(t, ok)
	assert.Equal(t, "MATNR", row[0].Name)
	assert.Equal(t, "0000000123", row[0].Value, "el código viaja acolchado a 10 dígitos")
}

func TestGetStock_SinCodigosNoLlamaASAP(t *testing.T) {
	stub := &rfcStub{}
	svc := sap.NewStockService(stub, testLogger(), 0)

	stock := svc.GetStock(context.Background(), nil, "1100", "1000")

	assert.Empty(t, stock)
	assert.Zero(t, stub.calls)
}
