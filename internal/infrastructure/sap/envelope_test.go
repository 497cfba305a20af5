package sap_test

import (
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplatense/vsm-api/internal/infrastructure/sap"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers: búsqueda por nombre local, independiente del prefijo de namespace
// ──────────────────────────────────────────────────────────────────────────────

func parseEnvelope(t *testing.T, xml string) *etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(xml), "el sobre generado debe ser XML bien formado")
	root := doc.Root()
	require.NotNil(t, root)
	return root
}

func findByTag(el *etree.Element, tag string) *etree.Element {
	if el.Tag == tag {
		return el
	}
	for _, ch := range el.ChildElements() {
		if found := findByTag(ch, tag); found != nil {
			return found
		}
	}
	return nil
}

func mustFind(t *testing.T, el *etree.Element, tag string) *etree.Element {
	t.Helper()
	found := findByTag(el, tag)
	require.NotNil(t, found, "el sobre debe contener el elemento %s", tag)
	return found
}

// ──────────────────────────────────────────────────────────────────────────────
// Construcción del sobre SOAP-RFC
// ──────────────────────────────────────────────────────────────────────────────

func TestBuildEnvelope_EscalaresYNamespace(t *testing.T) {
	xml, err := sap.BuildEnvelope("ZRFC_STOCK_SMARTSAFETY", sap.Struct{
		{Name: "I_WERKS", Value: "1000"},
		{Name: "I_LGORT", Value: "1100"},
	})
	require.NoError(t, err)

	root := parseEnvelope(t, xml)
	assert.Equal(t, "Envelope", root.Tag)

	body := mustFind(t, root, "Body")
	rfc := mustFind(t, body, "ZRFC_STOCK_SMARTSAFETY")
	assert.Equal(t, "urn", rfc.Space, "el RFC debe ir en el namespace urn:sap-com:document:sap:rfc:functions")

	assert.Equal(t, "1000", mustFind(t, rfc, "I_WERKS").Text())
	assert.Equal(t, "1100", mustFind(t, rfc, "I_LGORT").Text())
}

func TestBuildEnvelope_TablaDeEstructuras(t *testing.T) {
	xml, err := sap.BuildEnvelope("ZRFC_STOCK_SMARTSAFETY", sap.Struct{
		{Name: "T_MATNR", Value: sap.Table{
			sap.Struct{{Name: "MATNR", Value: "000123"}},
			sap.Struct{{Name: "MATNR", Value: "000456"}},
		}},
	})
	require.NoError(t, err)

	table := mustFind(t, parseEnvelope(t, xml), "T_MATNR")
	items := table.ChildElements()
	require.Len(t, items, 2, "cada fila de la tabla debe ser un <item>")
	assert.Equal(t, "item", items[0].Tag)
	assert.Equal(t, "000123", mustFind(t, items[0], "MATNR").Text())
	assert.Equal(t, "000456", mustFind(t, items[1], "MATNR").Text())
}

func TestBuildEnvelope_TablaDeEscalares(t *testing.T) {
	xml, err := sap.BuildEnvelope("ZRFC_TEST", sap.Struct{
		{Name: "T_CODES", Value: sap.Table{"A1", "B2"}},
	})
	require.NoError(t, err)

	table := mustFind(t, parseEnvelope(t, xml), "T_CODES")
	items := table.ChildElements()
	require.Len(t, items, 2)
	assert.Equal(t, "A1", items[0].Text())
	assert.Equal(t, "B2", items[1].Text())
}

func TestBuildEnvelope_EstructuraAnidada(t *testing.T) {
	xml, err := sap.BuildEnvelope("ZRFC_INOUT_SMARTSAFETY", sap.Struct{
		{Name: "I_CAB", Value: sap.Struct{
			{Name: "legajo", Value: "00001234"},
			{Name: "cod_mov", Value: "201"},
		}},
	})
	require.NoError(t, err)

	cab := mustFind(t, parseEnvelope(t, xml), "I_CAB")
	assert.Equal(t, "00001234", mustFind(t, cab, "legajo").Text())
	assert.Equal(t, "201", mustFind(t, cab, "cod_mov").Text())
}

// El texto de los nodos debe quedar escapado: un valor con & o < no puede
// romper el sobre.
func TestBuildEnvelope_EscapaTexto(t *testing.T) {
	xml, err := sap.BuildEnvelope("ZRFC_TEST", sap.Struct{
		{Name: "I_TEXT", Value: "tuercas <m8> & arandelas"},
	})
	require.NoError(t, err)

	el := mustFind(t, parseEnvelope(t, xml), "I_TEXT")
	assert.Equal(t, "tuercas <m8> & arandelas", el.Text(),
		"el texto debe sobrevivir el round-trip XML intacto")
}

// ── Formas no soportadas → EncodingError ──────────────────────────────────────

func TestBuildEnvelope_ErrorTablaAnidada(t *testing.T) {
	_, err := sap.BuildEnvelope("ZRFC_TEST", sap.Struct{
		{Name: "T_BAD", Value: sap.Table{sap.Table{"x"}}},
	})
	var encErr *sap.EncodingError
	require.ErrorAs(t, err, &encErr, "una lista de listas debe fallar con EncodingError")
}

func TestBuildEnvelope_ErrorNombreInvalido(t *testing.T) {
	_, err := sap.BuildEnvelope("ZRFC_TEST", sap.Struct{
		{Name: "mal nombre", Value: "x"},
	})
	var encErr *sap.EncodingError
	require.ErrorAs(t, err, &encErr)
}

func TestBuildEnvelope_ErrorNombreDuplicado(t *testing.T) {
	_, err := sap.BuildEnvelope("ZRFC_TEST", sap.Struct{
		{Name: "I_WERKS", Value: "1000"},
		{Name: "I_WERKS", Value: "2000"},
	})
	var encErr *sap.EncodingError
	require.ErrorAs(t, err, &encErr, "dos parámetros hermanos no pueden compartir nombre")
}

func TestBuildEnvelope_ErrorValorNoSoportado(t *testing.T) {
	_, err := sap.BuildEnvelope("ZRFC_TEST", sap.Struct{
		{Name: "I_BAD", Value: struct{ X int }{1}},
	})
	var encErr *sap.EncodingError
	require.ErrorAs(t, err, &encErr)
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip: codificar un árbol y decodificar una respuesta sintética con la
// misma forma debe recuperar la clasificación Tabla/Estructura/Escalar.
// ──────────────────────────────────────────────────────────────────────────────

func TestRoundTrip_ClasificacionRecuperada(t *testing.T) {
	params := sap.Struct{
		{Name: "E_COUNT", Value: 3},
		{Name: "E_CAB", Value: sap.Struct{
			{Name: "MAT_DOC", Value: "5000123456"},
			{Name: "DOC_YEAR", Value: "2025"},
		}},
		{Name: "T_STOCK", Value: sap.Table{
			sap.Struct{{Name: "MATNR", Value: "000123"}, {Name: "LABST", Value: "5.000"}},
		}},
	}

	// El sobre de un RFC tiene la misma forma que una respuesta de RFC:
	// Body → wrapper → variables. Se decodifica el sobre generado tal cual.
	xml, err := sap.BuildEnvelope("ZRFC_TEST_RESPONSE", params)
	require.NoError(t, err)

	result, err := sap.DecodeResponse(xml)
	require.NoError(t, err)

	require.Contains(t, result, "E_COUNT")
	assert.Equal(t, sap.KindScalar, result["E_COUNT"].Kind)
	assert.Equal(t, int64(3), result["E_COUNT"].Scalar.Int64())

	require.Contains(t, result, "E_CAB")
	assert.Equal(t, sap.KindStructure, result["E_CAB"].Kind)
	assert.Equal(t, "5000123456", result["E_CAB"].Structure["MAT_DOC"].Str())

	require.Contains(t, result, "T_STOCK")
	assert.Equal(t, sap.KindTable, result["T_STOCK"].Kind)
	require.Len(t, result["T_STOCK"].Rows, 1)
	assert.Equal(t, 5.0, result["T_STOCK"].Rows[0]["LABST"].Float64())
}
