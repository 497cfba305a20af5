package sap_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rioplatense/vsm-api/internal/infrastructure/sap"
	"github.com/rioplatense/vsm-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func TestTransport_EnviaPOSTConBasicAuthYContentType(t *testing.T) {
	var gotUser, gotPass, gotContentType string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser, gotPass, _ = r.BasicAuth()
		gotContentType = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	tr := sap.NewTransport(srv.URL, sap.Credentials{Username: "comm_user", Password: "secreta"}, true, 5*time.Second)
	raw, err := tr.Send(context.Background(), "<xml/>")

	require.NoError(t, err)
	assert.Equal(t, "ok", raw)
	assert.Equal(t, "comm_user", gotUser)
	assert.Equal(t, "secreta", gotPass)
	assert.Equal(t, "text/xml; charset=utf-8", gotContentType)
}

func TestTransport_ProtocolErrorConStatusYCuerpo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("dump ABAP"))
	}))
	defer srv.Close()

	tr := sap.NewTransport(srv.URL, sap.Credentials{}, true, 5*time.Second)
	_, err := tr.Send(context.Background(), "<xml/>")

	var protoErr *sap.ProtocolError
	require.ErrorAs(t, err, &protoErr)
	assert.Equal(t, http.StatusInternalServerError, protoErr.Status)
	assert.Contains(t, protoErr.Body, "dump ABAP", "el error debe llevar el cuerpo para diagnóstico")
}

func TestTransport_TransportErrorSiServidorCaido(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // conexión rechazada

	tr := sap.NewTransport(srv.URL, sap.Credentials{}, true, 2*time.Second)
	_, err := tr.Send(context.Background(), "<xml/>")

	var trErr *sap.TransportError
	require.ErrorAs(t, err, &trErr)
}

func TestTransport_TransportErrorPorTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
	}))
	defer srv.Close()

	tr := sap.NewTransport(srv.URL, sap.Credentials{}, true, 50*time.Millisecond)
	_, err := tr.Send(context.Background(), "<xml/>")

	var trErr *sap.TransportError
	require.ErrorAs(t, err, &trErr, "un endpoint lento debe cortar por timeout, no bloquear al caller")
}

// ──────────────────────────────────────────────────────────────────────────────
// Cliente completo: sobre → HTTP → decodificación contra un gateway simulado
// ──────────────────────────────────────────────────────────────────────────────

func TestClient_CallRFC_DeExtremoAExtremo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml; charset=utf-8")
		_, _ = w.Write([]byte(soapResponse(`
			<E_RETURN>
				<item><MATNR>000123</MATNR><LABST>8.000</LABST><LGORT>1100</LGORT></item>
			</E_RETURN>`)))
	}))
	defer srv.Close()

	client := sap.NewClient(sap.Config{
		Endpoint:  srv.URL,
		Username:  "comm_user",
		Password:  "secreta",
		VerifyTLS: true,
		Timeout:   5 * time.Second,
	}, testLogger())

	result, err := client.CallRFC(context.Background(), "ZRFC_STOCK_SMARTSAFETY", sap.Struct{
		{Name: "I_WERKS", Value: "1000"},
	})

	require.NoError(t, err)
	rows := result.Table("T_STOCK", "STOCK", "E_RETURN")
	require.Len(t, rows, 1)
	assert.Equal(t, 8.0, rows[0]["LABST"].Float64())
}

func TestClient_CallRFC_ParametrosInvalidosNoLlamanAlGateway(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	client := sap.NewClient(sap.Config{Endpoint: srv.URL, VerifyTLS: true, Timeout: time.Second}, testLogger())
	_, err := client.CallRFC(context.Background(), "ZRFC_TEST", sap.Struct{
		{Name: "T_BAD", Value: sap.Table{sap.Table{}}},
	})

	var encErr *sap.EncodingError
	require.ErrorAs(t, err, &encErr)
	assert.Zero(t, calls, "un árbol mal formado debe fallar antes de tocar la red")
}
