package sap

import (
	"context"
	"crypto/tls"
	"io"
	"net/http"
	"strings"
	"time"
)

// maxResponseBytes techo de lectura de la respuesta del gateway (las tablas
// de stock reales rondan los KB; 4 MB da margen sin arriesgar la memoria).
const maxResponseBytes = 4 << 20

// Credentials credenciales HTTP Basic del usuario de comunicación SAP.
type Credentials struct {
	Username string
	Password string
}

// Transport POST HTTPS hacia el gateway SOAP-RFC. Una llamada, una respuesta;
// sin reintentos (la política de retry es del caller y debe considerar que el
// posteo de movimientos no es idempotente).
type Transport struct {
	url    string
	creds  Credentials
	client *http.Client
}

// NewTransport construye el transporte. verifyTLS en false solo para endpoints
// internos con certificado autofirmado; el default de configuración es true.
func NewTransport(url string, creds Credentials, verifyTLS bool, timeout time.Duration) *Transport {
	tr := &http.Transport{}
	if !verifyTLS {
		tr.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	return &Transport{
		url:   url,
		creds: creds,
		client: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
	}
}

// Send envía el sobre XML y devuelve el cuerpo crudo de la respuesta.
// TransportError ante fallo de red/TLS/timeout; ProtocolError si el status
// HTTP no es 200.
func (t *Transport) Send(ctx context.Context, xmlBody string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, strings.NewReader(xmlBody))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	req.Header.Set("Content-Type", "text/xml; charset=utf-8")
	req.SetBasicAuth(t.creds.Username, t.creds.Password)

	resp, err := t.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &ProtocolError{Status: resp.StatusCode, Body: truncate(string(raw), 2048)}
	}
	return string(raw), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}
