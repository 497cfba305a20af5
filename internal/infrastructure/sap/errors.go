package sap

import "fmt"

// ── Taxonomía de errores de la integración SAP ────────────────────────────────
//
// TransportError  → fallo de red/TLS/timeout: la dependencia no está disponible.
// ProtocolError   → HTTP distinto de 200: la dependencia responde mal.
// MalformedResponseError → el XML no tiene la forma esperada: ruptura de contrato.
// EncodingError   → el caller armó parámetros con una forma no soportada: bug.

// TransportError fallo a nivel de red (conexión rechazada, DNS, TLS, timeout).
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("sap: fallo de transporte: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError respuesta HTTP con status distinto de 200.
// Body lleva un prefijo truncado de la respuesta para diagnóstico.
type ProtocolError struct {
	Status int
	Body   string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("sap: HTTP %d del gateway RFC: %s", e.Status, e.Body)
}

// MalformedResponseError la respuesta SOAP no respeta la estructura esperada
// (sin Body, Body vacío, XML inválido). Raw conserva el payload para log.
type MalformedResponseError struct {
	Reason string
	Raw    string
}

func (e *MalformedResponseError) Error() string {
	return "sap: respuesta malformada: " + e.Reason
}

// EncodingError el árbol de parámetros tiene una forma que el sobre SOAP-RFC
// no puede representar (ej: tabla dentro de tabla). Es un error de programación.
type EncodingError struct {
	Reason string
}

func (e *EncodingError) Error() string {
	return "sap: parámetros no codificables: " + e.Reason
}
