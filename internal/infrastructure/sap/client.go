package sap

import (
	"context"
	"time"

	"github.com/rioplatense/vsm-api/pkg/logger"
)

// RFCCaller puerto de salida hacia el ERP. Los adaptadores de stock y de
// entregas dependen de esta interfaz; en tests se inyecta un stub.
type RFCCaller interface {
	CallRFC(ctx context.Context, rfcName string, params Struct) (Result, error)
}

// Config parámetros de conexión de un cliente RFC. Viene de la configuración
// del proceso (pkg/config), nunca de constantes en el código.
type Config struct {
	Endpoint  string
	Username  string
	Password  string
	VerifyTLS bool
	Timeout   time.Duration
}

// Client tríada sobre/transporte/decodificador en una sola pieza. Reemplaza
// los clientes casi idénticos que antes vivían repartidos por cada call-site.
// No tiene estado mutable: llamadas concurrentes son independientes.
type Client struct {
	transport *Transport
	log       *logger.Logger
}

var _ RFCCaller = (*Client)(nil)

// NewClient construye el cliente RFC con su transporte.
func NewClient(cfg Config, log *logger.Logger) *Client {
	return &Client{
		transport: NewTransport(cfg.Endpoint, Credentials{Username: cfg.Username, Password: cfg.Password}, cfg.VerifyTLS, cfg.Timeout),
		log:       log,
	}
}

// CallRFC codifica la llamada, la envía y decodifica la respuesta.
// El sobre enviado y la respuesta cruda quedan en nivel trace para diagnóstico
// (reemplaza los modos debug/pretty-xml del sistema anterior).
func (c *Client) CallRFC(ctx context.Context, rfcName string, params Struct) (Result, error) {
	envelope, err := BuildEnvelope(rfcName, params)
	if err != nil {
		return nil, err
	}
	c.log.Trace().Str("rfc", rfcName).Str("envelope", envelope).Msg("sobre SOAP-RFC enviado")

	raw, err := c.transport.Send(ctx, envelope)
	if err != nil {
		return nil, err
	}
	c.log.Trace().Str("rfc", rfcName).Str("response", raw).Msg("respuesta SOAP-RFC recibida")

	result, err := DecodeResponse(raw)
	if err != nil {
		// El payload crudo va al log: una respuesta malformada es una ruptura
		// de contrato de datos y se diagnostica con el XML a la vista.
		c.log.Error().Str("rfc", rfcName).Str("raw", truncate(raw, 2048)).Err(err).Msg("respuesta SOAP-RFC malformada")
		return nil, err
	}
	return result, nil
}
