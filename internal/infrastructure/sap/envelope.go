package sap

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/beevik/etree"
)

const (
	nsSoapEnv = "http://schemas.xmlsoap.org/soap/envelope/"
	// Namespace de funciones RFC de SAP; se liga al elemento del RFC.
	nsSapRFC = "urn:sap-com:document:sap:rfc:functions"
)

// Los nombres de parámetro se vuelven nombres de elemento XML.
var elementNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_.-]*$`)

// BuildEnvelope serializa el nombre del RFC y su árbol de parámetros en un
// sobre SOAP 1.1. El texto de los nodos queda escapado por etree (el gateway
// acepta XML estándar; los valores con & o < no rompen el sobre).
func BuildEnvelope(rfcName string, params Struct) (string, error) {
	if !elementNameRe.MatchString(rfcName) {
		return "", &EncodingError{Reason: fmt.Sprintf("nombre de RFC inválido %q", rfcName)}
	}

	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	env := doc.CreateElement("soapenv:Envelope")
	env.CreateAttr("xmlns:soapenv", nsSoapEnv)
	env.CreateAttr("xmlns:urn", nsSapRFC)

	body := env.CreateElement("soapenv:Body")
	rfc := body.CreateElement("urn:" + rfcName)

	if err := appendStruct(rfc, params); err != nil {
		return "", err
	}

	doc.Indent(2)
	return doc.WriteToString()
}

// appendStruct agrega cada campo del Struct como elemento hijo de parent.
func appendStruct(parent *etree.Element, fields Struct) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if !elementNameRe.MatchString(f.Name) {
			return &EncodingError{Reason: fmt.Sprintf("nombre de parámetro inválido %q", f.Name)}
		}
		if _, dup := seen[f.Name]; dup {
			return &EncodingError{Reason: fmt.Sprintf("parámetro duplicado %q", f.Name)}
		}
		seen[f.Name] = struct{}{}

		el := parent.CreateElement(f.Name)
		if err := appendValue(el, f.Value); err != nil {
			return err
		}
	}
	return nil
}

func appendValue(el *etree.Element, value any) error {
	switch v := value.(type) {
	case Struct:
		return appendStruct(el, v)
	case Table:
		for _, row := range v {
			item := el.CreateElement("item")
			switch r := row.(type) {
			case Struct:
				if err := appendStruct(item, r); err != nil {
					return err
				}
			case Table:
				return &EncodingError{Reason: "tabla anidada dentro de una tabla"}
			default:
				text, err := scalarText(r)
				if err != nil {
					return err
				}
				item.SetText(text)
			}
		}
		return nil
	default:
		text, err := scalarText(v)
		if err != nil {
			return err
		}
		el.SetText(text)
		return nil
	}
}

// scalarText forma de texto de un valor escalar de parámetro.
func scalarText(v any) (string, error) {
	switch s := v.(type) {
	case string:
		return s, nil
	case bool:
		return strconv.FormatBool(s), nil
	case int:
		return strconv.Itoa(s), nil
	case int64:
		return strconv.FormatInt(s, 10), nil
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), nil
	case fmt.Stringer:
		return s.String(), nil
	default:
		return "", &EncodingError{Reason: fmt.Sprintf("valor de tipo %T no soportado", v)}
	}
}
