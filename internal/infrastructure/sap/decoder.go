package sap

import (
	"encoding/json"
	"html"
	"io"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

// DecodeResponse parsea el cuerpo crudo de la respuesta SOAP y clasifica cada
// variable de primer nivel del RFC como tabla, estructura o escalar.
//
// Reglas de clasificación (explícitas, no por inspección ad-hoc):
//   - Tabla: la variable tiene hijos y todos se llaman <item>.
//   - Estructura: la variable tiene hijos con otros nombres.
//   - Escalar: la variable no tiene hijos.
//
// Un <item> sin columnas (texto plano) produce una fila vacía: el formato de
// columnas es el único soportado y el caso se documenta en vez de decodificarse
// mal en silencio.
func DecodeResponse(raw string) (Result, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		return nil, &MalformedResponseError{Reason: "XML inválido: " + err.Error(), Raw: raw}
	}
	root := doc.Root()
	if root == nil {
		return nil, &MalformedResponseError{Reason: "documento sin elemento raíz", Raw: raw}
	}

	var body *etree.Element
	for _, ch := range root.ChildElements() {
		if ch.Tag == "Body" {
			body = ch
			break
		}
	}
	if body == nil {
		return nil, &MalformedResponseError{Reason: "sin <soap:Body> en la respuesta", Raw: raw}
	}

	// El Body debe tener exactamente un hijo: el wrapper de respuesta del RFC.
	wrappers := body.ChildElements()
	if len(wrappers) != 1 {
		return nil, &MalformedResponseError{
			Reason: "el Body debe tener exactamente un elemento de respuesta RFC, tiene " + strconv.Itoa(len(wrappers)),
			Raw:    raw,
		}
	}

	result := make(Result)
	for _, varElem := range wrappers[0].ChildElements() {
		result[varElem.Tag] = decodeVariable(varElem)
	}
	return result, nil
}

func decodeVariable(el *etree.Element) Variable {
	children := el.ChildElements()

	if len(children) > 0 && allItems(children) {
		rows := make([]map[string]Value, 0, len(children))
		for _, item := range children {
			row := make(map[string]Value)
			for _, col := range item.ChildElements() {
				row[col.Tag] = decodeScalar(col.Text())
			}
			rows = append(rows, row)
		}
		return Variable{Kind: KindTable, Rows: rows}
	}

	if len(children) > 0 {
		structure := make(map[string]Value, len(children))
		for _, sub := range children {
			structure[sub.Tag] = decodeScalar(sub.Text())
		}
		return Variable{Kind: KindStructure, Structure: structure}
	}

	return Variable{Kind: KindScalar, Scalar: decodeScalar(el.Text())}
}

func allItems(children []*etree.Element) bool {
	for _, ch := range children {
		if ch.Tag != "item" {
			return false
		}
	}
	return true
}

// decodeScalar aplica la regla de decodificación escalar al texto recortado.
// El orden es contractual:
//  1. desescapar entidades HTML (SAP incrusta JSON como &#34;...&#34;),
//  2. intento de parse JSON estricto,
//  3. solo dígitos decimales → entero,
//  4. parse de punto flotante,
//  5. el texto desescapado tal cual.
//
// Texto vacío o solo espacios decodifica al marcador None, no a "".
func decodeScalar(text string) Value {
	t := strings.TrimSpace(text)
	if t == "" {
		return None()
	}
	u := html.UnescapeString(t)

	if v, ok := tryJSON(u); ok {
		return v
	}
	if isDigits(u) {
		if n, err := strconv.ParseInt(u, 10, 64); err == nil {
			return Value{Type: TypeInt, raw: n}
		}
	}
	if f, err := strconv.ParseFloat(u, 64); err == nil {
		return Value{Type: TypeFloat, raw: f}
	}
	return Value{Type: TypeString, raw: u}
}

// tryJSON intenta un parse JSON estricto del texto completo. Devuelve ok=false
// si el texto no es JSON o si quedan tokens sin consumir ("5 unidades" no es
// el número 5).
func tryJSON(s string) (Value, bool) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return Value{}, false
	}
	if _, err := dec.Token(); err != io.EOF {
		return Value{}, false
	}
	return fromJSON(parsed), true
}

// fromJSON traduce el valor JSON parseado a un Value tipado. Los números se
// reparten entre int y float igual que las ramas 3/4 de la regla escalar, de
// modo que "5" decodifica al mismo entero por cualquiera de los dos caminos.
func fromJSON(parsed any) Value {
	switch v := parsed.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(v.String(), 10, 64); err == nil {
			return Value{Type: TypeInt, raw: n}
		}
		f, _ := v.Float64()
		return Value{Type: TypeFloat, raw: f}
	case string:
		return Value{Type: TypeString, raw: v}
	case bool:
		return Value{Type: TypeBool, raw: v}
	case nil:
		return None()
	default:
		// objeto o arreglo: se normalizan los json.Number internos a tipos nativos
		return Value{Type: TypeJSON, raw: normalizeJSON(v)}
	}
}

func normalizeJSON(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := strconv.ParseInt(t.String(), 10, 64); err == nil {
			return n
		}
		f, _ := t.Float64()
		return f
	case map[string]any:
		for k, sub := range t {
			t[k] = normalizeJSON(sub)
		}
		return t
	case []any:
		for i, sub := range t {
			t[i] = normalizeJSON(sub)
		}
		return t
	default:
		return v
	}
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
