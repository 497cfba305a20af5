// Package sap implementa el puente SOAP-RFC contra el ERP: construcción del
// sobre XML, transporte HTTPS con basic auth y decodificación de respuestas
// heterogéneas (tablas de <item>, estructuras, escalares y JSON incrustado).
package sap

import (
	"strconv"
	"strings"
)

// ── Parámetros de entrada del RFC ─────────────────────────────────────────────

// Field par nombre→valor de un parámetro o de un campo de estructura.
// Value acepta: escalares (string, bool, enteros, float64, fmt.Stringer),
// Struct anidado o Table. Cualquier otra forma produce EncodingError al
// construir el sobre.
type Field struct {
	Name  string
	Value any
}

// Struct conjunto ordenado de campos. Se usa tanto para los parámetros de
// primer nivel del RFC como para estructuras anidadas (ej: I_CAB).
// El orden se conserva: los nombres se vuelven elementos XML hermanos.
type Struct []Field

// Table tabla interna SAP: secuencia de filas que se serializan como <item>.
// Cada fila es un Struct (columnas con nombre) o un escalar (texto del item).
type Table []any

// ── Resultado decodificado ────────────────────────────────────────────────────

// Kind clasificación de una variable de la respuesta RFC.
type Kind int

const (
	// KindScalar la variable no tiene hijos: un solo valor de texto.
	KindScalar Kind = iota
	// KindStructure la variable tiene hijos con nombres propios.
	KindStructure
	// KindTable todos los hijos de la variable se llaman <item>.
	KindTable
)

// ValueType tipo inferido de un escalar decodificado.
type ValueType int

const (
	// TypeNone texto vacío o solo espacios: marcador explícito de "sin valor".
	TypeNone ValueType = iota
	TypeInt
	TypeFloat
	TypeString
	TypeBool
	// TypeJSON objeto o arreglo JSON incrustado en el texto del nodo.
	TypeJSON
)

// Value escalar decodificado con su tipo inferido. Los accesores son
// tolerantes: piden el valor en la representación que el caller necesita
// sin obligarlo a conocer el tipo exacto que devolvió SAP.
type Value struct {
	Type ValueType
	raw  any
}

// None marcador de "sin valor" (texto vacío en el XML).
func None() Value { return Value{Type: TypeNone} }

// IsNone reporta si el valor es el marcador de "sin valor".
func (v Value) IsNone() bool { return v.Type == TypeNone }

// Int64 devuelve el valor como entero. Los float se truncan (SAP representa
// stock con decimales que aguas abajo se tratan como unidades enteras).
func (v Value) Int64() int64 {
	switch v.Type {
	case TypeInt:
		return v.raw.(int64)
	case TypeFloat:
		return int64(v.raw.(float64))
	case TypeString:
		n, _ := strconv.ParseInt(strings.TrimSpace(v.raw.(string)), 10, 64)
		return n
	default:
		return 0
	}
}

// Float64 devuelve el valor como float64.
func (v Value) Float64() float64 {
	switch v.Type {
	case TypeInt:
		return float64(v.raw.(int64))
	case TypeFloat:
		return v.raw.(float64)
	case TypeString:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v.raw.(string)), 64)
		return f
	default:
		return 0
	}
}

// Str devuelve la representación de texto del valor. Para TypeNone es "".
func (v Value) Str() string {
	switch v.Type {
	case TypeString:
		return v.raw.(string)
	case TypeInt:
		return strconv.FormatInt(v.raw.(int64), 10)
	case TypeFloat:
		return strconv.FormatFloat(v.raw.(float64), 'f', -1, 64)
	case TypeBool:
		return strconv.FormatBool(v.raw.(bool))
	default:
		return ""
	}
}

// Bool devuelve el valor booleano (solo significativo para TypeBool).
func (v Value) Bool() bool {
	b, _ := v.raw.(bool)
	return b
}

// Any devuelve el valor crudo decodificado (map[string]any / []any para JSON).
func (v Value) Any() any { return v.raw }

// Variable una variable de primer nivel de la respuesta RFC, ya clasificada.
// Exactamente uno de Scalar / Structure / Rows es significativo según Kind.
type Variable struct {
	Kind      Kind
	Scalar    Value
	Structure map[string]Value
	Rows      []map[string]Value
}

// Result mapa nombre de variable → variable decodificada.
type Result map[string]Variable

// Table devuelve las filas de la primera variable de nombres candidatos que
// exista y sea tabla. SAP no es consistente con el nombre de la tabla de
// salida, así que los adaptadores consultan una lista de prioridad.
func (r Result) Table(names ...string) []map[string]Value {
	for _, name := range names {
		if v, ok := r[name]; ok && v.Kind == KindTable {
			return v.Rows
		}
	}
	return nil
}
