package ecs

import (
	"fmt"
	"strconv"
	"strings"
)

// DataKind enumerates the variants of Data.
type DataKind uint8

const (
	KindEmpty DataKind = iota
	KindNumber
	KindString
	KindBoolean
	KindList
	KindEntity
	KindFromProperty
	KindScript
)

var kindNames = [...]string{
	KindEmpty:        "empty",
	KindNumber:       "number",
	KindString:       "string",
	KindBoolean:      "boolean",
	KindList:         "list",
	KindEntity:       "entity",
	KindFromProperty: "fromProperty",
	KindScript:       "script",
}

func (k DataKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "DataKind(" + strconv.Itoa(int(k)) + ")"
}

// Data is a single field value stored in a component. The zero value is Empty.
type Data struct {
	kind   DataKind
	num    float64
	str    string
	b      bool
	list   []Data
	entity EntityId
}

// Empty returns the empty value.
func Empty() Data { return Data{} }

// Number wraps a float64.
func Number(v float64) Data { return Data{kind: KindNumber, num: v} }

// String wraps a string.
func String(v string) Data { return Data{kind: KindString, str: v} }

// Boolean wraps a bool.
func Boolean(v bool) Data { return Data{kind: KindBoolean, b: v} }

// List wraps an ordered list of values.
func List(items ...Data) Data { return Data{kind: KindList, list: items} }

// Entity references an entity.
func Entity(id EntityId) Data { return Data{kind: KindEntity, entity: id} }

// FromProperty defers the value to the named property of the owning entity.
func FromProperty(name string) Data { return Data{kind: KindFromProperty, str: name} }

// Script holds script source evaluated at runtime.
func Script(code string) Data { return Data{kind: KindScript, str: code} }

// Kind returns the variant held by d.
func (d Data) Kind() DataKind { return d.kind }

// IsEmpty reports whether d is the empty value.
func (d Data) IsEmpty() bool { return d.kind == KindEmpty }

// AsNumber returns the number held by d; ok is false for any other kind.
func (d Data) AsNumber() (float64, bool) { return d.num, d.kind == KindNumber }

func (d Data) AsString() (string, bool) { return d.str, d.kind == KindString }

func (d Data) AsBoolean() (bool, bool) { return d.b, d.kind == KindBoolean }

// AsList returns the items of a list. The slice is shared with d.
func (d Data) AsList() ([]Data, bool) { return d.list, d.kind == KindList }

func (d Data) AsEntity() (EntityId, bool) { return d.entity, d.kind == KindEntity }

// AsFromProperty returns the property name a FromProperty value defers to.
func (d Data) AsFromProperty() (string, bool) { return d.str, d.kind == KindFromProperty }

func (d Data) AsScript() (string, bool) { return d.str, d.kind == KindScript }

// Equal reports whether both values have the same kind and contents.
func (d Data) Equal(other Data) bool {
	if d.kind != other.kind {
		return false
	}
	switch d.kind {
	case KindEmpty:
		return true
	case KindNumber:
		return d.num == other.num
	case KindBoolean:
		return d.b == other.b
	case KindEntity:
		return d.entity == other.entity
	case KindList:
		if len(d.list) != len(other.list) {
			return false
		}
		for i := range d.list {
			if !d.list[i].Equal(other.list[i]) {
				return false
			}
		}
		return true
	default:
		return d.str == other.str
	}
}

// String formats d for logs and debug views.
func (d Data) String() string {
	switch d.kind {
	case KindEmpty:
		return "<empty>"
	case KindNumber:
		return strconv.FormatFloat(d.num, 'g', -1, 64)
	case KindString:
		return strconv.Quote(d.str)
	case KindBoolean:
		return strconv.FormatBool(d.b)
	case KindEntity:
		return fmt.Sprintf("entity#%d", d.entity)
	case KindFromProperty:
		return "property(" + d.str + ")"
	case KindScript:
		return "script(" + d.str + ")"
	case KindList:
		parts := make([]string, len(d.list))
		for i, item := range d.list {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return d.kind.String()
}
