package core

import (
	"fmt"
	"strconv"
)

// ValueType tags the payload held by a Value
type ValueType uint8

const (
	TypeInt ValueType = iota
	TypeFloat
	TypeBool
	TypeString
)

func (t ValueType) String() string {
	switch t {
	case TypeInt:
		return "INT"
	case TypeFloat:
		return "FLOAT"
	case TypeBool:
		return "BOOL"
	case TypeString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// Value is a tagged event argument
// Only the field matching Type is meaningful
type Value struct {
	Type  ValueType
	Int   int64
	Float float64
	Bool  bool
	Str   string
}

// Int wraps an integer argument
func Int(v int) Value { return Value{Type: TypeInt, Int: int64(v)} }

// Float wraps a floating point argument
func Float(v float64) Value { return Value{Type: TypeFloat, Float: v} }

// Bool wraps a boolean argument
func Bool(v bool) Value { return Value{Type: TypeBool, Bool: v} }

// String wraps a string argument
func String(v string) Value { return Value{Type: TypeString, Str: v} }

// AsInt converts numeric and boolean payloads to int, strings are parsed
func (v Value) AsInt() int {
	switch v.Type {
	case TypeInt:
		return int(v.Int)
	case TypeFloat:
		return int(v.Float)
	case TypeBool:
		if v.Bool {
			return 1
		}
		return 0
	case TypeString:
		n, _ := strconv.Atoi(v.Str)
		return n
	}
	return 0
}

// AsFloat converts the payload to float64
func (v Value) AsFloat() float64 {
	if v.Type == TypeFloat {
		return v.Float
	}
	if v.Type == TypeString {
		f, _ := strconv.ParseFloat(v.Str, 64)
		return f
	}
	return float64(v.AsInt())
}

// AsBool reports the truthiness of the payload
func (v Value) AsBool() bool {
	switch v.Type {
	case TypeBool:
		return v.Bool
	case TypeString:
		return v.Str != ""
	}
	return v.AsFloat() != 0
}

func (v Value) String() string {
	switch v.Type {
	case TypeInt:
		return fmt.Sprintf("{INT %d}", v.Int)
	case TypeFloat:
		return fmt.Sprintf("{FLOAT %g}", v.Float)
	case TypeBool:
		return fmt.Sprintf("{BOOL %t}", v.Bool)
	case TypeString:
		return fmt.Sprintf("{STRING %q}", v.Str)
	}
	return "{UNKNOWN}"
}
