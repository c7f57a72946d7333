package object

import (
	"encoding/json"
	"fmt"
	"strings"
)

// String wraps string and implements the Object interface.
type String struct {
	value string
}

func (s *String) Type() Type {
	return STRING
}

func (s *String) Value() string {
	return s.value
}

func (s *String) Inspect() string {
	return fmt.Sprintf("%q", s.value)
}

func (s *String) String() string {
	return s.value
}

func (s *String) Interface() interface{} {
	return s.value
}

func (s *String) Compare(other Object) (int, error) {
	otherStr, ok := other.(*String)
	if !ok {
		return 0, typeErrorf("unable to compare string and %s", other.Type())
	}
	return strings.Compare(s.value, otherStr.value), nil
}

func (s *String) Equals(other Object) bool {
	if other, ok := other.(*String); ok {
		return s.value == other.value
	}
	return false
}

func (s *String) IsTruthy() bool {
	// The empty string is truthy; only Nil and false are falsy.
	return true
}

func (s *String) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.value)
}

// NewString creates a new String object from a Go string.
func NewString(value string) *String {
	return &String{value: value}
}
