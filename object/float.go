package object

import (
	"encoding/json"
	"strconv"
)

// Float wraps float64 and implements the Object interface. All Hollicode
// numbers are double-precision floats.
type Float struct {
	value float64
}

func (f *Float) Type() Type {
	return NUMBER
}

func (f *Float) Value() float64 {
	return f.value
}

func (f *Float) Inspect() string {
	return strconv.FormatFloat(f.value, 'f', -1, 64)
}

func (f *Float) String() string {
	return f.Inspect()
}

func (f *Float) Interface() interface{} {
	return f.value
}

func (f *Float) Compare(other Object) (int, error) {
	otherFloat, ok := other.(*Float)
	if !ok {
		return 0, typeErrorf("unable to compare number and %s", other.Type())
	}
	if f.value == otherFloat.value {
		return 0, nil
	}
	if f.value > otherFloat.value {
		return 1, nil
	}
	return -1, nil
}

func (f *Float) Equals(other Object) bool {
	if other, ok := other.(*Float); ok {
		return f.value == other.value
	}
	return false
}

func (f *Float) IsTruthy() bool {
	// Unlike most languages with C heritage, zero is truthy.
	return true
}

func (f *Float) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.value)
}

// NewFloat creates a new Float object from a float64.
func NewFloat(value float64) *Float {
	return &Float{value: value}
}
