package object

import (
	"fmt"

	"github.com/hollicode-lang/hollicode/op"
)

func typeErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("type error: "+format, args...)
}

// BinaryOp performs a binary operation on two objects. The left operand is
// the value popped from the stack first. There is no implicit coercion: a
// mismatched pair such as "a" - 1 is an error, not a silent conversion.
//
// The logical operators && and || coerce both operands through truthiness
// and return a strict Bool.
func BinaryOp(opType op.BinaryOpType, left, right Object) (Object, error) {
	switch opType {
	case op.And:
		return NewBool(left.IsTruthy() && right.IsTruthy()), nil
	case op.Or:
		return NewBool(left.IsTruthy() || right.IsTruthy()), nil
	case op.Equal:
		return NewBool(left.Equals(right)), nil
	case op.NotEqual:
		return NewBool(!left.Equals(right)), nil
	case op.LessThan, op.LessThanOrEqual, op.GreaterThan, op.GreaterThanOrEqual:
		return compare(opType, left, right)
	case op.Add, op.Subtract, op.Multiply, op.Divide:
		return arithmetic(opType, left, right)
	default:
		return nil, typeErrorf("unknown binary operator %q", opType)
	}
}

// Comparable is an interface used to order two objects.
//
//	-1 if this < other
//	 0 if this == other
//	 1 if this > other
type Comparable interface {
	Compare(other Object) (int, error)
}

func compare(opType op.BinaryOpType, left, right Object) (Object, error) {
	comparable, ok := left.(Comparable)
	if !ok {
		return nil, typeErrorf("%s is not comparable", left.Type())
	}
	result, err := comparable.Compare(right)
	if err != nil {
		return nil, err
	}
	switch opType {
	case op.LessThan:
		return NewBool(result < 0), nil
	case op.LessThanOrEqual:
		return NewBool(result <= 0), nil
	case op.GreaterThan:
		return NewBool(result > 0), nil
	default:
		return NewBool(result >= 0), nil
	}
}

func arithmetic(opType op.BinaryOpType, left, right Object) (Object, error) {
	if leftStr, ok := left.(*String); ok && opType == op.Add {
		rightStr, ok := right.(*String)
		if !ok {
			return nil, typeErrorf("unable to concatenate string and %s", right.Type())
		}
		return NewString(leftStr.Value() + rightStr.Value()), nil
	}
	leftNum, ok := left.(*Float)
	if !ok {
		return nil, typeErrorf("unsupported operand type for %s: %s", opType, left.Type())
	}
	rightNum, ok := right.(*Float)
	if !ok {
		return nil, typeErrorf("unsupported operand type for %s: %s", opType, right.Type())
	}
	a, b := leftNum.Value(), rightNum.Value()
	switch opType {
	case op.Add:
		return NewFloat(a + b), nil
	case op.Subtract:
		return NewFloat(a - b), nil
	case op.Multiply:
		return NewFloat(a * b), nil
	default:
		return NewFloat(a / b), nil
	}
}

// Negate returns the arithmetic negation of the given object.
func Negate(obj Object) (Object, error) {
	num, ok := obj.(*Float)
	if !ok {
		return nil, typeErrorf("unable to negate %s", obj.Type())
	}
	return NewFloat(-num.Value()), nil
}

// Not returns the logical inverse of the object's truthiness as a strict Bool.
func Not(obj Object) Object {
	return NewBool(!obj.IsTruthy())
}
