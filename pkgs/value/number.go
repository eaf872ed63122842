package value

import "strconv"

// NumMode selects the representation a Number currently holds.
type NumMode int

const (
	ModeInt NumMode = iota
	ModeFloat
)

// Number is a mixed integer/float numeric value. Arithmetic widens to
// ModeFloat whenever operands disagree in mode; integer mode is preserved
// only when both operands are integers (division always widens, per the
// dialect's own rule; see Div below).
type Number struct {
	Mode NumMode
	I    int64
	F    float64
}

// Int constructs an integer-mode Number.
func Int(i int64) Number { return Number{Mode: ModeInt, I: i} }

// Float constructs a float-mode Number.
func Float(f float64) Number { return Number{Mode: ModeFloat, F: f} }

// AsFloat returns the Number's value widened to float64, regardless of mode.
func (n Number) AsFloat() float64 {
	if n.Mode == ModeFloat {
		return n.F
	}
	return float64(n.I)
}

// IsZero reports whether the Number is the zero value in its own mode;
// used for the Number(0) → false truthiness rule.
func (n Number) IsZero() bool {
	if n.Mode == ModeFloat {
		return n.F == 0
	}
	return n.I == 0
}

func widen(a, b Number) (Number, Number) {
	if a.Mode == b.Mode {
		return a, b
	}
	return Float(a.AsFloat()), Float(b.AsFloat())
}

// Add, Sub, Mul follow the widening rule: same mode in, same mode out;
// mixed mode widens both to float.
func Add(a, b Number) Number {
	wa, wb := widen(a, b)
	if wa.Mode == ModeInt {
		return Int(wa.I + wb.I)
	}
	return Float(wa.F + wb.F)
}

func Sub(a, b Number) Number {
	wa, wb := widen(a, b)
	if wa.Mode == ModeInt {
		return Int(wa.I - wb.I)
	}
	return Float(wa.F - wb.F)
}

func Mul(a, b Number) Number {
	wa, wb := widen(a, b)
	if wa.Mode == ModeInt {
		return Int(wa.I * wb.I)
	}
	return Float(wa.F * wb.F)
}

// Div always widens to float, regardless of operand modes.
func Div(a, b Number) Number {
	return Float(a.AsFloat() / b.AsFloat())
}

// Quot returns the integer part of a/b, truncated toward zero.
func Quot(a, b Number) Number {
	wa, wb := widen(a, b)
	if wa.Mode == ModeInt {
		return Int(wa.I / wb.I)
	}
	return Float(quotFloat(wa.F, wb.F))
}

// quotFloat truncates toward zero regardless of sign.
func quotFloat(a, b float64) float64 {
	q := a / b
	if q < 0 {
		return float64(-int64(-q))
	}
	return float64(int64(q))
}

// Rem and Mod are identical in this dialect: a - quot(a,b)*b. Unlike
// Clojure they do not differ on negative operands.
func Rem(a, b Number) Number {
	wa, wb := widen(a, b)
	if wa.Mode == ModeInt {
		return Int(wa.I - (wa.I/wb.I)*wb.I)
	}
	q := quotFloat(wa.F, wb.F)
	return Float(wa.F - q*wb.F)
}

func Mod(a, b Number) Number {
	return Rem(a, b)
}

func Inc(n Number) Number {
	if n.Mode == ModeInt {
		return Int(n.I + 1)
	}
	return Float(n.F + 1)
}

func Dec(n Number) Number {
	if n.Mode == ModeInt {
		return Int(n.I - 1)
	}
	return Float(n.F - 1)
}

func Max(a, b Number) Number {
	if Compare(a, b) >= 0 {
		return a
	}
	return b
}

func Min(a, b Number) Number {
	if Compare(a, b) <= 0 {
		return a
	}
	return b
}

// Compare returns -1, 0, or 1 after widening, following standard ordering.
func Compare(a, b Number) int {
	wa, wb := widen(a, b)
	if wa.Mode == ModeInt {
		switch {
		case wa.I < wb.I:
			return -1
		case wa.I > wb.I:
			return 1
		default:
			return 0
		}
	}
	switch {
	case wa.F < wb.F:
		return -1
	case wa.F > wb.F:
		return 1
	default:
		return 0
	}
}

// NumEqual compares two Numbers after mode-widening.
func NumEqual(a, b Number) bool {
	return Compare(a, b) == 0
}

// String renders the Number the way both print modes expect: plain
// decimal for integers, Go's shortest round-trip form for floats.
func (n Number) String() string {
	if n.Mode == ModeInt {
		return strconv.FormatInt(n.I, 10)
	}
	return strconv.FormatFloat(n.F, 'g', -1, 64)
}
