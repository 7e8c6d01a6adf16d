// suzy_math.go - Suzy's sign-magnitude multiply/divide coprocessor

/*
suzy_math.go implements the hardware multiply/divide unit described in
spec.md section 4.3. Operands are sign-magnitude, not two's complement:
bit 15 is the sign, bits 14:0 are the magnitude, and the magnitude-zero
case is always treated as positive regardless of the sign bit (HW bug
13.8). The division remainder is always the unsigned magnitude of the
modulo result (HW bug 13.9), and MathOverflow reflects only the most
recent operation rather than accumulating across calls (HW bug 13.10).
This file is grounded directly on spec.md section 4.3 - no teacher
analogue exists for a sign-magnitude math coprocessor - in the flag-byte
register style the rest of Suzy (and Mikey's timers) already use.
*/

package main

// SuzyMathState is the serializable register file of the math unit.
type SuzyMathState struct {
	ABCD uint32 // operand A (high) / quotient result
	EFGH uint32 // product result / dividend
	JKLM uint32 // remainder
	NP   uint32 // multiply operand / divisor

	Sign        bool
	Accumulate  bool
	InProgress  bool
	Overflow    bool
}

// SuzyMath is Suzy's sign-magnitude multiply/divide coprocessor.
type SuzyMath struct {
	s SuzyMathState
}

func (m *SuzyMath) Reset() { m.s = SuzyMathState{} }

func (m *SuzyMath) State() SuzyMathState       { return m.s }
func (m *SuzyMath) RestoreState(s SuzyMathState) { m.s = s }

// signMagnitude splits a 16-bit sign-magnitude value into (negative,
// magnitude). HW bug 13.8: magnitude zero is always positive, even when
// the sign bit is set ($8000 is positive zero, not negative zero).
func signMagnitude(v uint16) (negative bool, magnitude uint16) {
	magnitude = v &^ 0x8000
	negative = v&0x8000 != 0 && magnitude != 0
	return
}

// Multiply16x16 performs the 16x16->32 multiply described in spec.md
// section 4.3: a times b (TriggerMultiply passes the low 16 bits of
// MathABCD and MathNP), written back to MathEFGH (32-bit product). signed selects sign-magnitude
// interpretation (MathSign register); unsigned multiply treats both
// operands as plain magnitudes.
//
// Accumulate mode (m.s.Accumulate) adds the new product into the existing
// MathEFGH value instead of overwriting it, matching the hardware's
// "multiply and accumulate" mode used for dot-product style sprite math.
func (m *SuzyMath) Multiply16x16(a, b uint16, signed bool) {
	var product uint32
	negative := false
	if signed {
		negA, magA := signMagnitude(a)
		negB, magB := signMagnitude(b)
		product = uint32(magA) * uint32(magB)
		negative = negA != negB && product != 0
	} else {
		product = uint32(a) * uint32(b)
	}
	if negative {
		product = -product
	}
	if m.s.Accumulate {
		sum := int64(int32(m.s.EFGH)) + int64(int32(product))
		m.s.EFGH = uint32(sum)
	} else {
		m.s.EFGH = product
	}
	// HW bug 13.10: overflow reflects only the most recent operation.
	m.s.Overflow = false
}

// Divide32by16 performs the 32/16->16 divide described in spec.md section
// 4.3: MathEFGH (dividend) / MathNP (divisor) -> MathABCD (quotient),
// MathJKLM (remainder). Division by zero sets MathOverflow and leaves the
// quotient/remainder registers at their prior values, matching documented
// hardware behavior.
func (m *SuzyMath) Divide32by16(dividend uint32, divisor uint16) {
	m.s.Overflow = false
	if divisor == 0 {
		m.s.Overflow = true
		return
	}
	q := dividend / uint32(divisor)
	r := dividend % uint32(divisor)
	m.s.ABCD = q
	// HW bug 13.9: the remainder is always the unsigned magnitude of the
	// modulo result, regardless of the signs of dividend or divisor.
	m.s.JKLM = r
}
