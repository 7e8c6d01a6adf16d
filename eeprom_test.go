// eeprom_test.go

package main

import "testing"

// eepromShiftBit pulses CLK low->high with di held across the edge, mimicking
// the Microwire host driving one bit onto DI and strobing CLK.
func eepromShiftBit(e *Eeprom, cs, di bool) {
	e.Clock(cs, false, di)
	e.Clock(cs, true, di)
}

func eepromWriteBits(e *Eeprom, bits []bool) {
	for _, b := range bits {
		eepromShiftBit(e, true, b)
	}
}

func eepromReadBits(e *Eeprom, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = e.DataOut()
		e.Clock(true, false, false)
		e.Clock(true, true, false)
	}
	return out
}

func bitsToUint16(bits []bool) uint16 {
	var v uint16
	for _, b := range bits {
		v <<= 1
		if b {
			v |= 1
		}
	}
	return v
}

func uint16ToBits(v uint16, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = v&(1<<uint(n-1-i)) != 0
	}
	return out
}

func TestEepromNoneIgnoresProtocolTraffic(t *testing.T) {
	e := NewEeprom(EepromNone)
	eepromWriteBits(e, []bool{true, true, false})
	if e.DataOut() {
		t.Fatalf("EepromNone must never drive DataOut")
	}
}

func TestEepromWriteThenReadRoundTrip(t *testing.T) {
	e := NewEeprom(Eeprom93C46)

	// Enable writes: start bit, opcode 00 (extended), address top bits = 11 (EWEN).
	addrBits := Eeprom93C46.AddressBits()
	eepromWriteBits(e, append([]bool{true, false, false}, uint16ToBits(0b11<<uint(addrBits-2), addrBits)...))

	// WRITE opcode 01, address 0, data 0xBEEF.
	eepromWriteBits(e, []bool{true, false, true})
	eepromWriteBits(e, uint16ToBits(0, addrBits))
	eepromWriteBits(e, uint16ToBits(0xBEEF, 16))

	e.Clock(false, false, false) // drop CS between commands

	// READ opcode 10, address 0.
	eepromWriteBits(e, []bool{true, true, false})
	eepromWriteBits(e, uint16ToBits(0, addrBits))

	got := bitsToUint16(eepromReadBits(e, 16))
	if got != 0xBEEF {
		t.Fatalf("EEPROM read-back = %#04x, want 0xBEEF", got)
	}
}

func TestEepromWriteDisabledByDefault(t *testing.T) {
	e := NewEeprom(Eeprom93C46)
	addrBits := Eeprom93C46.AddressBits()

	eepromWriteBits(e, []bool{true, false, true})
	eepromWriteBits(e, uint16ToBits(0, addrBits))
	eepromWriteBits(e, uint16ToBits(0xBEEF, 16))
	e.Clock(false, false, false)

	eepromWriteBits(e, []bool{true, true, false})
	eepromWriteBits(e, uint16ToBits(0, addrBits))
	got := bitsToUint16(eepromReadBits(e, 16))
	if got == 0xBEEF {
		t.Fatalf("write must be a no-op until EWEN is issued")
	}
}

func TestEepromStateRoundTrip(t *testing.T) {
	e := NewEeprom(Eeprom93C46)
	e.LoadImage([]byte{0xDE, 0xAD, 0xBE, 0xEF})

	saved := e.State()
	e2 := NewEeprom(Eeprom93C46)
	e2.RestoreState(saved)

	if string(e2.Image()[:4]) != string([]byte{0xDE, 0xAD, 0xBE, 0xEF}) {
		t.Fatalf("RestoreState() did not reproduce EEPROM contents")
	}
}
