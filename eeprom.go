// eeprom.go - Microwire (93Cxx) serial EEPROM state machine

/*
eeprom.go implements the Microwire 3-wire protocol (CS, CLK, DI/DO) used by
93C46/56/66/76/86 serial EEPROMs, the part family Lynx carts use for saved
high-scores and game state. Bits are shifted MSB-first: a start bit, a
2-bit opcode, then an address field whose width depends on the part
(EepromType.AddressBits), followed by 16 bits of data for READ/WRITE.
*/

package main

// eepromState is the Microwire protocol's internal state machine position.
type eepromState int

const (
	eepromIdle eepromState = iota
	eepromReceivingOpcode
	eepromReceivingAddress
	eepromReceivingData
	eepromSendingData
)

// Microwire opcodes (2-bit, shifted after the start bit).
const (
	eepromOpRead  = 0b10
	eepromOpWrite = 0b01
	eepromOpErase = 0b11
	// Opcode 0b00 is extended: the top 2 address bits select EWDS/WRAL/ERAL/EWEN.
	eepromOpExtended  = 0b00
	eepromExtEwds     = 0b00
	eepromExtWral     = 0b01
	eepromExtEral     = 0b10
	eepromExtEwen     = 0b11
)

// EepromSerialState is the serializable state of the EEPROM peripheral.
type EepromSerialState struct {
	Data           []byte
	Kind           EepromType
	State          eepromState
	ShiftIn        uint32
	BitCount       int
	Opcode         int
	Address        int
	WriteEnabled   bool
	ShiftOut       uint16
	OutBitsLeft    int
	ChipSelect     bool
	Clock          bool
}

// Eeprom is a Microwire serial EEPROM peripheral.
type Eeprom struct {
	s EepromSerialState
}

// NewEeprom allocates an EEPROM of the given part type. kind ==
// EepromNone yields a peripheral that ignores all protocol traffic,
// matching carts with no save hardware.
func NewEeprom(kind EepromType) *Eeprom {
	e := &Eeprom{}
	e.s.Kind = kind
	if size := kind.SizeBytes(); size > 0 {
		e.s.Data = make([]byte, size)
	}
	return e
}

// Reset returns the protocol state machine to idle without clearing
// stored data (a cold reset does not erase the EEPROM).
func (e *Eeprom) Reset() {
	e.s.State = eepromIdle
	e.s.ShiftIn = 0
	e.s.BitCount = 0
	e.s.OutBitsLeft = 0
}

// LoadImage installs a previously saved EEPROM image (e.g. restored from
// a cart's companion save file).
func (e *Eeprom) LoadImage(data []byte) {
	if e.s.Kind == EepromNone {
		return
	}
	n := copy(e.s.Data, data)
	for i := n; i < len(e.s.Data); i++ {
		e.s.Data[i] = 0xFF
	}
}

// Image returns the current EEPROM contents for save purposes.
func (e *Eeprom) Image() []byte { return e.s.Data }

// DataOut returns the current serial output bit (DO line).
func (e *Eeprom) DataOut() bool {
	if e.s.State != eepromSendingData || e.s.OutBitsLeft == 0 {
		return false
	}
	return e.s.ShiftOut&0x8000 != 0
}

// Clock drives one CS/CLK/DI edge into the Microwire state machine. cs is
// the chip-select level, clk is the rising-edge-triggered clock, di is
// the serial data-in bit sampled on the clock's rising edge.
func (e *Eeprom) Clock(cs, clk, di bool) {
	if e.s.Kind == EepromNone {
		return
	}
	if !cs {
		e.s.ChipSelect = false
		e.s.State = eepromIdle
		e.s.Clock = clk
		return
	}
	risingEdge := clk && !e.s.Clock
	e.s.Clock = clk
	e.s.ChipSelect = cs
	if !risingEdge {
		return
	}

	switch e.s.State {
	case eepromIdle:
		if di {
			// Start bit seen; begin shifting the 2-bit opcode.
			e.s.State = eepromReceivingOpcode
			e.s.ShiftIn = 0
			e.s.BitCount = 0
		}
	case eepromReceivingOpcode:
		e.s.ShiftIn = (e.s.ShiftIn << 1) | uint32(btou8(di))
		e.s.BitCount++
		if e.s.BitCount == 2 {
			e.s.Opcode = int(e.s.ShiftIn)
			e.s.ShiftIn = 0
			e.s.BitCount = 0
			e.s.State = eepromReceivingAddress
		}
	case eepromReceivingAddress:
		e.s.ShiftIn = (e.s.ShiftIn << 1) | uint32(btou8(di))
		e.s.BitCount++
		if e.s.BitCount == e.s.Kind.AddressBits() {
			e.s.Address = int(e.s.ShiftIn)
			e.handleAddressComplete()
		}
	case eepromReceivingData:
		e.s.ShiftIn = (e.s.ShiftIn << 1) | uint32(btou8(di))
		e.s.BitCount++
		if e.s.BitCount == 16 {
			e.commitWrite(uint16(e.s.ShiftIn))
		}
	case eepromSendingData:
		e.s.ShiftOut <<= 1
		e.s.OutBitsLeft--
		if e.s.OutBitsLeft == 0 {
			e.s.State = eepromIdle
		}
	}
}

// handleAddressComplete dispatches once the opcode and address fields are
// fully shifted in, per the Microwire opcode table.
func (e *Eeprom) handleAddressComplete() {
	switch e.s.Opcode {
	case eepromOpRead:
		e.s.ShiftOut = e.readWord(e.s.Address)
		e.s.OutBitsLeft = 16
		e.s.State = eepromSendingData
	case eepromOpWrite:
		e.s.ShiftIn = 0
		e.s.BitCount = 0
		e.s.State = eepromReceivingData
	case eepromOpErase:
		if e.s.WriteEnabled {
			e.writeWord(e.s.Address, 0xFFFF)
		}
		e.s.State = eepromIdle
	case eepromOpExtended:
		// Top 2 bits of the address field select the extended command.
		switch (e.s.Address >> (e.s.Kind.AddressBits() - 2)) & 0b11 {
		case eepromExtEwds:
			e.s.WriteEnabled = false
		case eepromExtEwen:
			e.s.WriteEnabled = true
		case eepromExtEral:
			if e.s.WriteEnabled {
				for i := 0; i+1 < len(e.s.Data); i += 2 {
					e.s.Data[i], e.s.Data[i+1] = 0xFF, 0xFF
				}
			}
		case eepromExtWral:
			// WRAL writes all words with the following 16 data bits;
			// fall through into the data-receive state and broadcast
			// the committed word to every address on completion.
			e.s.ShiftIn = 0
			e.s.BitCount = 0
			e.s.State = eepromReceivingData
			e.s.Opcode = eepromOpExtended // reuse Opcode to flag broadcast on commit
			return
		}
		e.s.State = eepromIdle
	}
}

// commitWrite finishes a WRITE or WRAL once 16 data bits have been shifted in.
func (e *Eeprom) commitWrite(word uint16) {
	if e.s.WriteEnabled {
		if e.s.Opcode == eepromOpExtended {
			for addr := 0; addr < len(e.s.Data)/2; addr++ {
				e.writeWord(addr, word)
			}
		} else {
			e.writeWord(e.s.Address, word)
		}
	}
	e.s.State = eepromIdle
}

func (e *Eeprom) readWord(addr int) uint16 {
	off := addr * 2
	if off+1 >= len(e.s.Data) {
		return 0xFFFF
	}
	return uint16(e.s.Data[off])<<8 | uint16(e.s.Data[off+1])
}

func (e *Eeprom) writeWord(addr int, word uint16) {
	off := addr * 2
	if off+1 >= len(e.s.Data) {
		return
	}
	e.s.Data[off] = byte(word >> 8)
	e.s.Data[off+1] = byte(word)
}

// State returns a copy of the serializable EEPROM state, including a
// defensive copy of its data array.
func (e *Eeprom) State() EepromSerialState {
	s := e.s
	s.Data = append([]byte(nil), e.s.Data...)
	return s
}

// RestoreState applies a previously serialized EEPROM state.
func (e *Eeprom) RestoreState(s EepromSerialState) {
	e.s = s
	e.s.Data = append([]byte(nil), s.Data...)
}
