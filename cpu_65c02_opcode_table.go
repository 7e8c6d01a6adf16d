// cpu_65c02_opcode_table.go - 65C02 + Rockwell extension opcode table

/*
cpu_65c02_opcode_table.go builds the CPU's dispatch table: one entry per
opcode byte naming its addressing mode, operation function and documented
base cycle count (multi-byte NOPs $EA/$5C/$DC/$FC included at their
documented widths/cycles). The per-operation functions below are shared
across addressing modes, the same "group of ALU ops resolved against a
resolveOperand() effective address" shape the teacher's generated opcode
table uses (cpu_6502_opcode_table_gen.go), generalized with 65C02-only
entries (BBR/BBS/RMB/SMB/BRA/STZ/PHX/PLX/PHY/PLY/TRB/TSB and INC/DEC A)
filled in where the NMOS table left the opcode undocumented/illegal.
*/

package main

func (cpu *CPU65C02) initOpcodeTable() {
	t := &cpu.opcodeTable

	set := func(op byte, mode addrMode, fn func(*CPU65C02, addrMode) byte, cycles byte) {
		t[op] = opcodeEntry{mode: mode, op: fn, cycles: cycles}
	}

	// Load/store.
	set(0xA9, modeImmediate, opLDA, 2)
	set(0xA5, modeZeroPage, opLDA, 3)
	set(0xB5, modeZeroPageX, opLDA, 4)
	set(0xAD, modeAbsolute, opLDA, 4)
	set(0xBD, modeAbsoluteX, opLDA, 4)
	set(0xB9, modeAbsoluteY, opLDA, 4)
	set(0xA1, modeIndirectX, opLDA, 6)
	set(0xB1, modeIndirectY, opLDA, 5)
	set(0xB2, modeZeroPageIndirect, opLDA, 5)

	set(0xA2, modeImmediate, opLDX, 2)
	set(0xA6, modeZeroPage, opLDX, 3)
	set(0xB6, modeZeroPageY, opLDX, 4)
	set(0xAE, modeAbsolute, opLDX, 4)
	set(0xBE, modeAbsoluteY, opLDX, 4)

	set(0xA0, modeImmediate, opLDY, 2)
	set(0xA4, modeZeroPage, opLDY, 3)
	set(0xB4, modeZeroPageX, opLDY, 4)
	set(0xAC, modeAbsolute, opLDY, 4)
	set(0xBC, modeAbsoluteX, opLDY, 4)

	set(0x85, modeZeroPage, opSTA, 3)
	set(0x95, modeZeroPageX, opSTA, 4)
	set(0x8D, modeAbsolute, opSTA, 4)
	set(0x9D, modeAbsoluteX, opSTA, 5)
	set(0x99, modeAbsoluteY, opSTA, 5)
	set(0x81, modeIndirectX, opSTA, 6)
	set(0x91, modeIndirectY, opSTA, 6)
	set(0x92, modeZeroPageIndirect, opSTA, 5)

	set(0x86, modeZeroPage, opSTX, 3)
	set(0x96, modeZeroPageY, opSTX, 4)
	set(0x8E, modeAbsolute, opSTX, 4)

	set(0x84, modeZeroPage, opSTY, 3)
	set(0x94, modeZeroPageX, opSTY, 4)
	set(0x8C, modeAbsolute, opSTY, 4)

	// STZ - 65C02 addition.
	set(0x64, modeZeroPage, opSTZ, 3)
	set(0x74, modeZeroPageX, opSTZ, 4)
	set(0x9C, modeAbsolute, opSTZ, 4)
	set(0x9E, modeAbsoluteX, opSTZ, 5)

	// Transfers.
	set(0xAA, modeImplied, opTAX, 2)
	set(0xA8, modeImplied, opTAY, 2)
	set(0x8A, modeImplied, opTXA, 2)
	set(0x98, modeImplied, opTYA, 2)
	set(0xBA, modeImplied, opTSX, 2)
	set(0x9A, modeImplied, opTXS, 2)

	// Stack.
	set(0x48, modeImplied, opPHA, 3)
	set(0x68, modeImplied, opPLA, 4)
	set(0x08, modeImplied, opPHP, 3)
	set(0x28, modeImplied, opPLP, 4)
	set(0xDA, modeImplied, opPHX, 3) // 65C02
	set(0xFA, modeImplied, opPLX, 4) // 65C02
	set(0x5A, modeImplied, opPHY, 3) // 65C02
	set(0x7A, modeImplied, opPLY, 4) // 65C02

	// Arithmetic.
	set(0x69, modeImmediate, opADC, 2)
	set(0x65, modeZeroPage, opADC, 3)
	set(0x75, modeZeroPageX, opADC, 4)
	set(0x6D, modeAbsolute, opADC, 4)
	set(0x7D, modeAbsoluteX, opADC, 4)
	set(0x79, modeAbsoluteY, opADC, 4)
	set(0x61, modeIndirectX, opADC, 6)
	set(0x71, modeIndirectY, opADC, 5)
	set(0x72, modeZeroPageIndirect, opADC, 5)

	set(0xE9, modeImmediate, opSBC, 2)
	set(0xE5, modeZeroPage, opSBC, 3)
	set(0xF5, modeZeroPageX, opSBC, 4)
	set(0xED, modeAbsolute, opSBC, 4)
	set(0xFD, modeAbsoluteX, opSBC, 4)
	set(0xF9, modeAbsoluteY, opSBC, 4)
	set(0xE1, modeIndirectX, opSBC, 6)
	set(0xF1, modeIndirectY, opSBC, 5)
	set(0xF2, modeZeroPageIndirect, opSBC, 5)

	set(0xC9, modeImmediate, opCMP, 2)
	set(0xC5, modeZeroPage, opCMP, 3)
	set(0xD5, modeZeroPageX, opCMP, 4)
	set(0xCD, modeAbsolute, opCMP, 4)
	set(0xDD, modeAbsoluteX, opCMP, 4)
	set(0xD9, modeAbsoluteY, opCMP, 4)
	set(0xC1, modeIndirectX, opCMP, 6)
	set(0xD1, modeIndirectY, opCMP, 5)
	set(0xD2, modeZeroPageIndirect, opCMP, 5)

	set(0xE0, modeImmediate, opCPX, 2)
	set(0xE4, modeZeroPage, opCPX, 3)
	set(0xEC, modeAbsolute, opCPX, 4)

	set(0xC0, modeImmediate, opCPY, 2)
	set(0xC4, modeZeroPage, opCPY, 3)
	set(0xCC, modeAbsolute, opCPY, 4)

	// Increment/decrement.
	set(0xE6, modeZeroPage, opINC, 5)
	set(0xF6, modeZeroPageX, opINC, 6)
	set(0xEE, modeAbsolute, opINC, 6)
	set(0xFE, modeAbsoluteX, opINC, 7)
	set(0x1A, modeAccumulator, opINCA, 2) // 65C02

	set(0xC6, modeZeroPage, opDEC, 5)
	set(0xD6, modeZeroPageX, opDEC, 6)
	set(0xCE, modeAbsolute, opDEC, 6)
	set(0xDE, modeAbsoluteX, opDEC, 7)
	set(0x3A, modeAccumulator, opDECA, 2) // 65C02

	set(0xE8, modeImplied, opINX, 2)
	set(0xC8, modeImplied, opINY, 2)
	set(0xCA, modeImplied, opDEX, 2)
	set(0x88, modeImplied, opDEY, 2)

	// Logical.
	set(0x29, modeImmediate, opAND, 2)
	set(0x25, modeZeroPage, opAND, 3)
	set(0x35, modeZeroPageX, opAND, 4)
	set(0x2D, modeAbsolute, opAND, 4)
	set(0x3D, modeAbsoluteX, opAND, 4)
	set(0x39, modeAbsoluteY, opAND, 4)
	set(0x21, modeIndirectX, opAND, 6)
	set(0x31, modeIndirectY, opAND, 5)
	set(0x32, modeZeroPageIndirect, opAND, 5)

	set(0x09, modeImmediate, opORA, 2)
	set(0x05, modeZeroPage, opORA, 3)
	set(0x15, modeZeroPageX, opORA, 4)
	set(0x0D, modeAbsolute, opORA, 4)
	set(0x1D, modeAbsoluteX, opORA, 4)
	set(0x19, modeAbsoluteY, opORA, 4)
	set(0x01, modeIndirectX, opORA, 6)
	set(0x11, modeIndirectY, opORA, 5)
	set(0x12, modeZeroPageIndirect, opORA, 5)

	set(0x49, modeImmediate, opEOR, 2)
	set(0x45, modeZeroPage, opEOR, 3)
	set(0x55, modeZeroPageX, opEOR, 4)
	set(0x4D, modeAbsolute, opEOR, 4)
	set(0x5D, modeAbsoluteX, opEOR, 4)
	set(0x59, modeAbsoluteY, opEOR, 4)
	set(0x41, modeIndirectX, opEOR, 6)
	set(0x51, modeIndirectY, opEOR, 5)
	set(0x52, modeZeroPageIndirect, opEOR, 5)

	set(0x24, modeZeroPage, opBIT, 3)
	set(0x2C, modeAbsolute, opBIT, 4)
	set(0x34, modeZeroPageX, opBIT, 4) // 65C02
	set(0x3C, modeAbsoluteX, opBIT, 4) // 65C02
	set(0x89, modeImmediate, opBITImm, 2) // 65C02: immediate BIT does not affect N/V

	// Shifts/rotates.
	set(0x0A, modeAccumulator, opASL, 2)
	set(0x06, modeZeroPage, opASL, 5)
	set(0x16, modeZeroPageX, opASL, 6)
	set(0x0E, modeAbsolute, opASL, 6)
	set(0x1E, modeAbsoluteX, opASL, 7)

	set(0x4A, modeAccumulator, opLSR, 2)
	set(0x46, modeZeroPage, opLSR, 5)
	set(0x56, modeZeroPageX, opLSR, 6)
	set(0x4E, modeAbsolute, opLSR, 6)
	set(0x5E, modeAbsoluteX, opLSR, 7)

	set(0x2A, modeAccumulator, opROL, 2)
	set(0x26, modeZeroPage, opROL, 5)
	set(0x36, modeZeroPageX, opROL, 6)
	set(0x2E, modeAbsolute, opROL, 6)
	set(0x3E, modeAbsoluteX, opROL, 7)

	set(0x6A, modeAccumulator, opROR, 2)
	set(0x66, modeZeroPage, opROR, 5)
	set(0x76, modeZeroPageX, opROR, 6)
	set(0x6E, modeAbsolute, opROR, 6)
	set(0x7E, modeAbsoluteX, opROR, 7)

	// TRB/TSB - 65C02 additions.
	set(0x14, modeZeroPage, opTRB, 5)
	set(0x1C, modeAbsolute, opTRB, 6)
	set(0x04, modeZeroPage, opTSB, 5)
	set(0x0C, modeAbsolute, opTSB, 6)

	// Branches.
	set(0x90, modeRelative, opBCC, 2)
	set(0xB0, modeRelative, opBCS, 2)
	set(0xF0, modeRelative, opBEQ, 2)
	set(0xD0, modeRelative, opBNE, 2)
	set(0x30, modeRelative, opBMI, 2)
	set(0x10, modeRelative, opBPL, 2)
	set(0x50, modeRelative, opBVC, 2)
	set(0x70, modeRelative, opBVS, 2)
	set(0x80, modeRelative, opBRA, 3) // 65C02 unconditional branch

	// Jumps/calls.
	set(0x4C, modeAbsolute, opJMP, 3)
	set(0x6C, modeIndirect, opJMP, 5) // 65C02 fixes the page-wrap bug
	set(0x7C, modeAbsoluteX, opJMPIndirectX, 6) // 65C02 addition: JMP (addr,X)
	set(0x20, modeAbsolute, opJSR, 6)
	set(0x60, modeImplied, opRTS, 6)
	set(0x00, modeImplied, opBRK, 7)
	set(0x40, modeImplied, opRTI, 6)

	// Flags.
	set(0x18, modeImplied, opCLC, 2)
	set(0x38, modeImplied, opSEC, 2)
	set(0x58, modeImplied, opCLI, 2)
	set(0x78, modeImplied, opSEI, 2)
	set(0xB8, modeImplied, opCLV, 2)
	set(0xD8, modeImplied, opCLD, 2)
	set(0xF8, modeImplied, opSED, 2)

	// Halt states.
	set(0xCB, modeImplied, opWAI, 3) // 65C02
	set(0xDB, modeImplied, opSTP, 3) // 65C02

	// No-ops, including the documented multi-byte forms.
	set(0xEA, modeImplied, opNOP, 2)
	set(0x5C, modeAbsolute, opNOP8Cycle, 8) // 3-byte, 8-cycle NOP
	set(0xDC, modeAbsoluteX, opNOP4Cycle, 4)
	set(0xFC, modeAbsoluteX, opNOP4Cycle, 4)

	cpu.initRockwellBitOps(set)
}

// Rockwell bit-manipulation extensions: RMB0-7/SMB0-7 clear/set one bit of
// a zero-page byte; BBR0-7/BBS0-7 branch on one bit of a zero-page byte.
func (cpu *CPU65C02) initRockwellBitOps(set func(byte, addrMode, func(*CPU65C02, addrMode) byte, byte)) {
	for bit := byte(0); bit < 8; bit++ {
		bit := bit
		set(0x07+bit*0x10, modeZeroPage, func(cpu *CPU65C02, mode addrMode) byte {
			return opRMB(cpu, mode, bit)
		}, 5)
		set(0x87+bit*0x10, modeZeroPage, func(cpu *CPU65C02, mode addrMode) byte {
			return opSMB(cpu, mode, bit)
		}, 5)
		set(0x0F+bit*0x10, modeZeroPageRelative, func(cpu *CPU65C02, mode addrMode) byte {
			return opBBR(cpu, bit)
		}, 5)
		set(0x8F+bit*0x10, modeZeroPageRelative, func(cpu *CPU65C02, mode addrMode) byte {
			return opBBS(cpu, bit)
		}, 5)
	}
}

// --- Load/store ---

func opLDA(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	cpu.A = cpu.readByte(addr)
	cpu.updateNZ(cpu.A)
	return pageCrossExtra(mode, crossed)
}
func opLDX(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	cpu.X = cpu.readByte(addr)
	cpu.updateNZ(cpu.X)
	return pageCrossExtra(mode, crossed)
}
func opLDY(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	cpu.Y = cpu.readByte(addr)
	cpu.updateNZ(cpu.Y)
	return pageCrossExtra(mode, crossed)
}
func opSTA(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	cpu.writeByte(addr, cpu.A)
	return 0
}
func opSTX(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	cpu.writeByte(addr, cpu.X)
	return 0
}
func opSTY(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	cpu.writeByte(addr, cpu.Y)
	return 0
}
func opSTZ(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	cpu.writeByte(addr, 0)
	return 0
}

// pageCrossExtra accounts for the extra read cycle indexed modes incur
// when the index crosses a page boundary; STx/STZ never incur it since a
// store always performs the full-width cycle regardless.
func pageCrossExtra(mode addrMode, crossed bool) byte {
	if !crossed {
		return 0
	}
	switch mode {
	case modeAbsoluteX, modeAbsoluteY, modeIndirectY:
		return 1
	}
	return 0
}

// --- Transfers ---

func opTAX(cpu *CPU65C02, _ addrMode) byte { cpu.X = cpu.A; cpu.updateNZ(cpu.X); return 0 }
func opTAY(cpu *CPU65C02, _ addrMode) byte { cpu.Y = cpu.A; cpu.updateNZ(cpu.Y); return 0 }
func opTXA(cpu *CPU65C02, _ addrMode) byte { cpu.A = cpu.X; cpu.updateNZ(cpu.A); return 0 }
func opTYA(cpu *CPU65C02, _ addrMode) byte { cpu.A = cpu.Y; cpu.updateNZ(cpu.A); return 0 }
func opTSX(cpu *CPU65C02, _ addrMode) byte { cpu.X = cpu.SP; cpu.updateNZ(cpu.X); return 0 }
func opTXS(cpu *CPU65C02, _ addrMode) byte { cpu.SP = cpu.X; return 0 }

// --- Stack ---

func opPHA(cpu *CPU65C02, _ addrMode) byte { cpu.push(cpu.A); return 0 }
func opPLA(cpu *CPU65C02, _ addrMode) byte { cpu.A = cpu.pull(); cpu.updateNZ(cpu.A); return 0 }
func opPHP(cpu *CPU65C02, _ addrMode) byte { cpu.push(cpu.SR | FlagBreak | FlagReserved); return 0 }
func opPLP(cpu *CPU65C02, _ addrMode) byte {
	cpu.SR = (cpu.pull() &^ FlagBreak) | FlagReserved
	return 0
}
func opPHX(cpu *CPU65C02, _ addrMode) byte { cpu.push(cpu.X); return 0 }
func opPLX(cpu *CPU65C02, _ addrMode) byte { cpu.X = cpu.pull(); cpu.updateNZ(cpu.X); return 0 }
func opPHY(cpu *CPU65C02, _ addrMode) byte { cpu.push(cpu.Y); return 0 }
func opPLY(cpu *CPU65C02, _ addrMode) byte { cpu.Y = cpu.pull(); cpu.updateNZ(cpu.Y); return 0 }

// --- Arithmetic (65C02 BCD semantics: N/Z/V are valid in decimal mode,
// unlike the NMOS 6502 where they are not, and decimal ADC/SBC cost one
// extra cycle) ---

func opADC(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	value := cpu.readByte(addr)
	extra := cpu.adc(value)
	return pageCrossExtra(mode, crossed) + extra
}

func (cpu *CPU65C02) adc(value byte) byte {
	carryIn := btou8(cpu.getFlag(FlagCarry))
	if cpu.getFlag(FlagDecimal) {
		lo := (cpu.A & 0x0F) + (value & 0x0F) + carryIn
		hi := (cpu.A >> 4) + (value >> 4)
		if lo > 9 {
			lo += 6
			hi++
		}
		negative := hi&0x08 != 0
		overflow := (cpu.A^value)&0x80 == 0 && (cpu.A^(hi<<4))&0x80 != 0
		if hi > 9 {
			hi += 6
		}
		carryOut := hi > 15
		result := (hi << 4) | (lo & 0x0F)
		cpu.A = result
		cpu.setFlag(FlagCarry, carryOut)
		cpu.setFlag(FlagOverflow, overflow)
		cpu.setFlag(FlagNegative, negative)
		cpu.setFlag(FlagZero, result == 0)
		return 1 // 65C02 decimal-mode ADC/SBC costs one extra cycle
	}
	sum := uint16(cpu.A) + uint16(value) + uint16(carryIn)
	result := byte(sum)
	cpu.setFlag(FlagCarry, sum > 0xFF)
	cpu.setFlag(FlagOverflow, (cpu.A^value)&0x80 == 0 && (cpu.A^result)&0x80 != 0)
	cpu.A = result
	cpu.updateNZ(cpu.A)
	return 0
}

func opSBC(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	value := cpu.readByte(addr)
	extra := cpu.sbc(value)
	return pageCrossExtra(mode, crossed) + extra
}

func (cpu *CPU65C02) sbc(value byte) byte {
	borrowIn := byte(1) - btou8(cpu.getFlag(FlagCarry))
	if cpu.getFlag(FlagDecimal) {
		lo := int16(cpu.A&0x0F) - int16(value&0x0F) - int16(borrowIn)
		hi := int16(cpu.A>>4) - int16(value>>4)
		if lo < 0 {
			lo -= 6
			hi--
		}
		if hi < 0 {
			hi -= 6
		}
		// Carry and overflow come from the binary difference of the same
		// operands; N and Z follow the decimal result (valid on the 65C02,
		// unlike NMOS).
		bin := uint16(cpu.A) - uint16(value) - uint16(borrowIn)
		cpu.setFlag(FlagCarry, bin < 0x100)
		cpu.setFlag(FlagOverflow, (cpu.A^value)&0x80 != 0 && (cpu.A^byte(bin))&0x80 != 0)
		result := byte(hi<<4) | byte(lo&0x0F)
		cpu.A = result
		cpu.updateNZ(result)
		return 1
	}
	value = ^value
	sum := uint16(cpu.A) + uint16(value) + uint16(1-borrowIn)
	result := byte(sum)
	cpu.setFlag(FlagCarry, sum > 0xFF)
	cpu.setFlag(FlagOverflow, (cpu.A^value)&0x80 == 0 && (cpu.A^result)&0x80 != 0)
	cpu.A = result
	cpu.updateNZ(cpu.A)
	return 0
}

func opCMP(cpu *CPU65C02, mode addrMode) byte { return cmpCommon(cpu, mode, cpu.A) }
func opCPX(cpu *CPU65C02, mode addrMode) byte { return cmpCommon(cpu, mode, cpu.X) }
func opCPY(cpu *CPU65C02, mode addrMode) byte { return cmpCommon(cpu, mode, cpu.Y) }

func cmpCommon(cpu *CPU65C02, mode addrMode, reg byte) byte {
	addr, crossed := cpu.resolveOperand(mode)
	value := cpu.readByte(addr)
	result := reg - value
	cpu.setFlag(FlagCarry, reg >= value)
	cpu.updateNZ(result)
	return pageCrossExtra(mode, crossed)
}

// --- Increment/decrement ---

func opINC(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr) + 1
	cpu.writeByte(addr, v)
	cpu.updateNZ(v)
	return 0
}
func opDEC(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr) - 1
	cpu.writeByte(addr, v)
	cpu.updateNZ(v)
	return 0
}
func opINCA(cpu *CPU65C02, _ addrMode) byte { cpu.A++; cpu.updateNZ(cpu.A); return 0 }
func opDECA(cpu *CPU65C02, _ addrMode) byte { cpu.A--; cpu.updateNZ(cpu.A); return 0 }
func opINX(cpu *CPU65C02, _ addrMode) byte  { cpu.X++; cpu.updateNZ(cpu.X); return 0 }
func opINY(cpu *CPU65C02, _ addrMode) byte  { cpu.Y++; cpu.updateNZ(cpu.Y); return 0 }
func opDEX(cpu *CPU65C02, _ addrMode) byte  { cpu.X--; cpu.updateNZ(cpu.X); return 0 }
func opDEY(cpu *CPU65C02, _ addrMode) byte  { cpu.Y--; cpu.updateNZ(cpu.Y); return 0 }

// --- Logical ---

func opAND(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	cpu.A &= cpu.readByte(addr)
	cpu.updateNZ(cpu.A)
	return pageCrossExtra(mode, crossed)
}
func opORA(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	cpu.A |= cpu.readByte(addr)
	cpu.updateNZ(cpu.A)
	return pageCrossExtra(mode, crossed)
}
func opEOR(cpu *CPU65C02, mode addrMode) byte {
	addr, crossed := cpu.resolveOperand(mode)
	cpu.A ^= cpu.readByte(addr)
	cpu.updateNZ(cpu.A)
	return pageCrossExtra(mode, crossed)
}
func opBIT(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	value := cpu.readByte(addr)
	cpu.setFlag(FlagZero, cpu.A&value == 0)
	cpu.setFlag(FlagNegative, value&0x80 != 0)
	cpu.setFlag(FlagOverflow, value&0x40 != 0)
	return 0
}
func opBITImm(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	value := cpu.readByte(addr)
	cpu.setFlag(FlagZero, cpu.A&value == 0)
	return 0
}

// --- Shifts/rotates ---

func opASL(cpu *CPU65C02, mode addrMode) byte { return shiftOp(cpu, mode, func(v byte) (byte, bool) {
	return v << 1, v&0x80 != 0
}) }
func opLSR(cpu *CPU65C02, mode addrMode) byte { return shiftOp(cpu, mode, func(v byte) (byte, bool) {
	return v >> 1, v&0x01 != 0
}) }
func opROL(cpu *CPU65C02, mode addrMode) byte {
	carryIn := btou8(cpu.getFlag(FlagCarry))
	return shiftOp(cpu, mode, func(v byte) (byte, bool) {
		return (v << 1) | carryIn, v&0x80 != 0
	})
}
func opROR(cpu *CPU65C02, mode addrMode) byte {
	carryIn := btou8(cpu.getFlag(FlagCarry))
	return shiftOp(cpu, mode, func(v byte) (byte, bool) {
		return (v >> 1) | (carryIn << 7), v&0x01 != 0
	})
}

func shiftOp(cpu *CPU65C02, mode addrMode, fn func(byte) (byte, bool)) byte {
	if mode == modeAccumulator {
		result, carry := fn(cpu.A)
		cpu.A = result
		cpu.setFlag(FlagCarry, carry)
		cpu.updateNZ(result)
		return 0
	}
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr)
	result, carry := fn(v)
	cpu.writeByte(addr, result)
	cpu.setFlag(FlagCarry, carry)
	cpu.updateNZ(result)
	return 0
}

func opTRB(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr)
	cpu.setFlag(FlagZero, cpu.A&v == 0)
	cpu.writeByte(addr, v&^cpu.A)
	return 0
}
func opTSB(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr)
	cpu.setFlag(FlagZero, cpu.A&v == 0)
	cpu.writeByte(addr, v|cpu.A)
	return 0
}

// --- Branches ---

func branchIf(cpu *CPU65C02, cond bool) byte {
	target, crossed := cpu.resolveOperand(modeRelative)
	if !cond {
		return 0
	}
	cpu.PC = target
	if crossed {
		return 2
	}
	return 1
}

func opBCC(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, !cpu.getFlag(FlagCarry)) }
func opBCS(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, cpu.getFlag(FlagCarry)) }
func opBEQ(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, cpu.getFlag(FlagZero)) }
func opBNE(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, !cpu.getFlag(FlagZero)) }
func opBMI(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, cpu.getFlag(FlagNegative)) }
func opBPL(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, !cpu.getFlag(FlagNegative)) }
func opBVC(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, !cpu.getFlag(FlagOverflow)) }
func opBVS(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, cpu.getFlag(FlagOverflow)) }
func opBRA(cpu *CPU65C02, _ addrMode) byte { return branchIf(cpu, true) }

// --- Jumps/calls ---

func opJMP(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	cpu.PC = addr
	return 0
}
func opJMPIndirectX(cpu *CPU65C02, _ addrMode) byte {
	base := cpu.readWord(cpu.PC)
	cpu.PC += 2
	ptr := base + uint16(cpu.X)
	cpu.PC = cpu.readWord(ptr)
	return 0
}
func opJSR(cpu *CPU65C02, mode addrMode) byte {
	addr, _ := cpu.resolveOperand(mode)
	retAddr := cpu.PC - 1
	cpu.push(byte(retAddr >> 8))
	cpu.push(byte(retAddr))
	cpu.PC = addr
	return 0
}
func opRTS(cpu *CPU65C02, _ addrMode) byte {
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	cpu.PC = (hi<<8 | lo) + 1
	return 0
}
func opBRK(cpu *CPU65C02, _ addrMode) byte {
	cpu.hardwareBrkPush()
	return 0
}
func opRTI(cpu *CPU65C02, _ addrMode) byte {
	cpu.SR = (cpu.pull() &^ FlagBreak) | FlagReserved
	lo := uint16(cpu.pull())
	hi := uint16(cpu.pull())
	cpu.PC = hi<<8 | lo
	cpu.InInterrupt = false
	return 0
}

// --- Flags ---

func opCLC(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagCarry, false); return 0 }
func opSEC(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagCarry, true); return 0 }
func opCLI(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagInterrupt, false); return 0 }
func opSEI(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagInterrupt, true); return 0 }
func opCLV(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagOverflow, false); return 0 }
func opCLD(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagDecimal, false); return 0 }
func opSED(cpu *CPU65C02, _ addrMode) byte { cpu.setFlag(FlagDecimal, true); return 0 }

// --- Halt states ---

func opWAI(cpu *CPU65C02, _ addrMode) byte { cpu.stopState = StopWaitingForIrq; return 0 }
func opSTP(cpu *CPU65C02, _ addrMode) byte { cpu.stopState = StopStopped; return 0 }

// --- No-ops ---

func opNOP(cpu *CPU65C02, _ addrMode) byte         { return 0 }
func opNOP8Cycle(cpu *CPU65C02, mode addrMode) byte { cpu.resolveOperand(mode); return 0 }
func opNOP4Cycle(cpu *CPU65C02, mode addrMode) byte {
	cpu.resolveOperand(mode)
	return 0
}

// --- Rockwell bit-branch/bit-manipulation extensions ---

func opRMB(cpu *CPU65C02, mode addrMode, bit byte) byte {
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr)
	cpu.writeByte(addr, v&^(1<<bit))
	return 0
}
func opSMB(cpu *CPU65C02, mode addrMode, bit byte) byte {
	addr, _ := cpu.resolveOperand(mode)
	v := cpu.readByte(addr)
	cpu.writeByte(addr, v|(1<<bit))
	return 0
}

// opBBR/opBBS read the zero-page address and relative offset manually
// (modeZeroPageRelative is a compound operand the shared resolveOperand
// helper does not model, since it is unique to these 16 opcodes).
func opBBR(cpu *CPU65C02, bit byte) byte { return bbrbbsCommon(cpu, bit, false) }
func opBBS(cpu *CPU65C02, bit byte) byte { return bbrbbsCommon(cpu, bit, true) }

func bbrbbsCommon(cpu *CPU65C02, bit byte, setWanted bool) byte {
	zp := cpu.readByte(cpu.PC)
	cpu.PC++
	v := cpu.readByte(uint16(zp))
	offset := int8(cpu.readByte(cpu.PC))
	cpu.PC++
	bitSet := v&(1<<bit) != 0
	if bitSet != setWanted {
		return 0
	}
	cpu.PC = uint16(int32(cpu.PC) + int32(offset))
	return 1
}
