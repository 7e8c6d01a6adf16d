// debug_disasm_65c02.go - 65C02 disassembler for Machine Monitor

package main

import (
	"fmt"
	"strings"
)

type opInfo65c02 struct {
	name string
	mode int // addressing mode
	size int // instruction size in bytes
}

const (
	am65Imp  = iota // Implied
	am65Acc         // Accumulator
	am65Imm         // #nn
	am65Zp          // nn
	am65ZpX         // nn,X
	am65ZpY         // nn,Y
	am65Abs         // nnnn
	am65AbsX        // nnnn,X
	am65AbsY        // nnnn,Y
	am65Ind         // (nnnn)
	am65IndX        // (nn,X)
	am65IndY        // (nn),Y
	am65ZpInd       // (nn) - 65C02 addition
	am65IndAbsX     // (nnnn,X) - JMP only
	am65Rel         // relative
	am65ZpRel       // zp, relative - BBR/BBS operand shape
)

// opcodes65c02 covers the base 6502 set plus the Rockwell bit-branch
// (BBR/BBS) and bit-manipulation (RMB/SMB) extensions, BRA, STZ, TRB,
// TSB, PHX/PLX/PHY/PLY and the zero-page-indirect addressing mode the
// 65C02 adds to ORA/AND/EOR/ADC/STA/LDA/CMP/SBC.
var opcodes65c02 = [256]opInfo65c02{
	0x00: {"BRK", am65Imp, 1}, 0x01: {"ORA", am65IndX, 2},
	0x04: {"TSB", am65Zp, 2}, 0x05: {"ORA", am65Zp, 2},
	0x06: {"ASL", am65Zp, 2}, 0x07: {"RMB0", am65Zp, 2},
	0x08: {"PHP", am65Imp, 1}, 0x09: {"ORA", am65Imm, 2},
	0x0A: {"ASL", am65Acc, 1}, 0x0C: {"TSB", am65Abs, 3},
	0x0D: {"ORA", am65Abs, 3}, 0x0E: {"ASL", am65Abs, 3},
	0x0F: {"BBR0", am65ZpRel, 3},

	0x10: {"BPL", am65Rel, 2}, 0x11: {"ORA", am65IndY, 2},
	0x12: {"ORA", am65ZpInd, 2}, 0x14: {"TRB", am65Zp, 2},
	0x15: {"ORA", am65ZpX, 2}, 0x16: {"ASL", am65ZpX, 2},
	0x17: {"RMB1", am65Zp, 2}, 0x18: {"CLC", am65Imp, 1},
	0x19: {"ORA", am65AbsY, 3}, 0x1A: {"INC", am65Acc, 1},
	0x1C: {"TRB", am65Abs, 3}, 0x1D: {"ORA", am65AbsX, 3},
	0x1E: {"ASL", am65AbsX, 3}, 0x1F: {"BBR1", am65ZpRel, 3},

	0x20: {"JSR", am65Abs, 3}, 0x21: {"AND", am65IndX, 2},
	0x24: {"BIT", am65Zp, 2}, 0x25: {"AND", am65Zp, 2},
	0x26: {"ROL", am65Zp, 2}, 0x27: {"RMB2", am65Zp, 2},
	0x28: {"PLP", am65Imp, 1}, 0x29: {"AND", am65Imm, 2},
	0x2A: {"ROL", am65Acc, 1}, 0x2C: {"BIT", am65Abs, 3},
	0x2D: {"AND", am65Abs, 3}, 0x2E: {"ROL", am65Abs, 3},
	0x2F: {"BBR2", am65ZpRel, 3},

	0x30: {"BMI", am65Rel, 2}, 0x31: {"AND", am65IndY, 2},
	0x32: {"AND", am65ZpInd, 2}, 0x34: {"BIT", am65ZpX, 2},
	0x35: {"AND", am65ZpX, 2}, 0x36: {"ROL", am65ZpX, 2},
	0x37: {"RMB3", am65Zp, 2}, 0x38: {"SEC", am65Imp, 1},
	0x39: {"AND", am65AbsY, 3}, 0x3A: {"DEC", am65Acc, 1},
	0x3C: {"BIT", am65AbsX, 3}, 0x3D: {"AND", am65AbsX, 3},
	0x3E: {"ROL", am65AbsX, 3}, 0x3F: {"BBR3", am65ZpRel, 3},

	0x40: {"RTI", am65Imp, 1}, 0x41: {"EOR", am65IndX, 2},
	0x45: {"EOR", am65Zp, 2}, 0x46: {"LSR", am65Zp, 2},
	0x47: {"RMB4", am65Zp, 2}, 0x48: {"PHA", am65Imp, 1},
	0x49: {"EOR", am65Imm, 2}, 0x4A: {"LSR", am65Acc, 1},
	0x4C: {"JMP", am65Abs, 3}, 0x4D: {"EOR", am65Abs, 3},
	0x4E: {"LSR", am65Abs, 3}, 0x4F: {"BBR4", am65ZpRel, 3},

	0x50: {"BVC", am65Rel, 2}, 0x51: {"EOR", am65IndY, 2},
	0x52: {"EOR", am65ZpInd, 2}, 0x55: {"EOR", am65ZpX, 2},
	0x56: {"LSR", am65ZpX, 2}, 0x57: {"RMB5", am65Zp, 2},
	0x58: {"CLI", am65Imp, 1}, 0x59: {"EOR", am65AbsY, 3},
	0x5A: {"PHY", am65Imp, 1}, 0x5D: {"EOR", am65AbsX, 3},
	0x5E: {"LSR", am65AbsX, 3}, 0x5F: {"BBR5", am65ZpRel, 3},

	0x60: {"RTS", am65Imp, 1}, 0x61: {"ADC", am65IndX, 2},
	0x64: {"STZ", am65Zp, 2}, 0x65: {"ADC", am65Zp, 2},
	0x66: {"ROR", am65Zp, 2}, 0x67: {"RMB6", am65Zp, 2},
	0x68: {"PLA", am65Imp, 1}, 0x69: {"ADC", am65Imm, 2},
	0x6A: {"ROR", am65Acc, 1}, 0x6C: {"JMP", am65Ind, 3},
	0x6D: {"ADC", am65Abs, 3}, 0x6E: {"ROR", am65Abs, 3},
	0x6F: {"BBR6", am65ZpRel, 3},

	0x70: {"BVS", am65Rel, 2}, 0x71: {"ADC", am65IndY, 2},
	0x72: {"ADC", am65ZpInd, 2}, 0x74: {"STZ", am65ZpX, 2},
	0x75: {"ADC", am65ZpX, 2}, 0x76: {"ROR", am65ZpX, 2},
	0x77: {"RMB7", am65Zp, 2}, 0x78: {"SEI", am65Imp, 1},
	0x79: {"ADC", am65AbsY, 3}, 0x7A: {"PLY", am65Imp, 1},
	0x7C: {"JMP", am65IndAbsX, 3}, 0x7D: {"ADC", am65AbsX, 3},
	0x7E: {"ROR", am65AbsX, 3}, 0x7F: {"BBR7", am65ZpRel, 3},

	0x80: {"BRA", am65Rel, 2}, 0x81: {"STA", am65IndX, 2},
	0x84: {"STY", am65Zp, 2}, 0x85: {"STA", am65Zp, 2},
	0x86: {"STX", am65Zp, 2}, 0x87: {"SMB0", am65Zp, 2},
	0x88: {"DEY", am65Imp, 1}, 0x89: {"BIT", am65Imm, 2},
	0x8A: {"TXA", am65Imp, 1}, 0x8C: {"STY", am65Abs, 3},
	0x8D: {"STA", am65Abs, 3}, 0x8E: {"STX", am65Abs, 3},
	0x8F: {"BBS0", am65ZpRel, 3},

	0x90: {"BCC", am65Rel, 2}, 0x91: {"STA", am65IndY, 2},
	0x92: {"STA", am65ZpInd, 2}, 0x94: {"STY", am65ZpX, 2},
	0x95: {"STA", am65ZpX, 2}, 0x96: {"STX", am65ZpY, 2},
	0x97: {"SMB1", am65Zp, 2}, 0x98: {"TYA", am65Imp, 1},
	0x99: {"STA", am65AbsY, 3}, 0x9A: {"TXS", am65Imp, 1},
	0x9C: {"STZ", am65Abs, 3}, 0x9D: {"STA", am65AbsX, 3},
	0x9E: {"STZ", am65AbsX, 3}, 0x9F: {"BBS1", am65ZpRel, 3},

	0xA0: {"LDY", am65Imm, 2}, 0xA1: {"LDA", am65IndX, 2},
	0xA2: {"LDX", am65Imm, 2}, 0xA4: {"LDY", am65Zp, 2},
	0xA5: {"LDA", am65Zp, 2}, 0xA6: {"LDX", am65Zp, 2},
	0xA7: {"SMB2", am65Zp, 2}, 0xA8: {"TAY", am65Imp, 1},
	0xA9: {"LDA", am65Imm, 2}, 0xAA: {"TAX", am65Imp, 1},
	0xAC: {"LDY", am65Abs, 3}, 0xAD: {"LDA", am65Abs, 3},
	0xAE: {"LDX", am65Abs, 3}, 0xAF: {"BBS2", am65ZpRel, 3},

	0xB0: {"BCS", am65Rel, 2}, 0xB1: {"LDA", am65IndY, 2},
	0xB2: {"LDA", am65ZpInd, 2}, 0xB4: {"LDY", am65ZpX, 2},
	0xB5: {"LDA", am65ZpX, 2}, 0xB6: {"LDX", am65ZpY, 2},
	0xB7: {"SMB3", am65Zp, 2}, 0xB8: {"CLV", am65Imp, 1},
	0xB9: {"LDA", am65AbsY, 3}, 0xBA: {"TSX", am65Imp, 1},
	0xBC: {"LDY", am65AbsX, 3}, 0xBD: {"LDA", am65AbsX, 3},
	0xBE: {"LDX", am65AbsY, 3}, 0xBF: {"BBS3", am65ZpRel, 3},

	0xC0: {"CPY", am65Imm, 2}, 0xC1: {"CMP", am65IndX, 2},
	0xC4: {"CPY", am65Zp, 2}, 0xC5: {"CMP", am65Zp, 2},
	0xC6: {"DEC", am65Zp, 2}, 0xC7: {"SMB4", am65Zp, 2},
	0xC8: {"INY", am65Imp, 1}, 0xC9: {"CMP", am65Imm, 2},
	0xCA: {"DEX", am65Imp, 1}, 0xCC: {"CPY", am65Abs, 3},
	0xCD: {"CMP", am65Abs, 3}, 0xCE: {"DEC", am65Abs, 3},
	0xCF: {"BBS4", am65ZpRel, 3},

	0xD0: {"BNE", am65Rel, 2}, 0xD1: {"CMP", am65IndY, 2},
	0xD2: {"CMP", am65ZpInd, 2}, 0xD5: {"CMP", am65ZpX, 2},
	0xD6: {"DEC", am65ZpX, 2}, 0xD7: {"SMB5", am65Zp, 2},
	0xD8: {"CLD", am65Imp, 1}, 0xD9: {"CMP", am65AbsY, 3},
	0xDA: {"PHX", am65Imp, 1}, 0xDD: {"CMP", am65AbsX, 3},
	0xDE: {"DEC", am65AbsX, 3}, 0xDF: {"BBS5", am65ZpRel, 3},

	0xE0: {"CPX", am65Imm, 2}, 0xE1: {"SBC", am65IndX, 2},
	0xE4: {"CPX", am65Zp, 2}, 0xE5: {"SBC", am65Zp, 2},
	0xE6: {"INC", am65Zp, 2}, 0xE7: {"SMB6", am65Zp, 2},
	0xE8: {"INX", am65Imp, 1}, 0xE9: {"SBC", am65Imm, 2},
	0xEA: {"NOP", am65Imp, 1}, 0xEC: {"CPX", am65Abs, 3},
	0xED: {"SBC", am65Abs, 3}, 0xEE: {"INC", am65Abs, 3},
	0xEF: {"BBS6", am65ZpRel, 3},

	0xF0: {"BEQ", am65Rel, 2}, 0xF1: {"SBC", am65IndY, 2},
	0xF2: {"SBC", am65ZpInd, 2}, 0xF5: {"SBC", am65ZpX, 2},
	0xF6: {"INC", am65ZpX, 2}, 0xF7: {"SMB7", am65Zp, 2},
	0xF8: {"SED", am65Imp, 1}, 0xF9: {"SBC", am65AbsY, 3},
	0xFA: {"PLX", am65Imp, 1}, 0xFD: {"SBC", am65AbsX, 3},
	0xFE: {"INC", am65AbsX, 3}, 0xFF: {"BBS7", am65ZpRel, 3},
}

func disassemble65c02(readMem func(addr uint64, size int) []byte, addr uint64, count int) []DisassembledLine {
	var lines []DisassembledLine
	for i := 0; i < count; i++ {
		data := readMem(addr, 3)
		if len(data) < 1 {
			break
		}
		op := data[0]
		info := opcodes65c02[op]
		size := info.size
		if size == 0 {
			size = 1
		}
		if len(data) < size {
			size = len(data)
		}

		var hexParts []string
		for j := 0; j < size; j++ {
			hexParts = append(hexParts, fmt.Sprintf("%02X", data[j]))
		}

		isBranch := false
		var branchTarget uint64

		var mnemonic string
		if info.name == "" {
			mnemonic = fmt.Sprintf("db $%02X", op)
		} else {
			switch info.mode {
			case am65Imp:
				mnemonic = info.name
			case am65Acc:
				mnemonic = info.name + " A"
			case am65Imm:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s #$%02X", info.name, data[1])
				} else {
					mnemonic = info.name + " #?"
				}
			case am65Zp:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s $%02X", info.name, data[1])
				} else {
					mnemonic = info.name + " ?"
				}
			case am65ZpX:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s $%02X,X", info.name, data[1])
				} else {
					mnemonic = info.name + " ?,X"
				}
			case am65ZpY:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s $%02X,Y", info.name, data[1])
				} else {
					mnemonic = info.name + " ?,Y"
				}
			case am65ZpInd:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s ($%02X)", info.name, data[1])
				} else {
					mnemonic = info.name + " (?)"
				}
			case am65Abs:
				if size >= 3 {
					nn := uint16(data[1]) | uint16(data[2])<<8
					mnemonic = fmt.Sprintf("%s $%04X", info.name, nn)
					if info.name == "JSR" || info.name == "JMP" {
						isBranch = true
						branchTarget = uint64(nn)
					}
				} else {
					mnemonic = info.name + " ???"
				}
			case am65AbsX:
				if size >= 3 {
					nn := uint16(data[1]) | uint16(data[2])<<8
					mnemonic = fmt.Sprintf("%s $%04X,X", info.name, nn)
				} else {
					mnemonic = info.name + " ???,X"
				}
			case am65AbsY:
				if size >= 3 {
					nn := uint16(data[1]) | uint16(data[2])<<8
					mnemonic = fmt.Sprintf("%s $%04X,Y", info.name, nn)
				} else {
					mnemonic = info.name + " ???,Y"
				}
			case am65Ind:
				if size >= 3 {
					nn := uint16(data[1]) | uint16(data[2])<<8
					mnemonic = fmt.Sprintf("%s ($%04X)", info.name, nn)
					isBranch = true
				} else {
					mnemonic = info.name + " (???)"
				}
			case am65IndAbsX:
				if size >= 3 {
					nn := uint16(data[1]) | uint16(data[2])<<8
					mnemonic = fmt.Sprintf("%s ($%04X,X)", info.name, nn)
					isBranch = true
				} else {
					mnemonic = info.name + " (???,X)"
				}
			case am65IndX:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s ($%02X,X)", info.name, data[1])
				} else {
					mnemonic = info.name + " (?,X)"
				}
			case am65IndY:
				if size >= 2 {
					mnemonic = fmt.Sprintf("%s ($%02X),Y", info.name, data[1])
				} else {
					mnemonic = info.name + " (?),Y"
				}
			case am65Rel:
				if size >= 2 {
					target := uint16(addr) + 2 + uint16(int8(data[1]))
					mnemonic = fmt.Sprintf("%s $%04X", info.name, target)
					isBranch = true
					branchTarget = uint64(target)
				} else {
					mnemonic = info.name + " ???"
				}
			case am65ZpRel:
				if size >= 3 {
					target := uint16(addr) + 3 + uint16(int8(data[2]))
					mnemonic = fmt.Sprintf("%s $%02X,$%04X", info.name, data[1], target)
					isBranch = true
					branchTarget = uint64(target)
				} else {
					mnemonic = info.name + " ?,???"
				}
			default:
				mnemonic = info.name
			}
		}

		lines = append(lines, DisassembledLine{
			Address:      addr,
			HexBytes:     strings.Join(hexParts, " "),
			Mnemonic:     mnemonic,
			Size:         size,
			IsBranch:     isBranch,
			BranchTarget: branchTarget,
		})
		addr += uint64(size)
	}
	return lines
}
