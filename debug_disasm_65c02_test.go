// debug_disasm_65c02_test.go

package main

import (
	"strings"
	"testing"
)

func readMemFromBus(bus *flatBus) func(addr uint64, size int) []byte {
	return func(addr uint64, size int) []byte {
		out := make([]byte, size)
		for i := range out {
			out[i] = bus.mem[uint16(addr)+uint16(i)]
		}
		return out
	}
}

func TestDisassemble65C02Basic(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x0600] = 0xA9 // LDA #$42
	bus.mem[0x0601] = 0x42
	bus.mem[0x0602] = 0x8D // STA $1234
	bus.mem[0x0603] = 0x34
	bus.mem[0x0604] = 0x12

	lines := disassemble65c02(readMemFromBus(bus), 0x0600, 2)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Size != 2 || !strings.Contains(lines[0].Mnemonic, "LDA") || !strings.Contains(lines[0].Mnemonic, "42") {
		t.Errorf("line 0 = %+v, want LDA #$42 size 2", lines[0])
	}
	if lines[1].Size != 3 || !strings.Contains(lines[1].Mnemonic, "STA") || !strings.Contains(lines[1].Mnemonic, "1234") {
		t.Errorf("line 1 = %+v, want STA $1234 size 3", lines[1])
	}
}

func TestDisassemble65C02RockwellExtensions(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x0700] = 0x80 // BRA
	bus.mem[0x0701] = 0x02
	bus.mem[0x0702] = 0x64 // STZ zp
	bus.mem[0x0703] = 0x10
	bus.mem[0x0704] = 0x0F // BBR0 zp,rel
	bus.mem[0x0705] = 0x20
	bus.mem[0x0706] = 0x05
	bus.mem[0x0707] = 0x07 // RMB0 zp
	bus.mem[0x0708] = 0x30

	lines := disassemble65c02(readMemFromBus(bus), 0x0700, 4)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4", len(lines))
	}
	if !strings.Contains(lines[0].Mnemonic, "BRA") {
		t.Errorf("line 0 = %q, want BRA", lines[0].Mnemonic)
	}
	if !lines[0].IsBranch || lines[0].BranchTarget != 0x0704 {
		t.Errorf("BRA IsBranch/BranchTarget = %v/%#x, want true/0x704", lines[0].IsBranch, lines[0].BranchTarget)
	}
	if !strings.Contains(lines[1].Mnemonic, "STZ") {
		t.Errorf("line 1 = %q, want STZ", lines[1].Mnemonic)
	}
	if !strings.Contains(lines[2].Mnemonic, "BBR0") {
		t.Errorf("line 2 = %q, want BBR0", lines[2].Mnemonic)
	}
	if !strings.Contains(lines[3].Mnemonic, "RMB0") {
		t.Errorf("line 3 = %q, want RMB0", lines[3].Mnemonic)
	}
}

func TestDisassemble65C02ZeroPageIndirect(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x0800] = 0x12 // ORA (zp)
	bus.mem[0x0801] = 0x40

	lines := disassemble65c02(readMemFromBus(bus), 0x0800, 1)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if lines[0].Size != 2 || !strings.Contains(lines[0].Mnemonic, "ORA") || !strings.Contains(lines[0].Mnemonic, "$40") {
		t.Errorf("line 0 = %+v, want ORA ($40) size 2", lines[0])
	}
}

func TestDisassemble65C02JsrSetsBranchTarget(t *testing.T) {
	bus := &flatBus{}
	bus.mem[0x0900] = 0x20 // JSR $1234
	bus.mem[0x0901] = 0x34
	bus.mem[0x0902] = 0x12

	lines := disassemble65c02(readMemFromBus(bus), 0x0900, 1)
	if len(lines) != 1 {
		t.Fatalf("got %d lines, want 1", len(lines))
	}
	if !lines[0].IsBranch || lines[0].BranchTarget != 0x1234 {
		t.Errorf("JSR IsBranch/BranchTarget = %v/%#x, want true/0x1234", lines[0].IsBranch, lines[0].BranchTarget)
	}
}
