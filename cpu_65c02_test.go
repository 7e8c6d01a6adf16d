// cpu_65c02_test.go

package main

import "testing"

type flatBus struct {
	mem [0x10000]byte
}

func (b *flatBus) Read(addr uint16) byte        { return b.mem[addr] }
func (b *flatBus) Write(addr uint16, v byte)    { b.mem[addr] = v }

func newTestCPU() (*CPU65C02, *flatBus) {
	bus := &flatBus{}
	cpu := NewCPU65C02(bus)
	return cpu, bus
}

func TestCpuResetLoadsPcFromResetVector(t *testing.T) {
	cpu, bus := newTestCPU()
	bus.mem[ResetVector] = 0x00
	bus.mem[ResetVector+1] = 0x80
	cpu.Reset()
	if cpu.PC != 0x8000 {
		t.Fatalf("PC after reset = %#04x, want 0x8000", cpu.PC)
	}
	if !cpu.getFlag(FlagInterrupt) {
		t.Fatalf("Reset must set the Interrupt-disable flag")
	}
}

func TestCpuLdaImmediateSetsNegativeAndZero(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0xA9 // LDA #
	bus.mem[0x1001] = 0x80
	cpu.Step()
	if cpu.A != 0x80 {
		t.Fatalf("A = %#x, want 0x80", cpu.A)
	}
	if !cpu.getFlag(FlagNegative) || cpu.getFlag(FlagZero) {
		t.Fatalf("flags after LDA #$80: N=%v Z=%v, want N=true Z=false", cpu.getFlag(FlagNegative), cpu.getFlag(FlagZero))
	}
}

func TestCpuAdcBinaryCarryAndOverflow(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	cpu.A = 0x7F
	bus.mem[0x1000] = 0x69 // ADC #
	bus.mem[0x1001] = 0x01
	cpu.Step()
	if cpu.A != 0x80 {
		t.Fatalf("A = %#x, want 0x80", cpu.A)
	}
	if !cpu.getFlag(FlagOverflow) {
		t.Fatalf("0x7F+0x01 must set overflow (signed 127+1 overflows)")
	}
	if cpu.getFlag(FlagCarry) {
		t.Fatalf("0x7F+0x01 must not set carry")
	}
}

func TestCpuIrqPushClearsBreakAndSetsReserved(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1234
	cpu.SP = 0xFF
	cpu.SR = FlagBreak // intentionally set, must be cleared on the pushed copy
	cpu.setFlag(FlagInterrupt, false)
	bus.mem[IrqVector] = 0x00
	bus.mem[IrqVector+1] = 0x90
	cpu.SetIrqLine(true)
	cpu.Step()

	pushedSR := bus.mem[StackBase+uint16(cpu.SP)+1]
	if pushedSR&FlagBreak != 0 {
		t.Fatalf("pushed status must have Break cleared, got %#02x", pushedSR)
	}
	if pushedSR&FlagReserved == 0 {
		t.Fatalf("pushed status must have Reserved set, got %#02x", pushedSR)
	}
	if cpu.PC != 0x9000 {
		t.Fatalf("PC after IRQ = %#04x, want 0x9000", cpu.PC)
	}
}

func TestCpuWaiWakesOnAnyIrqRegardlessOfInterruptFlag(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0xCB // WAI
	cpu.setFlag(FlagInterrupt, true)
	cpu.Step()
	if cpu.StopState() != StopWaitingForIrq {
		t.Fatalf("StopState() = %v, want StopWaitingForIrq", cpu.StopState())
	}

	cpu.SetIrqLine(true)
	bus.mem[IrqVector] = 0x00
	bus.mem[IrqVector+1] = 0xA0
	cpu.Step()
	if cpu.StopState() != StopRunning {
		t.Fatalf("WAI must wake on any pending IRQ even with I flag set")
	}
}

func TestCpuStpHaltsUntilExplicitReset(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0xDB // STP
	cpu.Step()
	if cpu.StopState() != StopStopped {
		t.Fatalf("StopState() = %v, want StopStopped", cpu.StopState())
	}
	pcBefore := cpu.PC
	cpu.Step()
	if cpu.PC != pcBefore {
		t.Fatalf("STP must not execute further instructions")
	}
}

func TestCpuBbrBranchesOnClearBit(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0x0F // BBR0 zp, rel
	bus.mem[0x1001] = 0x10 // zero page address
	bus.mem[0x10] = 0x00   // bit 0 clear
	bus.mem[0x1002] = 0x05 // branch forward 5
	cpu.Step()
	if cpu.PC != 0x1003+5 {
		t.Fatalf("BBR0 should branch when bit 0 is clear, PC = %#04x", cpu.PC)
	}
}

func TestCpuRmbSmbSetAndClearBits(t *testing.T) {
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0x87 // SMB0 zp
	bus.mem[0x1001] = 0x20
	cpu.Step()
	if bus.mem[0x20]&0x01 == 0 {
		t.Fatalf("SMB0 should set bit 0")
	}

	cpu.PC = 0x1002
	bus.mem[0x1002] = 0x07 // RMB0 zp
	bus.mem[0x1003] = 0x20
	cpu.Step()
	if bus.mem[0x20]&0x01 != 0 {
		t.Fatalf("RMB0 should clear bit 0")
	}
}

func TestCpuJmpIndirectDoesNotWrapPage(t *testing.T) {
	// 65C02 fixes the NMOS JMP ($xxFF) page-wrap bug: the high byte must
	// come from $xxFF+1, not wrap to $xx00.
	cpu, bus := newTestCPU()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0x6C // JMP (ind)
	bus.mem[0x1001] = 0xFF
	bus.mem[0x1002] = 0x20 // pointer = 0x20FF
	bus.mem[0x20FF] = 0x34
	bus.mem[0x2100] = 0x12 // correct high byte location
	bus.mem[0x2000] = 0xFF // what an NMOS wrap bug would have read instead
	cpu.Step()
	if cpu.PC != 0x1234 {
		t.Fatalf("JMP (ind) across page boundary = %#04x, want 0x1234", cpu.PC)
	}
}

func TestCyclesPerFrameMatchesClockDivision(t *testing.T) {
	if CpuCyclesPerFrame != CpuClockHz/Fps {
		t.Fatalf("CpuCyclesPerFrame must be derived as CpuClockHz/Fps")
	}
	if CpuCyclesPerFrame == ScanlineCount*CyclesPerScanline {
		t.Fatalf("CpuCyclesPerFrame must NOT equal the rejected scanline-count derivation")
	}
}
