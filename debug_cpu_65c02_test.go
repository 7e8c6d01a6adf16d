// debug_cpu_65c02_test.go

package main

import (
	"testing"
	"time"
)

func newTestDebug65C02() (*Debug65C02, *flatBus, *CPU65C02) {
	cpu, bus := newTestCPU()
	return NewDebug65C02(cpu), bus, cpu
}

func TestDebug65C02Registers(t *testing.T) {
	d, _, cpu := newTestDebug65C02()
	cpu.A, cpu.X, cpu.Y, cpu.SP, cpu.PC, cpu.SR = 0x11, 0x22, 0x33, 0xFD, 0x0600, 0x24

	regs := d.GetRegisters()
	if len(regs) != 6 {
		t.Fatalf("GetRegisters() returned %d entries, want 6", len(regs))
	}

	val, ok := d.GetRegister("a")
	if !ok || val != 0x11 {
		t.Errorf("GetRegister(a) = (%#x, %v), want (0x11, true)", val, ok)
	}
	val, ok = d.GetRegister("PC")
	if !ok || val != 0x0600 {
		t.Errorf("GetRegister(PC) = (%#x, %v), want (0x600, true)", val, ok)
	}
	if _, ok := d.GetRegister("Z"); ok {
		t.Error("GetRegister(Z) should not exist on a 65C02")
	}
}

func TestDebug65C02SetRegister(t *testing.T) {
	d, _, cpu := newTestDebug65C02()

	if !d.SetRegister("pc", 0x8000) {
		t.Fatal("SetRegister(pc) should succeed")
	}
	if cpu.PC != 0x8000 {
		t.Errorf("PC = %#x, want 0x8000", cpu.PC)
	}
	if d.SetRegister("Z", 1) {
		t.Error("SetRegister(Z) should fail, no such register")
	}
}

func TestDebug65C02Step(t *testing.T) {
	d, bus, cpu := newTestDebug65C02()
	cpu.PC = 0x1000
	bus.mem[0x1000] = 0xA9 // LDA #$42
	bus.mem[0x1001] = 0x42

	cycles := d.Step()
	if cycles == 0 {
		t.Error("Step() returned 0 cycles")
	}
	if cpu.A != 0x42 {
		t.Errorf("A = %#x, want 0x42", cpu.A)
	}
	if cpu.PC != 0x1002 {
		t.Errorf("PC = %#x, want 0x1002", cpu.PC)
	}
}

func TestDebug65C02ReadWriteMemory(t *testing.T) {
	d, _, _ := newTestDebug65C02()

	d.WriteMemory(0x2000, []byte{0xDE, 0xAD, 0xBE, 0xEF})
	data := d.ReadMemory(0x2000, 4)
	if len(data) != 4 || data[0] != 0xDE || data[3] != 0xEF {
		t.Errorf("ReadMemory(0x2000, 4) = %X, want DEADBEEF", data)
	}
}

func TestDebug65C02BreakpointSetClearList(t *testing.T) {
	d, _, _ := newTestDebug65C02()

	d.SetBreakpoint(0x1234)
	if !d.HasBreakpoint(0x1234) {
		t.Fatal("HasBreakpoint(0x1234) should be true after SetBreakpoint")
	}
	bps := d.ListBreakpoints()
	if len(bps) != 1 || bps[0] != 0x1234 {
		t.Errorf("ListBreakpoints() = %v, want [0x1234]", bps)
	}

	d.ClearBreakpoint(0x1234)
	if d.HasBreakpoint(0x1234) {
		t.Error("breakpoint should be gone after ClearBreakpoint")
	}

	d.SetBreakpoint(0x1000)
	d.SetBreakpoint(0x2000)
	d.ClearAllBreakpoints()
	if len(d.ListBreakpoints()) != 0 {
		t.Error("ClearAllBreakpoints should leave no breakpoints")
	}
}

func TestDebug65C02Watchpoint(t *testing.T) {
	d, bus, _ := newTestDebug65C02()
	bus.mem[0x3000] = 0x01

	d.SetWatchpoint(0x3000)
	wps := d.ListWatchpoints()
	if len(wps) != 1 || wps[0] != 0x3000 {
		t.Errorf("ListWatchpoints() = %v, want [0x3000]", wps)
	}

	d.ClearWatchpoint(0x3000)
	if len(d.ListWatchpoints()) != 0 {
		t.Error("watchpoint should be gone after ClearWatchpoint")
	}
}

func TestDebug65C02ResumeFreeze(t *testing.T) {
	d, bus, cpu := newTestDebug65C02()
	cpu.PC = 0x4000
	// tight NOP loop: NOP then JMP back to self
	bus.mem[0x4000] = 0xEA // NOP
	bus.mem[0x4001] = 0x4C // JMP abs
	bus.mem[0x4002] = 0x00
	bus.mem[0x4003] = 0x40

	if d.IsRunning() {
		t.Fatal("adapter should not be running before Resume")
	}

	d.Resume()
	if !d.IsRunning() {
		t.Fatal("adapter should be running after Resume")
	}

	d.Freeze()
	if d.IsRunning() {
		t.Fatal("adapter should not be running after Freeze")
	}
}

func TestDebug65C02BreakpointTrap(t *testing.T) {
	d, bus, cpu := newTestDebug65C02()
	cpu.PC = 0x5000
	// 4 NOPs then JMP back to start
	for i := uint16(0); i < 4; i++ {
		bus.mem[0x5000+i] = 0xEA
	}
	bus.mem[0x5004] = 0x4C
	bus.mem[0x5005] = 0x00
	bus.mem[0x5006] = 0x50

	ch := make(chan BreakpointEvent, 1)
	d.SetBreakpointChannel(ch, 7)
	d.SetBreakpoint(0x5002)
	d.Resume()

	select {
	case ev := <-ch:
		if ev.Address != 0x5002 {
			t.Errorf("breakpoint event address = %#x, want 0x5002", ev.Address)
		}
		if ev.CPUID != 7 {
			t.Errorf("breakpoint event CPUID = %d, want 7", ev.CPUID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for breakpoint event")
	}
	d.Freeze()
}

func TestDebug65C02CPUNameAndWidth(t *testing.T) {
	d, _, _ := newTestDebug65C02()
	if d.CPUName() != "65C02" {
		t.Errorf("CPUName() = %q, want 65C02", d.CPUName())
	}
	if d.AddressWidth() != 16 {
		t.Errorf("AddressWidth() = %d, want 16", d.AddressWidth())
	}
}
