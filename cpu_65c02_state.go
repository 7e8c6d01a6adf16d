// cpu_65c02_state.go - CpuState save-state snapshot for CPU65C02

// CpuState is the serializable subset of CPU65C02 spec.md section 3
// names for save states: the registers, cycle counter, IRQ line and
// stop-state variant. InInterrupt is not part of the documented public
// state; it is set on IRQ entry and cleared by RTI, nothing in the CPU
// reads it, and it is carried so a restored CPU reports the same value.
package main

type CpuState struct {
	PC uint16
	SP byte
	A  byte
	X  byte
	Y  byte
	SR byte

	Cycles      uint64
	IrqLine     bool
	StopState   StopState
	InInterrupt bool
}

// State returns a snapshot of the CPU's serializable state.
func (cpu *CPU65C02) State() CpuState {
	return CpuState{
		PC: cpu.PC, SP: cpu.SP, A: cpu.A, X: cpu.X, Y: cpu.Y, SR: cpu.SR,
		Cycles:      cpu.Cycles,
		IrqLine:     cpu.irqPending.Load(),
		StopState:   cpu.stopState,
		InInterrupt: cpu.InInterrupt,
	}
}

// RestoreState applies a previously serialized CpuState.
func (cpu *CPU65C02) RestoreState(s CpuState) {
	cpu.PC, cpu.SP, cpu.A, cpu.X, cpu.Y, cpu.SR = s.PC, s.SP, s.A, s.X, s.Y, s.SR
	cpu.Cycles = s.Cycles
	cpu.irqPending.Store(s.IrqLine)
	cpu.stopState = s.StopState
	cpu.InInterrupt = s.InInterrupt
}
