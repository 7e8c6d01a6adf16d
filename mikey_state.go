// mikey_state.go - MikeyState save-state aggregate

// MikeyState aggregates every field of Mikey that affects future
// behavior, per spec.md section 9's serialization guidance: derived
// fields (IrqEnabled mirrors each timer's ControlA bit 7 and is
// recomputed, never serialized) are intentionally excluded.
package main

type MikeyState struct {
	Timers     [8]TimerState
	IrqPending byte

	Channels [4]AudioChannelState

	PaletteGreen [16]byte
	PaletteBR    [16]byte
	DispAddr     uint16

	Uart UartState

	DispCtl byte
}

func (m *Mikey) State() MikeyState {
	return MikeyState{
		Timers:       m.Timers.timers,
		IrqPending:   m.Timers.IrqPending,
		Channels:     m.APU.Channels,
		PaletteGreen: m.Display.PaletteGreen,
		PaletteBR:    m.Display.PaletteBR,
		DispAddr:     m.Display.DispAddr,
		Uart:         m.UART.s,
		DispCtl:      m.dispCtl,
	}
}

func (m *Mikey) RestoreState(s MikeyState) {
	m.Timers.timers = s.Timers
	m.Timers.IrqPending = s.IrqPending
	for i := range m.Timers.timers {
		if m.Timers.timers[i].irqEnabled() {
			m.Timers.IrqEnabled |= 1 << uint(i)
		}
	}
	m.APU.Channels = s.Channels
	m.Display.PaletteGreen = s.PaletteGreen
	m.Display.PaletteBR = s.PaletteBR
	m.Display.DispAddr = s.DispAddr
	m.UART.s = s.Uart
	m.dispCtl = s.DispCtl
}
