// mikey.go - Mikey: timers, audio, display DMA, UART and register dispatch

/*
Mikey exposes its timers, audio channels, palette, display DMA cursor and
UART behind a single flat 256-byte register window ($FD00-$FDFF), the
same "one chip, one dispatch switch" shape the teacher uses for its
sound chips' register windows (ay_chip.go, pokey_chip.go). Mikey
satisfies MemoryManager's MikeyPort interface directly; Tick is driven
once per CPU step from the console coordinator.
*/

package main

const (
	mikeyTimerBase    = 0x00
	mikeyTimerEnd     = 0x1F
	mikeyAudioBase    = 0x20
	mikeyAudioEnd     = 0x3F
	mikeySerCtl       = 0x40
	mikeySerDat       = 0x41
	mikeyPalGreenBase = 0x80
	mikeyPalGreenEnd  = 0x8F
	mikeyPalBRBase    = 0x90
	mikeyPalBREnd     = 0x9F
	mikeyDispAddrLo   = 0xA0
	mikeyDispAddrHi   = 0xA1
	mikeyDispCtl      = 0xA2
)

const dispCtlDmaEnable = 1 << 0

// Mikey aggregates the timer cascade, APU, display engine and UART into
// a single addressable chip.
type Mikey struct {
	Timers  MikeyTimers
	APU     *MikeyAPU
	Display MikeyDisplay
	UART    *MikeyUART

	dispCtl byte
	pendingScanline bool
}

func NewMikey() *Mikey {
	m := &Mikey{}
	m.APU = NewMikeyAPU(&m.Timers)
	m.UART = NewMikeyUART()
	return m
}

func (m *Mikey) Reset() {
	m.Timers.Reset()
	m.APU.Reset()
	m.Display.Reset()
	m.UART.Reset()
	m.dispCtl = 0
}

// Tick advances Mikey by the given number of CPU cycles: the timer
// cascade, then any audio/UART/display side effects of timers that just
// underflowed.
func (m *Mikey) Tick(cpuCycles int) {
	prevDone := [8]bool{}
	for i := 0; i < 8; i++ {
		prevDone[i] = m.Timers.timers[i].TimerDone
	}
	m.Timers.Tick(cpuCycles)
	for i := 0; i < 4; i++ {
		if m.Timers.timers[i].TimerDone && !prevDone[i] {
			m.APU.Clock(i)
		}
	}
	if m.Timers.timers[4].TimerDone && !prevDone[4] {
		m.UART.BitClock()
	}
	if m.Timers.timers[0].TimerDone && !prevDone[0] && m.dispCtl&dispCtlDmaEnable != 0 {
		// HBlank: caller supplies the RAM reader via DmaRead below, wired
		// through the console coordinator since Mikey has no direct bus
		// handle of its own (it only ever sees its own register window).
		m.pendingScanline = true
	}
	if m.Timers.timers[2].TimerDone && !prevDone[2] {
		m.Display.BeginFrame()
	}
}

// TakePendingScanline reports and clears whether Mikey wants a scanline
// DMAed since the last call. Mikey has no direct handle on the shared
// bus, so the console coordinator supplies the RAM reader and performs
// the actual transfer via Display.DmaScanline.
func (m *Mikey) TakePendingScanline() bool {
	p := m.pendingScanline
	m.pendingScanline = false
	return p
}

func (m *Mikey) IrqAsserted() bool {
	return m.Timers.IrqAsserted() || m.UART.IrqAsserted()
}

func (m *Mikey) ReadRegister(addr uint16) byte {
	off := int(addr & 0xFF)
	switch {
	case off >= mikeyTimerBase && off <= mikeyTimerEnd:
		i := off / 4
		return m.Timers.ReadTimerRegister(i, off%4)
	case off >= mikeyAudioBase && off <= mikeyAudioEnd:
		i := (off - mikeyAudioBase) / 8
		return m.APU.ReadRegister(i, (off-mikeyAudioBase)%8)
	case off == mikeySerCtl:
		return m.UART.ReadStatus()
	case off == mikeySerDat:
		return m.UART.ReadData()
	case off >= mikeyPalGreenBase && off <= mikeyPalGreenEnd:
		return m.Display.ReadPaletteGreen(off - mikeyPalGreenBase)
	case off >= mikeyPalBRBase && off <= mikeyPalBREnd:
		return m.Display.ReadPaletteBR(off - mikeyPalBRBase)
	case off == mikeyDispAddrLo:
		return byte(m.Display.DispAddr)
	case off == mikeyDispAddrHi:
		return byte(m.Display.DispAddr >> 8)
	case off == mikeyDispCtl:
		return m.dispCtl
	}
	return 0xFF
}

func (m *Mikey) WriteRegister(addr uint16, value byte) {
	off := int(addr & 0xFF)
	switch {
	case off >= mikeyTimerBase && off <= mikeyTimerEnd:
		i := off / 4
		m.Timers.WriteTimerRegister(i, off%4, value)
	case off >= mikeyAudioBase && off <= mikeyAudioEnd:
		i := (off - mikeyAudioBase) / 8
		m.APU.WriteRegister(i, (off-mikeyAudioBase)%8, value)
	case off == mikeySerCtl:
		m.UART.WriteControl(value)
	case off == mikeySerDat:
		m.UART.WriteData(value)
	case off >= mikeyPalGreenBase && off <= mikeyPalGreenEnd:
		m.Display.WritePaletteGreen(off-mikeyPalGreenBase, value)
	case off >= mikeyPalBRBase && off <= mikeyPalBREnd:
		m.Display.WritePaletteBR(off-mikeyPalBRBase, value)
	case off == mikeyDispAddrLo:
		m.Display.DispAddr = (m.Display.DispAddr &^ 0x00FF) | uint16(value)
	case off == mikeyDispAddrHi:
		m.Display.DispAddr = (m.Display.DispAddr & 0x00FF) | (uint16(value) << 8)
	case off == mikeyDispCtl:
		m.dispCtl = value
	}
}
