// mikey_test.go

package main

import "testing"

func TestMikeyTimerRegisterDispatchRoutesByOffset(t *testing.T) {
	m := NewMikey()
	m.Reset()
	m.WriteRegister(0xFD00, 0x42) // timer 0 backup value
	if got := m.Timers.timers[0].BackupValue; got != 0x42 {
		t.Fatalf("BackupValue = %#x, want 0x42", got)
	}
	if got := m.ReadRegister(0xFD00); got != 0x42 {
		t.Fatalf("ReadRegister(0xFD00) = %#x, want 0x42", got)
	}
}

func TestMikeyAudioRegisterDispatchRoutesByOffset(t *testing.T) {
	m := NewMikey()
	m.Reset()
	m.WriteRegister(0xFD20, 0x33) // channel 0 volume
	if m.APU.Channels[0].Volume != 0x33 {
		t.Fatalf("channel 0 volume = %#x, want 0x33", m.APU.Channels[0].Volume)
	}
}

func TestMikeyPaletteRegistersAreIndependentBanks(t *testing.T) {
	m := NewMikey()
	m.Reset()
	m.WriteRegister(0xFD80, 0x0A) // green[0]
	m.WriteRegister(0xFD90, 0x05) // blue/red[0]
	if m.Display.PaletteGreen[0] != 0x0A || m.Display.PaletteBR[0] != 0x05 {
		t.Fatalf("palette banks must not alias each other")
	}
}

func TestMikeyIrqAssertedReflectsTimerAndUart(t *testing.T) {
	m := NewMikey()
	m.Reset()
	if m.IrqAsserted() {
		t.Fatalf("a freshly reset Mikey must not assert IRQ")
	}
	m.Timers.IrqPending = 1
	if !m.IrqAsserted() {
		t.Fatalf("IrqAsserted must reflect the timer cascade's pending bits")
	}
}

func TestMikeyHBlankRequestsScanlineDmaOnlyWhenEnabled(t *testing.T) {
	m := NewMikey()
	m.Reset()
	m.WriteRegister(0xFD02, 0) // timer 0 count = 0, underflows immediately
	m.WriteRegister(0xFD01, ctrlAEnable)
	m.Tick(4)
	if m.TakePendingScanline() {
		t.Fatalf("scanline DMA must not be requested while DispCtl's enable bit is clear")
	}

	m.WriteRegister(mikeyDispCtl|0xFD00, dispCtlDmaEnable)
	m.Timers.timers[0].TimerDone = false
	m.Timers.timers[0].Count = 0
	m.Tick(4)
	if !m.TakePendingScanline() {
		t.Fatalf("scanline DMA must be requested on HBlank once DispCtl enables it")
	}
	if m.TakePendingScanline() {
		t.Fatalf("TakePendingScanline must clear the flag after reading it")
	}
}
