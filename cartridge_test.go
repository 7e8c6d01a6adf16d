// cartridge_test.go

package main

import "testing"

func TestCartridgeShiftRegisterAddressesLsbFirst(t *testing.T) {
	image := make([]byte, 0x10000)
	image[0x0001] = 0xAB
	c := NewCartridge(image)

	// Strobe address 0x0001, LSB first: bit0=1, remaining bits=0.
	c.StrobeAddress(true)
	for i := 0; i < 15; i++ {
		c.StrobeAddress(false)
	}
	if got := c.ReadCurrent(); got != 0xAB {
		t.Fatalf("ReadCurrent() = %#x, want 0xAB", got)
	}
}

func TestCartridgeResetAddressStrobeClearsShiftRegister(t *testing.T) {
	image := make([]byte, 4)
	image[0] = 0x42
	c := NewCartridge(image)

	c.StrobeAddress(true)
	c.ResetAddressStrobe()
	if got := c.ReadCurrent(); got != 0x42 {
		t.Fatalf("ReadCurrent() after reset = %#x, want 0x42 (address 0)", got)
	}
}

func TestCartridgeReadOutOfRangeReturnsOpenBus(t *testing.T) {
	c := NewCartridge(make([]byte, 1))
	for i := 0; i < 16; i++ {
		c.StrobeAddress(true)
	}
	if got := c.ReadCurrent(); got != 0xFF {
		t.Fatalf("ReadCurrent() out of range = %#x, want 0xFF", got)
	}
}

func TestCartridgeBankSwitching(t *testing.T) {
	bank0 := []byte{0x01}
	bank1 := []byte{0x02}
	c := NewCartridge(bank0)
	c.SetBank1(bank1)

	if got := c.ReadCurrent(); got != 0x01 {
		t.Fatalf("bank0 ReadCurrent() = %#x, want 0x01", got)
	}
	c.WriteBankSelect(1)
	if got := c.ReadCurrent(); got != 0x02 {
		t.Fatalf("bank1 ReadCurrent() = %#x, want 0x02", got)
	}
}

func TestCartridgeStateRoundTrip(t *testing.T) {
	c := NewCartridge(make([]byte, 4))
	c.StrobeAddress(true)
	c.StrobeAddress(false)
	c.WriteBankSelect(1)

	saved := c.State()
	c2 := NewCartridge(make([]byte, 4))
	c2.RestoreState(saved)
	if c2.State() != saved {
		t.Fatalf("RestoreState() did not reproduce saved state")
	}
}
