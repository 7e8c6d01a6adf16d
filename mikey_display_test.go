// mikey_display_test.go

package main

import "testing"

func TestPaletteExpandsNibblesBySelfReplication(t *testing.T) {
	var d MikeyDisplay
	d.Reset()
	d.PaletteGreen[3] = 0x0A
	d.PaletteBR[3] = 0x5C // blue=5, red=C
	r, g, b := d.PaletteRGB(3)
	if g != 0xAA {
		t.Fatalf("green = %#x, want 0xAA", g)
	}
	if b != 0x55 {
		t.Fatalf("blue = %#x, want 0x55", b)
	}
	if r != 0xCC {
		t.Fatalf("red = %#x, want 0xCC", r)
	}
}

func TestDmaScanlineUnpacksFourBitPixelsLeftNibbleFirst(t *testing.T) {
	var d MikeyDisplay
	d.Reset()
	d.DispAddr = 0x4000
	mem := map[uint16]byte{0x4000: 0x3F}
	d.DmaScanline(func(addr uint16) byte { return mem[addr] })
	if d.Framebuffer[0] != 0x3 || d.Framebuffer[1] != 0xF {
		t.Fatalf("pixel unpack = (%d,%d), want (3,15)", d.Framebuffer[0], d.Framebuffer[1])
	}
}

func TestFrameReadyAssertsAfterAllVisibleScanlines(t *testing.T) {
	var d MikeyDisplay
	d.Reset()
	d.BeginFrame()
	read := func(addr uint16) byte { return 0 }
	for i := 0; i < LynxScreenHeight; i++ {
		if d.FrameReady {
			t.Fatalf("FrameReady must not assert before all %d scanlines are DMAed", LynxScreenHeight)
		}
		d.DmaScanline(read)
	}
	if !d.FrameReady {
		t.Fatalf("FrameReady must assert once all visible scanlines are DMAed")
	}
}
