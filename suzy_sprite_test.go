// suzy_sprite_test.go

package main

import "testing"

func TestScbChainTerminatesOnUpperByteZero(t *testing.T) {
	cases := []struct {
		next uint16
		want bool
	}{
		{0x0000, true},
		{0x0042, true},
		{0x00FF, true},
		{0x0100, false},
		{0x1234, false},
	}
	for _, c := range cases {
		if got := scbChainTerminated(c.next); got != c.want {
			t.Fatalf("scbChainTerminated(%#04x) = %v, want %v", c.next, got, c.want)
		}
	}
}

func TestBppAndSpriteTypeDecode(t *testing.T) {
	sprctl0 := byte(SpriteNormal) | byte(Bpp4)<<6
	if bppOf(sprctl0) != Bpp4 {
		t.Fatalf("bppOf = %v, want Bpp4", bppOf(sprctl0))
	}
	if spriteTypeOf(sprctl0) != SpriteNormal {
		t.Fatalf("spriteTypeOf = %v, want SpriteNormal", spriteTypeOf(sprctl0))
	}
}

func TestSpritePixelUnpacksBpp4RowMajor(t *testing.T) {
	ram := make([]byte, 64)
	ram[0] = 0xAB // two 4bpp pixels: 0xA, 0xB
	read := func(addr uint16) byte { return ram[addr] }
	if p := spritePixel(read, 0, 2, Bpp4, 0, 0); p != 0xA {
		t.Fatalf("pixel 0 = %#x, want 0xA", p)
	}
	if p := spritePixel(read, 0, 2, Bpp4, 0, 1); p != 0xB {
		t.Fatalf("pixel 1 = %#x, want 0xB", p)
	}
}

func TestRenderScbSkipsTransparentColorZero(t *testing.T) {
	ram := make([]byte, 64)
	ram[10] = 0x00 // a single Bpp4 pixel, color 0 (transparent for a Normal sprite)
	scb := ScbFields{SprCtl0: byte(SpriteNormal) | byte(Bpp4)<<6, DataAddr: 10, Width: 1, Height: 1, SprColl: 1}
	read := func(addr uint16) byte { return ram[addr] }
	written := false
	writePixel := func(x, y int, colorIdx byte) { written = true }
	var coll [16]byte
	RenderScb(scb, read, writePixel, &coll, false)
	if written {
		t.Fatalf("color index 0 must be transparent for a non-boundary sprite type")
	}
}

func TestRenderScbLeftHandMirrorsX(t *testing.T) {
	ram := make([]byte, 64)
	ram[0] = 0x10 // pixel 0 = color 1 (opaque)
	scb := ScbFields{SprCtl0: byte(SpriteNormal) | byte(Bpp4)<<6, DataAddr: 0, Width: 1, Height: 1, HPos: 0, VPos: 0, SprColl: 1}
	read := func(addr uint16) byte { return ram[addr] }
	var gotX int
	writePixel := func(x, y int, colorIdx byte) { gotX = x }
	var coll [16]byte
	RenderScb(scb, read, writePixel, &coll, true)
	if want := ScreenWidth - 1; gotX != want {
		t.Fatalf("LeftHand mirrored x = %d, want %d", gotX, want)
	}
}

func TestRenderScbVStretchDoublesHeight(t *testing.T) {
	ram := make([]byte, 64)
	ram[0] = 0x11
	scb := ScbFields{SprCtl0: byte(SpriteNormal) | byte(Bpp4)<<6, SprCtl1: sprCtl1VStretch, DataAddr: 0, Width: 1, Height: 1, SprColl: 1}
	read := func(addr uint16) byte { return ram[addr] }
	rows := map[int]bool{}
	writePixel := func(x, y int, colorIdx byte) { rows[y] = true }
	var coll [16]byte
	RenderScb(scb, read, writePixel, &coll, false)
	if len(rows) != 2 {
		t.Fatalf("VStretch must double the rendered row count, got %d rows", len(rows))
	}
}

func TestRecordCollisionIsMutual(t *testing.T) {
	var buf [16]byte
	recordCollision(&buf, 5, 1) // first sprite (collision number 1) claims color 5
	recordCollision(&buf, 5, 2) // second sprite (collision number 2) hits the same pixel
	if buf[5]&2 == 0 {
		t.Fatalf("color-index entry must record the second sprite's collision number")
	}
	if buf[1]&2 == 0 {
		t.Fatalf("the first sprite's own collision-number slot must record the mutual hit")
	}
}
