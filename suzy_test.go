// suzy_test.go

package main

import "testing"

func TestSuzyJoystickReadIsActiveLow(t *testing.T) {
	s := NewSuzy()
	s.SetJoystick(JoyA | JoyUp)
	got := s.ReadRegister(suzyRegJoystick)
	want := ^(byte(JoyA | JoyUp))
	if got != want {
		t.Fatalf("JOYSTICK read = %#08b, want %#08b (active-low)", got, want)
	}
}

func TestSuzySwitchesPauseBit(t *testing.T) {
	s := NewSuzy()
	s.SetSwitches(SwitchPause)
	if s.ReadRegister(suzyRegSwitches)&SwitchPause == 0 {
		t.Fatalf("SWITCHES bit 0 (Pause) must read back set")
	}
}

func TestSuzyLeftHandFlagWiredThroughSprSys(t *testing.T) {
	s := NewSuzy()
	s.WriteRegister(suzyRegSprSys, sprSysLeftHand)
	if !s.leftHand {
		t.Fatalf("writing SPRSYS bit 7 must set the LeftHand flag")
	}
	if s.ReadRegister(suzyRegSprSys)&sprSysLeftHand == 0 {
		t.Fatalf("SPRSYS readback must reflect the LeftHand flag")
	}
}

func TestSuzyMathByteAddressingBigEndian(t *testing.T) {
	s := NewSuzy()
	s.WriteRegister(suzyRegMathBase+0, 0x12) // ABCD byte 0 (MSB)
	s.WriteRegister(suzyRegMathBase+1, 0x34)
	s.WriteRegister(suzyRegMathBase+2, 0x56)
	s.WriteRegister(suzyRegMathBase+3, 0x78)
	if s.Math.s.ABCD != 0x12345678 {
		t.Fatalf("ABCD = %#08x, want 0x12345678", s.Math.s.ABCD)
	}
	if b := s.ReadRegister(suzyRegMathBase + 1); b != 0x34 {
		t.Fatalf("readback byte 1 = %#02x, want 0x34", b)
	}
}

func TestSuzySprGoLatchesChainRequestOnce(t *testing.T) {
	s := NewSuzy()
	if s.TakeSpriteChainRequest() {
		t.Fatalf("no request should be pending before SPRGO is written")
	}
	s.WriteRegister(suzyRegSprGo, 1)
	if !s.TakeSpriteChainRequest() {
		t.Fatalf("a non-zero SPRGO write must latch a chain request")
	}
	if s.TakeSpriteChainRequest() {
		t.Fatalf("TakeSpriteChainRequest must clear the latch on read")
	}
}

func TestSuzyScbChainTerminatesImmediatelyWhenNextIsZero(t *testing.T) {
	s := NewSuzy()
	ram := make([]byte, 0x10000)
	read := func(addr uint16) byte { return ram[addr] }
	write := func(addr uint16, v byte) { ram[addr] = v }
	// SCB at $0000: Next = 0, width/height 0 so no pixels render.
	s.WriteRegister(suzyRegScbNextLo, 0x00)
	s.WriteRegister(suzyRegScbNextHi, 0x00)
	cycles := s.StartSpriteChain(fakeRamPort{read, write}, func(x, y int, c byte) {})
	if cycles != 0 {
		t.Fatalf("an SCB pointer of 0 must not start a chain at all")
	}
}

type fakeRamPort struct {
	read  func(uint16) byte
	write func(uint16, byte)
}

func (f fakeRamPort) Read(addr uint16) byte        { return f.read(addr) }
func (f fakeRamPort) Write(addr uint16, value byte) { f.write(addr, value) }
