// console_test.go

package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectFormatLnxBs93Raw(t *testing.T) {
	lnx := make([]byte, lnxHeaderSize+4)
	copy(lnx, "LYNX")
	require.Equal(t, "LNX", detectFormat(lnx))

	bs93 := make([]byte, 16)
	copy(bs93[bs93MagicOffset:], "BS93")
	require.Equal(t, "BS93", detectFormat(bs93))

	require.Equal(t, "Raw", detectFormat([]byte{1, 2, 3, 4}))
}

func TestLoadRomRejectsEmptyInput(t *testing.T) {
	c := NewConsole()
	result := c.LoadRom(nil)
	require.False(t, result.Ok)
	require.Equal(t, "InvalidRom", result.Kind)
}

func TestLoadRomBs93DirectLoadsAt0200(t *testing.T) {
	c := NewConsole()
	image := make([]byte, bs93MagicOffset+4+8)
	copy(image[bs93MagicOffset:], "BS93")
	for i := range image[bs93MagicOffset+4:] {
		image[bs93MagicOffset+4+i] = byte(i + 1)
	}
	result := c.LoadRom(image)
	require.True(t, result.Ok)
	require.Equal(t, "BS93", result.Format)
	require.Equal(t, uint16(bootLoadAddr), c.CPU.PC)
	require.Equal(t, byte(1), c.Memory.Read(bootLoadAddr))
}

func TestLoadRomRawEncryptedPayloadHleBoot(t *testing.T) {
	plain := make([]byte, rsaOutputBytes)
	for i := range plain {
		plain[i] = byte(i * 3)
	}
	enc, err := Encrypt(plain)
	require.NoError(t, err)

	c := NewConsole()
	result := c.LoadRom(enc.Data)
	require.True(t, result.Ok)
	require.Equal(t, "Raw", result.Format)
	require.True(t, result.DecryptValid)
	require.Equal(t, uint16(bootLoadAddr), c.CPU.PC)
	for i, want := range plain {
		require.Equal(t, want, c.Memory.Read(uint16(bootLoadAddr+i)))
	}
}

func TestLoadRomLnxHeaderCarriesRotation(t *testing.T) {
	plain := make([]byte, rsaOutputBytes)
	enc, err := Encrypt(plain)
	require.NoError(t, err)

	header := make([]byte, lnxHeaderSize)
	copy(header, "LYNX")
	header[lnxRotationOffset] = byte(RotationRight)
	image := append(header, enc.Data...)

	c := NewConsole()
	result := c.LoadRom(image)
	require.True(t, result.Ok)
	require.Equal(t, "LNX", result.Format)
	require.Equal(t, RotationRight, result.Rotation)
}

func TestRunFrameAdvancesAtLeastOneFrameOfCycles(t *testing.T) {
	c := NewConsole()
	// NOP forever so every instruction is 2 cycles and IRQs never fire.
	for i := 0; i < 0x10000; i++ {
		c.Memory.Write(uint16(i), 0xEA)
	}
	c.CPU.PC = 0x1000
	before := c.CPU.Cycles
	c.RunFrame()
	after := c.CPU.Cycles
	require.GreaterOrEqual(t, after-before, uint64(CpuCyclesPerFrame))
}

func TestConsoleStateRoundTrip(t *testing.T) {
	c := NewConsole()
	c.CPU.A = 0x42
	c.Suzy.SetJoystick(JoyA)
	saved := c.State()

	c.CPU.A = 0
	c.Suzy.SetJoystick(0)

	c.RestoreState(saved)
	require.Equal(t, byte(0x42), c.CPU.A)
}

func TestSetControllerStateReachesSuzy(t *testing.T) {
	c := NewConsole()
	c.SetControllerState(JoyUp|JoyA, SwitchPause)
	if c.Suzy.ReadRegister(suzyRegJoystick) != ^(byte(JoyUp | JoyA)) {
		t.Fatalf("controller joystick bits did not reach Suzy")
	}
}
