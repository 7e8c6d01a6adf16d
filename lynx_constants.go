// lynx_constants.go - Core clock rates, dimensions and shared enums for the Lynx core

// Package main hosts the Lynx emulation core: 65C02 CPU, Mikey, Suzy, the
// MAPCTL memory manager, the cartridge/EEPROM peripherals and the RSA
// bootloader, coordinated by Console. See SPEC_FULL.md for the module
// boundaries this file's constants are shared across.
package main

const (
	// MasterClockHz is the Lynx's 16MHz master oscillator. The CPU and all
	// eight Mikey timer prescalers are divided down from this rate.
	MasterClockHz = 16_000_000
	// CpuClockHz is the 65C02's effective clock: one CPU cycle is 4 master
	// clock ticks (see MasterCyclesPerCpuCycle below).
	CpuClockHz = 4_000_000
	// MasterCyclesPerCpuCycle is the fixed ratio between the master clock
	// tracked by Mikey's timers and the CPU's own cycle counter.
	MasterCyclesPerCpuCycle = 4

	// Fps is the Lynx's documented refresh rate, 75Hz +/- 0.1.
	Fps = 75

	// CpuCyclesPerFrame is derived as CpuClockHz / Fps, NOT as
	// ScanlineCount * CyclesPerScanline (53,235) which is off by ~98 cycles
	// per frame and causes long-term audio/video drift. See DESIGN NOTES
	// "Cycle-rate derivation" in spec.md.
	CpuCyclesPerFrame = CpuClockHz / Fps // 53,333

	// ScreenWidth and ScreenHeight are the visible framebuffer dimensions.
	ScreenWidth  = 160
	ScreenHeight = 102

	// ScanlineCount is the total scanline count including vblank, kept only
	// to document (and test against) the rejected 53,235 derivation.
	ScanlineCount     = 105
	CyclesPerScanline = 507 // (for the rejected derivation only)

	// BytesPerScanline is the 4bpp packed row width: 160 pixels / 2 per byte.
	BytesPerScanline = ScreenWidth / 2
)

// CPU processor-status flag masks (6.1).
const (
	FlagCarry     = 0x01
	FlagZero      = 0x02
	FlagInterrupt = 0x04
	FlagDecimal   = 0x08
	FlagBreak     = 0x10
	FlagReserved  = 0x20 // always 1
	FlagOverflow  = 0x40
	FlagNegative  = 0x80
)

const (
	ResetVector = 0xFFFC
	NmiVector   = 0xFFFA // unused on Lynx hardware
	IrqVector   = 0xFFFE
	StackBase   = 0x0100
)

// StopState models the CPU's WAI/STP halt states (4.1).
type StopState int

const (
	StopRunning StopState = iota
	StopWaitingForIrq
	StopStopped
)

func (s StopState) String() string {
	switch s {
	case StopRunning:
		return "Running"
	case StopWaitingForIrq:
		return "WaitingForIrq"
	case StopStopped:
		return "Stopped"
	default:
		return "Unknown"
	}
}

// SpriteType enumerates the 8 Suzy sprite render/collision behaviors (4.3).
type SpriteType int

const (
	SpriteBackgroundShadow    SpriteType = 0
	SpriteBackgroundNonCollide SpriteType = 1
	SpriteBoundaryShadow      SpriteType = 2
	SpriteBoundary            SpriteType = 3
	SpriteNormal              SpriteType = 4
	SpriteNonCollidable       SpriteType = 5
	SpriteXorShadow           SpriteType = 6
	SpriteShadow              SpriteType = 7
)

// BppMode enumerates the 4 supported sprite bit depths (4.3).
type BppMode int

const (
	Bpp1 BppMode = 0
	Bpp2 BppMode = 1
	Bpp3 BppMode = 2
	Bpp4 BppMode = 3
)

// Colors maps a BppMode to its palette size.
func (b BppMode) Colors() int {
	return []int{2, 4, 8, 16}[b&3]
}

// Rotation describes a cartridge's physical screen rotation (LNX header / game DB).
type Rotation int

const (
	RotationNone Rotation = iota
	RotationLeft
	RotationRight
)

// EepromType enumerates the Microwire EEPROM part sizes the Lynx supports (4.6).
type EepromType int

const (
	EepromNone EepromType = iota
	Eeprom93C46
	Eeprom93C56
	Eeprom93C66
	Eeprom93C76
	Eeprom93C86
)

// SizeBytes and AddressBits describe a given EEPROM part's geometry.
func (t EepromType) SizeBytes() int {
	switch t {
	case Eeprom93C46:
		return 128
	case Eeprom93C56:
		return 256
	case Eeprom93C66:
		return 512
	case Eeprom93C76:
		return 1024
	case Eeprom93C86:
		return 2048
	default:
		return 0
	}
}

func (t EepromType) AddressBits() int {
	switch t {
	case Eeprom93C46:
		return 6
	case Eeprom93C56:
		return 7
	case Eeprom93C66:
		return 8
	case Eeprom93C76:
		return 9
	case Eeprom93C86:
		return 10
	default:
		return 0
	}
}

// btou8 converts a bool to 0/1, mirroring the teacher's btou16 helper
// (cpu_six5go2.go) used for BCD borrow/carry arithmetic.
func btou8(b bool) byte {
	if b {
		return 1
	}
	return 0
}
