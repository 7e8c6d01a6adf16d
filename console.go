// console.go - Top-level coordinator: component wiring, frame stepping, ROM loading

/*
console.go owns every component and drives one frame at a time: step the
CPU one instruction, tick Mikey by that instruction's cycle count, pump
any pending display DMA or sprite chain, and accumulate audio samples at
the host's configured rate. This mirrors the teacher's machine-coordinator
shape (the top-level runner that owns a CPU core plus peripheral chips and
drives them from one stepping loop) generalized from a multi-chip 32-bit
bus machine down to the Lynx's fixed six-component wiring.

Runtime cartridge bank-switch reads after boot are not routed back through
a CPU-visible memory window: real Lynx hardware exposes the cartridge
shift-register strobe/read lines as board-level I/O pins, not as an
address range inside the documented MAPCTL memory map (spec.md section
4.4 names only RAM/Suzy/Mikey/BootROM/vectors), so Cartridge is driven
directly by Console at load time, not dispatched through MemoryManager.
*/

package main

const (
	lnxHeaderSize      = 64
	lnxRotationOffset  = 58
	bs93MagicOffset    = 6
	bootLoadAddr       = 0x0200
	defaultSampleRateHz = 48000
)

// LoadResult mirrors spec.md section 4.7/7's structured result: a Kind
// identifier the host inspects rather than an error it must unwrap,
// following the same pattern as DecryptResult/EncryptResult.
type LoadResult struct {
	Ok          bool
	Kind        string // "" on success; else "InvalidRom" etc (spec.md section 7)
	Format      string // "LNX" | "BS93" | "Raw"
	Crc32       uint32
	Rotation    Rotation
	EepromType  EepromType
	PlayerCount int
	DecryptValid bool
}

// ConsoleState is the aggregate save-state named in spec.md section 3:
// "composed CpuState + MikeyState + SuzyState + MemoryManagerState +
// CartState + EepromState".
type ConsoleState struct {
	Cpu    CpuState
	Mikey  MikeyState
	Suzy   SuzyState
	Memory MemoryManagerState
	Cart   CartState
	Eeprom EepromSerialState
}

// Console owns every component for the lifetime of the emulated machine
// and is the sole writer of cross-component wiring (spec.md section 9:
// "the console exclusively owns all components").
type Console struct {
	CPU    *CPU65C02
	Mikey  *Mikey
	Suzy   *Suzy
	Memory *MemoryManager
	Cart   *Cartridge
	Eeprom *Eeprom

	Game GameEntry

	sampleRateHz    int
	cyclesPerSample int
	sampleAccum     int
	AudioBuffer     []int16 // interleaved L/R, drained by DrainAudio
}

// NewConsole wires every component using the same collaborator-interface
// shape memory_manager.go documents: Suzy and Mikey are constructed first
// so MemoryManager can hold them behind its narrow SuzyPort/MikeyPort
// views, and the CPU is constructed last against the memory manager's
// Bus6502-satisfying Read/Write pair.
func NewConsole() *Console {
	suzy := NewSuzy()
	mikey := NewMikey()
	memory := NewMemoryManager(suzy, mikey)
	cpu := NewCPU65C02(memory)
	eeprom := NewEeprom(EepromNone)

	c := &Console{
		CPU:    cpu,
		Mikey:  mikey,
		Suzy:   suzy,
		Memory: memory,
		Cart:   NewCartridge(nil),
		Eeprom: eeprom,
	}
	c.SetSampleRate(defaultSampleRateHz)
	return c
}

// SetSampleRate configures the host's audio sample rate; the console
// produces approximately sampleRateHz/Fps samples per frame (spec.md
// section 6).
func (c *Console) SetSampleRate(hz int) {
	c.sampleRateHz = hz
	c.cyclesPerSample = CpuClockHz / hz
	if c.cyclesPerSample < 1 {
		c.cyclesPerSample = 1
	}
}

// Reset clears every component. The EEPROM's stored data survives a reset
// (eeprom.go's Reset comment: "a cold reset does not erase the EEPROM");
// everything else returns to its power-on state.
func (c *Console) Reset() {
	c.CPU.Reset()
	c.Mikey.Reset()
	c.Suzy.Reset()
	c.Memory.Reset()
	c.Cart.Reset()
	c.Eeprom.Reset()
	c.sampleAccum = 0
	c.AudioBuffer = c.AudioBuffer[:0]
}

// SetControllerState latches the host's joystick/switches bits for the
// next frame (spec.md section 4.3 and 6).
func (c *Console) SetControllerState(joystick, switches byte) {
	c.Suzy.SetJoystick(joystick)
	c.Suzy.SetSwitches(switches)
}

// detectFormat sniffs the ROM container format per spec.md section 4.7/6.
func detectFormat(data []byte) string {
	switch {
	case len(data) >= lnxHeaderSize && string(data[0:4]) == "LYNX":
		return "LNX"
	case len(data) >= bs93MagicOffset+4 && string(data[bs93MagicOffset:bs93MagicOffset+4]) == "BS93":
		return "BS93"
	default:
		return "Raw"
	}
}

// LoadRom implements spec.md section 4.7's load_rom operation: detect the
// container format, install the cartridge image, and run the
// high-level-emulation boot path (this core carries no real Lynx boot
// ROM image, so the "host provides a real boot ROM" branch of spec.md
// section 4.7 is never taken here).
func (c *Console) LoadRom(data []byte) LoadResult {
	if len(data) == 0 {
		return LoadResult{Kind: "InvalidRom"}
	}

	format := detectFormat(data)
	var program []byte
	rotation := RotationNone

	switch format {
	case "LNX":
		program = data[lnxHeaderSize:]
		rotation = Rotation(data[lnxRotationOffset])
	default:
		program = data
	}

	crc := CartridgeCrc32(program)
	entry := LookupGame(crc)
	if format == "LNX" && entry.Rotation == RotationNone {
		entry.Rotation = rotation
	}
	c.Game = entry

	c.Cart = NewCartridge(program)
	c.Eeprom = NewEeprom(entry.EepromType)

	c.CPU.Reset()
	c.Memory.Reset()

	if format == "BS93" {
		// Homebrew format: direct load to $0200, no encryption.
		for i, b := range program {
			c.Memory.Write(uint16(bootLoadAddr+i), b)
		}
		c.CPU.PC = bootLoadAddr
		return LoadResult{
			Ok: true, Format: format, Crc32: crc,
			Rotation: entry.Rotation, EepromType: entry.EepromType, PlayerCount: entry.PlayerCount,
			DecryptValid: true,
		}
	}

	if !Validate(program) {
		return LoadResult{Kind: "InvalidEncryptedBlock", Format: format, Crc32: crc}
	}
	result := Decrypt(program)
	for i, b := range result.Data {
		c.Memory.Write(uint16(bootLoadAddr+i), b)
	}
	c.CPU.PC = bootLoadAddr
	c.CPU.SP = 0xFF

	return LoadResult{
		Ok: true, Format: format, Crc32: crc,
		Rotation: entry.Rotation, EepromType: entry.EepromType, PlayerCount: entry.PlayerCount,
		DecryptValid: result.Valid,
	}
}

// writeFramebufferPixel packs a 4bpp pixel into the framebuffer region of
// RAM at Mikey's DispAddr, matching the nibble layout mikey_display.go's
// DmaScanline unpacks (high nibble is the left pixel of each byte pair).
func (c *Console) writeFramebufferPixel(x, y int, colorIdx byte) {
	if x < 0 || x >= ScreenWidth || y < 0 || y >= ScreenHeight {
		return
	}
	rowBytes := ScreenWidth / 2
	addr := c.Mikey.Display.DispAddr + uint16(y*rowBytes+x/2)
	b := c.Memory.Read(addr)
	if x%2 == 0 {
		b = b&0x0F | colorIdx<<4
	} else {
		b = b&0xF0 | colorIdx&0x0F
	}
	c.Memory.Write(addr, b)
}

// RunFrame implements spec.md section 4.7's run_frame operation: step the
// CPU one instruction at a time until CpuCyclesPerFrame cycles have
// elapsed, ticking Mikey and servicing its display-DMA/sprite-chain
// requests after each step.
func (c *Console) RunFrame() {
	total := 0
	for total < CpuCyclesPerFrame {
		c.CPU.SetIrqLine(c.Mikey.IrqAsserted())
		cycles := c.CPU.Step()
		total += cycles
		c.Mikey.Tick(cycles)
		c.accumulateAudio(cycles)

		if c.Mikey.TakePendingScanline() {
			c.Mikey.Display.DmaScanline(c.Memory.Read)
		}
		if c.Suzy.TakeSpriteChainRequest() {
			spriteCycles := c.Suzy.StartSpriteChain(c.Memory, c.writeFramebufferPixel)
			total += spriteCycles
			c.Mikey.Tick(spriteCycles)
		}
	}
}

// accumulateAudio down-samples Mikey's per-cycle channel mix to the
// host's configured sample rate, appending interleaved stereo samples to
// AudioBuffer. DrainAudio removes them.
func (c *Console) accumulateAudio(cycles int) {
	c.sampleAccum += cycles
	for c.sampleAccum >= c.cyclesPerSample {
		c.sampleAccum -= c.cyclesPerSample
		left, right := c.Mikey.APU.Mix()
		c.AudioBuffer = append(c.AudioBuffer, left, right)
	}
}

// DrainAudio returns and clears the accumulated interleaved stereo sample
// buffer, for the host's audio-output sink to consume.
func (c *Console) DrainAudio() []int16 {
	out := c.AudioBuffer
	c.AudioBuffer = nil
	return out
}

// State returns the aggregate save-state snapshot (spec.md section 3's
// "Aggregate state").
func (c *Console) State() ConsoleState {
	return ConsoleState{
		Cpu:    c.CPU.State(),
		Mikey:  c.Mikey.State(),
		Suzy:   c.Suzy.State(),
		Memory: c.Memory.State(),
		Cart:   c.Cart.State(),
		Eeprom: c.Eeprom.State(),
	}
}

// RestoreState applies a previously serialized ConsoleState.
func (c *Console) RestoreState(s ConsoleState) {
	c.CPU.RestoreState(s.Cpu)
	c.Mikey.RestoreState(s.Mikey)
	c.Suzy.RestoreState(s.Suzy)
	c.Memory.RestoreState(s.Memory)
	c.Cart.RestoreState(s.Cart)
	c.Eeprom.RestoreState(s.Eeprom)
}

// Framebuffer exposes the current display-DMA-populated indexed
// framebuffer for the host to scale/convert to ARGB (spec.md section 6).
func (c *Console) Framebuffer() *[ScreenWidth * ScreenHeight]byte {
	return &c.Mikey.Display.Framebuffer
}
