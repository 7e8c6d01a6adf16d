// main.go - entry point: CLI parsing, console wiring, host frontend

package main

import (
	"fmt"
	"image"
	"image/color"
	"os"

	"github.com/alecthomas/kong"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Version is the build-time identifier printed by --version and the
// monitor's banner.
const Version = "0.1.0"

var cli struct {
	Rom          string `arg:"" optional:"" help:"ROM image to load (.lnx, .bs93, or raw)."`
	SampleRate   int    `help:"Host audio sample rate in Hz." default:"48000"`
	Scale        int    `help:"Integer window scale factor." default:"4"`
	Headless     bool   `help:"Run without opening a window (for scripted testing)."`
	Tui          bool   `help:"Run the bubbletea debugger TUI instead of the video window."`
	PlainMonitor bool   `help:"Run the raw-terminal single-keystroke debugger instead of the video window."`
	LuaScript    string `help:"Lua script driving per-frame joystick input instead of the keyboard."`
	Version      bool   `help:"Print version and compiled features, then exit."`
}

func main() {
	kong.Parse(&cli,
		kong.Name("lynxcore"),
		kong.Description("Atari Lynx emulation core"),
	)

	if cli.Version {
		printFeatures()
		return
	}

	console := NewConsole()
	console.SetSampleRate(cli.SampleRate)

	if cli.Rom != "" {
		data, err := os.ReadFile(cli.Rom)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lynxcore: %v\n", err)
			os.Exit(1)
		}
		result := console.LoadRom(data)
		if !result.Ok {
			fmt.Fprintf(os.Stderr, "lynxcore: failed to load %s: %s\n", cli.Rom, result.Kind)
			os.Exit(1)
		}
	}

	if cli.Headless {
		runHeadless(console)
		return
	}

	if cli.Tui || cli.PlainMonitor {
		cpu := NewDebug65C02(console.CPU)
		var err error
		if cli.Tui {
			err = RunTUI(console, cpu)
		} else {
			err = RunPlainMonitor(console, cpu)
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "lynxcore: %v\n", err)
			os.Exit(1)
		}
		return
	}

	runWindowed(console)
}

// runHeadless steps the console without any host video/audio sink, for
// scripted testing without a display.
func runHeadless(console *Console) {
	for {
		console.RunFrame()
		console.DrainAudio()
	}
}

func runWindowed(console *Console) {
	audio, err := NewLynxAudioOutput(console.sampleRateHz)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lynxcore: audio init failed: %v\n", err)
		os.Exit(1)
	}
	audio.Start()
	defer audio.Close()

	monitor := NewMachineMonitor(console)
	monitor.RegisterCPU("65C02", NewDebug65C02(console.CPU))
	monitor.StartBreakpointListener()
	overlay := NewMonitorOverlay(monitor)

	game := &lynxGame{
		console: console,
		audio:   audio,
		monitor: monitor,
		overlay: overlay,
	}

	if cli.LuaScript != "" {
		lua, err := NewLuaInputSource(cli.LuaScript)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lynxcore: lua script failed: %v\n", err)
			os.Exit(1)
		}
		defer lua.Close()
		game.lua = lua
	}

	ebiten.SetWindowSize(ScreenWidth*cli.Scale, ScreenHeight*cli.Scale)
	ebiten.SetWindowTitle("Lynx Core " + Version)
	ebiten.SetWindowResizable(true)
	if err := ebiten.RunGame(game); err != nil {
		fmt.Fprintf(os.Stderr, "lynxcore: %v\n", err)
		os.Exit(1)
	}
}

// lynxGame adapts Console to ebiten's Game interface: one RunFrame per
// Update, palette-expanding the indexed framebuffer to RGBA on Draw.
type lynxGame struct {
	console *Console
	audio   *LynxAudioOutput
	monitor *MachineMonitor
	overlay *MonitorOverlay

	screen     *ebiten.Image
	hud        *ebiten.Image
	frameCount int

	lua *LuaInputSource
}

func (g *lynxGame) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if g.monitor.IsActive() {
			g.monitor.Deactivate()
		} else {
			g.monitor.Activate()
		}
	}

	if g.monitor.IsActive() {
		g.overlay.HandleInput()
		return nil
	}

	var joystick, switches byte
	if g.lua != nil {
		joystick, switches = g.lua.Frame()
	} else {
		joystick, switches = readControllerKeys()
	}
	g.console.SetControllerState(joystick, switches)

	g.console.RunFrame()
	g.audio.Push(g.console.DrainAudio())
	return nil
}

func (g *lynxGame) Draw(screen *ebiten.Image) {
	if g.monitor.IsActive() {
		g.overlay.Draw(screen)
		return
	}

	if g.screen == nil {
		g.screen = ebiten.NewImage(ScreenWidth, ScreenHeight)
	}

	fb := g.console.Framebuffer()
	pixels := make([]byte, ScreenWidth*ScreenHeight*4)
	for i, idx := range fb {
		r, gr, b := g.console.Mikey.Display.PaletteRGB(int(idx))
		pixels[i*4+0] = r
		pixels[i*4+1] = gr
		pixels[i*4+2] = b
		pixels[i*4+3] = 0xFF
	}
	g.screen.WritePixels(pixels)
	screen.DrawImage(g.screen, nil)
	g.drawHUD(screen)
}

// drawHUD renders a small frame-counter overlay with golang.org/x/image's
// fixed-width bitmap font, the one text-rendering need this core has that
// ebiten itself doesn't cover (it only blits images, it has no font
// rasterizer of its own).
func (g *lynxGame) drawHUD(screen *ebiten.Image) {
	g.frameCount++

	text := fmt.Sprintf("frame %d", g.frameCount)
	rgba := image.NewRGBA(image.Rect(0, 0, 7*len(text)+4, 16))
	d := &font.Drawer{
		Dst:  rgba,
		Src:  image.NewUniform(color.RGBA{0xff, 0xff, 0xff, 0xff}),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, 12),
	}
	d.DrawString(text)

	if g.hud == nil || g.hud.Bounds().Dx() != rgba.Bounds().Dx() {
		g.hud = ebiten.NewImageFromImage(rgba)
	} else {
		g.hud.WritePixels(rgba.Pix)
	}
	screen.DrawImage(g.hud, nil)
}

func (g *lynxGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return ScreenWidth, ScreenHeight
}

// readControllerKeys maps the host keyboard to Suzy's joystick/switches
// bit layout (suzy.go: JoyUp/JoyDown/JoyLeft/JoyRight/JoyA/JoyB/
// JoyOption1/JoyOption2, SwitchPause).
func readControllerKeys() (joystick, switches byte) {
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		joystick |= JoyUp
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		joystick |= JoyDown
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		joystick |= JoyLeft
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		joystick |= JoyRight
	}
	if ebiten.IsKeyPressed(ebiten.KeyZ) {
		joystick |= JoyA
	}
	if ebiten.IsKeyPressed(ebiten.KeyX) {
		joystick |= JoyB
	}
	if ebiten.IsKeyPressed(ebiten.KeyA) {
		joystick |= JoyOption1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) {
		joystick |= JoyOption2
	}
	if ebiten.IsKeyPressed(ebiten.KeyEnter) {
		switches |= SwitchPause
	}
	return joystick, switches
}
