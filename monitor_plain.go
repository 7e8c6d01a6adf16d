// monitor_plain.go - raw-terminal single-keystroke debugger loop, an
// alternative to the bubbletea TUI for plain serial/SSH terminals.

package main

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// RunPlainMonitor puts stdin in raw mode and drives the CPU one
// keystroke at a time: s=step, c=toggle run/pause, r=reset, q=quit.
// Grounded on the teacher's TerminalHost.Start/Stop raw-mode handling
// in terminal_host.go, simplified to a foreground blocking read loop
// since there is no MMIO device on the other end here, only direct
// CPU/Console calls.
func RunPlainMonitor(console *Console, cpu *Debug65C02) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("monitor_plain: failed to set raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	fmt.Print("lynxmon (plain) - s=step c=run/pause r=reset q=quit\r\n")

	buf := make([]byte, 1)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil || n == 0 {
			return err
		}
		switch buf[0] {
		case 'q', 3: // 3 = Ctrl-C
			return nil
		case 's':
			cpu.Step()
			printStatusLine(cpu)
		case 'c':
			if cpu.IsRunning() {
				cpu.Freeze()
			} else {
				cpu.Resume()
			}
			printStatusLine(cpu)
		case 'r':
			console.Reset()
			printStatusLine(cpu)
		}
	}
}

func printStatusLine(cpu *Debug65C02) {
	var a, x, y, sp uint64
	pc := cpu.GetPC()
	a, _ = cpu.GetRegister("A")
	x, _ = cpu.GetRegister("X")
	y, _ = cpu.GetRegister("Y")
	sp, _ = cpu.GetRegister("SP")
	fmt.Printf("PC=%04X A=%02X X=%02X Y=%02X SP=%02X\r\n", pc, a, x, y, sp)
}
