// debug_ioview.go - I/O register viewer for Machine Monitor

package main

import "fmt"

// IORegisterDesc describes a single I/O register for display.
type IORegisterDesc struct {
	Name   string
	Addr   uint32
	Width  int    // 1, 2, or 4 bytes
	Access string // "RW", "RO", "WO"
}

// IODeviceDesc describes a group of I/O registers for a device.
type IODeviceDesc struct {
	Name      string
	Registers []IORegisterDesc
}

var ioDevices = map[string]*IODeviceDesc{
	"mikey": {
		Name: "Mikey",
		Registers: []IORegisterDesc{
			{"TIM0_BKUP", 0xFD00, 1, "RW"}, {"TIM0_CTLA", 0xFD01, 1, "RW"},
			{"TIM0_CNT", 0xFD02, 1, "RO"}, {"TIM0_CTLB", 0xFD03, 1, "RW"},
			{"TIM2_BKUP", 0xFD08, 1, "RW"}, {"TIM2_CTLA", 0xFD09, 1, "RW"},
			{"TIM4_BKUP", 0xFD10, 1, "RW"}, {"TIM4_CTLA", 0xFD11, 1, "RW"},
			{"INTRST", 0xFD80, 1, "RW"}, {"INTSET", 0xFD81, 1, "RW"},
			{"DISPCTL", 0xFDA2, 1, "RW"}, {"PBKUP", 0xFD93, 1, "RW"},
			{"DISPADRL", 0xFDA0, 1, "RW"}, {"DISPADRH", 0xFDA1, 1, "RW"},
			{"SERCTL", 0xFD40, 1, "RW"}, {"SERDAT", 0xFD41, 1, "RW"},
		},
	},
	"suzy": {
		Name: "Suzy",
		Registers: []IORegisterDesc{
			{"SPRCTL0", 0xFC00, 1, "RW"}, {"SPRCTL1", 0xFC01, 1, "RW"},
			{"SPRCOLL", 0xFC02, 1, "RW"}, {"SPRSYS", 0xFC04, 1, "RW"},
			{"SCBNEXTL", 0xFC08, 1, "RW"}, {"SCBNEXTH", 0xFC09, 1, "RW"},
			{"JOYSTICK", 0xFC24, 1, "RO"}, {"SWITCHES", 0xFC25, 1, "RO"},
		},
	},
	"cart": {
		Name: "Cartridge",
		Registers: []IORegisterDesc{
			{"BANK", 0xFCFF, 1, "WO"},
		},
	},
}

// formatIOView renders the register view for a device.
func formatIOView(cpu DebuggableCPU, deviceName string) []string {
	dev, ok := ioDevices[deviceName]
	if !ok {
		return []string{fmt.Sprintf("Unknown device: %s", deviceName)}
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("--- %s Registers ---", dev.Name))

	for _, reg := range dev.Registers {
		data := cpu.ReadMemory(uint64(reg.Addr), reg.Width)
		if len(data) < reg.Width {
			lines = append(lines, fmt.Sprintf("  %-16s ($%04X) = ??       [%s]", reg.Name, reg.Addr, reg.Access))
			continue
		}

		var val uint32
		switch reg.Width {
		case 1:
			val = uint32(data[0])
			lines = append(lines, fmt.Sprintf("  %-16s ($%04X) = $%02X       [%d] %s", reg.Name, reg.Addr, val, val, reg.Access))
		case 2:
			val = uint32(data[0]) | uint32(data[1])<<8
			lines = append(lines, fmt.Sprintf("  %-16s ($%04X) = $%04X     [%d] %s", reg.Name, reg.Addr, val, val, reg.Access))
		case 4:
			val = uint32(data[0]) | uint32(data[1])<<8 | uint32(data[2])<<16 | uint32(data[3])<<24
			lines = append(lines, fmt.Sprintf("  %-16s ($%04X) = $%08X [%d] %s", reg.Name, reg.Addr, val, val, reg.Access))
		}
	}

	return lines
}

// listIODevices returns the names of all available IO devices.
func listIODevices() []string {
	return []string{"mikey", "suzy", "cart"}
}
