// debug_backtrace.go - CPU-specific stack trace / backtrace for Machine Monitor

package main

import "encoding/binary"

// backtrace walks the stack of the focused CPU and returns up to depth return addresses.
func backtrace(cpu DebuggableCPU, depth int) []uint64 {
	switch cpu.CPUName() {
	case "65C02":
		return backtrace65c02(cpu, depth)
	default:
		return nil
	}
}

// backtrace65c02 walks 2-byte stack slots on page 1. 65C02 JSR pushes
// return-1, so we add 1 to each address.
func backtrace65c02(cpu DebuggableCPU, depth int) []uint64 {
	sp, _ := cpu.GetRegister("SP")
	// 65C02 SP is 8-bit, stack is at 0x0100-0x01FF, grows downward
	sp = 0x0100 + ((sp + 1) & 0xFF) // point to first stacked byte
	var result []uint64
	for range depth {
		if sp > 0x01FF {
			break
		}
		data := cpu.ReadMemory(sp, 2)
		if len(data) < 2 {
			break
		}
		// Low byte first (little-endian), then add 1 because JSR pushes return-1
		addr := uint64(binary.LittleEndian.Uint16(data)) + 1
		result = append(result, addr)
		sp += 2
	}
	return result
}
