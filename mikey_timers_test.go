// mikey_timers_test.go

package main

import "testing"

func TestTimerCountsDownAtPrescaledRate(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	m.WriteTimerRegister(0, 0, 10) // backup
	m.WriteTimerRegister(0, 2, 10) // count
	m.WriteTimerRegister(0, 1, ctrlAEnable|0)

	m.Tick(3) // below the period-4 threshold for source 0
	if m.timers[0].Count != 10 {
		t.Fatalf("timer should not decrement before a full prescale period elapses")
	}
	m.Tick(1) // completes the 4-cycle period
	if m.timers[0].Count != 9 {
		t.Fatalf("Count = %d, want 9", m.timers[0].Count)
	}
}

func TestTimerUnderflowSetsDoneAndIrqPending(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	m.WriteTimerRegister(2, 0, 0)
	m.WriteTimerRegister(2, 2, 0)
	m.WriteTimerRegister(2, 1, ctrlAEnable|ctrlAIrqEnable)
	m.Tick(4)
	if !m.timers[2].TimerDone {
		t.Fatalf("timer must set TimerDone on underflow")
	}
	if m.IrqPending&(1<<2) == 0 {
		t.Fatalf("IrqPending bit 2 must be set when IRQ is enabled and the timer underflows")
	}
}

func TestControlAResetStrobeClearsTimerDoneAndNeverSticks(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	m.timers[0].TimerDone = true
	m.WriteTimerRegister(0, 1, ctrlAEnable|ctrlAResetStrobe)
	if m.timers[0].TimerDone {
		t.Fatalf("HW bug 12.7: writing the reset-strobe bit must clear TimerDone")
	}
	if m.timers[0].ControlA&ctrlAResetStrobe != 0 {
		t.Fatalf("HW bug 12.7: the strobe bit must never be stored back into ControlA")
	}
}

func TestControlBWriteOnlyAffectsDoneBit(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	m.timers[0].ControlB = 0x07
	m.timers[0].TimerDone = true
	m.WriteTimerRegister(0, 3, 0xFF) // attempt to write every bit
	if m.timers[0].ControlB != 0x07 {
		t.Fatalf("HW bug 12.6: writes to ControlB must only ever affect the Done bit")
	}
	if m.timers[0].TimerDone {
		t.Fatalf("writing ControlB must clear TimerDone")
	}
}

func TestIrqAssertedIgnoresIrqEnabledMask(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	m.IrqPending = 1 << 5
	m.IrqEnabled = 0 // deliberately all masked
	if !m.IrqAsserted() {
		t.Fatalf("IrqAsserted must fire whenever IrqPending != 0, independent of IrqEnabled")
	}
}

func TestLinkedTimerCascadesOnPriorUnderflow(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	// timer 1 free-runs at the fastest prescale; reload is off, so Count
	// stays at 0 and it underflows every tick
	m.WriteTimerRegister(1, 0, 0)
	m.WriteTimerRegister(1, 2, 0)
	m.WriteTimerRegister(1, 1, ctrlAEnable)

	// timer 2 is clocked from timer 1's underflow (source 7)
	m.WriteTimerRegister(2, 0, 3)
	m.WriteTimerRegister(2, 2, 3)
	m.WriteTimerRegister(2, 1, ctrlAEnable|7)

	m.Tick(4)
	if m.timers[2].Count != 2 {
		t.Fatalf("cascade-clocked timer should decrement once per upstream underflow, Count = %d", m.timers[2].Count)
	}
}

// TestReloadEnabledTimerUnderflowsTwiceInFortyCycles implements the
// non-cascaded half of the timer-cascade scenario: Timer 0, BackupValue 4,
// clock source 0, reload enabled, run 40 CPU cycles, expect two underflows.
// Reload must not depend on cascade membership (clock source 7) at all.
func TestReloadEnabledTimerUnderflowsTwiceInFortyCycles(t *testing.T) {
	var m MikeyTimers
	m.Reset()
	m.WriteTimerRegister(0, 0, 4) // backup
	m.WriteTimerRegister(0, 2, 4) // count
	m.WriteTimerRegister(0, 1, ctrlAEnable|ctrlAReloadEn|0)

	underflows := 0
	for cycle := 0; cycle < 40; cycle++ {
		before := m.timers[0].Count
		m.Tick(1)
		if m.timers[0].Count > before {
			underflows++
		}
	}
	if underflows != 2 {
		t.Fatalf("Timer 0 should have underflowed (and reloaded) twice in 40 cycles, got %d", underflows)
	}
	if !m.timers[0].TimerDone {
		t.Fatalf("TimerDone should be latched after an underflow")
	}
}
