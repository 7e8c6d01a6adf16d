// mikey_apu_test.go

package main

import "testing"

func TestZeroLfsrNeverRecoversWithoutReseed(t *testing.T) {
	apu := NewMikeyAPU(&MikeyTimers{})
	apu.Reset()
	apu.Channels[0].Lfsr = 0
	apu.Channels[0].FeedbackEnable = 0xFF
	for i := 0; i < 100; i++ {
		apu.Clock(0)
	}
	if apu.Channels[0].Lfsr != 0 {
		t.Fatalf("an all-zero LFSR must never self-recover, got %#x", apu.Channels[0].Lfsr)
	}
	if apu.Channels[0].Output != 0 {
		t.Fatalf("output while latched at zero must stay silent")
	}
}

func TestIntegrateModeClampsToSignedByteRange(t *testing.T) {
	apu := NewMikeyAPU(&MikeyTimers{})
	apu.Reset()
	apu.Channels[0].Lfsr = 1
	apu.Channels[0].Volume = 127
	apu.Channels[0].IntegrateMode = true
	for i := 0; i < 10; i++ {
		apu.Clock(0)
	}
	if apu.Channels[0].Output > 127 || apu.Channels[0].Output < -128 {
		t.Fatalf("integrate-mode output must stay within int8 bounds, got %d", apu.Channels[0].Output)
	}
}

func TestDacModeChannelThreeBypassesLfsr(t *testing.T) {
	apu := NewMikeyAPU(&MikeyTimers{})
	apu.Reset()
	apu.Channels[3].DacMode = true
	apu.Channels[3].Output = 42
	apu.Clock(3)
	if apu.Channels[3].Output != 42 {
		t.Fatalf("DAC-mode channel 3 must not have its Output mutated by Clock")
	}
}

func TestMixAppliesPerChannelStereoAttenuation(t *testing.T) {
	apu := NewMikeyAPU(&MikeyTimers{})
	apu.Reset()
	apu.Channels[0].Output = 100
	apu.Channels[0].AttenuationLeft = 15
	apu.Channels[0].AttenuationRight = 0
	left, right := apu.Mix()
	if left <= 0 {
		t.Fatalf("full-left attenuation must contribute to the left mix")
	}
	if right != 0 {
		t.Fatalf("zero right attenuation must contribute nothing to the right mix, got %d", right)
	}
}

func TestRegisterRoundTripPreservesLfsrAndVolume(t *testing.T) {
	apu := NewMikeyAPU(&MikeyTimers{})
	apu.Reset()
	apu.WriteRegister(1, 0, 0x55)
	apu.WriteRegister(1, 3, 0xAB)
	apu.WriteRegister(1, 4, 0x0F)
	if apu.ReadRegister(1, 0) != 0x55 {
		t.Fatalf("volume register round trip failed")
	}
	if apu.Channels[1].Lfsr != 0x0FAB {
		t.Fatalf("Lfsr = %#x, want 0x0FAB", apu.Channels[1].Lfsr)
	}
}
