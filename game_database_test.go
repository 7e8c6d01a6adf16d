// game_database_test.go

package main

import "testing"

func TestLookupGameFallsBackToDefaults(t *testing.T) {
	entry := LookupGame(0xDEADBEEF)
	if entry.Rotation != RotationNone {
		t.Fatalf("unknown game must default to RotationNone")
	}
	if entry.EepromType != EepromNone {
		t.Fatalf("unknown game must default to EepromNone")
	}
	if entry.PlayerCount != 1 {
		t.Fatalf("unknown game must default to single player")
	}
}

func TestRegisterGameRoundTrips(t *testing.T) {
	want := GameEntry{Name: "Test Cart", Rotation: RotationLeft, EepromType: Eeprom93C46, PlayerCount: 2}
	RegisterGame(0x11223344, want)
	got := LookupGame(0x11223344)
	if got != want {
		t.Fatalf("LookupGame = %+v, want %+v", got, want)
	}
}

func TestRegisterGamePanicsOnCollidingEntry(t *testing.T) {
	RegisterGame(0x55667788, GameEntry{Name: "A", PlayerCount: 1})
	defer func() {
		if recover() == nil {
			t.Fatalf("registering a distinct entry at an existing CRC32 must panic")
		}
	}()
	RegisterGame(0x55667788, GameEntry{Name: "B", PlayerCount: 2})
}

func TestCartridgeCrc32Deterministic(t *testing.T) {
	data := []byte{1, 2, 3, 4, 5}
	if CartridgeCrc32(data) != CartridgeCrc32(append([]byte(nil), data...)) {
		t.Fatalf("CRC32 must be deterministic across equal byte slices")
	}
}
