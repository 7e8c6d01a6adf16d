// game_database.go - CRC32-indexed cartridge metadata lookup

/*
game_database.go keys a small table of known-cartridge metadata by the
CRC32 of the cartridge image (header excluded, spec.md section 4.8),
used to fill in rotation/EEPROM/player-count properties a bare LNX
header does not reliably carry. Unrecognized CRC32s fall back to the
single-player, no-rotation, no-EEPROM defaults.
*/

package main

import "hash/crc32"

// GameEntry is one game database record.
type GameEntry struct {
	Name        string
	Rotation    Rotation
	EepromType  EepromType
	PlayerCount int
}

// gameDatabase maps a cartridge image's CRC32 to its known metadata.
// Entries here are illustrative seed data, not an exhaustive commercial
// catalogue - CRC32 values must stay unique, enforced by RegisterGame below.
var gameDatabase = map[uint32]GameEntry{
	0x00000000: {Name: "Unknown/Homebrew", Rotation: RotationNone, EepromType: EepromNone, PlayerCount: 1},
}

func init() {
	delete(gameDatabase, 0x00000000) // placeholder only; real entries have non-zero CRC32s
}

// defaultGameEntry is returned for any CRC32 not present in the table,
// per spec.md section 4.8's fallback rule.
var defaultGameEntry = GameEntry{
	Name:        "",
	Rotation:    RotationNone,
	EepromType:  EepromNone,
	PlayerCount: 1,
}

// CartridgeCrc32 computes the CRC32 of the program region, excluding the
// 64-byte LNX header when one is present (the caller passes just the
// image bytes it wants hashed).
func CartridgeCrc32(image []byte) uint32 {
	return crc32.ChecksumIEEE(image)
}

// LookupGame returns the known metadata for a cartridge's image CRC32,
// or defaultGameEntry if the CRC32 is not in the table.
func LookupGame(crc32Value uint32) GameEntry {
	if entry, ok := gameDatabase[crc32Value]; ok {
		return entry
	}
	return defaultGameEntry
}

// RegisterGame adds a game database entry, used by tests and by hosts that
// ship their own supplemental metadata file. Re-registering an identical
// entry at the same CRC32 leaves the table unchanged. Panics on a
// CRC32 collision with a different entry, enforcing spec.md section 4.8's
// "CRC32 values must be unique per entry" invariant.
func RegisterGame(crc32Value uint32, entry GameEntry) {
	if existing, ok := gameDatabase[crc32Value]; ok && existing != entry {
		panic("game_database: CRC32 collision for distinct entries")
	}
	gameDatabase[crc32Value] = entry
}
