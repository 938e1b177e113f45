package tables

import (
	"strconv"
	"strings"
)

// Static lookup data for GBA-era Pokémon saves.  Anything here is a fixed
// constant of the on-disk format, not configuration: the permutation table
// in particular must match the game bit-for-bit and has no closed form
// worth computing at runtime.

// Natures indexed by the profile's nature formula (0-24).
var Natures = [25]string{
	"Hardy", "Lonely", "Brave", "Adamant", "Naughty",
	"Bold", "Docile", "Relaxed", "Impish", "Lax",
	"Timid", "Hasty", "Serious", "Jolly", "Naive",
	"Modest", "Mild", "Quiet", "Bashful", "Rash",
	"Calm", "Gentle", "Sassy", "Careful", "Quirky",
}

// Substructure type indices.  The encrypted payload of a record is four
// 12-byte groups; these are their *logical* roles.
const (
	SS_GROWTH = iota
	SS_ATTACKS
	SS_CONDITION
	SS_MISC
)

// Substruct_orders[personality%24][slot] is the substructure type stored in
// physical slot 0-3.  Fixed 24-entry table; every row is a bijection of
// {0,1,2,3}.
var Substruct_orders = [24][4]int{
	{0, 1, 2, 3}, {0, 1, 3, 2}, {0, 2, 1, 3}, {0, 2, 3, 1},
	{0, 3, 1, 2}, {0, 3, 2, 1}, {1, 0, 2, 3}, {1, 0, 3, 2},
	{1, 2, 0, 3}, {1, 2, 3, 0}, {1, 3, 0, 2}, {1, 3, 2, 0},
	{2, 0, 1, 3}, {2, 0, 3, 1}, {2, 1, 0, 3}, {2, 1, 3, 0},
	{2, 3, 0, 1}, {2, 3, 1, 0}, {3, 0, 1, 2}, {3, 0, 2, 1},
	{3, 1, 0, 2}, {3, 1, 2, 0}, {3, 2, 0, 1}, {3, 2, 1, 0},
}

// Decode_text decodes the game's glyph encoding into ASCII.  Terminated by
// 0xFF or 0x00; glyphs outside the handled ranges are skipped.
// Note the quirk in the ranges: the letter range shadows most of the digit
// range, so only '0' ever decodes.  That matches the glyph table, not a
// bug here.
func Decode_text(bytes []byte) string {
	out := ""
	for _, b := range bytes {
		if b == 0xFF || b == 0x00 {
			break
		}
		switch {
		case b >= 0xA1 && b <= 0xBA:
			out += string(rune('A' + b - 0xA1))
		case b >= 0xBB && b <= 0xD4:
			out += string(rune('a' + b - 0xBB))
		case b >= 0xA0 && b <= 0xA9:
			out += string(rune('0' + b - 0xA0))
		}
	}
	return strings.TrimSpace(out)
}

// Encode_text is the best-effort inverse of Decode_text into a fixed-length
// buffer, 0xFF-terminated and 0xFF-padded.  Digits 1-9 encode to glyphs the
// decoder reads back as letters (see above); anything unencodable becomes a
// space glyph (0x00), which also happens to terminate - callers only feed
// this letters in practice.
func Encode_text(s string, length int) []byte {
	out := make([]byte, length)
	for i := range out {
		out[i] = 0xFF
	}
	for i, r := range s {
		if i >= length {
			break
		}
		switch {
		case r >= 'A' && r <= 'Z':
			out[i] = 0xA1 + uint8(r-'A')
		case r >= 'a' && r <= 'z':
			out[i] = 0xBB + uint8(r-'a')
		case r >= '0' && r <= '9':
			out[i] = 0xA0 + uint8(r-'0')
		default:
			out[i] = 0x00
		}
	}
	return out
}

// Species display names for tool output.  This is a convenience subset; the
// real, complete id maps are data injected into a profile, not code.
var Species_names = map[uint16]string{
	1:   "Bulbasaur",
	6:   "Charizard",
	143: "Snorlax",
	208: "Steelix",
	252: "Treecko",
	255: "Torchic",
	258: "Mudkip",
	272: "Ludicolo",
	286: "Breloom",
	384: "Rayquaza",
}

func Species_name(id uint16) string {
	if name, ok := Species_names[id]; ok {
		return name
	}
	return "Species " + strconv.Itoa(int(id))
}
