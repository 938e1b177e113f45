package tables

import (
	"testing"
)

// Every row of the order table must be a bijection of {0,1,2,3}: a repeated
// or missing type would silently cross-wire substructure reads.
func Test_SubstructOrdersAreBijections(t *testing.T) {
	error_count := 0
	for p, order := range Substruct_orders {
		seen := [4]bool{}
		for _, which := range order {
			if which < 0 || which > 3 || seen[which] {
				t.Logf("row %v is not a bijection: %v", p, order)
				error_count++
				break
			}
			seen[which] = true
		}
	}
	if error_count > 0 {
		t.Errorf("%v bad rows", error_count)
	}
}

func Test_TextRoundTrip(t *testing.T) {
	for _, name := range []string{"GECKO", "May", "ABCxyz"} {
		encoded := Encode_text(name, 10)
		if len(encoded) != 10 {
			t.Errorf("Encode_text(%q): %v bytes", name, len(encoded))
		}
		if got := Decode_text(encoded); got != name {
			t.Errorf("round trip mangled %q into %q", name, got)
		}
	}
}

func Test_DecodeStopsAtTerminator(t *testing.T) {
	// 0xFF and 0x00 both end a string; bytes after don't matter
	for _, terminator := range []byte{0xFF, 0x00} {
		bytes := []byte{0xA1, 0xA2, terminator, 0xA3, 0xA4}
		if got := Decode_text(bytes); got != "AB" {
			t.Errorf("terminator %#x: got %q", terminator, got)
		}
	}
}

func Test_SpeciesNameFallback(t *testing.T) {
	if got := Species_name(252); got != "Treecko" {
		t.Errorf("known id: got %q", got)
	}
	if got := Species_name(999); got != "Species 999" {
		t.Errorf("unknown id: got %q", got)
	}
}
