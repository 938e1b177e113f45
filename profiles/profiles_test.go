package profiles

import (
	"testing"

	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// The tie-break asymmetry is load-bearing: on equal counter sums the two
// games disagree about which slot is live.
func Test_SlotTieBreakAsymmetry(t *testing.T) {
	vanilla := New_vanilla(nil)
	quetzal := New_quetzal(nil)

	if got := vanilla.Active_slot(5, 5); got != 0 {
		t.Errorf("vanilla tie: got base %v, want 0", got)
	}
	if got := quetzal.Active_slot(5, 5); got != 14 {
		t.Errorf("quetzal tie: got base %v, want 14", got)
	}

	// No disagreement away from the tie
	if got := vanilla.Active_slot(5, 6); got != 14 {
		t.Errorf("vanilla B bigger: got base %v", got)
	}
	if got := quetzal.Active_slot(6, 5); got != 0 {
		t.Errorf("quetzal A bigger: got base %v", got)
	}
}

func Test_SlotRanges(t *testing.T) {
	vanilla := New_vanilla(nil)
	if a, b := vanilla.Slot_a(), vanilla.Slot_b(); len(a) != 14 || len(b) != 18 {
		t.Errorf("vanilla ranges: %v + %v sectors", len(a), len(b))
	}

	// The hack counts sectors 14-17 in both sums.  Odd but intentional.
	quetzal := New_quetzal(nil)
	if a, b := quetzal.Slot_a(), quetzal.Slot_b(); len(a) != 18 || len(b) != 18 {
		t.Errorf("quetzal ranges: %v + %v sectors", len(a), len(b))
	}
}

// The two nature formulas genuinely differ: one uses the whole personality,
// the other only its low byte.
func Test_NatureFormulasDiffer(t *testing.T) {
	vanilla := New_vanilla(nil)
	quetzal := New_quetzal(nil)

	// 0x6ccbfd84 % 25 = 11 (Hasty); low byte 0x84 % 25 = 7 (Relaxed)
	p := uint32(0x6ccbfd84)
	if got := vanilla.Nature(p); got != "Hasty" {
		t.Errorf("vanilla nature: got %v", got)
	}
	if got := quetzal.Nature(p); got != "Relaxed" {
		t.Errorf("quetzal nature: got %v", got)
	}
}

func Test_VanillaShinyThreshold(t *testing.T) {
	// personality == trainerId makes the XOR collapse to 0: shiny
	if got := New_vanilla(nil).Classify_shiny(0x12345678, 0x12345678); got != types.SH_SHINY {
		t.Errorf("collapsed XOR: got %v", got)
	}
	// 0x6ccbfd84 ^ 0xa18b1c9f across halves = 11355: not shiny
	if got := New_vanilla(nil).Classify_shiny(0x6ccbfd84, 0xa18b1c9f); got != types.SH_NORMAL {
		t.Errorf("ordinary pair: got %v", got)
	}
}

// Whatever the marker byte holds, a record is never both shiny and radiant.
func Test_QuetzalShinyRadiantExclusive(t *testing.T) {
	quetzal := New_quetzal(nil)
	error_count := 0
	for b := 0; b < 256; b += 1 {
		personality := uint32(b) << 8
		shiny := quetzal.Classify_shiny(personality, 0) == types.SH_SHINY
		radiant := quetzal.Classify_shiny(personality, 0) == types.SH_RADIANT
		if shiny && radiant {
			t.Logf("byte %v is both", b)
			error_count++
		}
		if b == 1 && !shiny {
			t.Error("byte 1 should be shiny")
		}
		if b == 2 && !radiant {
			t.Error("byte 2 should be radiant")
		}
	}
	if error_count > 0 {
		t.Errorf("%v impossible classifications", error_count)
	}
}

// Read_substruct must undo exactly what Write_substruct does, and writing
// one substructure must not move the bytes of any other.
func Test_VanillaSubstructRoundTrip(t *testing.T) {
	vanilla := New_vanilla(nil)
	record := make([]byte, 100)
	utils.Put_uint32(record, 0, 0x6ccbfd84)
	utils.Put_uint32(record, 4, 0xa18b1c9f)

	payload := [4][]byte{}
	for which := range payload {
		payload[which] = make([]byte, 12)
		for i := range payload[which] {
			payload[which][i] = uint8(which*16 + i)
		}
		vanilla.Write_substruct(record, which, payload[which])
	}

	for which := range payload {
		got := vanilla.Read_substruct(record, which)
		for i := range got {
			if got[i] != payload[which][i] {
				t.Errorf("substruct %v byte %v: got %v, want %v", which, i, got[i], payload[which][i])
			}
		}
	}

	// Overwrite one substructure; the other three must be byte-stable
	before := make([]byte, 100)
	copy(before, record)
	vanilla.Write_substruct(record, 1, make([]byte, 12))

	changed_slot := 0
	order := vanilla.Substruct_order(0x6ccbfd84)
	for slot, which := range order {
		if which == 1 {
			changed_slot = slot
		}
	}
	for i := range record {
		inside := i >= vanilla_payload+changed_slot*substruct_size && i < vanilla_payload+(changed_slot+1)*substruct_size
		if !inside && record[i] != before[i] {
			t.Errorf("byte %v changed by an unrelated substruct write", i)
		}
	}
}

func Test_QuetzalSubstructsArePlain(t *testing.T) {
	quetzal := New_quetzal(nil)
	record := make([]byte, 104)
	for i := range record {
		record[i] = uint8(i)
	}

	// No key, no shuffle: reads come straight from the fixed offsets
	for which, offset := range quetzal_substructs {
		got := quetzal.Read_substruct(record, which)
		for i := range got {
			if got[i] != uint8(offset+i) {
				t.Errorf("substruct %v byte %v: got %v, want %v", which, i, got[i], offset+i)
			}
		}
	}
}
