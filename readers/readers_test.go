package readers

import (
	"errors"
	"testing"

	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// simple_record builds a decodable record with both ids zero, which makes
// the key zero and the substructure order the identity - so the species can
// be written straight into the first payload word.
func simple_record(species uint16) []byte {
	record := make([]byte, 100)
	utils.Put_uint16(record, 0x20, species)
	return record
}

// build_image assembles a full 32-sector image with slot A active: logical
// ids 0-13 on physical 0-13, counter 1, good checksums.  Slot B is left
// zeroed (bad signature, so never valid).  The records land back-to-back at
// the roster offset.
func build_image(records [][]byte) []byte {
	vanilla := profiles.New_vanilla(nil)
	geo := vanilla.Geometry()
	layout := vanilla.Layout()
	image := make([]byte, geo.Sector_count*geo.Sector_size)

	trainer := make([]byte, geo.Payload_size)
	copy(trainer, tables.Encode_text("RED", layout.Name_length))
	utils.Put_uint16(trainer, layout.Playtime_hours, 12)
	trainer[layout.Playtime_minutes] = 34
	trainer[layout.Playtime_seconds] = 56

	roster := make([]byte, len(Roster_ids)*geo.Payload_size)
	for n, record := range records {
		copy(roster[layout.Party_offset+n*layout.Record_size:], record)
	}

	for physical := 0; physical < 14; physical += 1 {
		start := physical * geo.Sector_size
		switch {
		case physical == 0:
			copy(image[start:], trainer)
		case physical <= 4:
			copy(image[start:], roster[(physical-1)*geo.Payload_size:physical*geo.Payload_size])
		}

		footer := start + geo.Payload_size
		utils.Put_uint16(image, footer, uint16(physical))
		utils.Put_uint16(image, footer+2, utils.Sector_checksum(image[start:start+geo.Payload_size]))
		utils.Put_uint32(image, footer+4, vanilla.Signature())
		utils.Put_uint32(image, footer+8, 1)
	}

	return image
}

func Test_ValidateSectors(t *testing.T) {
	vanilla := profiles.New_vanilla(nil)
	image := build_image(nil)

	sectors, err := Validate_sectors(image, vanilla)
	if err != nil {
		t.Fatal(err)
	}

	error_count := 0
	for i, s := range sectors {
		if !s.Present {
			t.Logf("sector %v should be present", i)
			error_count++
		}
		if i < 14 && !s.Valid {
			t.Logf("sector %v should be valid", i)
			error_count++
		}
		if i >= 14 && s.Valid {
			t.Logf("zeroed sector %v should not be valid", i)
			error_count++
		}
	}
	if error_count > 0 {
		t.Errorf("%v sector misjudgements", error_count)
	}

	// A payload flip must invalidate exactly that sector
	image[3*4096+100] ^= 0xFF
	sectors, _ = Validate_sectors(image, vanilla)
	if sectors[3].Valid {
		t.Error("corrupted sector 3 still valid")
	}
	if !sectors[2].Valid || !sectors[4].Valid {
		t.Error("neighbours of the corrupted sector went invalid")
	}
}

func Test_MalformedInput(t *testing.T) {
	vanilla := profiles.New_vanilla(nil)
	for _, size := range []int{0, 1, 5000, 4095} {
		_, err := Validate_sectors(make([]byte, size), vanilla)
		if !errors.Is(err, types.Err_malformed_input) {
			t.Errorf("%v bytes: err %v", size, err)
		}
	}
}

func Test_TruncatedImageHasAbsentSectors(t *testing.T) {
	image := build_image(nil)[:16*4096]
	sectors, err := Validate_sectors(image, profiles.New_vanilla(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !sectors[15].Present || sectors[16].Present || sectors[31].Present {
		t.Error("presence does not follow the truncation point")
	}
}

func Test_ResolveSlot(t *testing.T) {
	vanilla := profiles.New_vanilla(nil)
	sectors := make([]types.Sector, 32)
	for i := range sectors {
		sectors[i].Valid = true
		sectors[i].Counter = 1
	}

	// 14 sectors at counter 1 vs 18 at counter 1: B is bigger
	if base, sum_a, sum_b := Resolve_slot(sectors, vanilla); base != 14 || sum_a != 14 || sum_b != 18 {
		t.Errorf("base %v, sums %v/%v", base, sum_a, sum_b)
	}

	// Invalid sectors don't count
	for i := 14; i < 32; i += 1 {
		sectors[i].Valid = false
	}
	if base, _, sum_b := Resolve_slot(sectors, vanilla); base != 0 || sum_b != 0 {
		t.Errorf("invalid sectors counted: base %v, sum B %v", base, sum_b)
	}
}

func Test_ReadSavedata(t *testing.T) {
	image := build_image([][]byte{simple_record(252), simple_record(286)})
	save, err := Read_savedata(image, profiles.New_vanilla(nil))
	if err != nil {
		t.Fatal(err)
	}

	if save.Player_name != "RED" {
		t.Errorf("player %q", save.Player_name)
	}
	if save.Playtime_string() != "12:34:56" {
		t.Errorf("playtime %v", save.Playtime_string())
	}
	if save.Active_slot != 0 {
		t.Errorf("active slot base %v", save.Active_slot)
	}
	if save.Party_size() != 2 {
		t.Fatalf("party size %v", save.Party_size())
	}
	if got := save.Party[0].Species(); got != 252 {
		t.Errorf("first species %v", got)
	}
	if got := save.Party[1].Species(); got != 286 {
		t.Errorf("second species %v", got)
	}
}

// A species-0 third record ends the roster even when later slots hold junk.
func Test_EmptySlotTruncation(t *testing.T) {
	junk := simple_record(999)
	image := build_image([][]byte{
		simple_record(252), simple_record(286), simple_record(0), junk, junk,
	})

	save, err := Read_savedata(image, profiles.New_vanilla(nil))
	if err != nil {
		t.Fatal(err)
	}
	if save.Party_size() != 2 {
		t.Errorf("party size %v, want 2", save.Party_size())
	}
}

// Losing a roster sector degrades to zeros for its region instead of
// failing the whole read.
func Test_MissingSectorZeroFills(t *testing.T) {
	image := build_image([][]byte{simple_record(252)})
	// break logical sector 4 (physical 4)
	image[4*4096+4084+4] ^= 0xFF

	save, err := Read_savedata(image, profiles.New_vanilla(nil))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := save.Sector_map[4]; ok {
		t.Error("broken sector still mapped")
	}
	if save.Party_size() != 1 {
		t.Errorf("party size %v", save.Party_size())
	}

	block := save.Blocks[1]
	for i := 3 * 4084; i < 4*4084; i += 1 {
		if block[i] != 0 {
			t.Fatalf("byte %v of the lost region is not zero", i)
		}
	}
}

func Test_ForcedSlot(t *testing.T) {
	image := build_image([][]byte{simple_record(252)})
	save, err := Read_savedata_slot(image, profiles.New_vanilla(nil), 14)
	if err != nil {
		t.Fatal(err)
	}
	if save.Active_slot != 14 {
		t.Errorf("base %v", save.Active_slot)
	}
	// slot B is empty in the fixture
	if save.Party_size() != 0 || len(save.Sector_map) != 0 {
		t.Errorf("found data in the empty slot: party %v, map %v", save.Party_size(), save.Sector_map)
	}
}

func Test_Detect(t *testing.T) {
	image := build_image([][]byte{simple_record(252)})

	profile, err := Detect(image, profiles.Default_profiles())
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name() != profiles.New_vanilla(nil).Name() {
		t.Errorf("detected %v", profile.Name())
	}

	// The ROM-hack marker byte alone must not be enough: its structural
	// decode finds no party at the hack's offsets, so detection still
	// falls through to vanilla.
	image[0x1F000] = 1
	profile, err = Detect(image, profiles.Default_profiles())
	if err != nil {
		t.Fatal(err)
	}
	if profile.Name() != profiles.New_vanilla(nil).Name() {
		t.Errorf("marker byte fooled detection into %v", profile.Name())
	}
}

func Test_DetectRejectsUnknownImages(t *testing.T) {
	// Right size, no signatures anywhere
	_, err := Detect(make([]byte, 32*4096), profiles.Default_profiles())
	if !errors.Is(err, types.Err_unsupported_game) {
		t.Errorf("err %v", err)
	}

	// Signed but with an empty party: nothing decodable to confirm on
	_, err = Detect(build_image(nil), profiles.Default_profiles())
	if !errors.Is(err, types.Err_unsupported_game) {
		t.Errorf("empty-party image: err %v", err)
	}
}
