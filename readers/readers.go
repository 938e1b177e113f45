package readers

// Functions for pulling savedata out of a raw flash image.
//
// Image format:
//
// 32 sectors of 4096 bytes.  Each sector is 4084 payload bytes followed by
// a 12-byte footer:
//
//   bytes 0-1: logical sector id (LE)
//   bytes 2-3: checksum of the payload (LE)
//   bytes 4-7: signature, always 0x08012025 (LE)
//   bytes 8-11: save counter (LE)
//
// The game keeps two copies of the save ("slots") in the same image and
// bumps the counter on every write; the slot whose valid sectors carry the
// larger counter sum is the live one.  Which sectors belong to which slot,
// and who wins a tied sum, is profile business.

import (
	"fmt"

	"github.com/JohnDeved/pokemon-save-web-sub001/pokemon"
	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// Logical ids making up the roster block, ascending.  Logical id 0 is the
// trainer block.
var Roster_ids = []uint16{1, 2, 3, 4}

// Validate_sectors parses every sector footer in the image.
//
// An empty or non-sector-multiple image is malformed and fails outright.
// A sector whose footer would fall past the end of the buffer comes back
// with Present=false; a sector with a wrong signature or checksum comes
// back Present but not Valid, with its footer fields filled in anyway so
// callers can print what they found.
func Validate_sectors(image []byte, profile profiles.Profile) ([]types.Sector, error) {
	geo := profile.Geometry()
	if len(image) == 0 || len(image)%geo.Sector_size != 0 {
		return nil, fmt.Errorf("%w: %v bytes is not a whole number of %v-byte sectors",
			types.Err_malformed_input, len(image), geo.Sector_size)
	}

	out := make([]types.Sector, geo.Sector_count)
	for i := range out {
		out[i].Index = i
		start := i * geo.Sector_size
		if start+geo.Sector_size > len(image) {
			continue // absent: short image
		}
		footer := start + geo.Payload_size
		out[i].Present = true
		out[i].Id = utils.Get_uint16(image, footer)
		out[i].Checksum = utils.Get_uint16(image, footer+2)
		out[i].Signature = utils.Get_uint32(image, footer+4)
		out[i].Counter = utils.Get_uint32(image, footer+8)

		out[i].Valid = out[i].Signature == profile.Signature() &&
			out[i].Checksum == utils.Sector_checksum(image[start:start+geo.Payload_size])
	}
	return out, nil
}

// Resolve_slot sums the counters of valid sectors over the profile's two
// candidate ranges and asks the profile which slot wins.  Returns the base
// physical index of the winner plus both sums (the sums are worth keeping
// around for diagnostics).
func Resolve_slot(sectors []types.Sector, profile profiles.Profile) (int, uint32, uint32) {
	sum := func(indices []int) uint32 {
		total := uint32(0)
		for _, i := range indices {
			if i < len(sectors) && sectors[i].Valid {
				total += sectors[i].Counter
			}
		}
		return total
	}

	sum_a := sum(profile.Slot_a())
	sum_b := sum(profile.Slot_b())
	return profile.Active_slot(sum_a, sum_b), sum_a, sum_b
}

// Build_sector_map maps logical id -> physical index over the valid sectors
// of the active slot.  If the slot somehow holds two sectors claiming the
// same logical id, the later physical sector wins.
func Build_sector_map(sectors []types.Sector, base int, profile profiles.Profile) map[uint16]int {
	indices := profile.Slot_a()
	if base != 0 {
		indices = profile.Slot_b()
	}

	out := map[uint16]int{}
	for _, i := range indices {
		if i < len(sectors) && sectors[i].Valid {
			out[sectors[i].Id] = i
		}
	}
	return out
}

// Assemble_block concatenates the payloads of the given logical ids in
// ascending order.  Ids with no valid sector leave their region zeroed; a
// block with no valid sectors at all is all zeros, which callers must treat
// as "no data" rather than an error.
func Assemble_block(image []byte, sector_map map[uint16]int, ids []uint16, profile profiles.Profile) []byte {
	geo := profile.Geometry()
	out := make([]byte, len(ids)*geo.Payload_size)

	min := ids[0]
	for _, id := range ids {
		if id < min {
			min = id
		}
	}
	for _, id := range ids {
		physical, ok := sector_map[id]
		if !ok {
			continue
		}
		start := physical * geo.Sector_size
		copy(out[int(id-min)*geo.Payload_size:], image[start:start+geo.Payload_size])
	}
	return out
}

// Read_savedata decodes a whole image with the given profile: validate
// sectors, resolve the active slot, assemble the trainer and roster blocks,
// decode the party.
func Read_savedata(image []byte, profile profiles.Profile) (*pokemon.Savedata, error) {
	return read_savedata(image, profile, -1)
}

// Read_savedata_slot is Read_savedata with the slot resolution overridden:
// base must be the first physical index of the wanted slot.  For digging
// through the inactive copy of a save.
func Read_savedata_slot(image []byte, profile profiles.Profile, base int) (*pokemon.Savedata, error) {
	return read_savedata(image, profile, base)
}

func read_savedata(image []byte, profile profiles.Profile, forced int) (*pokemon.Savedata, error) {
	sectors, err := Validate_sectors(image, profile)
	if err != nil {
		return nil, err
	}

	base, sum_a, sum_b := Resolve_slot(sectors, profile)
	if forced >= 0 {
		base = forced
	}

	out := pokemon.Savedata{
		Raw:         image,
		Profile:     profile,
		Active_slot: base,
		Sum_a:       sum_a,
		Sum_b:       sum_b,
		Sectors:     sectors,
		Sector_map:  Build_sector_map(sectors, base, profile),
		Blocks:      map[uint16][]byte{},
	}

	trainer := Assemble_block(image, out.Sector_map, []uint16{0}, profile)
	out.Blocks[pokemon.BLOCK_TRAINER] = trainer
	out.Decode_trainer(trainer)

	roster := Assemble_block(image, out.Sector_map, Roster_ids, profile)
	out.Blocks[pokemon.BLOCK_ROSTER] = roster
	out.Decode_party(roster)

	return &out, nil
}

// Detect tries each profile in order and returns the first that fits.
//
// The footer signature alone can't tell the supported games apart - they
// share it - so a profile is accepted only if its structural sniff passes
// AND a full decode with it produces at least one party record whose raw
// species id is nonzero and plausibly in range.  Garbage decodes (wrong
// record size, wrong party offset) reliably fail that bar.
func Detect(image []byte, candidates []profiles.Profile) (profiles.Profile, error) {
	for _, profile := range candidates {
		sectors, err := Validate_sectors(image, profile)
		if err != nil {
			return nil, err
		}

		signed := false
		for _, s := range sectors {
			if s.Present && s.Signature == profile.Signature() {
				signed = true
				break
			}
		}
		if !signed || !profile.Accepts(image) {
			continue
		}

		save, err := Read_savedata(image, profile)
		if err != nil {
			continue
		}
		for _, mon := range save.Party {
			raw := mon.Species_raw()
			if raw > 0 && raw < profile.Species_limit() {
				return profile, nil
			}
		}
	}
	return nil, types.Err_unsupported_game
}
