package writers

// Functions for writing savedata back into a flash image.
//
// Only the roster region is ever rewritten; everything else in the image is
// carried over byte-for-byte.  Reconstructing with an unmodified party must
// produce an image identical to the input - tools rely on that to detect
// "no changes to save".

import (
	"fmt"

	"github.com/JohnDeved/pokemon-save-web-sub001/pokemon"
	"github.com/JohnDeved/pokemon-save-web-sub001/readers"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// Reconstruct splices the roster records into the save's roster block,
// splits the block back across the physical sectors of the active slot, and
// recomputes the checksum of every rewritten sector.  Returns a new image;
// the one inside save is not touched.
//
// Fails without producing anything if the roster is too big, or if a sector
// the roster bytes land in has no valid physical home - a half-patched
// image is worse than no image.
func Reconstruct(save *pokemon.Savedata, roster []*pokemon.Pokemon) ([]byte, error) {
	layout := save.Profile.Layout()
	geo := save.Profile.Geometry()

	if len(roster) > layout.Max_party {
		return nil, fmt.Errorf("%w: %v records, limit %v",
			types.Err_party_too_big, len(roster), layout.Max_party)
	}

	// Fresh copy of the assembled roster block with the records laid in.
	block := make([]byte, len(save.Blocks[pokemon.BLOCK_ROSTER]))
	copy(block, save.Blocks[pokemon.BLOCK_ROSTER])
	for n, mon := range roster {
		offset := layout.Party_offset + n*layout.Record_size
		if offset+layout.Record_size > len(block) {
			return nil, fmt.Errorf("%w: record %v overruns the roster block",
				types.Err_party_too_big, n)
		}
		copy(block[offset:offset+layout.Record_size], mon.Raw()[:layout.Record_size])
	}

	// The byte range the splice could have dirtied, in block coordinates.
	dirty_start := layout.Party_offset
	dirty_end := layout.Party_offset + len(roster)*layout.Record_size

	out := make([]byte, len(save.Raw))
	copy(out, save.Raw)

	for _, id := range readers.Roster_ids {
		chunk_start := int(id-readers.Roster_ids[0]) * geo.Payload_size
		chunk_end := chunk_start + geo.Payload_size

		physical, ok := save.Sector_map[id]
		if !ok {
			// An empty dirty interval overlaps nothing
			if dirty_start < dirty_end && chunk_start < dirty_end && dirty_start < chunk_end {
				return nil, fmt.Errorf("%w: logical sector %v has no valid copy in the active slot",
					types.Err_sector_missing, id)
			}
			continue // untouched and absent: leave the image region alone
		}

		start := physical * geo.Sector_size
		copy(out[start:start+geo.Payload_size], block[chunk_start:chunk_end])
		utils.Put_uint16(out, start+geo.Payload_size+2,
			utils.Sector_checksum(out[start:start+geo.Payload_size]))
	}

	return out, nil
}
