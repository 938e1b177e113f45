package pokemon

import (
	"fmt"

	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// Savedata is a decoded save image: the original bytes, everything learned
// while resolving the active slot, and the decoded party.  The party records
// alias sub-slices of assembled block copies, not the image itself; writing
// the image back is the writers package's job.
type Savedata struct {
	Raw     []byte
	Profile profiles.Profile

	// Slot resolution results, kept for diagnostics and reconstruction.
	Active_slot int // base physical sector index (0 or 14)
	Sum_a       uint32
	Sum_b       uint32
	Sectors     []types.Sector      // all physical sectors, parsed footers
	Sector_map  map[uint16]int      // logical id -> physical index, active slot only
	Blocks      map[uint16][]byte   // assembled logical blocks the party was cut from

	Player_name string
	Playtime    types.Playtime

	Party []*Pokemon

	// Set when roster enumeration stopped on a record that failed to decode
	// (as opposed to the normal species-0 terminator).
	Party_warning error
}

// Roster block ids. The trainer block is logical sector 0; the party lives
// in logical sector 1, which the games store across physical sectors 1-4
// worth of logical ids.
const (
	BLOCK_TRAINER = 0
	BLOCK_ROSTER  = 1
)

func (s *Savedata) Party_size() int { return len(s.Party) }

func (s *Savedata) Playtime_string() string {
	return fmt.Sprintf("%d:%02d:%02d", s.Playtime.Hours, s.Playtime.Minutes, s.Playtime.Seconds)
}

// Decode_trainer fills the trainer-block fields from an assembled block.
func (s *Savedata) Decode_trainer(block []byte) {
	l := s.Profile.Layout()
	s.Player_name = tables.Decode_text(block[l.Name_offset : l.Name_offset+l.Name_length])
	s.Playtime = types.Playtime{
		Hours:   utils.Get_uint16(block, l.Playtime_hours),
		Minutes: block[l.Playtime_minutes],
		Seconds: block[l.Playtime_seconds],
	}
}

// Decode_party walks the roster block from the profile's party offset,
// wrapping successive records until the species-0 terminator, the party
// cap, or the end of the block.  A record that fails to decode ends the
// walk and is reported through Party_warning rather than an error: the
// records before it are still good.
func (s *Savedata) Decode_party(block []byte) {
	l := s.Profile.Layout()
	s.Party = nil
	s.Party_warning = nil

	for n := 0; n < l.Max_party; n += 1 {
		offset := l.Party_offset + n*l.Record_size
		if offset+l.Record_size > len(block) {
			break
		}
		mon, err := New(block[offset:offset+l.Record_size], s.Profile)
		if err != nil {
			s.Party_warning = fmt.Errorf("party record %v: %w", n, err)
			break
		}
		if mon.Species_raw() == 0 {
			break
		}
		s.Party = append(s.Party, mon)
	}
}
