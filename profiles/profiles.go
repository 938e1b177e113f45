package profiles

import (
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
)

// A Profile is the complete description of one on-disk save layout: sector
// geometry, record geometry, and the per-game policy functions (nature and
// shiny formulas, slot tie-break, payload encryption).  Profiles are pure
// values - created once, never mutated - and the codec only ever dispatches
// through this interface, so adding a layout means adding a value here, not
// branching in the decoder.
type Profile interface {
	Name() string
	Signature() uint32
	Geometry() Geometry
	Layout() Layout

	// The two candidate sector ranges and the rule that picks between them.
	// The tie-break differs per game (strict vs non-strict) and decides
	// which half of the image is authoritative - do not unify them.
	Slot_a() []int
	Slot_b() []int
	Active_slot(sum_a uint32, sum_b uint32) int // base physical index

	Nature(personality uint32) string
	Classify_shiny(personality uint32, trainer_id uint32) types.Shininess

	// Substructure access is the one interface hiding the two payload
	// schemes: permuted-and-XOR-encrypted vs plain fixed offsets.
	// `which` is one of the tables.SS_* roles; the returned slice is a
	// 12-byte decrypted copy.
	Substruct_order(personality uint32) [4]int
	Read_substruct(record []byte, which int) []byte
	Write_substruct(record []byte, which int, data []byte)

	// Egg/ability bits packed on top of the IV word, where the layout has
	// them.
	Misc_flags(iv_word uint32) (egg bool, ability bool)

	// Injected id translation tables (may be nil: identity).
	Mappings() *Mappings

	// Detection hooks: a cheap structural pre-check on the whole image,
	// and the species id ceiling above which a decode is considered
	// garbage rather than data.
	Accepts(image []byte) bool
	Species_limit() uint16
}

// Geometry of the sector container.
type Geometry struct {
	Sector_size  int
	Payload_size int // Sector_size - 12 byte footer
	Sector_count int
}

// Layout holds every profile-specific byte offset: where things live in the
// trainer block, the roster block, and inside a single record.
type Layout struct {
	Record_size  int
	Party_offset int // offset of record 0 inside the roster block
	Max_party    int

	// trainer block
	Name_offset      int
	Name_length      int
	Playtime_hours   int
	Playtime_minutes int
	Playtime_seconds int

	// record header (always unencrypted)
	Nickname        int
	Nickname_length int
	Ot_name         int
	Ot_name_length  int

	// live stats (party records only, always unencrypted)
	Status     int
	Level      int
	Current_hp int
	Max_hp     int
	Attack     int
	Defense    int
	Speed      int
	Sp_attack  int
	Sp_defense int
}

// Mappings are the injected read-only id translation tables (internal id ->
// public id).  A nil map, or a missing key, means identity.
type Mappings struct {
	Species map[uint16]uint16
	Items   map[uint16]uint16
	Moves   map[uint16]uint16
}

func Remap(table map[uint16]uint16, id uint16) uint16 {
	if table == nil {
		return id
	}
	if out, ok := table[id]; ok {
		return out
	}
	return id
}

// Both observed profiles share the same footer signature; they can only be
// told apart by structural decode (see readers.Detect).
const Signature = 0x08012025

// Default_profiles returns the detection order: most specific first, since
// the signatures collide.  Callers doing their own detection can pass any
// list they like - there is deliberately no global registry.
func Default_profiles() []Profile {
	return []Profile{New_quetzal(nil), New_vanilla(nil)}
}

func seq(start, end int) []int {
	out := make([]int, 0, end-start)
	for i := start; i < end; i += 1 {
		out = append(out, i)
	}
	return out
}
