package profiles

import (
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
)

// Quetzal is the ROM-hack layout: 104-byte records with no encryption and
// no substructure shuffling - the four logical groups sit at fixed offsets.
// It also claims more sectors per slot (18+18, overlapping with the second
// range by design) and breaks counter ties the other way.
type Quetzal struct {
	mappings *Mappings
}

func New_quetzal(m *Mappings) Quetzal {
	return Quetzal{mappings: m}
}

// Fixed offsets of the four plain substructure groups inside a record.
var quetzal_substructs = [4]int{0x28, 0x34, 0x40, 0x4C}

func (q Quetzal) Name() string      { return "Pokemon Quetzal" }
func (q Quetzal) Signature() uint32 { return Signature }

func (q Quetzal) Geometry() Geometry {
	return Geometry{Sector_size: 4096, Payload_size: 4084, Sector_count: 32}
}

func (q Quetzal) Layout() Layout {
	return Layout{
		Record_size:  104,
		Party_offset: 0x6A8,
		Max_party:    max_party,

		Name_offset:      0,
		Name_length:      8,
		Playtime_hours:   0x10,
		Playtime_minutes: 0x14,
		Playtime_seconds: 0x15,

		Nickname:        0x08,
		Nickname_length: 10,
		Ot_name:         0x14,
		Ot_name_length:  7,

		Status:     0x22,
		Level:      0x58,
		Current_hp: 0x23,
		Max_hp:     0x5A,
		Attack:     0x5C,
		Defense:    0x5E,
		Speed:      0x60,
		Sp_attack:  0x62,
		Sp_defense: 0x64,
	}
}

// 18 sectors in both candidate ranges; 14-17 are counted in both sums.
// That overlap is how the hack actually lays its saves out, not a bug.
func (q Quetzal) Slot_a() []int { return seq(0, 18) }
func (q Quetzal) Slot_b() []int { return seq(14, 32) }

// Non-strict tie-break: B wins ties.
func (q Quetzal) Active_slot(sum_a uint32, sum_b uint32) int {
	if sum_b >= sum_a {
		return 14
	}
	return 0
}

// Only the low byte of the personality feeds the nature here.
func (q Quetzal) Nature(personality uint32) string {
	return tables.Natures[(personality&0xFF)%25]
}

// The second personality byte is a discrete marker: 1 = shiny, 2 = radiant,
// anything else normal.  Mutually exclusive by construction.
func (q Quetzal) Classify_shiny(personality uint32, trainer_id uint32) types.Shininess {
	switch (personality >> 8) & 0xFF {
	case 1:
		return types.SH_SHINY
	case 2:
		return types.SH_RADIANT
	}
	return types.SH_NORMAL
}

// No shuffling: the physical order is the logical order.
func (q Quetzal) Substruct_order(personality uint32) [4]int {
	return [4]int{0, 1, 2, 3}
}

func (q Quetzal) Read_substruct(record []byte, which int) []byte {
	out := make([]byte, substruct_size)
	copy(out, record[quetzal_substructs[which]:])
	return out
}

func (q Quetzal) Write_substruct(record []byte, which int, data []byte) {
	copy(record[quetzal_substructs[which]:quetzal_substructs[which]+substruct_size], data)
}

// No egg or ability bits; the IV word is just IVs.
func (q Quetzal) Misc_flags(iv_word uint32) (bool, bool) {
	return false, false
}

func (q Quetzal) Mappings() *Mappings { return q.mappings }

// Cheap variant sniff: hack saves use save space vanilla leaves blank.
func (q Quetzal) Accepts(image []byte) bool {
	return len(image) > 0x20000 && image[0x1F000] != 0
}

func (q Quetzal) Species_limit() uint16 { return 1000 }
