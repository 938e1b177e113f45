package profiles

import (
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// Vanilla is the unmodified Emerald layout: 100-byte records whose 48-byte
// payload is stored as four 12-byte substructures, physically ordered by a
// permutation of the personality value and XOR-encrypted with
// personality^trainerId.
type Vanilla struct {
	mappings *Mappings
}

func New_vanilla(m *Mappings) Vanilla {
	return Vanilla{mappings: m}
}

// payload location inside a record
const (
	vanilla_payload = 0x20
	substruct_size  = 12
	max_party       = 6
)

func (v Vanilla) Name() string      { return "Pokemon Emerald (Vanilla)" }
func (v Vanilla) Signature() uint32 { return Signature }

func (v Vanilla) Geometry() Geometry {
	return Geometry{Sector_size: 4096, Payload_size: 4084, Sector_count: 32}
}

func (v Vanilla) Layout() Layout {
	return Layout{
		Record_size:  100,
		Party_offset: 0x238,
		Max_party:    max_party,

		Name_offset:      0,
		Name_length:      8,
		Playtime_hours:   0x0E,
		Playtime_minutes: 0x10,
		Playtime_seconds: 0x11,

		Nickname:        0x08,
		Nickname_length: 10,
		Ot_name:         0x14,
		Ot_name_length:  7,

		Status:     0x50,
		Level:      0x54,
		Current_hp: 0x56,
		Max_hp:     0x58,
		Attack:     0x5A,
		Defense:    0x5C,
		Speed:      0x5E,
		Sp_attack:  0x60,
		Sp_defense: 0x62,
	}
}

// 14 sectors in the first candidate range, 18 in the second.
func (v Vanilla) Slot_a() []int { return seq(0, 14) }
func (v Vanilla) Slot_b() []int { return seq(14, 32) }

// Strict tie-break: slot B wins only when its counter sum is strictly
// larger.  The ROM-hack profile uses >=; the asymmetry is intentional.
func (v Vanilla) Active_slot(sum_a uint32, sum_b uint32) int {
	if sum_b > sum_a {
		return 14
	}
	return 0
}

// Nature uses the full 32-bit personality.
func (v Vanilla) Nature(personality uint32) string {
	return tables.Natures[personality%25]
}

// XOR of the four 16-bit halves of trainer id and personality; small values
// are shiny.  Vanilla has no radiant state.
func (v Vanilla) Classify_shiny(personality uint32, trainer_id uint32) types.Shininess {
	value := uint16(personality) ^ uint16(personality>>16) ^
		uint16(trainer_id) ^ uint16(trainer_id>>16)
	if value < 8 {
		return types.SH_SHINY
	}
	return types.SH_NORMAL
}

func (v Vanilla) Substruct_order(personality uint32) [4]int {
	return tables.Substruct_orders[personality%24]
}

// slot_of finds the physical slot holding substructure type `which` for the
// given personality.
func (v Vanilla) slot_of(personality uint32, which int) int {
	order := v.Substruct_order(personality)
	for slot, t := range order {
		if t == which {
			return slot
		}
	}
	// unreachable: every row of the table is a bijection
	return 0
}

func (v Vanilla) Read_substruct(record []byte, which int) []byte {
	personality := utils.Get_uint32(record, 0)
	key := personality ^ utils.Get_uint32(record, 4)
	offset := vanilla_payload + v.slot_of(personality, which)*substruct_size

	out := make([]byte, substruct_size)
	for w := 0; w < substruct_size; w += 4 {
		utils.Put_uint32(out, w, utils.Get_uint32(record, offset+w)^key)
	}
	return out
}

func (v Vanilla) Write_substruct(record []byte, which int, data []byte) {
	personality := utils.Get_uint32(record, 0)
	key := personality ^ utils.Get_uint32(record, 4)
	offset := vanilla_payload + v.slot_of(personality, which)*substruct_size

	for w := 0; w < substruct_size; w += 4 {
		utils.Put_uint32(record, offset+w, utils.Get_uint32(data, w)^key)
	}
}

// Egg flag at bit 30, ability slot at bit 31, on top of the packed IVs.
func (v Vanilla) Misc_flags(iv_word uint32) (bool, bool) {
	return iv_word&(1<<30) != 0, iv_word&(1<<31) != 0
}

func (v Vanilla) Mappings() *Mappings { return v.mappings }

// The vanilla profile has no cheap structural sniff beyond the shared
// signature; it is tried last for that reason.
func (v Vanilla) Accepts(image []byte) bool { return true }

func (v Vanilla) Species_limit() uint16 { return 1000 }
