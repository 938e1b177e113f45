package pokemon

import (
	"fmt"

	"github.com/JohnDeved/pokemon-save-web-sub001/profiles"
	"github.com/JohnDeved/pokemon-save-web-sub001/tables"
	"github.com/JohnDeved/pokemon-save-web-sub001/types"
	"github.com/JohnDeved/pokemon-save-web-sub001/utils"
)

// Pokemon is one roster record.  It wraps the record's backing bytes and
// its profile; getters decode on the fly and setters write straight back
// into the bytes (re-encrypting where the profile calls for it).  A record
// exclusively owns its byte range - nothing else aliases it.
type Pokemon struct {
	data    []byte
	profile profiles.Profile
}

// Stat indices, used for EVs, IVs and the packed orderings below.
const (
	STAT_HP = iota
	STAT_ATTACK
	STAT_DEFENSE
	STAT_SPEED
	STAT_SP_ATTACK
	STAT_SP_DEFENSE
	STAT_COUNT
)

var Stat_names = [STAT_COUNT]string{"HP", "Attack", "Defense", "Speed", "Sp.Attack", "Sp.Defense"}

type Move struct {
	Id uint16
	Pp uint8
}

type Evs [STAT_COUNT]uint8
type Ivs [STAT_COUNT]uint8

// Contest condition stats, stored after the EVs.
type Contest struct {
	Cool   uint8
	Beauty uint8
	Cute   uint8
	Smart  uint8
	Tough  uint8
	Feel   uint8
}

// Live battle stats (party records only).
type Stats struct {
	Level      uint8
	Status     uint8
	Current_hp uint16
	Max_hp     uint16
	Attack     uint16
	Defense    uint16
	Speed      uint16
	Sp_attack  uint16
	Sp_defense uint16
}

// Origins as unpacked from the misc substructure's packed u16.
type Origins struct {
	Met_level    uint8
	Met_game     uint8
	Pokeball     uint8
	Ot_is_female bool
}

// New wraps a record's bytes.  The slice is retained, not copied: the
// caller hands over ownership of that byte range.
func New(data []byte, profile profiles.Profile) (*Pokemon, error) {
	if len(data) < profile.Layout().Record_size {
		return nil, fmt.Errorf("record too short: %v bytes, profile %v wants %v",
			len(data), profile.Name(), profile.Layout().Record_size)
	}
	return &Pokemon{data: data, profile: profile}, nil
}

// Raw exposes the backing bytes (for splicing back into an image).
func (p *Pokemon) Raw() []byte { return p.data }

func (p *Pokemon) Profile() profiles.Profile { return p.profile }

// ---- header (unencrypted on every profile) ----

func (p *Pokemon) Personality() uint32 { return utils.Get_uint32(p.data, 0) }
func (p *Pokemon) Trainer_id() uint32  { return utils.Get_uint32(p.data, 4) }

func (p *Pokemon) Nickname() string {
	l := p.profile.Layout()
	return tables.Decode_text(p.data[l.Nickname : l.Nickname+l.Nickname_length])
}

func (p *Pokemon) Set_nickname(name string) {
	l := p.profile.Layout()
	copy(p.data[l.Nickname:l.Nickname+l.Nickname_length], tables.Encode_text(name, l.Nickname_length))
}

func (p *Pokemon) Ot_name() string {
	l := p.profile.Layout()
	return tables.Decode_text(p.data[l.Ot_name : l.Ot_name+l.Ot_name_length])
}

// Ot_id_string is the 5-digit public half of the trainer id, as the games
// display it.
func (p *Pokemon) Ot_id_string() string {
	return fmt.Sprintf("%05d", p.Trainer_id()&0xFFFF)
}

// ---- growth substructure ----

// Species_raw is the id as stored; Species pushes it through the profile's
// injected remap table.  Raw 0 is the empty-slot sentinel that terminates
// roster enumeration.
func (p *Pokemon) Species_raw() uint16 {
	return utils.Get_uint16(p.profile.Read_substruct(p.data, tables.SS_GROWTH), 0)
}

func (p *Pokemon) Species() uint16 {
	return profiles.Remap(p.mapping_species(), p.Species_raw())
}

func (p *Pokemon) Item() uint16 {
	raw := utils.Get_uint16(p.profile.Read_substruct(p.data, tables.SS_GROWTH), 2)
	return profiles.Remap(p.mapping_items(), raw)
}

func (p *Pokemon) Experience() uint32 {
	return utils.Get_uint32(p.profile.Read_substruct(p.data, tables.SS_GROWTH), 4)
}

func (p *Pokemon) Pp_bonuses() uint8 {
	return p.profile.Read_substruct(p.data, tables.SS_GROWTH)[8]
}

func (p *Pokemon) Friendship() uint8 {
	return p.profile.Read_substruct(p.data, tables.SS_GROWTH)[9]
}

// ---- attacks substructure ----

// Move returns move n (0-3), id remapped, with its raw PP.
func (p *Pokemon) Move(n int) Move {
	ss := p.profile.Read_substruct(p.data, tables.SS_ATTACKS)
	return Move{
		Id: profiles.Remap(p.mapping_moves(), utils.Get_uint16(ss, n*2)),
		Pp: ss[8+n],
	}
}

func (p *Pokemon) Moves() [4]Move {
	out := [4]Move{}
	ss := p.profile.Read_substruct(p.data, tables.SS_ATTACKS)
	for n := range out {
		out[n] = Move{
			Id: profiles.Remap(p.mapping_moves(), utils.Get_uint16(ss, n*2)),
			Pp: ss[8+n],
		}
	}
	return out
}

// ---- condition substructure ----

func (p *Pokemon) Evs() Evs {
	ss := p.profile.Read_substruct(p.data, tables.SS_CONDITION)
	out := Evs{}
	copy(out[:], ss[:STAT_COUNT])
	return out
}

// Set_ev writes one EV.  Only the affected substructure is re-encrypted;
// every other stored byte stays put.
func (p *Pokemon) Set_ev(stat int, value uint8) {
	ss := p.profile.Read_substruct(p.data, tables.SS_CONDITION)
	ss[stat] = value
	p.profile.Write_substruct(p.data, tables.SS_CONDITION, ss)
}

func (p *Pokemon) Contest() Contest {
	ss := p.profile.Read_substruct(p.data, tables.SS_CONDITION)
	return Contest{ss[6], ss[7], ss[8], ss[9], ss[10], ss[11]}
}

// ---- misc substructure ----

func (p *Pokemon) Pokerus() uint8 {
	return p.profile.Read_substruct(p.data, tables.SS_MISC)[0]
}

func (p *Pokemon) Met_location() uint8 {
	return p.profile.Read_substruct(p.data, tables.SS_MISC)[1]
}

// Origins unpacks the met-level/met-game/pokeball/OT-gender word.
func (p *Pokemon) Origins() Origins {
	word := utils.Get_uint16(p.profile.Read_substruct(p.data, tables.SS_MISC), 2)
	return Origins{
		Met_level:    uint8(word & 0x7F),
		Met_game:     uint8((word >> 7) & 0x0F),
		Pokeball:     uint8((word >> 11) & 0x0F),
		Ot_is_female: word&(1<<15) != 0,
	}
}

func (p *Pokemon) iv_word() uint32 {
	return utils.Get_uint32(p.profile.Read_substruct(p.data, tables.SS_MISC), 4)
}

// Iv reads one IV (5 bits each, in stat order).
func (p *Pokemon) Iv(stat int) uint8 {
	return uint8((p.iv_word() >> (5 * stat)) & 0x1F)
}

func (p *Pokemon) Ivs() Ivs {
	word := p.iv_word()
	out := Ivs{}
	for stat := range out {
		out[stat] = uint8((word >> (5 * stat)) & 0x1F)
	}
	return out
}

// Set_iv writes one 5-bit IV, preserving the other IVs and whatever flag
// bits the profile packs above them.
func (p *Pokemon) Set_iv(stat int, value uint8) {
	ss := p.profile.Read_substruct(p.data, tables.SS_MISC)
	word := utils.Get_uint32(ss, 4)
	word &^= 0x1F << (5 * stat)
	word |= uint32(value&0x1F) << (5 * stat)
	utils.Put_uint32(ss, 4, word)
	p.profile.Write_substruct(p.data, tables.SS_MISC, ss)
}

func (p *Pokemon) Is_egg() bool {
	egg, _ := p.profile.Misc_flags(p.iv_word())
	return egg
}

// Second_ability reports the ability-slot flag (vanilla only; always false
// on layouts without it).
func (p *Pokemon) Second_ability() bool {
	_, ability := p.profile.Misc_flags(p.iv_word())
	return ability
}

func (p *Pokemon) Ribbons() uint32 {
	return utils.Get_uint32(p.profile.Read_substruct(p.data, tables.SS_MISC), 8)
}

// ---- derived from personality ----

func (p *Pokemon) Nature() string {
	return p.profile.Nature(p.Personality())
}

// Nature_id is the 0-24 index of Nature in the nature table.
func (p *Pokemon) Nature_id() int {
	name := p.Nature()
	for i, n := range tables.Natures {
		if n == name {
			return i
		}
	}
	return 0
}

// Set_nature rewrites the personality so that the profile's nature formula
// lands on the target, preferring a value that keeps personality%24 - and
// with it the substructure order - unchanged (24 and 25 are coprime, so
// for the full-value formula a residue pair always has a solution in the
// low 600 values).  The XOR key follows the personality, so all four
// substructures are re-encrypted; their decrypted content is untouched.
func (p *Pokemon) Set_nature(nature int) error {
	if nature < 0 || nature >= len(tables.Natures) {
		return fmt.Errorf("no such nature: %v", nature)
	}

	old := p.Personality()
	candidate := uint32(0)
	found := false
	for k := uint32(0); k < 600; k += 1 {
		candidate = old - old%600 + k
		if candidate%24 == old%24 && p.profile.Nature(candidate) == tables.Natures[nature] {
			found = true
			break
		}
	}
	if !found {
		// The non-encrypted profile keys nature off the low byte only, and
		// not every nature is reachable from there with %24 pinned.  The
		// rewrite below re-derives order and key from the new personality,
		// so giving up on %24 is safe - just less tidy.
		for k := uint32(0); k < 256; k += 1 {
			candidate = old&^uint32(0xFF) | k
			if p.profile.Nature(candidate) == tables.Natures[nature] {
				found = true
				break
			}
		}
	}
	if !found {
		return fmt.Errorf("cannot reach nature %v from personality %08x", tables.Natures[nature], old)
	}

	// Lift the plaintext out, swap the key, put it back.
	saved := [4][]byte{}
	for ss := range saved {
		saved[ss] = p.profile.Read_substruct(p.data, ss)
	}
	utils.Put_uint32(p.data, 0, candidate)
	for ss := range saved {
		p.profile.Write_substruct(p.data, ss, saved[ss])
	}
	return nil
}

func (p *Pokemon) Shininess() types.Shininess {
	return p.profile.Classify_shiny(p.Personality(), p.Trainer_id())
}

func (p *Pokemon) Is_shiny() bool   { return p.Shininess() == types.SH_SHINY }
func (p *Pokemon) Is_radiant() bool { return p.Shininess() == types.SH_RADIANT }

// ---- live stats (unencrypted, party records only) ----

func (p *Pokemon) Status() uint8 { return p.data[p.profile.Layout().Status] }
func (p *Pokemon) Level() uint8  { return p.data[p.profile.Layout().Level] }

func (p *Pokemon) Set_status(v uint8) { p.data[p.profile.Layout().Status] = v }
func (p *Pokemon) Set_level(v uint8)  { p.data[p.profile.Layout().Level] = v }

func (p *Pokemon) Current_hp() uint16 { return utils.Get_uint16(p.data, p.profile.Layout().Current_hp) }
func (p *Pokemon) Max_hp() uint16     { return utils.Get_uint16(p.data, p.profile.Layout().Max_hp) }
func (p *Pokemon) Attack() uint16     { return utils.Get_uint16(p.data, p.profile.Layout().Attack) }
func (p *Pokemon) Defense() uint16    { return utils.Get_uint16(p.data, p.profile.Layout().Defense) }
func (p *Pokemon) Speed() uint16      { return utils.Get_uint16(p.data, p.profile.Layout().Speed) }
func (p *Pokemon) Sp_attack() uint16  { return utils.Get_uint16(p.data, p.profile.Layout().Sp_attack) }
func (p *Pokemon) Sp_defense() uint16 { return utils.Get_uint16(p.data, p.profile.Layout().Sp_defense) }

func (p *Pokemon) Set_current_hp(v uint16) {
	utils.Put_uint16(p.data, p.profile.Layout().Current_hp, v)
}
func (p *Pokemon) Set_max_hp(v uint16)  { utils.Put_uint16(p.data, p.profile.Layout().Max_hp, v) }
func (p *Pokemon) Set_attack(v uint16)  { utils.Put_uint16(p.data, p.profile.Layout().Attack, v) }
func (p *Pokemon) Set_defense(v uint16) { utils.Put_uint16(p.data, p.profile.Layout().Defense, v) }
func (p *Pokemon) Set_speed(v uint16)   { utils.Put_uint16(p.data, p.profile.Layout().Speed, v) }
func (p *Pokemon) Set_sp_attack(v uint16) {
	utils.Put_uint16(p.data, p.profile.Layout().Sp_attack, v)
}
func (p *Pokemon) Set_sp_defense(v uint16) {
	utils.Put_uint16(p.data, p.profile.Layout().Sp_defense, v)
}

func (p *Pokemon) Stats() Stats {
	return Stats{
		Level:      p.Level(),
		Status:     p.Status(),
		Current_hp: p.Current_hp(),
		Max_hp:     p.Max_hp(),
		Attack:     p.Attack(),
		Defense:    p.Defense(),
		Speed:      p.Speed(),
		Sp_attack:  p.Sp_attack(),
		Sp_defense: p.Sp_defense(),
	}
}

func (p *Pokemon) String() string {
	return fmt.Sprintf("%v (%v) Lv.%v %v/%v %v",
		p.Nickname(), tables.Species_name(p.Species()), p.Level(),
		p.Current_hp(), p.Max_hp(), p.Nature())
}

func (p *Pokemon) mapping_species() map[uint16]uint16 {
	if m := p.profile.Mappings(); m != nil {
		return m.Species
	}
	return nil
}

func (p *Pokemon) mapping_items() map[uint16]uint16 {
	if m := p.profile.Mappings(); m != nil {
		return m.Items
	}
	return nil
}

func (p *Pokemon) mapping_moves() map[uint16]uint16 {
	if m := p.profile.Mappings(); m != nil {
		return m.Moves
	}
	return nil
}
