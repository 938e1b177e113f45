package types

import "errors"

// Sector is the decoded view of one physical chunk of the image.
// Derived data - recomputed from the raw image on demand, never stored back.
// A sector with a bad signature or checksum is still reported (its id and
// counter are useful for diagnostics); only Valid says whether the payload
// can be trusted.
type Sector struct {
	Index     int    // physical position in the image
	Id        uint16 // logical id from the footer (0 = trainer, 1-4 = roster)
	Checksum  uint16
	Signature uint32
	Counter   uint32
	Present   bool // footer was inside the buffer at all
	Valid     bool // signature and checksum both check out
}

// Playtime as stored in the trainer block.
type Playtime struct {
	Hours   uint16
	Minutes uint8
	Seconds uint8
}

// Shininess classification.  Vanilla saves only ever produce the first two;
// the ROM-hack profile adds a third, mutually exclusive, state.
type Shininess int

const (
	SH_NORMAL Shininess = iota
	SH_SHINY
	SH_RADIANT
)

func (s Shininess) String() string {
	switch s {
	case SH_SHINY:
		return "shiny"
	case SH_RADIANT:
		return "radiant"
	}
	return "normal"
}

var (
	// Err_malformed_input: the buffer can't even be cut into sectors.
	Err_malformed_input = errors.New("malformed save image")

	// Err_unsupported_game: no profile's detection criteria matched.
	Err_unsupported_game = errors.New("no known game profile matches this save image")

	// Err_party_too_big: reconstruction was handed more records than fit.
	Err_party_too_big = errors.New("party exceeds the maximum roster size")

	// Err_sector_missing: a sector needed for write-back is not in the map.
	Err_sector_missing = errors.New("required sector missing from active slot")
)
