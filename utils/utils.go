package utils

// Low-level byte plumbing shared by readers, writers and the record codec.
// Everything in a save image is little-endian.

func Read_uint8(bytes []byte, cur *int) uint8 {
	out := bytes[*cur]
	*cur += 1
	return out
}

func Read_uint16(bytes []byte, cur *int) uint16 {
	out := uint16(bytes[*cur]) | uint16(bytes[*cur+1])<<8
	*cur += 2
	return out
}

func Read_uint32(bytes []byte, cur *int) uint32 {
	out := uint32(0)
	for i := 0; i < 4; i++ {
		out |= uint32(bytes[*cur+i]) << (8 * i)
	}
	*cur += 4
	return out
}

// Get_uint16 and friends are the cursor-free versions, for when the offset
// is already known and nobody wants it advanced.
func Get_uint16(bytes []byte, offset int) uint16 {
	cur := offset
	return Read_uint16(bytes, &cur)
}

func Get_uint32(bytes []byte, offset int) uint32 {
	cur := offset
	return Read_uint32(bytes, &cur)
}

func Put_uint16(bytes []byte, offset int, v uint16) {
	bytes[offset] = uint8(v & 0xFF)
	bytes[offset+1] = uint8(v >> 8)
}

func Put_uint32(bytes []byte, offset int, v uint32) {
	for i := 0; i < 4; i++ {
		bytes[offset+i] = uint8((v >> (8 * i)) & 0xFF)
	}
}

// Sector_checksum computes the 16-bit folded checksum of a sector payload:
// sum the payload as little-endian u32 words, then fold the high half into
// the low half.  Payload length must be a multiple of 4 (4084 is).
func Sector_checksum(payload []byte) uint16 {
	sum := uint32(0)
	for cur := 0; cur < len(payload); {
		sum += Read_uint32(payload, &cur)
	}
	return uint16(((sum >> 16) + (sum & 0xFFFF)) & 0xFFFF)
}
