package rle

import "encoding/binary"

const headerSize = 16

var magic = [3]byte{'R', 'L', 'E'}

// header is the 16-byte fixed layout written immediately before the node
// table: magic (3), variant tag (1), decompressedLength (8, u64 LE),
// tableNodeCount (4, u32 LE).
type header struct {
	variant            Variant
	decompressedLength uint64
	tableNodeCount     uint32
}

func (h header) encode() []byte {
	buf := make([]byte, headerSize)
	copy(buf[0:3], magic[:])
	buf[3] = byte(h.variant)
	binary.LittleEndian.PutUint64(buf[4:12], h.decompressedLength)
	binary.LittleEndian.PutUint32(buf[12:16], h.tableNodeCount)
	return buf
}

func variantFromTag(tag byte) (Variant, bool) {
	switch Variant(tag) {
	case VariantP8L8, VariantP8L16, VariantP16L8, VariantP16L16:
		return Variant(tag), true
	default:
		return VariantInefficient, false
	}
}

func decodeHeader(buf []byte) (header, error) {
	if len(buf) < headerSize {
		return header{}, newErr(IoError, "header buffer too short: got %d bytes, need %d", len(buf), headerSize)
	}
	if buf[0] != magic[0] || buf[1] != magic[1] || buf[2] != magic[2] {
		return header{}, newErr(NotRLE, "bad magic bytes %q", buf[0:3])
	}
	variant, ok := variantFromTag(buf[3])
	if !ok {
		return header{}, newErr(UnknownVariant, "unrecognized variant tag 0x%02x", buf[3])
	}
	return header{
		variant:            variant,
		decompressedLength: binary.LittleEndian.Uint64(buf[4:12]),
		tableNodeCount:     binary.LittleEndian.Uint32(buf[12:16]),
	}, nil
}
