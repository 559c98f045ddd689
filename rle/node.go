package rle

import "encoding/binary"

// Variant identifies one of the four packed node width combinations, or
// the sentinel used when no variant saves space.
type Variant uint8

const (
	VariantInefficient Variant = 0x00
	VariantP8L8        Variant = 0x11
	VariantP8L16       Variant = 0x12
	VariantP16L8       Variant = 0x21
	VariantP16L16      Variant = 0x22
)

func (v Variant) String() string {
	switch v {
	case VariantP8L8:
		return "P8L8"
	case VariantP8L16:
		return "P8L16"
	case VariantP16L8:
		return "P16L8"
	case VariantP16L16:
		return "P16L16"
	default:
		return "INEFFICIENT"
	}
}

// AllVariants lists the four candidates the format scorer evaluates, in
// no particular order of preference (the scorer picks on savings alone).
var AllVariants = [4]Variant{VariantP8L8, VariantP8L16, VariantP16L8, VariantP16L16}

// variantSpec holds the two width parameters that distinguish a packed
// node layout. The four node widths in spec.md §4.1 are four instances of
// this spec rather than four hand-duplicated Go types: the prefix/length
// fields are always 1 or 2 bytes wide, little-endian, with no padding, so
// a single width-parameterized implementation is the faithful runtime-tag
// dispatch option spec.md §9 allows in place of compile-time generics.
type variantSpec struct {
	variant Variant
	pBits   int
	lBits   int
}

func specFor(v Variant) variantSpec {
	switch v {
	case VariantP8L8:
		return variantSpec{VariantP8L8, 8, 8}
	case VariantP8L16:
		return variantSpec{VariantP8L16, 8, 16}
	case VariantP16L8:
		return variantSpec{VariantP16L8, 16, 8}
	case VariantP16L16:
		return variantSpec{VariantP16L16, 16, 16}
	default:
		panic("rle: specFor called with non-codec variant")
	}
}

func widthBytes(bits int) int { return bits / 8 }

func maxOfWidth(bits int) uint64 { return (uint64(1) << uint(bits)) - 1 }

func (s variantSpec) PMax() uint64 { return maxOfWidth(s.pBits) }
func (s variantSpec) LMax() uint64 { return maxOfWidth(s.lBits) }

// NodeSize is S = sizeof(P) + sizeof(L) + 1, the exact on-disk record size.
func (s variantSpec) NodeSize() int {
	return widthBytes(s.pBits) + widthBytes(s.lBits) + 1
}

// MaxSkip is the largest prefix a single skip node can consume:
// PMAX | (0xFF << bitwidth(P)).
func (s variantSpec) MaxSkip() uint64 {
	return s.PMax() | (0xFF << uint(s.pBits))
}

// MaxLong is the largest length a single long node can consume:
// LMAX | (PMAX << bitwidth(L)).
func (s variantSpec) MaxLong() uint64 {
	return s.LMax() | (s.PMax() << uint(s.lBits))
}

func putFieldLE(buf []byte, val uint64, bits int) {
	switch bits {
	case 8:
		buf[0] = byte(val)
	case 16:
		binary.LittleEndian.PutUint16(buf, uint16(val))
	default:
		panic("rle: unsupported field width")
	}
}

func getFieldLE(buf []byte, bits int) uint64 {
	switch bits {
	case 8:
		return uint64(buf[0])
	case 16:
		return uint64(binary.LittleEndian.Uint16(buf))
	default:
		panic("rle: unsupported field width")
	}
}

// encodeRaw lays out a node's three fields in order: prefix(P), length(L), value(u8).
func (s variantSpec) encodeRaw(prefix, length uint64, value byte) []byte {
	pw, lw := widthBytes(s.pBits), widthBytes(s.lBits)
	buf := make([]byte, s.NodeSize())
	putFieldLE(buf[0:pw], prefix, s.pBits)
	putFieldLE(buf[pw:pw+lw], length, s.lBits)
	buf[pw+lw] = value
	return buf
}

// decodeRaw reads a node's three fields back out without interpreting its role.
func (s variantSpec) decodeRaw(node []byte) (prefix, length uint64, value byte) {
	pw, lw := widthBytes(s.pBits), widthBytes(s.lBits)
	prefix = getFieldLE(node[0:pw], s.pBits)
	length = getFieldLE(node[pw:pw+lw], s.lBits)
	value = node[pw+lw]
	return
}

// EncodeStandard builds a standard node directly: (p, l, v) with p<=PMAX, 0<l<=LMAX.
func (s variantSpec) EncodeStandard(prefix, length uint64, value byte) []byte {
	return s.encodeRaw(prefix, length, value)
}

// EncodeSkip builds one skip node covering as much of remainingPrefix as a
// single node can hold. remainingPrefix must be >= PMAX (caller misuse
// otherwise, per spec.md §4.1); it reports the amount actually consumed.
func (s variantSpec) EncodeSkip(remainingPrefix uint64) (node []byte, consumed uint64) {
	if remainingPrefix < s.PMax() {
		panic("rle: EncodeSkip called with prefix below PMax")
	}
	maxSkip := s.MaxSkip()
	if remainingPrefix > maxSkip {
		return s.encodeRaw(s.PMax(), 0, 0xFF), maxSkip
	}
	hi := byte(remainingPrefix >> uint(s.pBits))
	lo := remainingPrefix & s.PMax()
	return s.encodeRaw(lo, 0, hi), remainingPrefix
}

// EncodeSignal builds a signal node announcing that the next node is a
// long node, carrying the ordinary (now <= PMAX) prefix for that run.
func (s variantSpec) EncodeSignal(leftoverPrefix uint64) []byte {
	return s.encodeRaw(leftoverPrefix, 0, 0)
}

// EncodeLong builds one long node covering as much of remainingLength as a
// single node can hold. remainingLength must be >= LMAX.
func (s variantSpec) EncodeLong(remainingLength uint64, value byte) (node []byte, consumed uint64) {
	if remainingLength < s.LMax() {
		panic("rle: EncodeLong called with length below LMax")
	}
	maxLong := s.MaxLong()
	if remainingLength > maxLong {
		return s.encodeRaw(s.PMax(), s.LMax(), value), maxLong
	}
	hiLength := remainingLength >> uint(s.lBits)
	loLength := remainingLength & s.LMax()
	return s.encodeRaw(hiLength, loLength, value), remainingLength
}

// DecodeSkipLength is the left-inverse of EncodeSkip: prefix | (value << bitwidth(P)).
func (s variantSpec) DecodeSkipLength(prefix uint64, value byte) uint64 {
	return prefix | (uint64(value) << uint(s.pBits))
}

// DecodeLongLength is the left-inverse of EncodeLong: length | (prefix << bitwidth(L)).
func (s variantSpec) DecodeLongLength(prefix, length uint64) uint64 {
	return length | (prefix << uint(s.lBits))
}

// nodeRole classifies a decoded node by inspecting its fields, never a tag bit.
type nodeRole int

const (
	roleStandard nodeRole = iota
	roleSkip
	roleSignal
)

func classify(length uint64, value byte) nodeRole {
	if length != 0 {
		return roleStandard
	}
	if value != 0 {
		return roleSkip
	}
	return roleSignal
}
