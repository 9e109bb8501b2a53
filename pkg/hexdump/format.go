package hexdump

import (
	"hd-go/pkg/util"
)

const hexDigits = "0123456789ABCDEF"

// Layout describes how a block is turned into a line.
type Layout struct {
	BlockSize int
	Unit      Unit
	BigEndian bool
}

// HexWidth is the width of the hex field of a full block, including the space
// after the last unit.
func (l Layout) HexWidth() int {
	u := int(l.Unit)
	return (l.BlockSize/u)*(2*u+1) + l.BlockSize/8 - 1
}

// LineWidth is the length of every data line rendered with an offset field of
// the given width.
func (l Layout) LineWidth(width int) int {
	return width + 2 + l.HexWidth() + 2 + l.BlockSize + 1
}

// Format appends one line for data, which holds at most BlockSize bytes starting at
// offset. A short block is padded so the ASCII gutter stays in the same column.
func (l Layout) Format(sb *util.StrBuf, data []byte, offset int64, width int) {
	writeOffset(sb, offset, width)
	sb.Write("  ")

	start := sb.Len()
	u := int(l.Unit)
	var unit [4]byte
	for col := 0; col < len(data); col += u {
		if col > 0 && col%8 == 0 {
			sb.PutByte(' ')
		}
		// a trailing partial unit is completed with zeros
		n := copy(unit[:u], data[col:])
		clear(unit[n:u])
		l.writeUnit(sb, unit[:u])
		sb.PutByte(' ')
	}
	sb.Pad(' ', l.HexWidth()-(sb.Len()-start))

	sb.Write(" |")
	for _, c := range data {
		if isPrint(c) {
			sb.PutByte(c)
		} else {
			sb.PutByte('.')
		}
	}
	sb.Pad(' ', l.BlockSize-len(data))
	sb.PutByte('|')
}

// FormatLine renders a single line as a string.
func (l Layout) FormatLine(data []byte, offset int64, width int) string {
	sb := util.NewStrBuf(l.LineWidth(width))
	l.Format(sb, data, offset, width)
	return sb.String()
}

// writeUnit prints the most significant byte first. Little endian units hold it
// at the highest address, big endian units at the lowest.
func (l Layout) writeUnit(sb *util.StrBuf, unit []byte) {
	if l.BigEndian {
		for i := 0; i < len(unit); i++ {
			writeHexByte(sb, unit[i])
		}
		return
	}
	for i := len(unit) - 1; i >= 0; i-- {
		writeHexByte(sb, unit[i])
	}
}

func writeHexByte(sb *util.StrBuf, b byte) {
	sb.PutByte(hexDigits[b>>4])
	sb.PutByte(hexDigits[b&0xF])
}

func writeOffset(sb *util.StrBuf, offset int64, width int) {
	v := uint64(offset)
	for shift := (width - 1) * 4; shift >= 0; shift -= 4 {
		sb.PutByte(hexDigits[(v>>uint(shift))&0xF])
	}
}

func isPrint(c byte) bool {
	return c >= 0x20 && c < 0x7F
}
