package hexdump

import (
	"fmt"
	"strconv"
	"strings"
)

// Unit is the number of source bytes rendered as one hexadecimal group.
type Unit int

const (
	UnitByte  Unit = 1
	UnitShort Unit = 2
	UnitWord  Unit = 4
)

const (
	NarrowBlockSize = 16
	WideBlockSize   = 32
)

func (u Unit) Valid() bool {
	return u == UnitByte || u == UnitShort || u == UnitWord
}

func (u Unit) String() string {
	switch u {
	case UnitByte:
		return "bytes"
	case UnitShort:
		return "shorts"
	case UnitWord:
		return "longs"
	}
	return "unit(" + strconv.Itoa(int(u)) + ")"
}

// ParseUnit accepts either a unit name (bytes, shorts, longs) or its size in bytes.
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "1", "b", "byte", "bytes":
		return UnitByte, nil
	case "2", "h", "short", "shorts":
		return UnitShort, nil
	case "4", "w", "long", "longs", "word", "words":
		return UnitWord, nil
	}
	return 0, fmt.Errorf("%w: unknown unit %q", ErrOptions, s)
}

// Options controls a single dump.
type Options struct {
	Unit      Unit
	BigEndian bool
	// Head limits output to the first Head lines. Zero disables the limit.
	Head int
	// Tail limits output to the last Tail lines. Zero disables the limit.
	Tail int
	Wide bool
}

func (o Options) Validate() error {
	if !o.Unit.Valid() {
		return fmt.Errorf("%w: unit width %d, want 1, 2 or 4", ErrOptions, int(o.Unit))
	}
	if o.Head < 0 {
		return fmt.Errorf("%w: negative head count %d", ErrOptions, o.Head)
	}
	if o.Tail < 0 {
		return fmt.Errorf("%w: negative tail count %d", ErrOptions, o.Tail)
	}
	return nil
}

func (o Options) BlockSize() int {
	if o.Wide {
		return WideBlockSize
	}
	return NarrowBlockSize
}

func (o Options) Layout() Layout {
	return Layout{BlockSize: o.BlockSize(), Unit: o.Unit, BigEndian: o.BigEndian}
}

// Mode is the head/tail windowing behaviour selected by the quotas.
type Mode int

const (
	ModeNormal Mode = iota
	ModeHeadOnly
	ModeTailOnly
	ModeHeadAndTail
	ModeDone
)

func (o Options) Mode() Mode {
	switch {
	case o.Head > 0 && o.Tail > 0:
		return ModeHeadAndTail
	case o.Head > 0:
		return ModeHeadOnly
	case o.Tail > 0:
		return ModeTailOnly
	}
	return ModeNormal
}

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeHeadOnly:
		return "head"
	case ModeTailOnly:
		return "tail"
	case ModeHeadAndTail:
		return "head+tail"
	case ModeDone:
		return "done"
	}
	return "mode(" + strconv.Itoa(int(m)) + ")"
}
