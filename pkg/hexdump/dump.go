package hexdump

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"hd-go/pkg/buffers"
	"hd-go/pkg/util"
)

// LineWriter receives finished lines, without line terminators.
type LineWriter interface {
	WriteLine(line string) error
}

// Reporter receives diagnostics, one message per call.
type Reporter interface {
	Report(msg string)
}

type dumper struct {
	src  io.ReadSeeker
	out  LineWriter
	diag Reporter
	size int64

	opts   Options
	layout Layout
	bs     int
	mode   Mode
	tail   int

	pos      int64
	headLeft int
	// window is set only when lines must be retained for a tail after a head.
	window      *RetentionWindow
	capturing   bool
	seekPending bool

	dups     int
	prev     []byte
	cur      []byte
	havePrev bool
	line     *util.StrBuf
}

// Dump writes the lines for src, from its current position to the end, to out.
// fileSize is the total size of the input and must be known before the first read.
//
// The returned error wraps ErrOptions, ErrSeek, ErrRead or ErrWrite. Seek and read
// failures are also reported to diag. A failed dump never flushes retained tail
// lines.
func Dump(src io.ReadSeeker, out LineWriter, diag Reporter, fileSize int64, opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	d := &dumper{
		src:      src,
		out:      out,
		diag:     diag,
		size:     fileSize,
		opts:     opts,
		layout:   opts.Layout(),
		bs:       opts.BlockSize(),
		mode:     opts.Mode(),
		headLeft: opts.Head,
		prev:     buffers.BlockPool.Get(),
		cur:      buffers.BlockPool.Get(),
	}
	defer func() {
		buffers.BlockPool.Put(d.prev)
		buffers.BlockPool.Put(d.cur)
	}()
	d.line = util.NewStrBuf(d.layout.LineWidth(16))
	return d.run()
}

func (d *dumper) run() error {
	start, err := d.src.Seek(0, io.SeekCurrent)
	if err != nil {
		d.diag.Report(fmt.Sprintf("Error getting current position: %v", err))
		return fmt.Errorf("%w: current position: %w", ErrSeek, err)
	}
	d.pos = start
	d.tail = d.tailLines()
	if d.mode == ModeHeadAndTail {
		d.window = NewRetentionWindow(d.tail)
	}
	d.seekPending = d.mode == ModeTailOnly

	for {
		if d.seekPending {
			if err := d.seekToTail(); err != nil {
				return err
			}
		}

		n, err := io.ReadFull(d.src, d.cur[:d.bs])
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			d.diag.Report(fmt.Sprintf("Error reading at 0x%X: %v", d.pos, err))
			return fmt.Errorf("%w: at 0x%X: %w", ErrRead, d.pos, err)
		}
		block := d.cur[:n]

		if d.isDuplicate(block) {
			d.dups++
			d.pos += int64(d.bs)
			continue
		}
		if d.dups > 0 {
			if err := d.closeRun(); err != nil {
				return err
			}
		}
		if n == 0 || d.mode == ModeDone {
			break
		}

		copy(d.prev, block)
		d.havePrev = true
		d.layout.Format(d.line, block, d.pos, OffsetWidth(d.pos, d.size))
		if err := d.emit(d.line.Take()); err != nil {
			return err
		}
		if d.mode == ModeDone || n < d.bs {
			break
		}
		d.pos += int64(d.bs)
	}
	return d.flush()
}

// isDuplicate reports whether block repeats the previous full block and may be
// folded into the current run. The line that spends the last unit of a head
// quota is never folded.
func (d *dumper) isDuplicate(block []byte) bool {
	if !d.havePrev || len(block) != d.bs || !bytes.Equal(d.prev[:d.bs], block) {
		return false
	}
	return d.opts.Head == 0 || d.headLeft > 1 || d.capturing
}

// closeRun emits the marker and boundary line for a pending duplicate run. The
// boundary line carries the offset of the last duplicate.
func (d *dumper) closeRun() error {
	last := d.pos - int64(d.bs)
	width := OffsetWidth(last, d.size)
	if d.dups > 1 {
		if err := d.emitMarker(width); err != nil {
			return err
		}
	}
	d.dups = 0
	d.layout.Format(d.line, d.prev[:d.bs], last, width)
	return d.emit(d.line.Take())
}

// emit routes a body line to the output or the retention window and spends head
// quota.
func (d *dumper) emit(line string) error {
	switch {
	case d.headLeft > 0:
		if err := d.write(line); err != nil {
			return err
		}
		d.headLeft--
		if d.headLeft == 0 {
			d.endHead()
		}
	case d.capturing:
		d.window.Put(line)
	default:
		return d.write(line)
	}
	return nil
}

func (d *dumper) emitMarker(width int) error {
	if d.capturing {
		d.window.Put(Marker(width))
		return nil
	}
	return d.write(Marker(width))
}

func (d *dumper) endHead() {
	if d.window == nil {
		d.mode = ModeDone
		return
	}
	d.capturing = true
	d.seekPending = true
}

// tailLines bounds the tail quota by the number of lines the rest of the input
// can produce, counting a partial final block and one spare.
func (d *dumper) tailLines() int {
	limit := max((d.size-d.pos)/int64(d.bs)+2, 1)
	if int64(d.opts.Tail) > limit {
		return int(limit)
	}
	return d.opts.Tail
}

// seekToTail jumps once to the block holding the start of the tail window when
// that block lies ahead of the cursor.
func (d *dumper) seekToTail() error {
	d.seekPending = false
	bs := int64(d.bs)
	tailStart := (d.size - bs*int64(d.tail)) &^ (bs - 1)
	if tailStart <= d.pos {
		return nil
	}
	if _, err := d.src.Seek(tailStart, io.SeekStart); err != nil {
		d.diag.Report(fmt.Sprintf("Error seeking to tail 0x%X: %v", tailStart, err))
		return fmt.Errorf("%w: tail 0x%X: %w", ErrSeek, tailStart, err)
	}
	d.pos = tailStart
	// blocks before the jump were never read, so nothing can repeat them
	d.havePrev = false
	return nil
}

// flush prints the retained tail lines, separated from the head by a marker
// unless the first retained line already is one.
func (d *dumper) flush() error {
	if d.window == nil {
		return nil
	}
	first := true
	return d.window.Drain(func(line string) error {
		if first && !strings.HasPrefix(line, "*") {
			if err := d.write(markerFor(line)); err != nil {
				return err
			}
		}
		first = false
		return d.write(line)
	})
}

func (d *dumper) write(line string) error {
	if err := d.out.WriteLine(line); err != nil {
		return fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return nil
}
