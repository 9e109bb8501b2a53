// Package runner drives the dump engine over a list of files.
package runner

import (
	"errors"
	"fmt"
	"io"
	"os"

	"hd-go/pkg/hexdump"
	"hd-go/pkg/log"
)

var (
	ErrStat = errors.New("cannot stat input")
	ErrOpen = errors.New("cannot open input")
)

// Runner dumps files one after another. A failure in one file is reported and
// counted; the remaining files are still dumped.
type Runner struct {
	Options hexdump.Options
	// Skip is the offset at which every file starts.
	Skip int64
	Out  hexdump.LineWriter
	Diag hexdump.Reporter
}

type Result struct {
	Files  int
	Failed int
}

// Run dumps every named file. It returns an error only when the whole run must
// stop: a file that cannot be stat'ed, a single input that cannot be opened, or
// an output that no longer accepts lines.
func (r *Runner) Run(files []string) (Result, error) {
	var res Result
	if err := r.Options.Validate(); err != nil {
		return res, err
	}
	if r.Skip > 0 && r.Options.Head == 0 && r.Options.Tail > 0 {
		r.Diag.Report("Warning: --skip is ignored if --tail is present without --head")
	}
	multiple := len(files) > 1

	for i, name := range files {
		res.Files++
		err := r.dumpFile(i, name, multiple)
		switch {
		case err == nil:
			log.Debug().Str("file", name).Msg("dump complete")
		case errors.Is(err, ErrStat), errors.Is(err, hexdump.ErrWrite):
			res.Failed++
			return res, err
		case errors.Is(err, ErrOpen) && !multiple:
			res.Failed++
			return res, err
		default:
			res.Failed++
			log.Debug().Str("file", name).Err(err).Msg("dump failed")
		}
	}
	return res, nil
}

func (r *Runner) header(i int, name string) error {
	if i > 0 {
		if err := r.Out.WriteLine(""); err != nil {
			return fmt.Errorf("%w: %w", hexdump.ErrWrite, err)
		}
	}
	if err := r.Out.WriteLine(name + ":"); err != nil {
		return fmt.Errorf("%w: %w", hexdump.ErrWrite, err)
	}
	return nil
}

// dumpFile dumps one file. With several files the dump is preceded by a header,
// written only once the file is known to be dumpable.
func (r *Runner) dumpFile(i int, name string, withHeader bool) error {
	fi, err := os.Stat(name)
	if err != nil {
		r.Diag.Report(fmt.Sprintf("Error stat()'ing '%s': %v", name, err))
		return fmt.Errorf("%w: %w", ErrStat, err)
	}
	size := fi.Size()

	f, err := os.Open(name)
	if err != nil {
		r.Diag.Report(fmt.Sprintf("Error opening %s: %v", name, err))
		return fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()

	if r.Skip > 0 {
		if r.Skip > size {
			msg := fmt.Sprintf("Error: Cannot skip to 0x%X on %s. It has a size of 0x%X", r.Skip, name, size)
			r.Diag.Report(msg)
			return errors.New(msg)
		}
		if _, err := f.Seek(r.Skip, io.SeekStart); err != nil {
			r.Diag.Report(fmt.Sprintf("Error seeking %s to 0x%X: %v", name, r.Skip, err))
			return fmt.Errorf("%w: %w", hexdump.ErrSeek, err)
		}
	}
	if err := adviseSequential(f); err != nil {
		log.Debug().Str("file", name).Err(err).Msg("fadvise failed")
	}

	log.Debug().
		Str("file", name).
		Int64("size", size).
		Int64("skip", r.Skip).
		Stringer("mode", r.Options.Mode()).
		Msg("dumping")
	if withHeader {
		if err := r.header(i, name); err != nil {
			return err
		}
	}
	return hexdump.Dump(f, r.Out, r.Diag, size, r.Options)
}
