// Package sink adapts writers to the line and diagnostic sinks used by the dump
// engine.
package sink

import (
	"bufio"
	"io"
	"runtime"
	"strings"

	"hd-go/pkg/log"
)

// EOL is the line terminator of the host platform.
var EOL = func() string {
	if runtime.GOOS == "windows" {
		return "\r\n"
	}
	return "\n"
}()

// Lines writes one terminated line per call through a buffer. Flush must be
// called once writing is done.
type Lines struct {
	w   *bufio.Writer
	eol string
}

func NewLines(w io.Writer) *Lines {
	return &Lines{w: bufio.NewWriter(w), eol: EOL}
}

func (l *Lines) WriteLine(line string) error {
	if _, err := l.w.WriteString(line); err != nil {
		return err
	}
	_, err := l.w.WriteString(l.eol)
	return err
}

func (l *Lines) Flush() error {
	return l.w.Flush()
}

// Diagnostics writes error and warning messages, one per line, and mirrors them
// to the structured log.
type Diagnostics struct {
	w     io.Writer
	count int
}

func NewDiagnostics(w io.Writer) *Diagnostics {
	return &Diagnostics{w: w}
}

func (d *Diagnostics) Report(msg string) {
	d.count++
	log.Warn().Str("component", "diagnostics").Msg(msg)
	if _, err := io.WriteString(d.w, strings.TrimRight(msg, "\r\n")+EOL); err != nil {
		log.Error().Err(err).Msg("failed to write diagnostic")
	}
}

// Count returns the number of diagnostics reported so far.
func (d *Diagnostics) Count() int {
	return d.count
}
