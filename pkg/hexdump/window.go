package hexdump

// RetentionWindow keeps the most recent lines written to it, up to a fixed
// capacity. Each slot owns its line until it is overwritten or drained.
type RetentionWindow struct {
	slots []string
	next  int
}

func NewRetentionWindow(capacity int) *RetentionWindow {
	if capacity < 1 {
		capacity = 1
	}
	return &RetentionWindow{slots: make([]string, capacity)}
}

// Put stores line in the oldest slot, replacing whatever it held. An empty line
// leaves an empty placeholder that Drain skips.
func (w *RetentionWindow) Put(line string) {
	w.slots[w.next] = line
	w.next++
	if w.next == len(w.slots) {
		w.next = 0
	}
}

// Drain calls fn for each retained line, oldest first, and empties the window.
// A slot is released before fn sees its line. Draining stops at the first error.
func (w *RetentionWindow) Drain(fn func(line string) error) error {
	defer w.reset()
	for i := range w.slots {
		idx := (w.next + i) % len(w.slots)
		line := w.slots[idx]
		w.slots[idx] = ""
		if line == "" {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return nil
}

func (w *RetentionWindow) reset() {
	clear(w.slots)
	w.next = 0
}
