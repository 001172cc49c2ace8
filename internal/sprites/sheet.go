// Package sprites scans an asset folder for PNG sprite sheets and reports
// each sheet's dimensions and frame ratio.
package sprites

// Entry describes one successfully parsed PNG. Height is never 0.
//
// Frames is width divided by height as a real number. For a horizontal strip
// of square frames it is the frame count; it is kept as a ratio and never
// rounded.
type Entry struct {
	Filename string
	Width    uint32
	Height   uint32
	Frames   float64
}

func newEntry(name string, w, h uint32) Entry {
	return Entry{
		Filename: name,
		Width:    w,
		Height:   h,
		Frames:   float64(w) / float64(h),
	}
}

// Sheet maps filename to Entry and remembers discovery order.
type Sheet struct {
	order  []string
	byName map[string]Entry
}

// NewSheet returns an empty Sheet.
func NewSheet() *Sheet {
	return &Sheet{byName: make(map[string]Entry)}
}

// put inserts e, replacing an entry with the same filename in place.
func (s *Sheet) put(e Entry) {
	if _, ok := s.byName[e.Filename]; !ok {
		s.order = append(s.order, e.Filename)
	}
	s.byName[e.Filename] = e
}

// Get returns the entry for filename.
func (s *Sheet) Get(filename string) (Entry, bool) {
	e, ok := s.byName[filename]
	return e, ok
}

// Len returns the number of entries.
func (s *Sheet) Len() int { return len(s.order) }

// Entries returns the entries in discovery order.
func (s *Sheet) Entries() []Entry {
	out := make([]Entry, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.byName[name])
	}
	return out
}
