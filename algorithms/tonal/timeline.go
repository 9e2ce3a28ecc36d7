package tonal

// Segment is a run of frames sharing the same smoothed chord
type Segment struct {
	Symbol     string      `json:"symbol"` // "N" for no chord
	Chord      *ChordLabel `json:"chord,omitempty"`
	Start      float64     `json:"start"` // seconds
	End        float64     `json:"end"`   // seconds
	Frames     int         `json:"frames"`
	Confidence float64     `json:"confidence"` // mean over the segment
}

// Timeline accumulates detections into contiguous segments
type Timeline struct {
	frameDuration float64
	segments      []Segment
	confSum       float64
}

// NewTimeline creates a timeline where frame k starts at k·frameDuration
func NewTimeline(frameDuration float64) *Timeline {
	return &Timeline{frameDuration: frameDuration}
}

// Add appends a detection. Detections must arrive in frame order.
func (t *Timeline) Add(d Detection) {
	start := float64(d.Index) * t.frameDuration
	end := start + t.frameDuration
	symbol := d.Symbol()

	if n := len(t.segments); n > 0 && t.segments[n-1].Symbol == symbol {
		seg := &t.segments[n-1]
		seg.End = end
		seg.Frames++
		t.confSum += d.Confidence
		seg.Confidence = t.confSum / float64(seg.Frames)
		return
	}

	var chord *ChordLabel
	if d.Chord != nil {
		c := *d.Chord
		chord = &c
	}
	t.segments = append(t.segments, Segment{
		Symbol:     symbol,
		Chord:      chord,
		Start:      start,
		End:        end,
		Frames:     1,
		Confidence: d.Confidence,
	})
	t.confSum = d.Confidence
}

// Segments returns the segments built so far
func (t *Timeline) Segments() []Segment {
	return append([]Segment(nil), t.segments...)
}
