package tonal

// SmootherParams tunes the hysteresis of the chord smoother
type SmootherParams struct {
	Margin            float64 `json:"margin" toml:"margin"`                           // rival must beat the locked confidence by this much
	MinFrames         int     `json:"min_frames" toml:"min_frames"`                   // consecutive winning frames needed to switch
	MinLockConfidence float64 `json:"min_lock_confidence" toml:"min_lock_confidence"` // first lock threshold
	Retain            float64 `json:"retain" toml:"retain"`                           // weight of the previous confidence
}

// DefaultSmootherParams returns the standard hysteresis settings
func DefaultSmootherParams() SmootherParams {
	return SmootherParams{
		Margin:            0.15,
		MinFrames:         3,
		MinLockConfidence: 0.3,
		Retain:            0.7,
	}
}

type lockedChord struct {
	chord      ChordLabel
	confidence float64
	lastUpdate int
}

type candidateChord struct {
	chord          ChordLabel
	bestConfidence float64
	frames         int
}

// SmoothedChord is the smoother output for one frame
type SmoothedChord struct {
	Chord      *ChordLabel `json:"chord,omitempty"`
	Confidence float64     `json:"confidence"`
	Stable     bool        `json:"stable"`
}

// Smoother is a hysteretic state machine over raw per-frame detections.
// It holds an optional locked chord and an optional rival candidate; the
// rival replaces the lock only after beating it by Margin for MinFrames
// frames. Not safe for concurrent use.
type Smoother struct {
	params    SmootherParams
	locked    *lockedChord
	candidate *candidateChord
}

// NewSmoother creates an empty smoother
func NewSmoother(params SmootherParams) *Smoother {
	return &Smoother{params: params}
}

// Update advances the state with this frame's raw detection. lockedFit
// scores the currently locked chord against this frame; the locked
// confidence tracks that fit, so a lock that no longer matches the
// music decays and can be overtaken.
func (s *Smoother) Update(frame int, detected ChordLabel, detectedConf float64, lockedFit func(ChordLabel) float64) SmoothedChord {
	if s.locked == nil {
		if detectedConf > s.params.MinLockConfidence {
			s.locked = &lockedChord{chord: detected, confidence: detectedConf, lastUpdate: frame}
		}
		return s.Current()
	}

	if detected == s.locked.chord {
		s.decay(detectedConf)
		s.locked.lastUpdate = frame
		s.candidate = nil
		return s.Current()
	}

	fit := detectedConf
	if lockedFit != nil {
		fit = lockedFit(s.locked.chord)
	}
	s.decay(fit)

	if detectedConf > s.locked.confidence+s.params.Margin {
		if s.candidate != nil && s.candidate.chord == detected {
			s.candidate.frames++
			s.candidate.bestConfidence = max(s.candidate.bestConfidence, detectedConf)
		} else {
			s.candidate = &candidateChord{chord: detected, bestConfidence: detectedConf, frames: 1}
		}

		if s.candidate.frames >= s.params.MinFrames {
			s.locked = &lockedChord{
				chord:      s.candidate.chord,
				confidence: s.candidate.bestConfidence,
				lastUpdate: frame,
			}
			s.candidate = nil
		}
		return s.Current()
	}

	if s.candidate != nil {
		s.candidate.frames--
		if s.candidate.frames <= 0 {
			s.candidate = nil
		}
	}
	return s.Current()
}

func (s *Smoother) decay(fit float64) {
	s.locked.confidence = s.params.Retain*s.locked.confidence + (1-s.params.Retain)*fit
}

// Current returns the state without advancing it
func (s *Smoother) Current() SmoothedChord {
	out := SmoothedChord{Stable: s.candidate == nil}
	if s.locked != nil {
		chord := s.locked.chord
		out.Chord = &chord
		out.Confidence = s.locked.confidence
	}
	return out
}

// Locked returns the locked chord, if any
func (s *Smoother) Locked() (ChordLabel, bool) {
	if s.locked == nil {
		return ChordLabel{}, false
	}
	return s.locked.chord, true
}

// LastUpdate returns the frame the locked chord was last confirmed, or -1
func (s *Smoother) LastUpdate() int {
	if s.locked == nil {
		return -1
	}
	return s.locked.lastUpdate
}

// Reset clears all state
func (s *Smoother) Reset() {
	s.locked = nil
	s.candidate = nil
}
