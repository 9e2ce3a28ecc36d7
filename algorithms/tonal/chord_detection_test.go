package tonal

import (
	"math"
	"testing"
)

func TestTemplateBank(t *testing.T) {
	if got := len(ChordQualities()); got != 25 {
		t.Fatalf("qualities = %d, want 25", got)
	}

	tests := []struct {
		label ChordLabel
		want  string
		tones int
	}{
		{ChordLabel{Root: 0, Quality: ChordMajor}, "C", 3},
		{ChordLabel{Root: 9, Quality: ChordMinor}, "Am", 3},
		{ChordLabel{Root: 6, Quality: ChordHalfDim7}, "F#m7b5", 4},
		{ChordLabel{Root: 7, Quality: ChordDom13}, "G13", 6},
		{ChordLabel{Root: 2, Quality: ChordPowerChord}, "D5", 2},
		{ChordLabel{Root: 10, Quality: ChordMinMaj7}, "A#m(maj7)", 4},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.label.Symbol(); got != tt.want {
				t.Errorf("Symbol() = %q, want %q", got, tt.want)
			}
			if got := Template(tt.label.Quality).NumTones; got != tt.tones {
				t.Errorf("NumTones = %d, want %d", got, tt.tones)
			}
		})
	}
}

func TestChordQualityText(t *testing.T) {
	for _, q := range ChordQualities() {
		text, err := q.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%d): %v", q, err)
		}
		var back ChordQuality
		if err := back.UnmarshalText(text); err != nil || back != q {
			t.Errorf("round trip of %q gave %v, %v", text, back, err)
		}
	}

	if _, err := ParseChordQuality("mystery"); err == nil {
		t.Error("expected error for unknown quality")
	}
}

func TestBestChord(t *testing.T) {
	tests := []struct {
		name  string
		pcs   []int
		bass  int
		want  ChordLabel
		score float64
	}{
		{"C major", []int{0, 4, 7}, NoBass, ChordLabel{0, ChordMajor}, 1},
		{"A minor", []int{9, 0, 4}, NoBass, ChordLabel{9, ChordMinor}, 1},
		{"G7", []int{7, 11, 2, 5}, NoBass, ChordLabel{7, ChordDom7}, 1},
		{"B dim", []int{11, 2, 5}, NoBass, ChordLabel{11, ChordDiminished}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, score := BestChord(chromaOf(tt.pcs...), tt.bass)
			if got != tt.want {
				t.Errorf("BestChord() = %v, want %v", got, tt.want)
			}
			if math.Abs(score-tt.score) > 1e-9 {
				t.Errorf("score = %v, want %v", score, tt.score)
			}
		})
	}
}

func TestBestChordSilentKeepsFirstCandidate(t *testing.T) {
	got, score := BestChord(chromaOf(), NoBass)
	if got != (ChordLabel{Root: 0, Quality: ChordMajor}) || score != 0 {
		t.Errorf("BestChord(silence) = %v, %v", got, score)
	}
}

func TestScoreTemplateBassBonus(t *testing.T) {
	c := chromaOf(0, 4, 7)
	tmpl := Template(ChordMajor)

	without := ScoreTemplate(c, tmpl, 0, NoBass)
	with := ScoreTemplate(c, tmpl, 0, 0)
	if math.Abs(with-without-0.2) > 1e-12 {
		t.Errorf("bass bonus = %v, want 0.2", with-without)
	}
	if other := ScoreTemplate(c, tmpl, 0, 4); other != without {
		t.Errorf("bass on a non-root gave a bonus: %v vs %v", other, without)
	}
}

func TestScoreTemplatePenalty(t *testing.T) {
	c := chromaOf(0, 4, 7)
	c[2] = 1 // D is a non-chord tone of C major

	got := ScoreTemplate(c, Template(ChordMajor), 0, NoBass)
	want := 1 - 0.3*0.5
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("score = %v, want %v", got, want)
	}
}

func TestScoreLabelClamps(t *testing.T) {
	c := chromaOf(0, 4, 7)
	if got := ScoreLabel(c, ChordLabel{0, ChordMajor}, 0); got != 1 {
		t.Errorf("bass-boosted score = %v, want clamped 1", got)
	}
	if got := ScoreLabel(chromaOf(1, 2, 3, 5, 6, 8, 10, 11), ChordLabel{0, ChordPowerChord}, NoBass); got != 0 {
		t.Errorf("negative score = %v, want clamped 0", got)
	}
}
