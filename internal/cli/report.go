package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/RyanBlaney/sonido-mix/analysis"
	"github.com/RyanBlaney/sonido-mix/analysis/recommend"
)

const barWidth = 24

func row(sb *strings.Builder, key, format string, args ...any) {
	sb.WriteString(KeyStyle.Render(key))
	sb.WriteString(ValueStyle.Render(fmt.Sprintf(format, args...)))
	sb.WriteString("\n")
}

func section(sb *strings.Builder, title string) {
	sb.WriteString(SectionStyle.Render(title))
	sb.WriteString("\n")
}

// energyBar draws a horizontal bar for a 0..1 energy
func energyBar(energy float64) string {
	n := int(energy*barWidth + 0.5)
	n = min(max(n, 0), barWidth)
	return lipgloss.NewStyle().Foreground(primaryColor).Render(strings.Repeat("█", n)) +
		lipgloss.NewStyle().Foreground(mutedColor).Render(strings.Repeat("░", barWidth-n))
}

// WriteReport prints a human readable summary of r
func WriteReport(w io.Writer, name string, r *analysis.Result) error {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(name))
	sb.WriteString("\n")
	row(&sb, "Format", "%d Hz, %d ch, %s", r.Input.SampleRate, r.Input.Channels, r.Input.Duration.Round(time.Millisecond))
	row(&sb, "Target", "%s (%.0f LUFS, %.0f dBTP)", r.Target.Name, r.Target.LUFS, r.Target.TruePeakCeiling)

	l := r.Loudness
	section(&sb, "Loudness")
	row(&sb, "Integrated", "%.1f LUFS", l.IntegratedLUFS)
	row(&sb, "Peak", "%.1f dBFS", l.PeakDB)
	row(&sb, "RMS", "%.1f dBFS", l.RMSDB)
	row(&sb, "Crest factor", "%.1f dB", l.CrestFactor)
	row(&sb, "Dynamic range", "%.1f dB", l.DynamicRange)

	s := r.Stereo
	section(&sb, "Stereo")
	if s.IsMono && s.Channels == 1 {
		row(&sb, "Image", "mono")
	} else {
		row(&sb, "Correlation", "%.2f", s.Correlation)
		row(&sb, "Width", "%.0f%%", s.Width)
		row(&sb, "Balance", "%+.1f dB", s.BalanceDB)
	}

	section(&sb, "Frequency profile")
	for _, b := range r.Profile.Bands {
		sb.WriteString(KeyStyle.Render(b.Name))
		sb.WriteString(energyBar(b.Energy))
		sb.WriteString(fmt.Sprintf(" %.2f\n", b.Energy))
	}
	row(&sb, "Tilt", "%+.1f dB", r.Profile.Tilt)
	row(&sb, "Centroid", "%.0f Hz", r.Profile.Centroid)
	row(&sb, "Rolloff (85%)", "%.0f Hz", r.Profile.Rolloff)

	if len(r.ChordTimeline) > 0 {
		section(&sb, "Chords")
		var symbols []string
		for _, seg := range r.ChordTimeline {
			if seg.Chord == nil || seg.End-seg.Start < 0.25 {
				continue
			}
			symbols = append(symbols, fmt.Sprintf("%s@%.1fs", seg.Symbol, seg.Start))
		}
		if len(symbols) == 0 {
			symbols = []string{"none"}
		}
		sb.WriteString("  " + strings.Join(symbols, " "))
		sb.WriteString("\n")
	}

	q := r.Quality
	section(&sb, "Quality")
	sb.WriteString(GradeStyle.Render(fmt.Sprintf("%s  %.0f/100", q.Grade, q.Score)))
	sb.WriteString("\n")
	for _, issue := range q.Issues {
		sb.WriteString(fmt.Sprintf("  - [%s] %s\n", issue.Severity, issue.Message))
	}

	section(&sb, "Recommendations")
	writeItems(&sb, r.Recommendations)

	_, err := io.WriteString(w, sb.String())
	return err
}

func writeItems(sb *strings.Builder, items []recommend.Item) {
	for _, item := range items {
		style := StatusStyle(item.Status)
		sb.WriteString("  ")
		sb.WriteString(style.Render(statusIcons[item.Status] + " " + item.Message))
		sb.WriteString("\n")
	}
}

// WriteComparison prints the A/B difference of two analyses
func WriteComparison(w io.Writer, nameA, nameB string, c *analysis.Comparison) error {
	var sb strings.Builder

	sb.WriteString(TitleStyle.Render(fmt.Sprintf("A: %s  vs  B: %s", nameA, nameB)))
	sb.WriteString("\n")

	section(&sb, "Deltas (A - B)")
	row(&sb, "Loudness", "%+.1f LU", c.LUFSDelta)
	row(&sb, "Peak", "%+.1f dB", c.PeakDelta)
	row(&sb, "RMS", "%+.1f dB", c.RMSDelta)
	row(&sb, "Dynamic range", "%+.1f dB", c.DynamicRangeDelta)
	row(&sb, "Crest factor", "%+.1f dB", c.CrestDelta)
	row(&sb, "Correlation", "%+.2f", c.CorrelationDelta)
	row(&sb, "Width", "%+.0f%%", c.WidthDelta)
	row(&sb, "Balance", "%+.1f dB", c.BalanceDelta)
	row(&sb, "Tilt", "%+.1f dB", c.TiltDelta)
	row(&sb, "Centroid", "%+.0f Hz", c.CentroidDelta)
	row(&sb, "Score", "%+.0f", c.ScoreDelta)

	if len(c.Bands) > 0 {
		section(&sb, "Band energy (A - B)")
		for _, b := range c.Bands {
			row(&sb, b.Name, "%+.3f", b.Delta)
		}
	}

	if len(c.Added) > 0 {
		section(&sb, "Only in B")
		writeItems(&sb, c.Added)
	}
	if len(c.Removed) > 0 {
		section(&sb, "Only in A")
		writeItems(&sb, c.Removed)
	}

	verdict := "Both score the same"
	switch c.Better() {
	case "A":
		verdict = nameA + " scores higher"
	case "B":
		verdict = nameB + " scores higher"
	}
	sb.WriteString("\n")
	sb.WriteString(GradeStyle.Render(verdict))
	sb.WriteString("\n")

	_, err := io.WriteString(w, sb.String())
	return err
}
