package cli

import (
	"io"
	"math"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// progressSteps is the bar resolution; fractions are mapped onto it
const progressSteps = 1000

// Progress is a container of analysis progress bars
type Progress struct {
	container *mpb.Progress
}

// NewProgress creates a container rendering to w
func NewProgress(w io.Writer) *Progress {
	return &Progress{container: mpb.New(mpb.WithOutput(w), mpb.WithWidth(48))}
}

// AddBar adds a bar labelled name
func (p *Progress) AddBar(name string) *ProgressBar {
	bar := p.container.AddBar(progressSteps,
		mpb.PrependDecorators(
			decor.Name(name, decor.WCSyncSpaceR),
		),
		mpb.AppendDecorators(
			decor.OnAbort(
				decor.OnComplete(decor.Percentage(decor.WCSyncSpace), "done"),
				"stopped",
			),
		),
	)
	return &ProgressBar{bar: bar}
}

// Wait blocks until every bar is finished
func (p *Progress) Wait() {
	p.container.Wait()
}

// ProgressBar tracks one analysis
type ProgressBar struct {
	bar *mpb.Bar
}

// Update moves the bar to fraction (0..1). It matches analysis.ProgressFunc.
func (pb *ProgressBar) Update(fraction float64) {
	if math.IsNaN(fraction) {
		return
	}
	fraction = min(max(fraction, 0), 1)
	pb.bar.SetCurrent(int64(math.Round(fraction * progressSteps)))
}

// Finish stops a bar that did not reach 100%
func (pb *ProgressBar) Finish() {
	pb.bar.Abort(false)
}
