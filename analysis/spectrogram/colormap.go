package spectrogram

import (
	"image/color"
	"math"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/RyanBlaney/sonido-mix/algorithms/spectral"
)

// LUTSize is the number of entries in the colour table
const LUTSize = 256

type colorStop struct {
	db      float64
	r, g, b uint8
}

// dark blue through purple and red to pale yellow
var colorStops = []colorStop{
	{-90, 0, 20, 40},
	{-60, 10, 40, 80},
	{-40, 46, 74, 122},
	{-25, 106, 76, 147},
	{-15, 201, 76, 76},
	{-8, 232, 138, 60},
	{-3, 245, 200, 66},
	{0, 255, 255, 192},
}

var (
	lutOnce sync.Once
	lut     [LUTSize]color.RGBA
)

// LUT returns the process-wide colour table, building it on first use
func LUT() *[LUTSize]color.RGBA {
	lutOnce.Do(buildLUT)
	return &lut
}

func buildLUT() {
	for i := range LUTSize {
		db := IndexToDB(i)

		seg := 0
		for seg < len(colorStops)-2 && db > colorStops[seg+1].db {
			seg++
		}
		lo, hi := colorStops[seg], colorStops[seg+1]

		t := (db - lo.db) / (hi.db - lo.db)
		t = max(0, min(1, t))

		c := stopColor(lo).BlendRgb(stopColor(hi), t)
		r, g, b := c.Clamped().RGB255()
		lut[i] = color.RGBA{R: r, G: g, B: b, A: 255}
	}
}

func stopColor(s colorStop) colorful.Color {
	return colorful.Color{R: float64(s.r) / 255, G: float64(s.g) / 255, B: float64(s.b) / 255}
}

// ColorIndex maps a dB value to a table index: round((db+90)/90·255)
// clamped to [0, 255]. NaN maps to 0.
func ColorIndex(db float64) int {
	if math.IsNaN(db) {
		return 0
	}
	idx := int(math.Round((db - spectral.FloorDB) / (spectral.CeilingDB - spectral.FloorDB) * (LUTSize - 1)))
	return max(0, min(LUTSize-1, idx))
}

// IndexToDB is the inverse of ColorIndex
func IndexToDB(i int) float64 {
	return spectral.FloorDB + float64(i)*(spectral.CeilingDB-spectral.FloorDB)/(LUTSize-1)
}

// ColorFor returns the table colour for a dB value
func ColorFor(db float64) color.RGBA {
	return LUT()[ColorIndex(db)]
}
