package color

import "github.com/gogpu/edgeview/internal/cache"

// lutCacheSize bounds the number of distinct weightings kept by LUTFor.
const lutCacheSize = 8

var luts = cache.New[LumaWeights, *LumaLUT](lutCacheSize)

// LumaLUT holds the weighted contribution of every 8-bit value for each
// channel. Converting a pixel costs three lookups and two additions instead
// of three int-to-float conversions and three multiplications.
//
// A LumaLUT is 6KB and immutable after construction; share it freely.
type LumaLUT struct {
	r, g, b [256]float64
}

// NewLumaLUT builds the lookup tables for the given weights.
func NewLumaLUT(w LumaWeights) *LumaLUT {
	lut := &LumaLUT{}
	for i := 0; i < 256; i++ {
		v := float64(i)
		lut.r[i] = w.R * v
		lut.g[i] = w.G * v
		lut.b[i] = w.B * v
	}
	return lut
}

// LUTFor returns a shared lookup table for w, building it on first use.
// Non-finite weightings never compare equal to themselves; their tables are
// built fresh and not cached.
func LUTFor(w LumaWeights) *LumaLUT {
	if !w.IsFinite() {
		return NewLumaLUT(w)
	}
	return luts.GetOrCreate(w, func() *LumaLUT { return NewLumaLUT(w) })
}

// LUTCacheStats reports the counters of the table cache behind LUTFor.
func LUTCacheStats() cache.Stats {
	return luts.Stats()
}

// Intensity returns the weighted intensity of a pixel.
// The result matches LumaWeights.Apply up to floating-point rounding.
func (l *LumaLUT) Intensity(r, g, b uint8) float64 {
	return l.r[r] + l.g[g] + l.b[b]
}
