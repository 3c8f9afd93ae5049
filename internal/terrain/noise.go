package terrain

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/ojrac/opensimplex-go"

	"github.com/void-scape/voxl/internal/config"
)

// Layer is one octave of the height field. Layer order is kept for the UI;
// summation does not depend on it.
type Layer struct {
	Scale  float32
	Weight float32
}

// LayersFromConfig converts configured layers preserving their order.
func LayersFromConfig(layers []config.LayerConfig) []Layer {
	out := make([]Layer, len(layers))
	for i, l := range layers {
		out[i] = Layer{Scale: l.Scale, Weight: l.Weight}
	}
	return out
}

// Primitive evaluates one noise octave at p. Gradient stays within [-6, 6] and
// mostly near [-1, 1]; Simplex stays within [-1, 1].
type Primitive func(p mgl32.Vec2) float32

// Sample sums every layer of the gradient primitive at p.
func Sample(p mgl32.Vec2, layers []Layer) float32 {
	return SampleWith(Gradient, p, layers)
}

// SampleWith sums every layer of prim at p. Each octave is remapped with
// v*0.5+0.5 before weighting.
func SampleWith(prim Primitive, p mgl32.Vec2, layers []Layer) float32 {
	var total float32
	for _, layer := range layers {
		total += (prim(p.Mul(layer.Scale))*0.5 + 0.5) * layer.Weight
	}
	return total
}

// SurfaceHeight rounds a sampled total to a voxel row and applies the baseline shift.
func SurfaceHeight(total, baseline float32) float32 {
	return float32(math.Round(float64(total))) - baseline
}

var (
	unitX  = mgl32.Vec2{1, 0}
	unitY  = mgl32.Vec2{0, 1}
	unitXY = mgl32.Vec2{1, 1}
)

// Gradient is lattice gradient noise: every cell corner gets a pseudo random
// vector from a sine hash, dotted with the offset to the sample point and
// blended with a smoothstep weight. The hash is only good enough to look random.
func Gradient(p mgl32.Vec2) float32 {
	i := mgl32.Vec2{floor(p[0]), floor(p[1])}
	f := p.Sub(i)
	u := mgl32.Vec2{smooth(f[0]), smooth(f[1])}

	bottom := lerp(corner(i).Dot(f), corner(i.Add(unitX)).Dot(f.Sub(unitX)), u[0])
	top := lerp(corner(i.Add(unitY)).Dot(f.Sub(unitY)), corner(i.Add(unitXY)).Dot(f.Sub(unitXY)), u[0])
	return lerp(bottom, top, u[1])
}

// corner hashes a lattice point to its gradient vector. The hash amplifies
// rounding error, so every product is rounded explicitly to keep the result
// independent of fused multiply-add.
func corner(i mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{
		sineHash(float32(i[0]*127.1) + float32(i[1]*311.7)),
		sineHash(float32(i[0]*269.5) + float32(i[1]*183.3)),
	}
}

// sineHash keeps the sign of the scaled sine in its fractional part, so
// results fall in (-3, 1).
func sineHash(v float32) float32 {
	s := float32(math.Sin(float64(v))) * 43758.547
	frac := s - float32(math.Trunc(float64(s)))
	return -1 + 2*frac
}

// Simplex returns a seeded OpenSimplex primitive.
func Simplex(seed int64) Primitive {
	noise := opensimplex.New(seed)
	return func(p mgl32.Vec2) float32 {
		return float32(noise.Eval2(float64(p[0]), float64(p[1])))
	}
}

// PrimitiveByName resolves the configured primitive. An empty name selects Gradient.
func PrimitiveByName(name string, seed int64) (Primitive, error) {
	switch name {
	case "", "gradient":
		return Gradient, nil
	case "simplex":
		return Simplex(seed), nil
	default:
		return nil, fmt.Errorf("unknown noise primitive %q", name)
	}
}

func smooth(t float32) float32 {
	return t * t * (3 - 2*t)
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}

func floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}
