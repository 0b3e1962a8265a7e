package colony

import (
	"github.com/ojrac/opensimplex-go"
)

// noiseGenerator wraps OpenSimplex noise with seed support, grounded on the
// teacher's worldgen.NoiseGenerator: same Eval2D normalization and
// Octave2D fractal combination, reused here to scatter resource nodes
// across the colony grid's floor instead of biome terrain.
type noiseGenerator struct {
	noise opensimplex.Noise
	seed  int64
}

func newNoiseGenerator(seed int64) *noiseGenerator {
	return &noiseGenerator{noise: opensimplex.New(seed), seed: seed}
}

func (n *noiseGenerator) eval2D(x, y float64) float64 {
	return (n.noise.Eval2(x, y) + 1) / 2
}

func (n *noiseGenerator) octave2D(x, y float64, octaves int, frequency, persistence float64) float64 {
	var total, maxValue float64
	amplitude := 1.0
	freq := frequency
	for i := 0; i < octaves; i++ {
		total += n.eval2D(x*freq, y*freq) * amplitude
		maxValue += amplitude
		amplitude *= persistence
		freq *= 2
	}
	return total / maxValue
}

// nodeKindByThreshold orders the node kinds a ground-level generation pass
// can place, picked by the noise value falling in a kind's band.
type nodeKindByThreshold struct {
	kind      string
	threshold float64
}

var groundNodeBands = []nodeKindByThreshold{
	{kind: "mineral_vein", threshold: 0.82},
	{kind: "wiring_cache", threshold: 0.70},
	{kind: "scrap_heap", threshold: 0.55},
	{kind: "synth_crop", threshold: 0.40},
}

// GenerateGroundLevel lays a walkable floor across z=0 and scatters
// resource nodes by fractal noise, the colony-sim analogue of the
// teacher's enhanced_generator.go biome-threshold terrain pass. Deeper
// z-levels are left as TileEmpty for colonists to construct into.
func (c *Colony) GenerateGroundLevel(seed int64) {
	gen := newNoiseGenerator(seed)
	w, h := c.Grid.Width(), c.Grid.Height()

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pos := Position{X: x, Y: y, Z: 0}
			c.Grid.SetTile(pos, TileFloor)

			v := gen.octave2D(float64(x), float64(y), 4, 0.05, 0.5)
			for _, band := range groundNodeBands {
				if v >= band.threshold {
					c.Resources.SpawnNode(pos, band.kind)
					break
				}
			}
		}
	}
}
