package life

import "life-grid/pkg/core"

// RandomGrid fills a board of dimensions d where each cell is alive with
// probability density. The same seed always yields the same board.
func RandomGrid(d Dimensions, seed int64, density float64) Grid {
	g := EmptyGrid(d.Rows, d.Cols)
	core.NewRNG(seed).FillDensity(g.cells, density)
	return g
}

// NoiseGrid seeds a board from a Perlin noise field: cells whose noise value
// exceeds threshold are alive. Noise boards form clustered blobs rather than
// the uniform speckle of RandomGrid.
func NoiseGrid(d Dimensions, seed int64, threshold float64) Grid {
	g := EmptyGrid(d.Rows, d.Cols)
	core.NewNoise(seed).FillThreshold(g.cells, g.cols, threshold)
	return g
}
