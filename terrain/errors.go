package terrain

import "errors"

var (
	ErrGeometryDegenerate = errors.New("terrain: degenerate geometry")
	ErrMaskOutOfBounds    = errors.New("terrain: texel rect out of mask bounds")
)
