package renderer

import "image"

// Tile is a rectangular region of the image rendered by one worker.
// Each tile carries its own deterministic seed so results do not depend
// on which worker picks it up or in what order.
type Tile struct {
	Bounds image.Rectangle
	Seed   int64
}

// NewTileGrid partitions a width×height image into square tiles of the
// given edge length, in row-major order. Edge tiles are clipped to the
// image bounds. Seeds derive from the base seed and the tile index.
func NewTileGrid(width, height, tileSize int, baseSeed int64) []Tile {
	if tileSize <= 0 {
		tileSize = 64
	}

	var tiles []Tile
	index := 0
	for y := 0; y < height; y += tileSize {
		for x := 0; x < width; x += tileSize {
			bounds := image.Rect(x, y, min(x+tileSize, width), min(y+tileSize, height))
			tiles = append(tiles, Tile{
				Bounds: bounds,
				Seed:   baseSeed + int64(index),
			})
			index++
		}
	}
	return tiles
}
