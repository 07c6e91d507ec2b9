// Package viz renders the pipeline's output bundle in the terminal.
//
// Three surfaces are provided:
//
//   - [GridView]: the m×m occupancy buffer as truecolor half-block cells,
//     downsampled to the viewport when the modulus is large
//   - [Camera] + [RenderCells]: a rotatable wireframe projection of the
//     volumetric cells, one colored cuboid per coordinate pair
//   - [LengthProfile]: an asciigraph chart of sequence lengths
//
// All functions are pure over the bundle; the interactive TUI and the CLI
// both compose them.
package viz
