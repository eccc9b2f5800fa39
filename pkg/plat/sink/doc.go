// Package sink writes rendered plats to disk.
//
// Supported formats:
//
//   - PNG: lossless raster, the default
//   - TIFF: for GIS and print workflows (golang.org/x/image/tiff)
//   - PDF: the raster embedded in a single page (requires rsvg-convert)
//
// [Save] writes one file for a single plat. Several plats go to one file
// each, suffixed with their Twp/Rge, or into a single archive when the path
// ends in ".zip".
//
// PDF export requires librsvg to be installed:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
package sink
