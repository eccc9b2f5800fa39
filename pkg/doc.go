// Package pkg provides the core libraries for trsplat, a renderer of PLSS
// land plats.
//
// # Overview
//
// trsplat turns township/range/section land descriptions into plats: a 6×6
// grid of sections with the described aliquots and lots filled in, a header
// naming the township, and a footer listing the tracts. The pkg directory is
// organized into three areas:
//
//  1. Domain - PLSS coordinates, aliquot parsing, tracts, lot definitions
//  2. Drawing - settings, canvases, the section/township grid, text, sinks
//  3. Orchestration - the load → render → encode pipeline and its cache
//
// # Architecture
//
// The typical data flow:
//
//	tracts (YAML/JSON, compact strings) + lot definitions (CSV)
//	         ↓
//	    [tract], [lots] (parse tracts, resolve lots to aliquots)
//	         ↓
//	    [plat] (Document, Group, MegaPlat on a [plat/grid] township)
//	         ↓
//	    [plat/sink] (PNG, TIFF, PDF, ZIP)
//
// # Quick Start
//
//	import (
//	    "github.com/matzehuels/trsplat/pkg/plat"
//	    "github.com/matzehuels/trsplat/pkg/plat/sink"
//	    "github.com/matzehuels/trsplat/pkg/tract"
//	)
//
//	t, _ := tract.ParseCompact("154n97w01: L1, L2, S2N2")
//	doc, _ := plat.NewDocument(t.TRS)
//	_ = doc.Add(plat.TractItem{Tract: t})
//	report := doc.Execute()
//	img, _ := doc.Image()
//	_ = sink.EncodePNG(w, img)
//
// # Main Packages
//
// [trs] - Township/range/section coordinates: parsing, formatting, ordering.
//
// [aliquot] - Aliquot descriptions ("NE4", "S2N2", "NENE") expanded to the
// quarter-quarters they cover.
//
// [tract] - A tract: one section's aliquots and lots. Reads YAML and JSON
// tract lists and the compact one-line form.
//
// [lots] - Lot definitions kept in a three-level ordered store (twp/rge →
// section → lot), standard-township defaults, and CSV import/export.
//
// [plat] - Plattable inputs, single-township documents, groups of documents,
// and the megaplat spanning several townships. Rendering reports which tracts
// could not be drawn.
//
// [plat/settings] - Dimensions, colors, fonts and margins, with named presets
// and TOML files.
//
// [plat/canvas] - Drawing surfaces: a raster canvas and a recording surface
// for tests.
//
// [plat/grid] - The township and section grids and the aliquot tree that
// decides which squares to fill.
//
// [plat/text] - Headers and the tract-listing footer.
//
// [plat/sink] - Image encoders and writers for single files and ZIP archives.
//
// [pipeline] - The load → render → encode pipeline used by the CLI, with
// content-addressed caching through [cache].
//
// [observability] - Hooks for metrics on pipeline stages and cache lookups.
//
// [errors] - Coded errors shared across packages.
package pkg
