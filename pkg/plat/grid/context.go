// Package grid draws townships: the 6×6 section layout, each section's
// subdivision lines, and the aliquot trees that record which parts of a
// section are claimed.
//
// Nothing in this package stores where it is drawn. Settings and the
// drawing surface travel in a [Context] passed to each drawing call.
package grid

import (
	"github.com/matzehuels/trsplat/pkg/plat/canvas"
	"github.com/matzehuels/trsplat/pkg/plat/settings"
)

// Context carries what drawing calls need.
type Context struct {
	Settings *settings.Settings
	Surface  canvas.Surface
}
