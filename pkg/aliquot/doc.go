// Package aliquot models aliquot divisions of a section as paths of quadrants.
//
// An aliquot string in "clean QQ" notation is read right to left, largest
// division last: "NENW" is the NE quarter of the NW quarter, i.e. the path
// root → NW → NE. Halves expand to the two quadrants they cover, so "S2N2"
// (the S/2 of the N/2) becomes the four quarter-quarters SWNW, SENW, SWNE
// and SENE.
//
// [Clean] normalises the common surveyor spellings (S/2, NE/4, N½, NE¼)
// into clean notation, and [Expand] turns a clean string into quadrant
// [Path] values bounded by a minimum and maximum depth. With the default
// [QQ] options every result is exactly a quarter-quarter: coarser divisions
// are expanded to all their quarter-quarters and finer ones are truncated,
// discarding the outermost (leftmost) divisions.
package aliquot
