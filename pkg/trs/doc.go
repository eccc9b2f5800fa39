// Package trs provides the Township/Range/Section identifier used to key
// every plat, section and lot definition.
//
// A [TRS] is an immutable value. Its canonical string form is the compact
// lowercase notation used throughout the project and in lot-definition CSV
// files:
//
//	154n97w01   Township 154 North, Range 97 West, Section 1
//	12s58e04    Township 12 South, Range 58 East, Section 4
//	154n97w__   Township 154 North, Range 97 West, no section
//
// Two sentinels exist for tracts whose location could not be identified:
// [Undefined] ("___z___z__") and [Error] ("XXXzXXXzXX").
//
// # Ordering
//
// [Compare] orders identifiers the way a plat reads: north townships before
// south, higher north townships first (lower south townships first), west
// ranges before east, higher west ranges first, then ascending section.
// Sentinels sort last.
package trs
