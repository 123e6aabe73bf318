// Package model provides the value types shared by every stage of structure
// reconstruction.
//
// # Geometry
//
// [Box] is a page-relative bounding box with a reading-order predicate:
//
//	a := model.NewBox(1, 72, 300, 100, 112)
//	b := model.NewBox(1, 72, 300, 120, 132)
//	a.PlacedBefore(b) // true, a is higher on the page
//
// # Styles
//
// [Style] combines a font name, a size and an [Align] tag. Styles support
// exact, alignment-insensitive and approximate equality, and a prominence
// ordering ([Compare]) that ranks larger, bolder styles first. The ordering
// drives heading candidate selection during hierarchy building.
//
// # Errors
//
// Broken pipeline preconditions are reported with [InvariantError] panics,
// recovered at the analysis boundary.
package model
