// Package domain turns canonical rupture sources into synthetic earthquake
// scenario events.
//
// # Rupture Model
//
// A rupture is a sequence of quadrilateral patches. Corners run top-left,
// top-right, bottom-right, bottom-left:
//
//	p0 ------- p1     top edge (depth ztor)
//	|           |
//	p3 ------- p2     bottom edge
//
// Quads belong to groups (fault sections). A reversed group was digitized
// back to front, so [ExtractEdges] swaps its corners to keep every trace
// running in one direction. Boundary vertices shared by neighbouring quads
// are kept on purpose; the edges are only used for path-length
// parametrization.
//
// # Hypocenter Placement
//
// [LocateHypocenter] works in earth-centered Cartesian coordinates. Each edge
// is parametrized by its own normalized cumulative length, a point is found
// on each edge at the along-strike fraction, and the hypocenter is
// interpolated between them at the down-dip fraction. Fractions come from
// the directivity policy:
//
//	none               0.50 along strike, 0.6 down dip
//	first unilateral   0.05
//	bilateral          0.50
//	second unilateral  0.95
//
// # Event Identity
//
// Ids look like "sanandreas_m7p8_se~dir0". The root is the alphanumeric
// event name (or the sanitized external id) cut to 20 characters, the
// magnitude has its point replaced by "p", and the "~dirN" tag is present
// only when directivity is enabled. The event source code is the id without
// the tag. Directivity descriptions name the compass quadrant of the mean
// strike (see [MeanStrike]), or its opposite for the second unilateral
// realization.
//
// # Map Extent
//
// [ComputeExtent] pads the rupture by a magnitude-dependent distance, larger
// in the stable continental region where ground motions attenuate slowly.
package domain
