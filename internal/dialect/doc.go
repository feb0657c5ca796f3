// Package dialect converts raw rupture catalog documents into canonical
// [domain.Source] values.
//
// Supported dialects:
//
//	ucerf3   BSSC2014 / UCERF3 event sets: events[].sections[] with
//	         resampled traces, per-section dip, dip direction, width and
//	         reversal flag.
//	trace    generic JSON: events[] with a surface trace (lons, lats) and
//	         a single dip, width and top-of-rupture depth.
//	geojson  ShakeMap rupture files: a FeatureCollection whose first
//	         feature is a MultiPolygon of closed five-point quad rings.
//	point    events[] with a bare hypocenter and no rupture plane.
//
// A document may name its dialect in a top-level "format" field; otherwise
// it is recognised by shape. See [Detect].
package dialect
