// Package geodesy provides the coordinate primitives used by the rupture
// geometry engine.
//
// Two earth models are in play:
//
//   - WGS-84 ellipsoid for earth-centered Cartesian (ECEF) conversion. Rupture
//     edges are interpolated in ECEF so that fractional positions along a
//     multi-segment trace are straight-line well defined.
//   - A sphere of radius [EarthRadiusKm] for azimuths, forward projection of
//     fault bottoms, and the local orthographic map projection.
//
// Depths are kilometres, positive down. ECEF vectors are metres.
package geodesy
