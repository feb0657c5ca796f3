package domain

import "math"

// verticalFault is a two-segment, vertical, north-striking fault at 118W
// from 34.0N to 34.5N, 15 km wide.
func verticalFault() []Quad {
	const lon = -118.0
	segment := func(lat0, lat1 float64) Quad {
		return Quad{
			{Lon: lon, Lat: lat0, Depth: 0},
			{Lon: lon, Lat: lat1, Depth: 0},
			{Lon: lon, Lat: lat1, Depth: 15},
			{Lon: lon, Lat: lat0, Depth: 15},
		}
	}
	return []Quad{segment(34.0, 34.25), segment(34.25, 34.5)}
}

// eastWestFault runs from 120W to 119W along 36N.
func eastWestFault() []Quad {
	return []Quad{{
		{Lon: -120, Lat: 36, Depth: 1},
		{Lon: -119, Lat: 36, Depth: 1},
		{Lon: -119, Lat: 36, Depth: 12},
		{Lon: -120, Lat: 36, Depth: 12},
	}}
}

func float64Ptr(v float64) *float64 { return &v }

func nan() float64 { return math.NaN() }
