// Package geo provides great-circle distance helpers for article ranking.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// EarthRadiusKm is the mean Earth radius used for every distance calculation.
const EarthRadiusKm = 6371.0

// ErrInvalidCoordinates is returned when a latitude or longitude is out of range.
var ErrInvalidCoordinates = errors.New("latitude must be in [-90, 90] and longitude in [-180, 180]")

// Point is a latitude/longitude pair in degrees.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Validate checks that the point lies on the globe.
func (p Point) Validate() error {
	if math.IsNaN(p.Latitude) || math.IsNaN(p.Longitude) {
		return ErrInvalidCoordinates
	}
	if p.Latitude < -90 || p.Latitude > 90 {
		return ErrInvalidCoordinates
	}
	if p.Longitude < -180 || p.Longitude > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

// Haversine returns the great-circle distance between a and b in kilometres.
func Haversine(a, b Point) float64 {
	lat1, lat2 := radians(a.Latitude), radians(b.Latitude)
	dLat := lat2 - lat1
	dLon := radians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	// rounding can push h slightly above 1 for antipodal points
	h = math.Min(1, math.Max(0, h))

	return 2 * EarthRadiusKm * math.Asin(math.Sqrt(h))
}

// HaversineSQL returns a PostgreSQL expression computing the same distance
// in kilometres between the columns latCol/lonCol and the reference point
// bound to the positional parameters $latParam and $lonParam.
func HaversineSQL(latCol, lonCol string, latParam, lonParam int) string {
	return fmt.Sprintf(
		"(2 * %[5]g * asin(sqrt(least(1.0, greatest(0.0, "+
			"power(sin(radians(%[1]s - $%[3]d::float8) / 2), 2) + "+
			"cos(radians($%[3]d::float8)) * cos(radians(%[1]s)) * "+
			"power(sin(radians(%[2]s - $%[4]d::float8) / 2), 2))))))",
		latCol, lonCol, latParam, lonParam, EarthRadiusKm,
	)
}
