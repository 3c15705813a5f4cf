package geo

import (
	"context"
	"errors"
	"regexp"
	"strconv"
)

// ErrNoCoordinates is returned when no extraction pattern matches a URL.
var ErrNoCoordinates = errors.New("no coordinates found in URL")

// Coordinates is a WGS84 point.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Geocoder resolves a free-text place query to coordinates. Implemented by
// the HTTP client in geocoder.go; nil disables the place-URL fallback.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (*Coordinates, error)
}

var (
	// https://maps.google.com/maps/@21.608,39.140,15z
	atPattern = regexp.MustCompile(`@(-?\d+(?:\.\d+)?),(-?\d+(?:\.\d+)?)`)

	// Embed URLs carry coordinates as !3d<lat> plus !4d<lng> (place pins) or
	// !2d<lng> (map center).
	latPattern  = regexp.MustCompile(`!3d(-?\d+(?:\.\d+)?)`)
	lng4Pattern = regexp.MustCompile(`!4d(-?\d+(?:\.\d+)?)`)
	lng2Pattern = regexp.MustCompile(`!2d(-?\d+(?:\.\d+)?)`)

	// /maps/place/<name>/... — the name becomes a geocoding query.
	placePattern = regexp.MustCompile(`/maps/place/([^/@?]+)`)
)

// ExtractCoordinates pulls latitude/longitude out of a Google Maps link.
// It tries, in order: the @lat,lng form, the embed !3d/!4d (or !2d) form, and
// finally geocoding the place name for /maps/place/ URLs. Returns
// ErrNoCoordinates when nothing matches.
func ExtractCoordinates(ctx context.Context, url string, geocoder Geocoder) (*Coordinates, error) {
	if m := atPattern.FindStringSubmatch(url); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lng, lngErr := strconv.ParseFloat(m[2], 64)
		if latErr == nil && lngErr == nil && validLatLng(lat, lng) {
			return &Coordinates{Latitude: lat, Longitude: lng}, nil
		}
	}

	if m := latPattern.FindStringSubmatch(url); m != nil {
		lat, latErr := strconv.ParseFloat(m[1], 64)
		lngMatch := lng4Pattern.FindStringSubmatch(url)
		if lngMatch == nil {
			lngMatch = lng2Pattern.FindStringSubmatch(url)
		}
		if latErr == nil && lngMatch != nil {
			lng, lngErr := strconv.ParseFloat(lngMatch[1], 64)
			if lngErr == nil && validLatLng(lat, lng) {
				return &Coordinates{Latitude: lat, Longitude: lng}, nil
			}
		}
	}

	if geocoder != nil {
		if m := placePattern.FindStringSubmatch(url); m != nil {
			coords, err := geocoder.Geocode(ctx, decodePlaceName(m[1]))
			if err == nil && coords != nil {
				return coords, nil
			}
		}
	}

	return nil, ErrNoCoordinates
}

func validLatLng(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}

// decodePlaceName turns the path segment of a place URL into a query string
// ("King+Abdulaziz+Road" -> "King Abdulaziz Road").
func decodePlaceName(segment string) string {
	out := make([]byte, len(segment))
	for i := 0; i < len(segment); i++ {
		if segment[i] == '+' {
			out[i] = ' '
		} else {
			out[i] = segment[i]
		}
	}
	return string(out)
}
