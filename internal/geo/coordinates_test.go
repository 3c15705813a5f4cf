package geo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGeocoder struct {
	coords *Coordinates
	err    error
	query  string
}

func (s *stubGeocoder) Geocode(ctx context.Context, query string) (*Coordinates, error) {
	s.query = query
	return s.coords, s.err
}

func TestExtractCoordinates_AtForm(t *testing.T) {
	coords, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/@21.6082,39.1405,15z", nil)
	require.NoError(t, err)
	assert.InDelta(t, 21.6082, coords.Latitude, 1e-9)
	assert.InDelta(t, 39.1405, coords.Longitude, 1e-9)
}

func TestExtractCoordinates_AtForm_Negative(t *testing.T) {
	coords, err := ExtractCoordinates(context.Background(),
		"https://maps.google.com/maps/@-33.8688,151.2093,12z", nil)
	require.NoError(t, err)
	assert.InDelta(t, -33.8688, coords.Latitude, 1e-9)
	assert.InDelta(t, 151.2093, coords.Longitude, 1e-9)
}

func TestExtractCoordinates_EmbedForm_3d4d(t *testing.T) {
	coords, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/embed?pb=!1m18!3d21.6082!4d39.1405", nil)
	require.NoError(t, err)
	assert.InDelta(t, 21.6082, coords.Latitude, 1e-9)
	assert.InDelta(t, 39.1405, coords.Longitude, 1e-9)
}

func TestExtractCoordinates_EmbedForm_3d2d(t *testing.T) {
	// Without !4d the !2d value is the longitude.
	coords, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/embed?pb=!3d21.608!2d39.140", nil)
	require.NoError(t, err)
	assert.InDelta(t, 21.608, coords.Latitude, 1e-9)
	assert.InDelta(t, 39.140, coords.Longitude, 1e-9)
}

func TestExtractCoordinates_4dPreferredOver2d(t *testing.T) {
	coords, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/embed?pb=!2d39.0!3d21.608!4d39.140", nil)
	require.NoError(t, err)
	assert.InDelta(t, 39.140, coords.Longitude, 1e-9)
}

func TestExtractCoordinates_AtFormWinsOverEmbed(t *testing.T) {
	coords, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/place/X/@21.5,39.1,15z/data=!3d99.9!4d39.2", nil)
	require.NoError(t, err)
	assert.InDelta(t, 21.5, coords.Latitude, 1e-9)
}

func TestExtractCoordinates_PlaceFallback(t *testing.T) {
	stub := &stubGeocoder{coords: &Coordinates{Latitude: 21.6, Longitude: 39.1}}
	coords, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/place/King+Abdulaziz+Road", stub)
	require.NoError(t, err)
	assert.Equal(t, "King Abdulaziz Road", stub.query)
	assert.InDelta(t, 21.6, coords.Latitude, 1e-9)
}

func TestExtractCoordinates_PlaceFallback_GeocoderError(t *testing.T) {
	stub := &stubGeocoder{err: errors.New("quota exceeded")}
	_, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/place/Somewhere", stub)
	assert.ErrorIs(t, err, ErrNoCoordinates)
}

func TestExtractCoordinates_NilGeocoderSkipsPlace(t *testing.T) {
	_, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/place/Somewhere", nil)
	assert.ErrorIs(t, err, ErrNoCoordinates)
}

func TestExtractCoordinates_OutOfRangeRejected(t *testing.T) {
	_, err := ExtractCoordinates(context.Background(),
		"https://www.google.com/maps/@121.6,39.1,15z", nil)
	assert.ErrorIs(t, err, ErrNoCoordinates)
}

func TestExtractCoordinates_NoMatch(t *testing.T) {
	_, err := ExtractCoordinates(context.Background(), "https://example.com/about", nil)
	assert.ErrorIs(t, err, ErrNoCoordinates)
}
