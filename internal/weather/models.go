package weather

import (
	"fmt"
	"strconv"
)

// Category represents a coarse condition bucket derived from the provider's
// primary weather keyword.
type Category string

const (
	CategoryClear Category = "clear"
	CategoryRain  Category = "rain"
	CategoryCloud Category = "cloud"
	CategorySnow  Category = "snow"
	CategoryOther Category = "other"
)

// Theme is the background theme class shown behind the widget.
type Theme string

const (
	ThemeSunny   Theme = "sunny"
	ThemeRainy   Theme = "rainy"
	ThemeCloudy  Theme = "cloudy"
	ThemeSnowy   Theme = "snowy"
	ThemeDefault Theme = "default"
)

// ThemeFor maps a category to its background theme.
func ThemeFor(c Category) Theme {
	switch c {
	case CategoryClear:
		return ThemeSunny
	case CategoryRain:
		return ThemeRainy
	case CategoryCloud:
		return ThemeCloudy
	case CategorySnow:
		return ThemeSnowy
	default:
		return ThemeDefault
	}
}

// Coordinates is a geographic position in decimal degrees.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

func (c Coordinates) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

// LocationQuery identifies what to fetch: either coordinates or a place name.
// The zero value is an empty place query.
type LocationQuery struct {
	coords *Coordinates
	place  string
}

// CoordinatesQuery builds a query by geographic position.
func CoordinatesQuery(c Coordinates) LocationQuery {
	return LocationQuery{coords: &c}
}

// PlaceQuery builds a query by free-text place name.
func PlaceQuery(name string) LocationQuery {
	return LocationQuery{place: name}
}

func (q LocationQuery) IsCoordinates() bool {
	return q.coords != nil
}

// Coordinates returns the position of a coordinates query, or the zero value.
func (q LocationQuery) Coordinates() Coordinates {
	if q.coords == nil {
		return Coordinates{}
	}
	return *q.coords
}

func (q LocationQuery) PlaceName() string {
	return q.place
}

func (q LocationQuery) String() string {
	if q.coords != nil {
		return fmt.Sprintf("coords(%s)", q.coords)
	}
	return fmt.Sprintf("place(%q)", q.place)
}

// Reading is the normalized weather view shown to the user.
type Reading struct {
	Humidity    int      `json:"humidity"`
	WindSpeed   string   `json:"windSpeed"`
	Temperature int      `json:"temperature"`
	Location    string   `json:"location"`
	IconURL     string   `json:"icon"`
	Description string   `json:"description"`
	Category    Category `json:"category"`
}
