package weather

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	tests := []struct {
		keyword string
		want    Category
	}{
		{"Clear", CategoryClear},
		{"CLEAR", CategoryClear},
		{"Rain", CategoryRain},
		{"Drizzle", CategoryOther},
		{"Clouds", CategoryCloud},
		{"Snow", CategorySnow},
		{"Mist", CategoryOther},
		{"Thunderstorm", CategoryOther},
		{"", CategoryOther},
		// Precedence when several substrings match.
		{"snowy rain with clear spells", CategoryClear},
		{"cloud and rain", CategoryRain},
		{"Snow Clouds", CategoryCloud},
	}

	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, Categorize(tt.keyword))
		})
	}
}

func TestThemeFor(t *testing.T) {
	assert.Equal(t, ThemeSunny, ThemeFor(CategoryClear))
	assert.Equal(t, ThemeRainy, ThemeFor(CategoryRain))
	assert.Equal(t, ThemeCloudy, ThemeFor(CategoryCloud))
	assert.Equal(t, ThemeSnowy, ThemeFor(CategorySnow))
	assert.Equal(t, ThemeDefault, ThemeFor(CategoryOther))
	assert.Equal(t, ThemeDefault, ThemeFor(""))
}

func TestNormalize(t *testing.T) {
	r := Normalize(Observation{
		Humidity:    81,
		WindSpeed:   4.567,
		Temperature: 21.5,
		Name:        "Lisbon",
		IconCode:    "10d",
		Main:        "Rain",
		Description: "light rain",
	})

	assert.Equal(t, Reading{
		Humidity:    81,
		WindSpeed:   "4.57",
		Temperature: 22,
		Location:    "Lisbon",
		IconURL:     "https://openweathermap.org/img/wn/10d@4x.png",
		Description: "light rain",
		Category:    CategoryRain,
	}, r)
}

func TestNormalizeRounding(t *testing.T) {
	tests := []struct {
		temp     float64
		wind     float64
		wantTemp int
		wantWind string
	}{
		{0, 0, 0, "0.00"},
		{-0.4, 3, 0, "3.00"},
		{-2.6, 0.1, -3, "0.10"},
		{14.49, 12.345678, 14, "12.35"},
		{30.5, 7.5, 31, "7.50"},
	}

	for _, tt := range tests {
		r := Normalize(Observation{Temperature: tt.temp, WindSpeed: tt.wind})
		assert.Equal(t, tt.wantTemp, r.Temperature, "temperature for %v", tt.temp)
		assert.Equal(t, tt.wantWind, r.WindSpeed, "wind speed for %v", tt.wind)
	}
}

func TestLocationQuery(t *testing.T) {
	q := CoordinatesQuery(Coordinates{Lat: 40.7, Lon: -74})
	assert.True(t, q.IsCoordinates())
	assert.Equal(t, Coordinates{Lat: 40.7, Lon: -74}, q.Coordinates())
	assert.Equal(t, "coords(40.7,-74)", q.String())

	p := PlaceQuery("New York")
	assert.False(t, p.IsCoordinates())
	assert.Equal(t, "New York", p.PlaceName())
	assert.Equal(t, Coordinates{}, p.Coordinates())
	assert.Equal(t, `place("New York")`, p.String())
}
