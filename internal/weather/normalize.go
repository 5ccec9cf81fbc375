package weather

import (
	"fmt"
	"math"
	"strings"
)

// IconURLTemplate is the provider's icon CDN; @4x is the largest size.
const IconURLTemplate = "https://openweathermap.org/img/wn/%s@4x.png"

// Categorize buckets a provider keyword. Matching is case-insensitive and by
// substring, checked in the order clear, rain, cloud, snow.
func Categorize(keyword string) Category {
	k := strings.ToLower(keyword)
	switch {
	case strings.Contains(k, "clear"):
		return CategoryClear
	case strings.Contains(k, "rain"):
		return CategoryRain
	case strings.Contains(k, "cloud"):
		return CategoryCloud
	case strings.Contains(k, "snow"):
		return CategorySnow
	default:
		return CategoryOther
	}
}

// Normalize converts a provider observation into a Reading.
func Normalize(o Observation) Reading {
	return Reading{
		Humidity:    int(math.Round(o.Humidity)),
		WindSpeed:   fmt.Sprintf("%.2f", o.WindSpeed),
		Temperature: int(math.Round(o.Temperature)),
		Location:    o.Name,
		IconURL:     fmt.Sprintf(IconURLTemplate, o.IconCode),
		Description: o.Description,
		Category:    Categorize(o.Main),
	}
}
