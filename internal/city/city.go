// Package city holds the fixed set of cities the app can show prayer times for.
package city

import (
	"fmt"
	"strings"
)

// City is an entry in the fixed lookup. Name is the value sent to the API.
type City struct {
	Name    string
	Country string // ISO 3166 alpha-2 code
	labels  map[string]string
}

// Label returns the display label for a locale code, falling back to Name.
func (c City) Label(locale string) string {
	if l, ok := c.labels[locale]; ok {
		return l
	}
	return c.Name
}

// all is kept in selector order.
var all = []City{
	{Name: "Makkah", Country: "SA", labels: map[string]string{"en": "Makkah", "ar": "مكة المكرمة"}},
	{Name: "Algeria", Country: "DZ", labels: map[string]string{"en": "Algiers", "ar": "الجزائر"}},
	{Name: "Madina", Country: "SA", labels: map[string]string{"en": "Madinah", "ar": "المدينة المنورة"}},
}

// All returns the cities in selector order.
func All() []City {
	out := make([]City, len(all))
	copy(out, all)
	return out
}

// Default returns the city selected on startup.
func Default() City {
	return all[0]
}

// Lookup finds a city by name, case-insensitively.
func Lookup(name string) (City, error) {
	for _, c := range all {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return City{}, fmt.Errorf("unknown city %q; valid cities: %s", name, strings.Join(Names(), ", "))
}

// Names returns the lookup keys in selector order.
func Names() []string {
	names := make([]string, len(all))
	for i, c := range all {
		names[i] = c.Name
	}
	return names
}

// Index returns the selector position of the named city, or -1.
func Index(name string) int {
	for i, c := range all {
		if c.Name == name {
			return i
		}
	}
	return -1
}
