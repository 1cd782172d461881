package models

import (
	"regexp"
	"strings"
)

// ColorOption is a named color with a light background variant for badges.
type ColorOption struct {
	Name  string
	Value string
	Light string
}

// Colors is the palette offered when creating a habit.
var Colors = []ColorOption{
	{Name: "Blue", Value: "#3B82F6", Light: "#DBEAFE"},
	{Name: "Purple", Value: "#8B5CF6", Light: "#EDE9FE"},
	{Name: "Green", Value: "#10B981", Light: "#D1FAE5"},
	{Name: "Orange", Value: "#F97316", Light: "#FED7AA"},
	{Name: "Pink", Value: "#EC4899", Light: "#FCE7F3"},
	{Name: "Red", Value: "#EF4444", Light: "#FEE2E2"},
	{Name: "Yellow", Value: "#F59E0B", Light: "#FEF3C7"},
	{Name: "Indigo", Value: "#6366F1", Light: "#E0E7FF"},
	{Name: "Teal", Value: "#14B8A6", Light: "#CCFBF1"},
	{Name: "Rose", Value: "#F43F5E", Light: "#FFE4E6"},
}

// Icons is the fixed set of icon identifiers a habit may use.
var Icons = []string{
	"Target", "Book", "Dumbbell", "Coffee", "Moon", "Sun", "Heart", "Smile",
	"Music", "Camera", "Palette", "Zap", "Leaf", "Mountain", "Waves", "Star",
	"Trophy", "Crown", "Flame", "Sparkles", "Gift", "Bell", "Clock", "Calendar",
	"Bike", "UtensilsCrossed", "Laptop", "Gamepad2", "Headphones", "Plane", "Car",
	"Home", "ShoppingBag", "Briefcase",
}

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsHexColor reports whether s is a #RRGGBB color.
func IsHexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// ResolveColor accepts either a palette name (case-insensitive) or a hex value
// and returns the hex value. ok is false when neither matches.
func ResolveColor(s string) (string, bool) {
	for _, c := range Colors {
		if strings.EqualFold(c.Name, s) {
			return c.Value, true
		}
	}
	if IsHexColor(s) {
		return strings.ToUpper(s), true
	}
	return "", false
}

// LightColor returns the light variant for a palette color, or the color itself.
func LightColor(value string) string {
	for _, c := range Colors {
		if strings.EqualFold(c.Value, value) {
			return c.Light
		}
	}
	return value
}

// ResolveIcon returns the canonical icon name matching s case-insensitively.
func ResolveIcon(s string) (string, bool) {
	for _, icon := range Icons {
		if strings.EqualFold(icon, s) {
			return icon, true
		}
	}
	return "", false
}
