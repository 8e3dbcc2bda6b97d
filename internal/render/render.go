// Package render turns trips and manifests into chat-displayable markdown
// text. It is pure string building: no I/O, safe for concurrent use.
package render

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/dsmirnov/campkit/backend/internal/domain"
)

// markdownSpecials are the characters chat markdown treats specially and
// therefore need escaping in user-supplied text.
const markdownSpecials = "_*[]()~`>#+-=|{}.!"

// EscapeMarkdown escapes chat-markdown special characters in text.
func EscapeMarkdown(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if strings.ContainsRune(markdownSpecials, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Bold wraps text in markdown bold markers, escaping the content.
func Bold(text string) string {
	return "*" + EscapeMarkdown(text) + "*"
}

// Manifest renders the computed gear and food totals under two bold headers,
// gear as "emoji name: qty pcs" lines and food as "emoji name: qty unit"
// lines, ready to send as a chat message.
func Manifest(tripName string, m domain.Manifest) string {
	var b strings.Builder

	b.WriteString(Bold(tripName))
	b.WriteString("\n\n")

	b.WriteString(Bold("Gear:"))
	b.WriteByte('\n')
	for _, g := range m.Gear {
		fmt.Fprintf(&b, "%s %s: %d pcs\n", g.Emoji, g.Name, g.Qty)
	}

	b.WriteByte('\n')
	b.WriteString(Bold("Food:"))
	b.WriteByte('\n')
	for _, p := range m.Products {
		fmt.Fprintf(&b, "%s %s: %s %s\n", p.Emoji, p.Name, formatQty(p.Qty), p.Unit)
	}

	return b.String()
}

// Trip renders the trip's parameter card: headcount, duration, active
// conditions, and the meal count.
func Trip(t domain.Trip) string {
	var b strings.Builder

	b.WriteString(Bold(t.Name))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "👥 People: %d\n", t.People)
	fmt.Fprintf(&b, "📅 Days: %d\n\n", t.Days)

	b.WriteString("🌦️ ")
	b.WriteString(Bold("Conditions:"))
	b.WriteByte('\n')
	if t.Conditions.Rain {
		b.WriteString("☔ Rain\n")
	}
	if t.Conditions.Swimming {
		b.WriteString("🏊 Swimming\n")
	}
	if t.Conditions.MinimizeWeight {
		b.WriteString("⚖️ Minimize weight\n")
	}
	fmt.Fprintf(&b, "%s Temperature: %s\n", temperatureEmoji(t.Conditions.Temperature), t.Conditions.Temperature)

	fmt.Fprintf(&b, "\n🍳 Meals: %d", len(t.Meals))

	return b.String()
}

// MealLine renders one meal slot for a meal-picker listing.
func MealLine(m domain.Meal) string {
	return fmt.Sprintf("Day %d %s %s %s", m.Day, timeOfDayEmoji(m.Time), m.Dish.Name, m.Dish.Emoji)
}

// formatQty prints a food quantity without trailing zeros: 0.6, 2, 0.25.
// Quantities are sums of per-meal contributions, so binary float error can
// leave artifacts like 0.30000000000000004; rounding to milligram precision
// before trimming keeps chat output clean.
func formatQty(q float64) string {
	q = math.Round(q*1000) / 1000
	return strconv.FormatFloat(q, 'f', -1, 64)
}

func temperatureEmoji(t domain.Temperature) string {
	switch t {
	case domain.TempCold:
		return "❄️"
	case domain.TempCool:
		return "🌡️"
	case domain.TempWarm:
		return "☀️"
	case domain.TempHot:
		return "🔥"
	}
	return "🌡️"
}

func timeOfDayEmoji(tod domain.TimeOfDay) string {
	switch tod {
	case domain.Breakfast:
		return "🍳"
	case domain.Lunch:
		return "🥘"
	case domain.Dinner:
		return "🍖"
	}
	return "🍽️"
}
