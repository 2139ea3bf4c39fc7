// Package badge renders unread counters for the dashboard header.
package badge

import "strconv"

// Ceiling is the largest count rendered verbatim.
const Ceiling = 99

// Label returns the text of a counter badge. A zero count has no badge at
// all, which is different from a badge reading "0".
func Label(count int) (string, bool) {
	if count <= 0 {
		return "", false
	}
	if count > Ceiling {
		return strconv.Itoa(Ceiling) + "+", true
	}
	return strconv.Itoa(count), true
}

// Badge is the JSON form of a counter. Count is never capped.
type Badge struct {
	Count   int    `json:"count"`
	Label   string `json:"label,omitempty"`
	Visible bool   `json:"visible"`
}

func View(count int) Badge {
	label, visible := Label(count)
	return Badge{Count: count, Label: label, Visible: visible}
}
