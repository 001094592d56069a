package docs

import (
	"fmt"
	"strings"
)

// Axis is the dimension a SortOption orders by.
type Axis int

const (
	ByDate Axis = iota // modification time
	ByName             // case-insensitive name
)

func (a Axis) String() string {
	if a == ByName {
		return "name"
	}
	return "date"
}

// Icon tokens for the direction of the active axis.
const (
	IconAscending  = "arrow.up"
	IconDescending = "arrow.down"
)

// SortOption selects the order of a Store's documents. The zero value sorts
// by date, newest first.
type SortOption struct {
	Axis      Axis
	Ascending bool
}

// DateSort orders by modification time.
func DateSort(ascending bool) SortOption {
	return SortOption{Axis: ByDate, Ascending: ascending}
}

// NameSort orders by name, ignoring case.
func NameSort(ascending bool) SortOption {
	return SortOption{Axis: ByName, Ascending: ascending}
}

// Compare orders a before b (<0), after b (>0) or as equal (0).
//
// On the date axis a missing timestamp sorts before every present one when
// ascending and after every present one when descending.
func (o SortOption) Compare(a, b Document) int {
	if o.Axis == ByName {
		c := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		if !o.Ascending {
			c = -c
		}
		return c
	}

	aMissing, bMissing := a.Modified.IsZero(), b.Modified.IsZero()
	switch {
	case aMissing && bMissing:
		return 0
	case aMissing:
		if o.Ascending {
			return -1
		}
		return 1
	case bMissing:
		if o.Ascending {
			return 1
		}
		return -1
	}
	c := a.Modified.Compare(b.Modified)
	if !o.Ascending {
		c = -c
	}
	return c
}

// Less reports whether a sorts strictly before b.
func (o SortOption) Less(a, b Document) bool {
	return o.Compare(a, b) < 0
}

// Toggle flips the direction and keeps the axis.
func (o SortOption) Toggle() SortOption {
	return SortOption{Axis: o.Axis, Ascending: !o.Ascending}
}

// ToggleDate is the option reached from the date button: it flips the
// direction when already on the date axis, otherwise it switches to date
// descending.
func (o SortOption) ToggleDate() SortOption {
	if o.Axis == ByDate {
		return o.Toggle()
	}
	return DateSort(false)
}

// ToggleName is the option reached from the name button: it flips the
// direction when already on the name axis, otherwise it switches to name
// descending.
func (o SortOption) ToggleName() SortOption {
	if o.Axis == ByName {
		return o.Toggle()
	}
	return NameSort(false)
}

// Icon returns the direction token of the active axis.
func (o SortOption) Icon() string {
	if o.Ascending {
		return IconAscending
	}
	return IconDescending
}

// DateIcon returns Icon() when sorting by date and "" otherwise.
func (o SortOption) DateIcon() string {
	if o.Axis != ByDate {
		return ""
	}
	return o.Icon()
}

// NameIcon returns Icon() when sorting by name and "" otherwise.
func (o SortOption) NameIcon() string {
	if o.Axis != ByName {
		return ""
	}
	return o.Icon()
}

// String returns the text form accepted by ParseSortOption, e.g. "date-desc".
func (o SortOption) String() string {
	dir := "desc"
	if o.Ascending {
		dir = "asc"
	}
	return o.Axis.String() + "-" + dir
}

// ParseSortOption parses "date", "name", "date-asc", "name-desc" and so on.
// A bare axis means descending.
func ParseSortOption(s string) (SortOption, error) {
	axis, dir, _ := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "-")

	var o SortOption
	switch axis {
	case "date", "modified":
		o.Axis = ByDate
	case "name":
		o.Axis = ByName
	default:
		return SortOption{}, fmt.Errorf("unknown sort axis %q", axis)
	}

	switch dir {
	case "", "desc", "descending":
	case "asc", "ascending":
		o.Ascending = true
	default:
		return SortOption{}, fmt.Errorf("unknown sort direction %q", dir)
	}
	return o, nil
}
