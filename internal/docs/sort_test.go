package docs

import (
	"slices"
	"testing"
	"time"
)

func namesOf(docs []Document) []string {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}
	return names
}

func TestSortOptionDate(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	input := []Document{
		{Name: "middle", Modified: base.Add(time.Hour)},
		{Name: "unknown"},
		{Name: "newest", Modified: base.Add(2 * time.Hour)},
		{Name: "oldest", Modified: base},
	}

	testCases := []struct {
		name string
		opt  SortOption
		want []string
	}{
		{"ascending", DateSort(true), []string{"unknown", "oldest", "middle", "newest"}},
		{"descending", DateSort(false), []string{"newest", "middle", "oldest", "unknown"}},
		{"zero value", SortOption{}, []string{"newest", "middle", "oldest", "unknown"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			docs := slices.Clone(input)
			slices.SortStableFunc(docs, tc.opt.Compare)
			if got := namesOf(docs); !slices.Equal(got, tc.want) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSortOptionLessMatchesTimestamps(t *testing.T) {
	early := Document{Modified: time.Unix(100, 0)}
	late := Document{Modified: time.Unix(200, 0)}

	if !DateSort(true).Less(early, late) || DateSort(true).Less(late, early) {
		t.Error("ascending date order should put the earlier timestamp first")
	}
	if !DateSort(false).Less(late, early) || DateSort(false).Less(early, late) {
		t.Error("descending date order should put the later timestamp first")
	}
}

func TestSortOptionNameIgnoresCase(t *testing.T) {
	docs := []Document{{Name: "bFile"}, {Name: "AFile"}, {Name: "cfile"}}

	slices.SortStableFunc(docs, NameSort(true).Compare)
	if got, want := namesOf(docs), []string{"AFile", "bFile", "cfile"}; !slices.Equal(got, want) {
		t.Errorf("ascending: expected %v, got %v", want, got)
	}

	slices.SortStableFunc(docs, NameSort(false).Compare)
	if got, want := namesOf(docs), []string{"cfile", "bFile", "AFile"}; !slices.Equal(got, want) {
		t.Errorf("descending: expected %v, got %v", want, got)
	}
}

func TestSortOptionToggles(t *testing.T) {
	testCases := []struct {
		from     SortOption
		wantDate SortOption
		wantName SortOption
	}{
		{DateSort(true), DateSort(false), NameSort(false)},
		{DateSort(false), DateSort(true), NameSort(false)},
		{NameSort(true), DateSort(false), NameSort(false)},
		{NameSort(false), DateSort(false), NameSort(true)},
	}

	for _, tc := range testCases {
		if got := tc.from.ToggleDate(); got != tc.wantDate {
			t.Errorf("%s.ToggleDate(): expected %s, got %s", tc.from, tc.wantDate, got)
		}
		if got := tc.from.ToggleName(); got != tc.wantName {
			t.Errorf("%s.ToggleName(): expected %s, got %s", tc.from, tc.wantName, got)
		}
		if got := tc.from.Toggle(); got.Axis != tc.from.Axis || got.Ascending == tc.from.Ascending {
			t.Errorf("%s.Toggle(): got %s", tc.from, got)
		}
	}
}

func TestSortOptionIcons(t *testing.T) {
	testCases := []struct {
		opt      SortOption
		dateIcon string
		nameIcon string
	}{
		{DateSort(true), IconAscending, ""},
		{DateSort(false), IconDescending, ""},
		{NameSort(true), "", IconAscending},
		{NameSort(false), "", IconDescending},
	}

	for _, tc := range testCases {
		if got := tc.opt.DateIcon(); got != tc.dateIcon {
			t.Errorf("%s.DateIcon(): expected %q, got %q", tc.opt, tc.dateIcon, got)
		}
		if got := tc.opt.NameIcon(); got != tc.nameIcon {
			t.Errorf("%s.NameIcon(): expected %q, got %q", tc.opt, tc.nameIcon, got)
		}
	}
}

func TestParseSortOption(t *testing.T) {
	testCases := []struct {
		input   string
		want    SortOption
		wantErr bool
	}{
		{"date", DateSort(false), false},
		{"date-asc", DateSort(true), false},
		{"Modified-Descending", DateSort(false), false},
		{"name", NameSort(false), false},
		{" name-ascending ", NameSort(true), false},
		{"size", SortOption{}, true},
		{"name-sideways", SortOption{}, true},
		{"", SortOption{}, true},
	}

	for _, tc := range testCases {
		got, err := ParseSortOption(tc.input)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseSortOption(%q): unexpected error state: %v", tc.input, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseSortOption(%q): expected %s, got %s", tc.input, tc.want, got)
		}
	}

	for _, opt := range []SortOption{DateSort(true), DateSort(false), NameSort(true), NameSort(false)} {
		parsed, err := ParseSortOption(opt.String())
		if err != nil || parsed != opt {
			t.Errorf("round trip of %s: got %s, %v", opt, parsed, err)
		}
	}
}
