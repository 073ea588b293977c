package hours_test

import (
	"testing"

	"github.com/Tiliavir/planner-time-tracker/internal/hours"
)

func TestDecodeCategories(t *testing.T) {
	tests := []struct {
		name      string
		flags     []hours.Flag
		wantHours float64
		wantLabel string
	}{
		{
			name:      "half hour",
			flags:     []hours.Flag{{ID: "category1", Applied: true}},
			wantHours: 0.5,
			wantLabel: "30m",
		},
		{
			name:      "full day",
			flags:     []hours.Flag{{ID: "category9", Applied: true}},
			wantHours: 8,
			wantLabel: "8h",
		},
		{
			name:      "three hours",
			flags:     []hours.Flag{{ID: "category4", Applied: true}},
			wantHours: 3,
			wantLabel: "3h",
		},
		{
			name: "first applied flag wins",
			flags: []hours.Flag{
				{ID: "category3", Applied: false},
				{ID: "category5", Applied: true},
				{ID: "category9", Applied: true},
			},
			wantHours: 4,
			wantLabel: "4h",
		},
	}
	for _, tt := range tests {
		got, ok := hours.Decode(tt.flags)
		if !ok {
			t.Errorf("%s: Decode returned no match", tt.name)
			continue
		}
		if got.Hours != tt.wantHours {
			t.Errorf("%s: Hours = %v, want %v", tt.name, got.Hours, tt.wantHours)
		}
		if got.Label != tt.wantLabel {
			t.Errorf("%s: Label = %q, want %q", tt.name, got.Label, tt.wantLabel)
		}
	}
}

func TestDecodeDirectFallback(t *testing.T) {
	got, ok := hours.Decode([]hours.Flag{{ID: "2h", Applied: true}})
	if !ok {
		t.Fatal("Decode: no match for direct label")
	}
	if got.Hours != 2 {
		t.Errorf("Hours = %v, want 2", got.Hours)
	}
	// Direct labels display verbatim, not reformatted.
	if got.Label != "2h" {
		t.Errorf("Label = %q, want %q", got.Label, "2h")
	}
}

func TestDecodeCategoryBeatsDirect(t *testing.T) {
	// A direct label earlier in the payload must not shadow a category
	// identifier: strategies run in order over the whole list.
	got, ok := hours.Decode([]hours.Flag{
		{ID: "2h", Applied: true},
		{ID: "category1", Applied: true},
	})
	if !ok {
		t.Fatal("Decode: no match")
	}
	if got.FlagID != "category1" {
		t.Errorf("FlagID = %q, want %q", got.FlagID, "category1")
	}
	if got.Hours != 0.5 {
		t.Errorf("Hours = %v, want 0.5", got.Hours)
	}
}

func TestDecodeNoMatch(t *testing.T) {
	tests := [][]hours.Flag{
		nil,
		{{ID: "category1", Applied: false}},
		{{ID: "something else", Applied: true}},
		{{ID: "2H", Applied: true}}, // case-sensitive
	}
	for _, flags := range tests {
		if d, ok := hours.Decode(flags); ok {
			t.Errorf("Decode(%v) = %v, want no match", flags, d)
		}
	}
}

func TestCategoryFor(t *testing.T) {
	id, ok := hours.CategoryFor(3)
	if !ok || id != "category4" {
		t.Errorf("CategoryFor(3) = %q, %v, want %q, true", id, ok, "category4")
	}
	if _, ok := hours.CategoryFor(2.5); ok {
		t.Error("CategoryFor(2.5): expected no match")
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0.5, "30m"},
		{0.75, "45m"},
		{1, "1h"},
		{1.5, "1.5h"},
		{3, "3h"},
		{8, "8h"},
	}
	for _, tt := range tests {
		got := hours.FormatHours(tt.hours)
		if got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}
