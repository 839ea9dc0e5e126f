package main

import (
	"sort"
	"strings"
	"testing"
)

func TestNormalizeUnitName(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"Villager", "Villager", false},
		{"villager", "Villager", false},
		{"  KNIGHT  ", "Knight", false},
		{"Wardog", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			name, pattern, err := NormalizeUnitName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NormalizeUnitName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if name != tt.want {
				t.Errorf("NormalizeUnitName(%q) = %q, want %q", tt.input, name, tt.want)
			}
			if pattern == nil {
				t.Errorf("NormalizeUnitName(%q) returned nil pattern", tt.input)
			}
		})
	}
}

func TestNormalizeUnitName_ErrorListsValidNames(t *testing.T) {
	_, _, err := NormalizeUnitName("Wardog")
	if err == nil || !strings.Contains(err.Error(), "Villager") {
		t.Errorf("error should list valid units, got: %v", err)
	}
}

func TestNormalizeResource(t *testing.T) {
	r, err := NormalizeResource("Food")
	if err != nil {
		t.Fatalf("NormalizeResource(Food) error = %v", err)
	}
	if string(r) != "food" {
		t.Errorf("NormalizeResource(Food) = %q, want food", r)
	}

	if _, err := NormalizeResource("favor"); err == nil {
		t.Error("NormalizeResource(favor) should fail")
	}
}

func TestNormalizeMetric(t *testing.T) {
	for _, name := range ValidMetricNames() {
		if _, err := NormalizeMetric(name); err != nil {
			t.Errorf("NormalizeMetric(%q) error = %v", name, err)
		}
	}
	if got, err := NormalizeMetric("  APM "); err != nil || got != "apm" {
		t.Errorf("NormalizeMetric(\"  APM \") = %q, %v; want apm", got, err)
	}
	if _, err := NormalizeMetric("kd-ratio"); err == nil {
		t.Error("NormalizeMetric(kd-ratio) should fail")
	}
}

func TestValidMetricNames_Sorted(t *testing.T) {
	names := ValidMetricNames()
	if !sort.StringsAreSorted(names) {
		t.Errorf("ValidMetricNames() not sorted: %v", names)
	}
	if len(names) != len(ValidMetrics) {
		t.Errorf("ValidMetricNames() has %d entries, ValidMetrics has %d", len(names), len(ValidMetrics))
	}
}
