package aoe2stat

import "testing"

func TestPayloadUnitName(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    string
	}{
		{
			name:    "nested unit object",
			payload: map[string]any{"unit": map[string]any{"name": "Villager"}},
			want:    "Villager",
		},
		{
			name:    "flat unit_name",
			payload: map[string]any{"unit_name": "Knight"},
			want:    "Knight",
		},
		{
			name:    "item key",
			payload: map[string]any{"item": "Loom"},
			want:    "Loom",
		},
		{
			name:    "nested beats flat",
			payload: map[string]any{"unit": map[string]any{"name": "Archer"}, "name": "other"},
			want:    "Archer",
		},
		{
			name:    "empty string skipped",
			payload: map[string]any{"unit_name": "", "name": "Castle"},
			want:    "Castle",
		},
		{
			name:    "nil payload",
			payload: nil,
			want:    "",
		},
		{
			name:    "no name keys",
			payload: map[string]any{"x": float64(3)},
			want:    "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayloadUnitName(tt.payload); got != tt.want {
				t.Errorf("PayloadUnitName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPayloadMatches(t *testing.T) {
	villager := VillagerPattern()

	tests := []struct {
		name    string
		payload map[string]any
		want    bool
	}{
		{"primary name", map[string]any{"unit_name": "Villager"}, true},
		{"deep string", map[string]any{"details": map[string]any{"label": "Aldeano"}}, true},
		{"list value", map[string]any{"tags": []any{"eco", "villager"}}, true},
		{"no match", map[string]any{"unit_name": "Knight"}, false},
		{"nil payload", nil, false},
		{
			// Depth bound: strings nested three maps down are not walked.
			"too deep",
			map[string]any{"a": map[string]any{"b": map[string]any{"c": map[string]any{"d": "villager"}}}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayloadMatches(tt.payload, villager); got != tt.want {
				t.Errorf("PayloadMatches() = %v, want %v", got, tt.want)
			}
		})
	}

	if PayloadMatches(map[string]any{"unit_name": "Villager"}, nil) {
		t.Error("nil pattern should never match")
	}
}

func TestPayloadCount(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
		want    int
	}{
		{"json number", map[string]any{"count": float64(5)}, 5},
		{"amount key", map[string]any{"amount": float64(3)}, 3},
		{"string number", map[string]any{"quantity": "4"}, 4},
		{"zero falls back", map[string]any{"count": float64(0)}, 1},
		{"negative falls back", map[string]any{"count": float64(-2)}, 1},
		{"absent", map[string]any{}, 1},
		{"nil", nil, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PayloadCount(tt.payload); got != tt.want {
				t.Errorf("PayloadCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
