package match

import "testing"

func TestParseResource(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   Resource
		wantOK bool
	}{
		// Valid resources - exact match
		{"food exact", "food", Food, true},
		{"wood exact", "wood", Wood, true},
		{"gold exact", "gold", Gold, true},
		{"stone exact", "stone", Stone, true},

		// Case-insensitive
		{"uppercase FOOD", "FOOD", Food, true},
		{"mixed case Gold", "Gold", Gold, true},

		// Whitespace handling
		{"leading space", " wood", Wood, true},
		{"trailing space", "stone ", Stone, true},

		// Invalid
		{"unknown resource", "favor", "", false},
		{"empty string", "", "", false},
		{"only spaces", "   ", "", false},
		{"typo", "glod", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseResource(tt.input)
			if ok != tt.wantOK {
				t.Errorf("ParseResource(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if got != tt.want {
				t.Errorf("ParseResource(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseResource_RoundTrip(t *testing.T) {
	for _, name := range ResourceNames() {
		t.Run(name, func(t *testing.T) {
			got, ok := ParseResource(name)
			if !ok {
				t.Errorf("ParseResource(%q) returned false, expected true", name)
			}
			if string(got) != name {
				t.Errorf("ParseResource(%q) = %q, expected %q", name, got, name)
			}
		})
	}
}

func TestActionTypeClassification(t *testing.T) {
	tests := []struct {
		typ        ActionType
		production bool
		research   bool
		build      bool
	}{
		{"DE_QUEUE", true, false, false},
		{"QUEUE", true, false, false},
		{"TRAIN", true, false, false},
		{"TRAIN_UNIT", true, false, false},
		{"CREATE", true, false, false},
		{"ORDER", true, false, false},
		{"RESEARCH", false, true, false},
		{"DE_RESEARCH", false, true, false},
		{"BUILD", false, false, true},
		{"MOVE", false, false, false},
		{"ATTACK", false, false, false},
		// ORDER must be an exact match, not a substring
		{"REORDER", false, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.typ), func(t *testing.T) {
			if got := tt.typ.IsProduction(); got != tt.production {
				t.Errorf("%q.IsProduction() = %v, want %v", tt.typ, got, tt.production)
			}
			if got := tt.typ.IsResearch(); got != tt.research {
				t.Errorf("%q.IsResearch() = %v, want %v", tt.typ, got, tt.research)
			}
			if got := tt.typ.IsBuild(); got != tt.build {
				t.Errorf("%q.IsBuild() = %v, want %v", tt.typ, got, tt.build)
			}
		})
	}
}

func TestPlayerLookup(t *testing.T) {
	m := &Match{Players: []Player{
		{Number: 1, Name: "TheViper"},
		{Number: 2, Name: "Hera"},
	}}

	if p := m.PlayerByNumber(2); p == nil || p.Name != "Hera" {
		t.Errorf("PlayerByNumber(2) = %+v, want Hera", p)
	}
	if p := m.PlayerByNumber(5); p != nil {
		t.Errorf("PlayerByNumber(5) = %+v, want nil", p)
	}
	if got := m.PlayerName(1); got != "TheViper" {
		t.Errorf("PlayerName(1) = %q, want TheViper", got)
	}
	if got := m.PlayerName(7); got != "Player 7" {
		t.Errorf("PlayerName(7) = %q, want fallback name", got)
	}
}

func TestResourceTotalsGet(t *testing.T) {
	rt := ResourceTotals{Food: 100, Wood: 200, Gold: 50, Stone: 25}

	for _, tt := range []struct {
		r    Resource
		want float64
	}{
		{Food, 100}, {Wood, 200}, {Gold, 50}, {Stone, 25}, {Resource("oil"), 0},
	} {
		if got := rt.Get(tt.r); got != tt.want {
			t.Errorf("Get(%q) = %v, want %v", tt.r, got, tt.want)
		}
	}
}
