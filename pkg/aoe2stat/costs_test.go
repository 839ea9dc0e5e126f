package aoe2stat

import "testing"

func TestUnitCost(t *testing.T) {
	tests := []struct {
		name string
		want Cost
		ok   bool
	}{
		{"Villager", Cost{Food: 50}, true},
		{"villager", Cost{Food: 50}, true},
		{"  Knight  ", Cost{Food: 60, Gold: 75}, true},
		{"Elite Eagle Warrior", Cost{Food: 20, Gold: 50}, true}, // substring on "eagle"
		{"Caballero", Cost{}, false},                            // localized names resolve via patterns, not costs
		{"", Cost{}, false},
		{"Trebuchet", Cost{}, false},
	}
	for _, tt := range tests {
		got, ok := UnitCost(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("UnitCost(%q) = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestBuildingCost(t *testing.T) {
	tests := []struct {
		name string
		want Cost
		ok   bool
	}{
		{"Town Center", Cost{Wood: 275, Stone: 100}, true},
		{"Castle", Cost{Stone: 650}, true},
		{"House", Cost{Wood: 25}, true},
		{"Wonder", Cost{}, false},
	}
	for _, tt := range tests {
		got, ok := BuildingCost(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("BuildingCost(%q) = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestTechCost(t *testing.T) {
	tests := []struct {
		name string
		want Cost
		ok   bool
	}{
		{"Wheelbarrow", Cost{Food: 175, Wood: 50}, true},
		{"Loom", Cost{Gold: 50}, true},
		{"Research Loom", Cost{Gold: 50}, true}, // substring fallback
		{"Supremacy", Cost{}, false},
	}
	for _, tt := range tests {
		got, ok := TechCost(tt.name)
		if ok != tt.ok || got != tt.want {
			t.Errorf("TechCost(%q) = %+v, %v; want %+v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestCostGetAndTotal(t *testing.T) {
	c := Cost{Food: 60, Wood: 10, Gold: 75, Stone: 5}
	if got := c.Get(ResourceFood); got != 60 {
		t.Errorf("Get(food) = %d, want 60", got)
	}
	if got := c.Get(ResourceStone); got != 5 {
		t.Errorf("Get(stone) = %d, want 5", got)
	}
	if got := c.Get(Resource("favor")); got != 0 {
		t.Errorf("Get(unknown) = %d, want 0", got)
	}
	if got := c.Total(); got != 150 {
		t.Errorf("Total() = %d, want 150", got)
	}
}
