package main

import (
	"testing"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

func TestBalanceStock(t *testing.T) {
	tests := []struct {
		name     string
		explicit bool
		value    float64
		resource aoe2stat.Resource
		want     float64
	}{
		{"unset food", false, 0, aoe2stat.ResourceFood, 200},
		{"unset gold", false, 0, aoe2stat.ResourceGold, 100},
		{"explicit value", true, 500, aoe2stat.ResourceFood, 500},
		{"explicit zero", true, 0, aoe2stat.ResourceFood, 0},
		{"unset ignores stale value", false, 500, aoe2stat.ResourceWood, 200},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := balanceStock(tt.explicit, tt.value, tt.resource); got != tt.want {
				t.Errorf("balanceStock(%v, %v, %s) = %v, want %v",
					tt.explicit, tt.value, tt.resource, got, tt.want)
			}
		})
	}
}
