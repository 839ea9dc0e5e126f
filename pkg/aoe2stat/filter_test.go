package aoe2stat

import (
	"reflect"
	"testing"
)

func TestFilterPlayers(t *testing.T) {
	s := Series{
		Window: 60,
		Times:  []float64{0, 60},
		Values: map[int][]float64{
			1: {3, 1},
			2: {1, 0},
			3: {2, 2},
		},
	}

	got := FilterPlayers(s, []int{1, 3})
	if want := []int{1, 3}; !reflect.DeepEqual(got.PlayerNumbers(), want) {
		t.Errorf("filtered players = %v, want %v", got.PlayerNumbers(), want)
	}
	if !reflect.DeepEqual(got.Times, s.Times) {
		t.Errorf("Times changed: %v", got.Times)
	}

	// Empty filter means no filtering.
	if all := FilterPlayers(s, nil); len(all.Values) != 3 {
		t.Errorf("nil filter kept %d players, want 3", len(all.Values))
	}

	// Unknown players simply drop out.
	if none := FilterPlayers(s, []int{9}); len(none.Values) != 0 {
		t.Errorf("filter by unknown player kept %v", none.Values)
	}
}
