package aoe2stat

// FilterPlayers returns a copy of s restricted to the given player
// numbers. An empty players slice returns s unchanged (no filtering).
func FilterPlayers(s Series, players []int) Series {
	if len(players) == 0 || s.Empty() {
		return s
	}

	keep := make(map[int]struct{}, len(players))
	for _, p := range players {
		keep[p] = struct{}{}
	}

	values := make(map[int][]float64)
	for player, vals := range s.Values {
		if _, ok := keep[player]; ok {
			values[player] = vals
		}
	}
	return Series{Window: s.Window, Times: s.Times, Values: values}
}
