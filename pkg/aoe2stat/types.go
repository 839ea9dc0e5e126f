package aoe2stat

import "github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat/match"

// Re-export match types for convenience.
// Users can import just "github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
// and use aoe2stat.Match, aoe2stat.ResourceFood, etc.

// Match is a fully decoded replay.
type Match = match.Match

// Player describes one participant of the match.
type Player = match.Player

// Action is a single recorded input action.
type Action = match.Action

// ActionType is the decoder's name for an input action.
type ActionType = match.ActionType

// Resource identifies one of the four stockpiled resources.
type Resource = match.Resource

// ResourceTotals holds per-resource amounts.
type ResourceTotals = match.ResourceTotals

// Resource constants.
const (
	ResourceFood  = match.Food
	ResourceWood  = match.Wood
	ResourceGold  = match.Gold
	ResourceStone = match.Stone
)

// ResourceNames returns a sorted list of all valid resource names.
func ResourceNames() []string {
	return match.ResourceNames()
}

// ParseResource converts a string to Resource if valid.
func ParseResource(name string) (Resource, bool) {
	return match.ParseResource(name)
}
