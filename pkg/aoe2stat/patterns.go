package aoe2stat

import (
	"regexp"
	"sort"
)

// Unit name matching is pattern based because the decoder reports unit
// names in the replay owner's game language. The alternations below cover
// English and Spanish, the languages the tables were built from.

// BaseUnitPatterns returns the named unit patterns the toolkit knows.
// The returned map is a fresh copy; callers may extend it.
func BaseUnitPatterns() map[string]*regexp.Regexp {
	return map[string]*regexp.Regexp{
		"Villager":       regexp.MustCompile(`(?i)villager|aldean`),
		"Archer":         regexp.MustCompile(`(?i)archer|arquero`),
		"Crossbowman":    regexp.MustCompile(`(?i)crossbow|ballestero`),
		"Skirmisher":     regexp.MustCompile(`(?i)skirm|guerrillero|hostigador`),
		"Militia":        regexp.MustCompile(`(?i)militia|milicia|man.?at.?arms|hombre.?de.?armas`),
		"Long Swordsman": regexp.MustCompile(`(?i)long\s*sword|espad[oó]n|longsword`),
		"Spearman":       regexp.MustCompile(`(?i)spearman|lancero`),
		"Pikeman":        regexp.MustCompile(`(?i)pike|piquero`),
		"Scout":          regexp.MustCompile(`(?i)scout|explorador|light\s*cav`),
		"Knight":         regexp.MustCompile(`(?i)knight|caballero`),
		"Cavalier":       regexp.MustCompile(`(?i)cavalier|caballero\s*mejorado`),
		"Paladin":        regexp.MustCompile(`(?i)paladin|palad[ií]n`),
		"Camel":          regexp.MustCompile(`(?i)camel|camello`),
		"Eagle":          regexp.MustCompile(`(?i)eagle|[áa]guila`),
		"Cavalry Archer": regexp.MustCompile(`(?i)cavalry\s*archer|arquero\s*a\s*caballo`),
		"Hand Cannoneer": regexp.MustCompile(`(?i)hand\s*cannoneer|arcabucero|ca[ñn]onero\s*de\s*mano`),
		"Hussar":         regexp.MustCompile(`(?i)hussar|husar`),
	}
}

// AugmentUnitPatterns fills in any base pattern missing from patterns.
// Returns the same map after augmentation.
func AugmentUnitPatterns(patterns map[string]*regexp.Regexp) map[string]*regexp.Regexp {
	for name, pat := range BaseUnitPatterns() {
		if _, ok := patterns[name]; !ok {
			patterns[name] = pat
		}
	}
	return patterns
}

// UnitNames returns the sorted names of BaseUnitPatterns.
// This is the single source of truth for unit enumeration in the CLI
// and dashboard selectors.
func UnitNames() []string {
	patterns := BaseUnitPatterns()
	names := make([]string, 0, len(patterns))
	for name := range patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// VillagerPattern matches villager training in English and Spanish.
func VillagerPattern() *regexp.Regexp {
	return regexp.MustCompile(`(?i)villager|aldean`)
}

// Milestone patterns used by ImportantEvents.
var (
	agePattern     = regexp.MustCompile(`(?i)feudal|castle\s*age|imperial|edad`)
	elitePattern   = regexp.MustCompile(`(?i)\belite\b`)
	keyTechPattern = regexp.MustCompile(`(?i)wheelbarrow|hand\s*cart|bracer|chemistry|conscription|ballistics|siege\s*engineers|architecture|thumb\s*ring`)
	castlePattern  = regexp.MustCompile(`(?i)castle|castillo`)
	tcPattern      = regexp.MustCompile(`(?i)town\s*cent|centro\s*urbano`)
)
