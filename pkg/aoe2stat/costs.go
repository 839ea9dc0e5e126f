package aoe2stat

import (
	"regexp"
	"strings"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat/match"
)

// Cost is a resource price (standard random-map values; civilization and
// technology discounts are not applied).
type Cost struct {
	Food  int
	Wood  int
	Gold  int
	Stone int
}

// Get returns the amount for the given resource.
func (c Cost) Get(r Resource) int {
	switch r {
	case match.Food:
		return c.Food
	case match.Wood:
		return c.Wood
	case match.Gold:
		return c.Gold
	case match.Stone:
		return c.Stone
	}
	return 0
}

// Total returns the summed cost across all resources.
func (c Cost) Total() int {
	return c.Food + c.Wood + c.Gold + c.Stone
}

// Minimal but practical cost tables for common units/buildings/techs.
var unitCosts = map[string]Cost{
	// Eco / infantry / archers
	"villager":         {Food: 50},
	"militia":          {Food: 60, Gold: 20},
	"man-at-arms":      {Food: 60, Gold: 20}, // trained as militia pre-upgrade; kept for matching
	"spearman":         {Food: 35, Wood: 25},
	"pikeman":          {Food: 35, Wood: 25},
	"halberdier":       {Food: 35, Wood: 25},
	"archer":           {Wood: 25, Gold: 45},
	"crossbowman":      {Wood: 25, Gold: 45},
	"skirmisher":       {Food: 25, Wood: 35},
	"elite skirmisher": {Food: 25, Wood: 35},
	"hand cannoneer":   {Food: 45, Gold: 50},
	"cavalry archer":   {Wood: 40, Gold: 60},
	// Cavalry / camels / eagles
	"scout":         {Food: 80},
	"scout cavalry": {Food: 80},
	"light cavalry": {Food: 80},
	"hussar":        {Food: 80},
	"knight":        {Food: 60, Gold: 75},
	"cavalier":      {Food: 60, Gold: 75},
	"paladin":       {Food: 60, Gold: 75},
	"camel":         {Food: 55, Gold: 60},
	"camel rider":   {Food: 55, Gold: 60},
	"eagle":         {Food: 20, Gold: 50},
	"eagle scout":   {Food: 20, Gold: 50},
	"eagle warrior": {Food: 20, Gold: 50},
	// Siege (common)
	"battering ram": {Wood: 160, Gold: 75},
	"mangonel":      {Wood: 160, Gold: 135},
	"onager":        {Wood: 160, Gold: 135},
	"scorpion":      {Wood: 75, Gold: 75},
}

var buildingCosts = map[string]Cost{
	"house":          {Wood: 25},
	"lumber camp":    {Wood: 100},
	"mill":           {Wood: 100},
	"mining camp":    {Wood: 100},
	"barracks":       {Wood: 175},
	"archery range":  {Wood: 175},
	"stable":         {Wood: 175},
	"blacksmith":     {Wood: 150},
	"market":         {Wood: 175},
	"monastery":      {Wood: 175},
	"siege workshop": {Wood: 200},
	"university":     {Wood: 200},
	"town center":    {Wood: 275, Stone: 100},
	"watch tower":    {Wood: 25, Stone: 125},
	"guard tower":    {Wood: 25, Stone: 125},
	"keep":           {Wood: 25, Stone: 125},
	"castle":         {Stone: 650},
	// walls / gates omitted
}

var techCosts = map[string]Cost{
	// Economy
	"loom":               {Gold: 50},
	"double-bit axe":     {Wood: 100},
	"bow saw":            {Food: 100, Wood: 150},
	"two-man saw":        {Food: 300, Wood: 300},
	"horse collar":       {Food: 75, Wood: 75},
	"heavy plow":         {Food: 125, Wood: 125},
	"crop rotation":      {Food: 250, Wood: 250},
	"wheelbarrow":        {Food: 175, Wood: 50},
	"hand cart":          {Food: 300, Wood: 200},
	"gold mining":        {Food: 100, Wood: 75},
	"gold shaft mining":  {Food: 200, Wood: 150},
	"stone mining":       {Food: 100, Wood: 75},
	"stone shaft mining": {Food: 200, Wood: 150},
	// Vision / town
	"town watch":  {Food: 75},
	"town patrol": {Food: 300, Gold: 100},
	// Blacksmith (archery)
	"fletching":    {Food: 50, Gold: 100},
	"bodkin arrow": {Food: 200, Gold: 100},
	"bracer":       {Food: 300, Gold: 200},
	// Blacksmith (melee)
	"forging":       {Food: 150},
	"iron casting":  {Food: 220, Gold: 120},
	"blast furnace": {Food: 275, Gold: 225},
	// Armor (inf/cav/arch)
	"scale mail armor":     {Food: 100},
	"chain mail armor":     {Food: 200},
	"plate mail armor":     {Food: 300},
	"scale barding armor":  {Food: 150},
	"chain barding armor":  {Food: 250},
	"plate barding armor":  {Food: 350},
	"leather archer armor": {Food: 100},
	"chain archer armor":   {Food: 150},
	"ring archer armor":    {Food: 250},
}

// lookupCost resolves a display name against a table: exact match first,
// then substring containment either way, then a word-boundary search.
func lookupCost(name string, table map[string]Cost) (Cost, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return Cost{}, false
	}
	if c, ok := table[n]; ok {
		return c, true
	}
	for k, c := range table {
		if strings.Contains(n, k) || strings.Contains(k, n) {
			return c, true
		}
	}
	for k, c := range table {
		if re, err := regexp.Compile(`\b` + regexp.QuoteMeta(k) + `\b`); err == nil && re.MatchString(n) {
			return c, true
		}
	}
	return Cost{}, false
}

// UnitCost returns the training cost for a unit name.
func UnitCost(name string) (Cost, bool) {
	return lookupCost(name, unitCosts)
}

// BuildingCost returns the construction cost for a building name.
func BuildingCost(name string) (Cost, bool) {
	return lookupCost(name, buildingCosts)
}

// TechCost returns the research cost for a technology name.
func TechCost(name string) (Cost, bool) {
	return lookupCost(name, techCosts)
}
