package main

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/aoe2stat/aoe2stat-go/pkg/aoe2stat"
)

// ValidMetrics maps CLI metric names to a short description, used for
// validation and help output.
var ValidMetrics = map[string]string{
	"apm":         "actions per minute time series and per-player mean/std",
	"units":       "unit production time series (see --unit)",
	"villagers":   "total villagers produced per player",
	"idle":        "total town center idle seconds per player",
	"idle-series": "cumulative town center idle time series",
	"resources":   "cumulative resource series from postgame totals (see --resource)",
	"spend":       "estimated resource spend series (see --resource)",
	"balance":     "estimated resource stock series (see --resource, --stock)",
	"score":       "cumulative all-resource spend series",
	"events":      "match milestones (age-ups, castles, key techs)",
}

// ValidMetricNames returns a sorted list of metric names.
func ValidMetricNames() []string {
	names := make([]string, 0, len(ValidMetrics))
	for name := range ValidMetrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ValidUnitNames returns the unit names the pattern table knows.
// Delegates to aoe2stat.UnitNames() as the single source of truth.
func ValidUnitNames() []string {
	return aoe2stat.UnitNames()
}

// ValidResourceNames returns the resource names.
// Delegates to aoe2stat.ResourceNames() as the single source of truth.
func ValidResourceNames() []string {
	return aoe2stat.ResourceNames()
}

// NormalizeUnitName resolves a CLI unit name against the pattern table,
// case-insensitively. Returns the canonical name and its pattern.
func NormalizeUnitName(raw string) (string, *regexp.Regexp, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", nil, fmt.Errorf("empty unit name; valid units: %s", strings.Join(ValidUnitNames(), ", "))
	}

	patterns := aoe2stat.BaseUnitPatterns()
	for canonical, pattern := range patterns {
		if strings.EqualFold(canonical, name) {
			return canonical, pattern, nil
		}
	}
	return "", nil, fmt.Errorf("unknown unit %q (valid: %s)", raw, strings.Join(ValidUnitNames(), ", "))
}

// NormalizeResource resolves a CLI resource name.
func NormalizeResource(raw string) (aoe2stat.Resource, error) {
	r, ok := aoe2stat.ParseResource(raw)
	if !ok {
		return "", fmt.Errorf("unknown resource %q (valid: %s)", raw, strings.Join(ValidResourceNames(), ", "))
	}
	return r, nil
}

// NormalizeMetric validates a CLI metric name.
func NormalizeMetric(raw string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if _, ok := ValidMetrics[name]; !ok {
		return "", fmt.Errorf("unknown metric %q (valid: %s)", raw, strings.Join(ValidMetricNames(), ", "))
	}
	return name, nil
}
