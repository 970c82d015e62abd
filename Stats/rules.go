package Stats

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// TyreCountRule assigns a tyre count to a lorry plate. Counts may arrive as
// numbers or numeric strings depending on which editor wrote the config.
type TyreCountRule struct {
	Plate string      `json:"plate"`
	Tyres interface{} `json:"tyres"`
}

// TonnageRule maps a tyre count to an estimated cargo tonnage per completed
// trip. Product and destination are carried for the config editor but the
// lookup keys on tyre count alone.
type TonnageRule struct {
	Tyres       interface{} `json:"tyres"`
	Product     string      `json:"product,omitempty"`
	Destination string      `json:"destination,omitempty"`
	Ton         interface{} `json:"ton"`
}

// RuleSet is the pair of derived lookup maps the aggregation consults. It is
// rebuilt as a whole after every config write and never mutated in place.
type RuleSet struct {
	TyreCounts map[string]int
	Tonnage    map[int]float64
}

var (
	numericSubstring = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)?`)
	leadingInt       = regexp.MustCompile(`^[+-]?[0-9]+`)
)

// BuildTyreCountMap derives the plate -> tyre count map. Rules with an empty
// plate or an unparsable count are skipped; the last rule for a plate wins.
func BuildTyreCountMap(rules []TyreCountRule) map[string]int {
	counts := make(map[string]int)
	for _, rule := range rules {
		plate := strings.TrimSpace(rule.Plate)
		if plate == "" {
			continue
		}
		tyres, ok := parseTyres(rule.Tyres)
		if !ok {
			continue
		}
		counts[plate] = tyres
	}
	return counts
}

// BuildTonnageMap derives the tyre count -> tonnage map. Ton values may be a
// bare number or a string like "28 tons"; the first numeric substring is used
// and entries without one are skipped. The last rule for a count wins.
func BuildTonnageMap(rules []TonnageRule) map[int]float64 {
	tons := make(map[int]float64)
	for _, rule := range rules {
		tyres, ok := parseTyres(rule.Tyres)
		if !ok {
			continue
		}
		ton, ok := parseTon(rule.Ton)
		if !ok {
			continue
		}
		tons[tyres] = ton
	}
	return tons
}

// EstimatedTonFor resolves plate -> tyre count -> tonnage, rounded to two
// decimals. The second return is false when either lookup misses; callers
// summing into totals treat a miss as zero.
func EstimatedTonFor(plate string, tyreCounts map[string]int, tonnage map[int]float64) (float64, bool) {
	p := strings.TrimSpace(plate)
	if p == "" {
		return 0, false
	}
	tyres, ok := tyreCounts[p]
	if !ok {
		return 0, false
	}
	ton, ok := tonnage[tyres]
	if !ok {
		return 0, false
	}
	return math.Round(ton*100) / 100, true
}

// EstimatedTonFor on the set resolves against both derived maps.
func (r RuleSet) EstimatedTonFor(plate string) (float64, bool) {
	return EstimatedTonFor(plate, r.TyreCounts, r.Tonnage)
}

func parseTyres(value interface{}) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	case string:
		// parseInt semantics: a numeric prefix counts, "10 tyres" is 10
		m := leadingInt.FindString(strings.TrimSpace(v))
		if m == "" {
			return 0, false
		}
		n, err := strconv.Atoi(m)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

func parseTon(value interface{}) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case string:
		m := numericSubstring.FindString(v)
		if m == "" {
			return 0, false
		}
		n, err := strconv.ParseFloat(m, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
