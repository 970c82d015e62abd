package Models

import (
	"encoding/json"
	"log"
	"strings"
	"sync"

	"NanYang/Stats"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// FleetConfig is the persisted configuration document, one row per
// deployment. The list-valued sections are stored as JSON columns so the
// documents written by older planner versions keep loading.
type FleetConfig struct {
	gorm.Model
	LorryPlates         datatypes.JSON `json:"lorryPlates"`
	HiddenLorryPlates   datatypes.JSON `json:"hiddenLorryPlates"`
	ArchivedLorryPlates datatypes.JSON `json:"archivedLorryPlates"`
	LorryTyreCounts     datatypes.JSON `json:"lorryTyreCounts"`
	TyreTonRules        datatypes.JSON `json:"tyreTonRules"`
	Commissions         datatypes.JSON `json:"commissions"`
	DefaultCompletion   bool           `json:"defaultCompletion"`
}

func (FleetConfig) TableName() string {
	return "fleet_config"
}

// ConfigDocument is the decoded form of FleetConfig that the handlers and
// the rule builders work with.
type ConfigDocument struct {
	LorryPlates         []string              `json:"lorryPlates"`
	HiddenLorryPlates   []string              `json:"hiddenLorryPlates"`
	ArchivedLorryPlates []string              `json:"archivedLorryPlates"`
	LorryTyreCounts     []Stats.TyreCountRule `json:"lorryTyreCounts"`
	TyreTonRules        []Stats.TonnageRule   `json:"tyreTonRules"`
	Commissions         []string              `json:"commissions"`
	DefaultCompletion   bool                  `json:"defaultCompletion"`
}

// DefaultConfigDocument returns the seed document for a fresh database.
func DefaultConfigDocument() ConfigDocument {
	return ConfigDocument{
		LorryPlates:         []string{"8722", "8915", "4250", "907", "5708"},
		HiddenLorryPlates:   []string{},
		ArchivedLorryPlates: []string{},
		LorryTyreCounts:     []Stats.TyreCountRule{},
		TyreTonRules:        []Stats.TonnageRule{},
		Commissions:         []string{"5.50", "10.00", "10.50", "11.50", "13.50", "14.00"},
		DefaultCompletion:   false,
	}
}

// LoadConfigDocument reads the config row, seeding defaults if none exists.
func LoadConfigDocument(db *gorm.DB) (ConfigDocument, error) {
	var row FleetConfig
	err := db.First(&row).Error
	if err == gorm.ErrRecordNotFound {
		doc := DefaultConfigDocument()
		if err := SaveConfigDocument(db, doc); err != nil {
			return doc, err
		}
		return doc, nil
	}
	if err != nil {
		return DefaultConfigDocument(), err
	}
	return decodeConfig(row), nil
}

// SaveConfigDocument writes the whole document back as the single config row.
func SaveConfigDocument(db *gorm.DB, doc ConfigDocument) error {
	row := FleetConfig{
		LorryPlates:         mustJSON(doc.LorryPlates),
		HiddenLorryPlates:   mustJSON(doc.HiddenLorryPlates),
		ArchivedLorryPlates: mustJSON(doc.ArchivedLorryPlates),
		LorryTyreCounts:     mustJSON(doc.LorryTyreCounts),
		TyreTonRules:        mustJSON(doc.TyreTonRules),
		Commissions:         mustJSON(doc.Commissions),
		DefaultCompletion:   doc.DefaultCompletion,
	}

	var existing FleetConfig
	err := db.First(&existing).Error
	if err == gorm.ErrRecordNotFound {
		return db.Create(&row).Error
	}
	if err != nil {
		return err
	}
	row.ID = existing.ID
	return db.Save(&row).Error
}

func decodeConfig(row FleetConfig) ConfigDocument {
	doc := DefaultConfigDocument()
	decodeJSON(row.LorryPlates, &doc.LorryPlates)
	decodeJSON(row.HiddenLorryPlates, &doc.HiddenLorryPlates)
	decodeJSON(row.ArchivedLorryPlates, &doc.ArchivedLorryPlates)
	decodeJSON(row.LorryTyreCounts, &doc.LorryTyreCounts)
	decodeJSON(row.TyreTonRules, &doc.TyreTonRules)
	decodeJSON(row.Commissions, &doc.Commissions)
	doc.DefaultCompletion = row.DefaultCompletion
	return doc
}

func decodeJSON(raw datatypes.JSON, out interface{}) {
	if len(raw) == 0 {
		return
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Printf("config column decode failed, keeping defaults: %v", err)
	}
}

func mustJSON(v interface{}) datatypes.JSON {
	data, err := json.Marshal(v)
	if err != nil {
		return datatypes.JSON("[]")
	}
	return datatypes.JSON(data)
}

// RuleState owns the derived lookup maps and the hidden/archived plate set.
// Every config write replaces the whole state; readers get a consistent
// snapshot and never observe a partial rebuild.
type RuleState struct {
	mu       sync.RWMutex
	rules    Stats.RuleSet
	excluded map[string]struct{}
}

func NewRuleState(doc ConfigDocument) *RuleState {
	s := &RuleState{}
	s.Rebuild(doc)
	return s
}

// Rebuild derives fresh maps from the document and swaps them in atomically.
func (s *RuleState) Rebuild(doc ConfigDocument) {
	rules := Stats.RuleSet{
		TyreCounts: Stats.BuildTyreCountMap(doc.LorryTyreCounts),
		Tonnage:    Stats.BuildTonnageMap(doc.TyreTonRules),
	}
	excluded := make(map[string]struct{})
	for _, plate := range doc.HiddenLorryPlates {
		excluded[strings.TrimSpace(plate)] = struct{}{}
	}
	for _, plate := range doc.ArchivedLorryPlates {
		excluded[strings.TrimSpace(plate)] = struct{}{}
	}

	s.mu.Lock()
	s.rules = rules
	s.excluded = excluded
	s.mu.Unlock()
}

// Rules returns the current rule maps for one aggregation call.
func (s *RuleState) Rules() Stats.RuleSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.rules
}

// IsExcluded reports whether a plate is hidden or archived.
func (s *RuleState) IsExcluded(plate string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.excluded[strings.TrimSpace(plate)]
	return ok
}
