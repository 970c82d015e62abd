package Controllers

import (
	"net/http"
	"strings"

	"NanYang/Models"
	"NanYang/Stats"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// ConfigHandler edits the fleet configuration document. Every successful
// write rebuilds the derived rule maps so the dashboard never aggregates
// against stale rules.
type ConfigHandler struct {
	DB       *gorm.DB
	Rules    *Models.RuleState
	Validate *validator.Validate
}

// NewConfigHandler creates a new config handler
func NewConfigHandler(db *gorm.DB, rules *Models.RuleState) *ConfigHandler {
	return &ConfigHandler{
		DB:       db,
		Rules:    rules,
		Validate: validator.New(),
	}
}

// GetConfig returns the full configuration document
func (h *ConfigHandler) GetConfig(c *fiber.Ctx) error {
	doc, err := Models.LoadConfigDocument(h.DB)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load config",
			"error":   err.Error(),
		})
	}
	return c.JSON(doc)
}

// UpdateConfig replaces the whole configuration document, covering the
// sections without a dedicated endpoint (commission presets, default
// completion flag)
func (h *ConfigHandler) UpdateConfig(c *fiber.Ctx) error {
	var doc Models.ConfigDocument
	if err := c.BodyParser(&doc); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid config payload",
			"error":   err.Error(),
		})
	}
	return h.saveAndRefresh(c, doc)
}

// TyreCountPayload sets or clears one plate's tyre count. A missing count
// removes the plate's rule.
type TyreCountPayload struct {
	Plate string `json:"plate" validate:"required"`
	Tyres *int   `json:"tyres" validate:"omitempty,gt=0"`
}

// UpdateTyreCounts applies per-plate tyre count edits
func (h *ConfigHandler) UpdateTyreCounts(c *fiber.Ctx) error {
	var payload []TyreCountPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid tyre count payload",
			"error":   err.Error(),
		})
	}
	for _, entry := range payload {
		if err := h.Validate.Struct(entry); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid tyre count entry",
				"error":   err.Error(),
			})
		}
	}

	doc, err := Models.LoadConfigDocument(h.DB)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load config",
			"error":   err.Error(),
		})
	}

	for _, entry := range payload {
		doc.LorryTyreCounts = applyTyreCount(doc.LorryTyreCounts, entry)
	}

	return h.saveAndRefresh(c, doc)
}

// applyTyreCount upserts or removes one plate's rule, keeping at most one
// entry per plate.
func applyTyreCount(rules []Stats.TyreCountRule, entry TyreCountPayload) []Stats.TyreCountRule {
	plate := strings.TrimSpace(entry.Plate)

	kept := rules[:0]
	for _, rule := range rules {
		if strings.TrimSpace(rule.Plate) != plate {
			kept = append(kept, rule)
		}
	}
	if entry.Tyres != nil {
		kept = append(kept, Stats.TyreCountRule{Plate: plate, Tyres: *entry.Tyres})
	}
	return kept
}

// TonRulePayload is one tyre-count-to-tonnage rule. Product and destination
// are informational; the lookup keys on tyre count alone.
type TonRulePayload struct {
	Tyres       int    `json:"tyres" validate:"required,gt=0"`
	Product     string `json:"product"`
	Destination string `json:"destination"`
	Ton         string `json:"ton" validate:"required"`
}

// UpdateTonRules replaces the tonnage rule list
func (h *ConfigHandler) UpdateTonRules(c *fiber.Ctx) error {
	var payload []TonRulePayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid ton rule payload",
			"error":   err.Error(),
		})
	}
	for _, entry := range payload {
		if err := h.Validate.Struct(entry); err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid ton rule entry",
				"error":   err.Error(),
			})
		}
	}

	doc, err := Models.LoadConfigDocument(h.DB)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load config",
			"error":   err.Error(),
		})
	}

	rules := make([]Stats.TonnageRule, 0, len(payload))
	for _, entry := range payload {
		rules = append(rules, Stats.TonnageRule{
			Tyres:       entry.Tyres,
			Product:     entry.Product,
			Destination: entry.Destination,
			Ton:         entry.Ton,
		})
	}
	doc.TyreTonRules = rules

	return h.saveAndRefresh(c, doc)
}

// PlatesPayload replaces the plate lists
type PlatesPayload struct {
	LorryPlates         []string `json:"lorryPlates" validate:"required"`
	HiddenLorryPlates   []string `json:"hiddenLorryPlates"`
	ArchivedLorryPlates []string `json:"archivedLorryPlates"`
}

// UpdatePlates replaces the lorry plate lists, including hidden and archived sets
func (h *ConfigHandler) UpdatePlates(c *fiber.Ctx) error {
	var payload PlatesPayload
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid plates payload",
			"error":   err.Error(),
		})
	}
	if err := h.Validate.Struct(payload); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid plates payload",
			"error":   err.Error(),
		})
	}

	doc, err := Models.LoadConfigDocument(h.DB)
	if err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to load config",
			"error":   err.Error(),
		})
	}

	doc.LorryPlates = payload.LorryPlates
	doc.HiddenLorryPlates = payload.HiddenLorryPlates
	doc.ArchivedLorryPlates = payload.ArchivedLorryPlates
	if doc.HiddenLorryPlates == nil {
		doc.HiddenLorryPlates = []string{}
	}
	if doc.ArchivedLorryPlates == nil {
		doc.ArchivedLorryPlates = []string{}
	}

	return h.saveAndRefresh(c, doc)
}

// saveAndRefresh persists the document and rebuilds the derived rule maps.
func (h *ConfigHandler) saveAndRefresh(c *fiber.Ctx, doc Models.ConfigDocument) error {
	if err := Models.SaveConfigDocument(h.DB, doc); err != nil {
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to save config",
			"error":   err.Error(),
		})
	}
	h.Rules.Rebuild(doc)
	return c.JSON(doc)
}
