package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/botroom/internal/models"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictMissingName      ConflictType = "missing_name"
	ConflictMissingMachine   ConflictType = "missing_machine"
	ConflictUnknownPlatform  ConflictType = "unknown_platform"
	ConflictDuplicateBotName ConflictType = "duplicate_bot_name"
	ConflictInvalidTime      ConflictType = "invalid_time"
)

// Conflict represents a detected problem with a bot or the roster
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // Bot names involved
	BotIDs      []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Descriptions returns one line per conflict.
func (vr *ValidationResult) Descriptions() []string {
	out := make([]string, len(vr.Conflicts))
	for i, c := range vr.Conflicts {
		out[i] = c.Description
	}
	return out
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	report := "Conflicts detected:\n"
	for _, conflict := range vr.Conflicts {
		report += fmt.Sprintf("- %s\n", conflict.Description)
	}
	return report
}

// Validator checks drafts and working copies before they are submitted.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateDraft checks the fields a new bot must have before creation.
// An empty day set is allowed: the bot simply never runs.
func (v *Validator) ValidateDraft(d models.BotDraft) ValidationResult {
	return v.validateFields(d.Name, d.MachineName, d.Platform)
}

// ValidateRecord checks a working copy before it replaces the stored bot.
func (v *Validator) ValidateRecord(b models.BotRecord) ValidationResult {
	return v.validateFields(b.Name, b.MachineName, b.Platform)
}

func (v *Validator) validateFields(name, machine string, platform models.Platform) ValidationResult {
	var result ValidationResult
	if strings.TrimSpace(name) == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingName,
			Description: "bot name cannot be empty",
		})
	}
	if strings.TrimSpace(machine) == "" {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictMissingMachine,
			Description: "machine name cannot be empty",
			Items:       []string{name},
		})
	}
	if !platform.Valid() {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictUnknownPlatform,
			Description: fmt.Sprintf("unknown platform %q", platform),
			Items:       []string{name},
		})
	}
	return result
}

// ValidateRoster reports roster-wide warnings: bots sharing a name and
// stored windows whose times cannot be read back.
func (v *Validator) ValidateRoster(bots []models.BotRecord) ValidationResult {
	var result ValidationResult

	byName := make(map[string][]models.BotRecord)
	for _, b := range bots {
		key := strings.ToLower(strings.TrimSpace(b.Name))
		byName[key] = append(byName[key], b)
	}
	names := make([]string, 0, len(byName))
	for k := range byName {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		group := byName[k]
		if len(group) < 2 {
			continue
		}
		ids := make([]string, len(group))
		for i, b := range group {
			ids[i] = b.ID
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type:        ConflictDuplicateBotName,
			Description: fmt.Sprintf("%d bots are named %q", len(group), group[0].Name),
			Items:       []string{group[0].Name},
			BotIDs:      ids,
		})
	}

	for _, b := range bots {
		for _, ts := range []string{b.Schedule.Start, b.Schedule.End} {
			if _, err := models.ParseClockTime(ts); err != nil {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type:        ConflictInvalidTime,
					Description: fmt.Sprintf("bot %q has an unreadable time %q", b.Name, ts),
					Items:       []string{b.Name},
					BotIDs:      []string{b.ID},
				})
				break
			}
		}
	}

	return result
}
