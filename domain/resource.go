package domain

import (
	"encoding/json"
	"time"
)

// DefaultRegion is applied wherever a record omits its geographic scope.
const DefaultRegion = "global"

// Resource represents a tracked physical resource within a region.
type Resource struct {
	ID              string          `json:"id"`
	Category        string          `json:"category"`
	Subcategory     string          `json:"subcategory,omitempty"`
	Name            string          `json:"name"`
	CurrentAmount   float64         `json:"current_amount"`
	Unit            string          `json:"unit"`
	Region          string          `json:"region"`
	LastUpdated     time.Time       `json:"last_updated"`
	SourceAPI       string          `json:"source_api,omitempty"`
	ConfidenceLevel *float64        `json:"confidence_level,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ResourcePatch carries the subset of resource fields a partial update may touch.
// Nil pointers mean "leave as is".
type ResourcePatch struct {
	Category        *string
	Subcategory     *string
	Name            *string
	CurrentAmount   *float64
	Unit            *string
	Region          *string
	SourceAPI       *string
	ConfidenceLevel *float64
	Metadata        json.RawMessage
}

// Empty reports whether the patch carries no recognized fields.
func (p ResourcePatch) Empty() bool {
	return p.Category == nil && p.Subcategory == nil && p.Name == nil &&
		p.CurrentAmount == nil && p.Unit == nil && p.Region == nil &&
		p.SourceAPI == nil && p.ConfidenceLevel == nil && p.Metadata == nil
}
