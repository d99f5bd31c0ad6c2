package domain

import "time"

// Principle implementation statuses.
const (
	PrincipleStatusPlanned     = "planned"
	PrincipleStatusInProgress  = "in_progress"
	PrincipleStatusImplemented = "implemented"
)

// Principle tracks the implementation state of one of the 100 guiding
// principles. The set is seeded by migration; the API only updates status,
// progress, evidence and notes.
type Principle struct {
	ID                 string    `json:"id"`
	PrincipleNumber    int       `json:"principle_number"`
	PrincipleText      string    `json:"principle_text"`
	Category           string    `json:"category"`
	Status             string    `json:"status"`
	ProgressPercentage float64   `json:"progress_percentage"`
	Region             string    `json:"region"`
	EvidenceLinks      []string  `json:"evidence_links,omitempty"`
	Notes              string    `json:"notes,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
	UpdatedBy          string    `json:"updated_by,omitempty"`
}

// PrinciplePatch is the allow-list of updatable principle fields.
type PrinciplePatch struct {
	Status             *string
	ProgressPercentage *float64
	EvidenceLinks      []string
	Notes              *string
}

// Empty reports whether the patch carries no recognized fields.
func (p PrinciplePatch) Empty() bool {
	return p.Status == nil && p.ProgressPercentage == nil &&
		p.EvidenceLinks == nil && p.Notes == nil
}
