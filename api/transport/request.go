package transport

import (
	"encoding/json"
	"time"

	"github.com/rbe-platform/backend/domain"
)

// Create and update payloads. Constraint sets mirror the storage schema;
// validation runs before any storage access.

// CreateResourceRequest creates a tracked resource.
type CreateResourceRequest struct {
	Category        string          `json:"category" validate:"required,min=1,max=100"`
	Subcategory     string          `json:"subcategory" validate:"omitempty,max=100"`
	Name            string          `json:"name" validate:"required,min=1,max=200"`
	CurrentAmount   float64         `json:"current_amount" validate:"required,gt=0"`
	Unit            string          `json:"unit" validate:"required,min=1,max=50"`
	Region          string          `json:"region" validate:"omitempty,max=100"`
	SourceAPI       string          `json:"source_api" validate:"omitempty,max=200"`
	ConfidenceLevel *float64        `json:"confidence_level" validate:"omitempty,gte=0,lte=1"`
	Metadata        json.RawMessage `json:"metadata"`
}

// ToDomain converts the payload, applying the region default.
func (r CreateResourceRequest) ToDomain() *domain.Resource {
	region := r.Region
	if region == "" {
		region = domain.DefaultRegion
	}
	return &domain.Resource{
		Category:        r.Category,
		Subcategory:     r.Subcategory,
		Name:            r.Name,
		CurrentAmount:   r.CurrentAmount,
		Unit:            r.Unit,
		Region:          region,
		SourceAPI:       r.SourceAPI,
		ConfidenceLevel: r.ConfidenceLevel,
		Metadata:        r.Metadata,
	}
}

// UpdateResourceRequest partially updates a resource. All fields optional;
// an empty patch is rejected before storage.
type UpdateResourceRequest struct {
	Category        *string         `json:"category" validate:"omitempty,min=1,max=100"`
	Subcategory     *string         `json:"subcategory" validate:"omitempty,max=100"`
	Name            *string         `json:"name" validate:"omitempty,min=1,max=200"`
	CurrentAmount   *float64        `json:"current_amount" validate:"omitempty,gt=0"`
	Unit            *string         `json:"unit" validate:"omitempty,min=1,max=50"`
	Region          *string         `json:"region" validate:"omitempty,max=100"`
	SourceAPI       *string         `json:"source_api" validate:"omitempty,max=200"`
	ConfidenceLevel *float64        `json:"confidence_level" validate:"omitempty,gte=0,lte=1"`
	Metadata        json.RawMessage `json:"metadata"`
}

func (r UpdateResourceRequest) ToPatch() domain.ResourcePatch {
	return domain.ResourcePatch{
		Category:        r.Category,
		Subcategory:     r.Subcategory,
		Name:            r.Name,
		CurrentAmount:   r.CurrentAmount,
		Unit:            r.Unit,
		Region:          r.Region,
		SourceAPI:       r.SourceAPI,
		ConfidenceLevel: r.ConfidenceLevel,
		Metadata:        r.Metadata,
	}
}

// UpdatePrincipleRequest updates the implementation state of a principle.
type UpdatePrincipleRequest struct {
	Status             *string  `json:"status" validate:"omitempty,oneof=planned in_progress implemented"`
	ProgressPercentage *float64 `json:"progress_percentage" validate:"omitempty,gte=0,lte=100"`
	EvidenceLinks      []string `json:"evidence_links" validate:"omitempty,dive,url"`
	Notes              *string  `json:"notes" validate:"omitempty,max=5000"`
}

func (r UpdatePrincipleRequest) ToPatch() domain.PrinciplePatch {
	return domain.PrinciplePatch{
		Status:             r.Status,
		ProgressPercentage: r.ProgressPercentage,
		EvidenceLinks:      r.EvidenceLinks,
		Notes:              r.Notes,
	}
}

// CreateCooperationRequest records an inter-region cooperation metric.
type CreateCooperationRequest struct {
	RegionFrom      string          `json:"region_from" validate:"required,min=1,max=100"`
	RegionTo        string          `json:"region_to" validate:"omitempty,max=100"`
	CooperationType string          `json:"cooperation_type" validate:"required,min=1,max=100"`
	MetricName      string          `json:"metric_name" validate:"required,min=1,max=100"`
	MetricValue     float64         `json:"metric_value"`
	Source          string          `json:"source" validate:"omitempty,max=200"`
	Metadata        json.RawMessage `json:"metadata"`
}

func (r CreateCooperationRequest) ToDomain() *domain.CooperationMetric {
	return &domain.CooperationMetric{
		RegionFrom:      r.RegionFrom,
		RegionTo:        r.RegionTo,
		CooperationType: r.CooperationType,
		MetricName:      r.MetricName,
		MetricValue:     r.MetricValue,
		Source:          r.Source,
		Metadata:        r.Metadata,
	}
}

// CreateAutomationRequest records automation adoption for a sector.
type CreateAutomationRequest struct {
	Sector               string  `json:"sector" validate:"required,min=1,max=100"`
	Subsector            string  `json:"subsector" validate:"omitempty,max=100"`
	AutomationPercentage float64 `json:"automation_percentage" validate:"gte=0,lte=100"`
	JobsAutomated        *int    `json:"jobs_automated" validate:"omitempty,min=0"`
	JobsCreated          *int    `json:"jobs_created" validate:"omitempty,min=0"`
	Region               string  `json:"region" validate:"omitempty,max=100"`
	Notes                string  `json:"notes" validate:"omitempty,max=5000"`
}

func (r CreateAutomationRequest) ToDomain() *domain.AutomationProgress {
	region := r.Region
	if region == "" {
		region = domain.DefaultRegion
	}
	progress := &domain.AutomationProgress{
		Sector:               r.Sector,
		Subsector:            r.Subsector,
		AutomationPercentage: r.AutomationPercentage,
		Region:               region,
		Notes:                r.Notes,
	}
	if r.JobsAutomated != nil {
		progress.JobsAutomated = *r.JobsAutomated
	}
	if r.JobsCreated != nil {
		progress.JobsCreated = *r.JobsCreated
	}
	return progress
}

// CreateEnvironmentalRequest records an environmental measurement.
type CreateEnvironmentalRequest struct {
	MetricName string          `json:"metric_name" validate:"required,min=1,max=100"`
	MetricType string          `json:"metric_type" validate:"required,min=1,max=100"`
	Value      float64         `json:"value"`
	Unit       string          `json:"unit" validate:"required,min=1,max=50"`
	Region     string          `json:"region" validate:"omitempty,max=100"`
	Source     string          `json:"source" validate:"omitempty,max=200"`
	Metadata   json.RawMessage `json:"metadata"`
}

func (r CreateEnvironmentalRequest) ToDomain() *domain.EnvironmentalMetric {
	region := r.Region
	if region == "" {
		region = domain.DefaultRegion
	}
	return &domain.EnvironmentalMetric{
		MetricName: r.MetricName,
		MetricType: r.MetricType,
		Value:      r.Value,
		Unit:       r.Unit,
		Region:     region,
		Source:     r.Source,
		Metadata:   r.Metadata,
	}
}

// CreateSocialRequest records a social wellbeing measurement.
type CreateSocialRequest struct {
	MetricName string  `json:"metric_name" validate:"required,min=1,max=100"`
	Category   string  `json:"category" validate:"required,min=1,max=100"`
	Value      float64 `json:"value"`
	Region     string  `json:"region" validate:"omitempty,max=100"`
	Source     string  `json:"source" validate:"omitempty,max=200"`
}

func (r CreateSocialRequest) ToDomain() *domain.SocialMetric {
	region := r.Region
	if region == "" {
		region = domain.DefaultRegion
	}
	return &domain.SocialMetric{
		MetricName: r.MetricName,
		Category:   r.Category,
		Value:      r.Value,
		Region:     region,
		Source:     r.Source,
	}
}

// CreateCityRequest registers a circular-city project.
type CreateCityRequest struct {
	Name                      string          `json:"name" validate:"required,min=1,max=200"`
	Region                    string          `json:"region" validate:"omitempty,max=100"`
	Country                   string          `json:"country" validate:"required,min=1,max=100"`
	Status                    string          `json:"status" validate:"required,oneof=proposed planning construction operational"`
	PopulationTarget          *int64          `json:"population_target" validate:"omitempty,min=0"`
	CurrentPopulation         *int64          `json:"current_population" validate:"omitempty,min=0"`
	RenewableEnergyPercentage *float64        `json:"renewable_energy_percentage" validate:"omitempty,gte=0,lte=100"`
	WasteRecyclingPercentage  *float64        `json:"waste_recycling_percentage" validate:"omitempty,gte=0,lte=100"`
	Coordinates               json.RawMessage `json:"coordinates"`
	Metadata                  json.RawMessage `json:"metadata"`
}

func (r CreateCityRequest) ToDomain() *domain.CircularCity {
	region := r.Region
	if region == "" {
		region = domain.DefaultRegion
	}
	city := &domain.CircularCity{
		Name:                      r.Name,
		Region:                    region,
		Country:                   r.Country,
		Status:                    r.Status,
		PopulationTarget:          r.PopulationTarget,
		RenewableEnergyPercentage: r.RenewableEnergyPercentage,
		WasteRecyclingPercentage:  r.WasteRecyclingPercentage,
		Coordinates:               r.Coordinates,
		Metadata:                  r.Metadata,
	}
	if r.CurrentPopulation != nil {
		city.CurrentPopulation = *r.CurrentPopulation
	}
	return city
}

// UpdateCityRequest partially updates a circular city.
type UpdateCityRequest struct {
	Name                      *string         `json:"name" validate:"omitempty,min=1,max=200"`
	Region                    *string         `json:"region" validate:"omitempty,max=100"`
	Country                   *string         `json:"country" validate:"omitempty,min=1,max=100"`
	Status                    *string         `json:"status" validate:"omitempty,oneof=proposed planning construction operational"`
	PopulationTarget          *int64          `json:"population_target" validate:"omitempty,min=0"`
	CurrentPopulation         *int64          `json:"current_population" validate:"omitempty,min=0"`
	RenewableEnergyPercentage *float64        `json:"renewable_energy_percentage" validate:"omitempty,gte=0,lte=100"`
	WasteRecyclingPercentage  *float64        `json:"waste_recycling_percentage" validate:"omitempty,gte=0,lte=100"`
	Metadata                  json.RawMessage `json:"metadata"`
}

func (r UpdateCityRequest) ToPatch() domain.CityPatch {
	return domain.CityPatch{
		Name:                      r.Name,
		Region:                    r.Region,
		Country:                   r.Country,
		Status:                    r.Status,
		PopulationTarget:          r.PopulationTarget,
		CurrentPopulation:         r.CurrentPopulation,
		RenewableEnergyPercentage: r.RenewableEnergyPercentage,
		WasteRecyclingPercentage:  r.WasteRecyclingPercentage,
		Metadata:                  r.Metadata,
	}
}

// RegisterRequest creates an account.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Username string `json:"username" validate:"required,min=3,max=100"`
	Password string `json:"password" validate:"required,min=8,max=100"`
	Region   string `json:"region" validate:"omitempty,max=100"`
}

// LoginRequest authenticates an existing account.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8,max=100"`
}

// CreateContributionRequest submits a data point for review.
type CreateContributionRequest struct {
	ContributionType string          `json:"contribution_type" validate:"required,min=1,max=100"`
	Content          json.RawMessage `json:"content" validate:"required"`
}

func (r CreateContributionRequest) ToDomain(userID string) *domain.UserContribution {
	return &domain.UserContribution{
		UserID:           userID,
		ContributionType: r.ContributionType,
		Content:          r.Content,
	}
}

// ReviewContributionRequest approves or rejects a submitted contribution.
type ReviewContributionRequest struct {
	Status   string `json:"status" validate:"required,oneof=approved rejected"`
	Verified *bool  `json:"verified"`
}

// APIIndex is the payload for the root informational endpoint.
type APIIndex struct {
	Name      string            `json:"name"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

// HealthPayload reports process and dependency health.
type HealthPayload struct {
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"timestamp"`
	UptimeSecs float64   `json:"uptime_seconds"`
	PostgreSQL bool      `json:"postgresql"`
	Redis      bool      `json:"redis"`
}
