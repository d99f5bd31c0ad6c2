package domain

import (
	"encoding/json"
	"time"
)

// CooperationMetric measures an inter-region cooperation signal.
type CooperationMetric struct {
	ID              string          `json:"id"`
	RegionFrom      string          `json:"region_from"`
	RegionTo        string          `json:"region_to,omitempty"`
	CooperationType string          `json:"cooperation_type"`
	MetricName      string          `json:"metric_name"`
	MetricValue     float64         `json:"metric_value"`
	Timestamp       time.Time       `json:"timestamp"`
	Source          string          `json:"source,omitempty"`
	Metadata        json.RawMessage `json:"metadata,omitempty"`
}

// AutomationProgress records automation adoption within an economic sector.
type AutomationProgress struct {
	ID                   string    `json:"id"`
	Sector               string    `json:"sector"`
	Subsector            string    `json:"subsector,omitempty"`
	AutomationPercentage float64   `json:"automation_percentage"`
	JobsAutomated        int       `json:"jobs_automated"`
	JobsCreated          int       `json:"jobs_created"`
	Region               string    `json:"region"`
	Timestamp            time.Time `json:"timestamp"`
	Notes                string    `json:"notes,omitempty"`
}

// EnvironmentalMetric is a single environmental measurement.
type EnvironmentalMetric struct {
	ID         string          `json:"id"`
	MetricName string          `json:"metric_name"`
	MetricType string          `json:"metric_type"`
	Value      float64         `json:"value"`
	Unit       string          `json:"unit"`
	Region     string          `json:"region"`
	Timestamp  time.Time       `json:"timestamp"`
	Source     string          `json:"source,omitempty"`
	Metadata   json.RawMessage `json:"metadata,omitempty"`
}

// SocialMetric is a single social wellbeing measurement.
type SocialMetric struct {
	ID         string    `json:"id"`
	MetricName string    `json:"metric_name"`
	Category   string    `json:"category"`
	Value      float64   `json:"value"`
	Region     string    `json:"region"`
	Timestamp  time.Time `json:"timestamp"`
	Source     string    `json:"source,omitempty"`
}
