package domain

import (
	"encoding/json"
	"time"
)

// Circular city lifecycle statuses.
const (
	CityStatusProposed     = "proposed"
	CityStatusPlanning     = "planning"
	CityStatusConstruction = "construction"
	CityStatusOperational  = "operational"
)

// CircularCity represents a tracked circular-city project.
type CircularCity struct {
	ID                        string          `json:"id"`
	Name                      string          `json:"name"`
	Region                    string          `json:"region"`
	Country                   string          `json:"country"`
	Status                    string          `json:"status"`
	PopulationTarget          *int64          `json:"population_target,omitempty"`
	CurrentPopulation         int64           `json:"current_population"`
	RenewableEnergyPercentage *float64        `json:"renewable_energy_percentage,omitempty"`
	WasteRecyclingPercentage  *float64        `json:"waste_recycling_percentage,omitempty"`
	Coordinates               json.RawMessage `json:"coordinates,omitempty"`
	Metadata                  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt                 time.Time       `json:"created_at"`
	UpdatedAt                 time.Time       `json:"updated_at"`
}

func (c *CircularCity) IsOperational() bool {
	return c != nil && c.Status == CityStatusOperational
}

// CityPatch is the allow-list of updatable circular city fields.
type CityPatch struct {
	Name                      *string
	Region                    *string
	Country                   *string
	Status                    *string
	PopulationTarget          *int64
	CurrentPopulation         *int64
	RenewableEnergyPercentage *float64
	WasteRecyclingPercentage  *float64
	Metadata                  json.RawMessage
}

// Empty reports whether the patch carries no recognized fields.
func (p CityPatch) Empty() bool {
	return p.Name == nil && p.Region == nil && p.Country == nil &&
		p.Status == nil && p.PopulationTarget == nil && p.CurrentPopulation == nil &&
		p.RenewableEnergyPercentage == nil && p.WasteRecyclingPercentage == nil &&
		p.Metadata == nil
}
