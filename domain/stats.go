package domain

import "time"

// Aggregate-statistics rows. One type per grouped query so handlers and the
// client stay typed end to end.

type PrincipleStatusStat struct {
	Status      string  `json:"status"`
	Count       int64   `json:"count"`
	AvgProgress float64 `json:"avg_progress"`
}

// PrincipleSummary is the non-grouped principles aggregate.
type PrincipleSummary struct {
	ByStatus []PrincipleStatusStat `json:"by_status"`
	Total    int64                 `json:"total"`
}

type PrincipleCategoryStat struct {
	Category    string  `json:"category"`
	Total       int64   `json:"total"`
	Implemented int64   `json:"implemented"`
	InProgress  int64   `json:"in_progress"`
	Planned     int64   `json:"planned"`
	AvgProgress float64 `json:"avg_progress"`
}

type CooperationRegionStat struct {
	RegionFrom          string  `json:"region_from"`
	TotalCooperations   int64   `json:"total_cooperations"`
	AvgCooperationValue float64 `json:"avg_cooperation_value"`
	MaxCooperationValue float64 `json:"max_cooperation_value"`
}

type CooperationTypeStat struct {
	CooperationType string  `json:"cooperation_type"`
	Total           int64   `json:"total"`
	AvgValue        float64 `json:"avg_value"`
}

type AutomationSectorStat struct {
	Sector             string  `json:"sector"`
	AvgAutomation      float64 `json:"avg_automation"`
	TotalJobsAutomated int64   `json:"total_jobs_automated"`
	TotalJobsCreated   int64   `json:"total_jobs_created"`
}

type AutomationSummary struct {
	GlobalAvgAutomation float64 `json:"global_avg_automation"`
	TotalJobsAutomated  int64   `json:"total_jobs_automated"`
	TotalJobsCreated    int64   `json:"total_jobs_created"`
	SectorsTracked      int64   `json:"sectors_tracked"`
}

type EnvironmentalTypeStat struct {
	MetricType   string  `json:"metric_type"`
	TotalMetrics int64   `json:"total_metrics"`
	AvgValue     float64 `json:"avg_value"`
}

// EnvironmentalLatest is the most recent reading per metric name.
type EnvironmentalLatest struct {
	MetricName string    `json:"metric_name"`
	MetricType string    `json:"metric_type"`
	Value      float64   `json:"value"`
	Unit       string    `json:"unit"`
	Region     string    `json:"region"`
	Timestamp  time.Time `json:"timestamp"`
}

type SocialCategoryStat struct {
	Category     string  `json:"category"`
	TotalMetrics int64   `json:"total_metrics"`
	AvgValue     float64 `json:"avg_value"`
	MaxValue     float64 `json:"max_value"`
	MinValue     float64 `json:"min_value"`
}

type SocialRegionStat struct {
	Region       string  `json:"region"`
	TotalMetrics int64   `json:"total_metrics"`
	AvgValue     float64 `json:"avg_value"`
}

// SocialLatest is the most recent reading per metric name and region.
type SocialLatest struct {
	MetricName string    `json:"metric_name"`
	Category   string    `json:"category"`
	Value      float64   `json:"value"`
	Region     string    `json:"region"`
	Timestamp  time.Time `json:"timestamp"`
}

type CityStatusStat struct {
	Status                 string   `json:"status"`
	TotalCities            int64    `json:"total_cities"`
	TotalPopulationTarget  int64    `json:"total_population_target"`
	TotalCurrentPopulation int64    `json:"total_current_population"`
	AvgRenewableEnergy     *float64 `json:"avg_renewable_energy"`
	AvgWasteRecycling      *float64 `json:"avg_waste_recycling"`
}

type CitySummary struct {
	TotalCities        int64    `json:"total_cities"`
	OperationalCities  int64    `json:"operational_cities"`
	UnderConstruction  int64    `json:"under_construction"`
	InPlanning         int64    `json:"in_planning"`
	Proposed           int64    `json:"proposed"`
	TotalPopulation    int64    `json:"total_population"`
	AvgRenewableEnergy *float64 `json:"avg_renewable_energy"`
	AvgWasteRecycling  *float64 `json:"avg_waste_recycling"`
}
