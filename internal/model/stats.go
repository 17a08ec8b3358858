package model

type TypeCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

type MonthCount struct {
	Month string `json:"month"`
	Count int    `json:"count"`
}

// DashboardStats feeds the admin dashboard charts.
type DashboardStats struct {
	TotalEvents   int          `json:"total_events"`
	TotalUsers    int64        `json:"total_users"`
	ByType        []TypeCount  `json:"by_type"`
	ByMonth       []MonthCount `json:"by_month"`
	GrowthPercent float64      `json:"growth_percent"`
	Upcoming      int          `json:"upcoming"`
	Latest        *Event       `json:"latest,omitempty"`
}
