package domain

// HistorySummary describes the current state of one history file.
type HistorySummary struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	Rows      int    `json:"rows"`
	FirstDate string `json:"first_date,omitempty"`
	LastDate  string `json:"last_date,omitempty"`
}
