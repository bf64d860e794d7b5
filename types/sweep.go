package types

// SweepResult summarizes one missed-task sweep run.
type SweepResult struct {
	AlertsCreated int `json:"alerts_created" description:"Alerts created by this run, after deduplication"`
}
