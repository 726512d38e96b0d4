package admin

// PeakSlot is the most heavily seated slot of a day.
type PeakSlot struct {
	Slot        int    `json:"time_slot"`
	Time        string `json:"time"`
	SeatsUsed   int    `json:"seats_used"`
	MaxCapacity int    `json:"max_capacity"`
}

// DaySummary aggregates a day's bookings for the admin dashboard.
type DaySummary struct {
	Date     string         `json:"date"`
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"by_status"`
	Covers   int            `json:"covers"`
	Peak     *PeakSlot      `json:"peak_slot,omitempty"`
}

type ForceCancelRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}
