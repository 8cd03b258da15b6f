package dashboard

// SummaryResponse is the admin dashboard header.
type SummaryResponse struct {
	Date               string `json:"date"`
	TotalEmployees     int64  `json:"total_employees"`
	PunchInCount       int64  `json:"punch_in_count"`
	PunchOutCount      int64  `json:"punch_out_count"`
	PendingCorrections int64  `json:"pending_corrections"`
}
