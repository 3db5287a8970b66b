package models

// Overview is the admin dashboard headline summary.
type Overview struct {
	TotalClients  int64 `json:"totalClients"`
	ActiveClients int64 `json:"activeClients"`
	TotalPoints   int64 `json:"totalPoints"`
	AveragePoints int64 `json:"averagePoints"`
}

// MonthBucket is one calendar-month entry in a trend series.
type MonthBucket struct {
	Year  int   `json:"year"`
	Month int   `json:"month"`
	Count int64 `json:"count"`
}

// MonthlyTrends feeds the dashboard chart: registrations bucketed by
// creation month, active users by last-visit month. Both series are
// ascending and zero-filled over the same range.
type MonthlyTrends struct {
	Registrations []MonthBucket `json:"registrations"`
	ActiveUsers   []MonthBucket `json:"activeUsers"`
}
