package model

// Occupancy is the occupied/available/total breakdown the admin summary
// endpoint reports, either for the whole system or for a single lot.
type Occupancy struct {
	Total     int `json:"total"`
	Occupied  int `json:"occupied"`
	Available int `json:"available"`
}

// LotOccupancy is the per-lot slice of the admin summary used for the
// lots-breakdown chart.
type LotOccupancy struct {
	Name      string `json:"name"`
	Occupied  int    `json:"occupied"`
	Available int    `json:"available"`
}

// AdminSummary is the response of GET /api/admin/summary.
type AdminSummary struct {
	OverallOccupancy Occupancy      `json:"overall_occupancy"`
	LotsBreakdown    []LotOccupancy `json:"lots_breakdown"`
}

// LotRevenue is one bar of the admin revenue chart: total collected
// parking cost attributed to a lot.
type LotRevenue struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
}

// MonthlyReport is one row of the user's activity report, grouped per
// calendar month. Month is formatted "YYYY-MM". When the user has no
// history at all the backend still returns one zeroed row for the
// current month so the charts have something to draw.
type MonthlyReport struct {
	Month             string  `json:"month"`
	TotalReservations int     `json:"total_reservations"`
	TotalSpent        float64 `json:"total_spent"`
	MostUsedLot       string  `json:"most_used_lot"`
}
