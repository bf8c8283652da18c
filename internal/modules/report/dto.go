package report

import "staylocal/internal/repository"

type Dashboard struct {
	Users        UserCounts                `json:"users"`
	Properties   PropertyCounts            `json:"properties"`
	Reservations ReservationCounts         `json:"reservations"`
	ByStatus     []repository.StatusRollup `json:"by_status"`
	Revenue      RevenueSummary            `json:"revenue"`
	TopCities    []repository.CityCount    `json:"top_cities"`
	ByType       []repository.TypeCount    `json:"by_type"`
}

type UserCounts struct {
	Total       int64 `json:"total"`
	Travelers   int64 `json:"travelers"`
	Hosts       int64 `json:"hosts"`
	Admins      int64 `json:"admins"`
	NewThisWeek int64 `json:"new_this_week"`
}

type PropertyCounts struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
}

type ReservationCounts struct {
	Total     int64 `json:"total"`
	ThisMonth int64 `json:"this_month"`
}

type MonthlyRevenue struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Count   int64   `json:"count"`
}

type RevenueSummary struct {
	Total   float64          `json:"total"`
	Monthly []MonthlyRevenue `json:"monthly"`
}

type HostStats struct {
	Properties    *repository.HostPropertyRollup `json:"properties"`
	AverageRating float64                        `json:"average_rating"`
	ByStatus      []repository.StatusRollup      `json:"by_status"`
	Revenue       RevenueSummary                 `json:"revenue"`
}
