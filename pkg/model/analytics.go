package model

// RoomUsage aggregates confirmed bookings of one room over a date range.
type RoomUsage struct {
	RoomID       string  `json:"room_id"`
	RoomName     string  `json:"room_name"`
	TotalHours   float64 `json:"total_hours"`
	TotalRevenue float64 `json:"total_revenue"`
}
