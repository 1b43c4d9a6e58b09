package dto

type StatsResponse struct {
	TotalRooms        int `json:"total_rooms"`
	AvailableRooms    int `json:"available_rooms"`
	BookedRooms       int `json:"booked_rooms"`
	TodaysBookings    int `json:"todays_bookings"`
	PendingBookings   int `json:"pending_bookings"`
	ConfirmedBookings int `json:"confirmed_bookings"`
}
