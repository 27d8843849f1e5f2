package models

import "time"

type Room struct {
	ID        int       `json:"id"`
	PGID      int       `json:"pg_id"`
	Number    string    `json:"number"`
	Floor     int       `json:"floor"`
	Capacity  int       `json:"capacity"`
	Beds      []*Bed    `json:"beds,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Bed struct {
	ID       int    `json:"id"`
	RoomID   int    `json:"room_id"`
	Label    string `json:"label"`
	TenantID int    `json:"tenant_id"` // 0 = vacant
}

// RoomOccupancy summarises one room for the occupancy map
type RoomOccupancy struct {
	Room         *Room `json:"room"`
	TotalBeds    int   `json:"total_beds"`
	OccupiedBeds int   `json:"occupied_beds"`
}

// CreateRoomRequest represents the request body for creating a room with beds
type CreateRoomRequest struct {
	PGID     int    `json:"pg_id"`
	Number   string `json:"number"`
	Floor    int    `json:"floor"`
	Capacity int    `json:"capacity"`
}
