package models

import "time"

type Apartment struct {
	ID          string    `json:"id"`
	ApartmentNo string    `json:"apartmentNo"`
	FloorNo     int       `json:"floorNo"`
	BlockName   string    `json:"blockName"`
	Rent        float64   `json:"rent"`
	Image       string    `json:"image"`
	IsBooked    bool      `json:"isBooked"` // computed at read time, not stored
	CreatedAt   time.Time `json:"createdAt"`
}
