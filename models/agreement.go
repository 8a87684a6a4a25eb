package models

import "time"

type Agreement struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	ApartmentNo string    `json:"apartmentNo"`
	FloorNo     int       `json:"floorNo"`
	BlockName   string    `json:"blockName"`
	Rent        float64   `json:"rent"`
	Status      string    `json:"status"` // pending, accepted, rejected
	CreatedAt   time.Time `json:"createdAt"`
}
