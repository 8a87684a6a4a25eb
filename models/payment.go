package models

import "time"

type Payment struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	ApartmentNo string    `json:"apartmentNo"`
	Month       string    `json:"month"`
	Rent        float64   `json:"rent"`
	PaidAt      time.Time `json:"paidAt"`
}
