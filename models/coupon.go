package models

import "time"

type Coupon struct {
	ID          string    `json:"id"`
	Code        string    `json:"code"`
	Discount    float64   `json:"discount"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
