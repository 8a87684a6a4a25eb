package models

import "time"

type User struct {
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Photo     string    `json:"photo"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"` // user, member, admin
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
