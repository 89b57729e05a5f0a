package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	PlanFree = "free"
	PlanPro  = "pro"
)

type User struct {
	Id        uuid.UUID
	Email     string
	Plan      string
	CreatedAt time.Time
	UpdatedAt *time.Time
}

func (u *User) IsPro() bool {
	return u.Plan == PlanPro
}
