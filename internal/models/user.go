package models

import "time"

const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	FullName     string    `gorm:"size:255" json:"full_name"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

func ValidRole(role string) bool {
	return role == RoleCandidate || role == RoleRecruiter || role == RoleAdmin
}
