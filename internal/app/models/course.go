package models

import "time"

// Course defines the course model based on the 'courses' table
type Course struct {
	ID        int64     `json:"id" db:"id" example:"1"`                    // Unique identifier for the course record
	EdxID     string    `json:"edxId" db:"edx_id" example:"course-v1:Demo"` // Platform course id (unique)
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
