// FilePath: internal/models/models.apiary.go
package models

import "time"

// Apiary is a physical site hosting one or more hives.
type Apiary struct {
	ID               string    `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Description      string    `json:"description" db:"description"`
	RegistrationCode string    `json:"registration_code" db:"registration_code"`
	Latitude         float64   `json:"latitude" db:"latitude"`
	Longitude        float64   `json:"longitude" db:"longitude"`
	CreatedAt        time.Time `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time `json:"updated_at" db:"updated_at"`
}

// Hive is one managed bee colony, located at an apiary and moveable over time.
type Hive struct {
	ID          string    `json:"id" db:"id"`
	ApiaryID    string    `json:"apiary_id" db:"apiary_id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	QueenYear   int       `json:"queen_year" db:"queen_year"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// HiveNote is a free-form inspection note attached to a hive.
type HiveNote struct {
	ID        string    `json:"id" db:"id"`
	HiveID    string    `json:"hive_id" db:"hive_id"`
	Author    string    `json:"author" db:"author"`
	Text      string    `json:"text" db:"text"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
