// FilePath: internal/models/models.measurement.go
package models

import "time"

// SensorConnection is a time interval during which one sensor of a device
// was routed to a hive at an apiary. A NULL end means "still connected";
// at most one open record may exist per (device, sensor) at a time.
// Apiary-wide sensors never carry a hive id; hive-slot sensors always do.
type SensorConnection struct {
	ID        string     `json:"id" db:"id"`
	DeviceID  string     `json:"device_id" db:"device_id"`
	SensorID  int        `json:"sensor_id" db:"sensor_id"`
	ApiaryID  string     `json:"apiary_id" db:"apiary_id"`
	HiveID    *string    `json:"hive_id,omitempty" db:"hive_id"`
	StartedAt time.Time  `json:"started_at" db:"started_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty" db:"ended_at"`
}

// ActiveAt reports whether the connection covers the given instant.
func (c *SensorConnection) ActiveAt(at time.Time) bool {
	if at.Before(c.StartedAt) {
		return false
	}
	return c.EndedAt == nil || !at.After(*c.EndedAt)
}

// Measurement is one persisted sensor reading. Apiary and hive are resolved
// from the connection history at ingestion time; both are nil when the
// sensor was unassigned at the instant of measurement.
type Measurement struct {
	ID         string    `json:"id" db:"id"`
	DeviceID   string    `json:"device_id" db:"device_id"`
	SensorID   int       `json:"sensor_id" db:"sensor_id"`
	ApiaryID   *string   `json:"apiary_id,omitempty" db:"apiary_id"`
	HiveID     *string   `json:"hive_id,omitempty" db:"hive_id"`
	Value      float64   `json:"value" db:"value"`
	MeasuredAt time.Time `json:"measured_at" db:"measured_at"`
}

// MeasurementFilters narrows measurement listings. Decoded from query
// parameters by gorilla/schema.
type MeasurementFilters struct {
	DeviceID string     `schema:"device_id"`
	SensorID int        `schema:"sensor_id"`
	ApiaryID string     `schema:"apiary_id"`
	HiveID   string     `schema:"hive_id"`
	Start    *time.Time `schema:"start"`
	End      *time.Time `schema:"end"`
	Limit    int        `schema:"limit"`
}
