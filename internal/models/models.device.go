// FilePath: internal/models/models.device.go
package models

import "time"

// Technology is the transmission technology of a device type.
type Technology string

const (
	TechSigfox Technology = "sigfox"
	TechPush   Technology = "push"
	TechPull   Technology = "pull"
)

// Placement tags a sensor as measuring the whole apiary or one hive slot.
type Placement string

const (
	PlacementApiary Placement = "apiary"
	PlacementHive1  Placement = "hive_1"
	PlacementHive2  Placement = "hive_2"
	PlacementHive3  Placement = "hive_3"
	PlacementHive4  Placement = "hive_4"
	PlacementHive5  Placement = "hive_5"
	PlacementHive6  Placement = "hive_6"
	PlacementHive7  Placement = "hive_7"
	PlacementHive8  Placement = "hive_8"
	PlacementHive9  Placement = "hive_9"
	PlacementHive10 Placement = "hive_10"
)

// Well-known physical quantity ids shared by all Sigfox device types.
const (
	QuantityWeight           = 1
	QuantityTemperature      = 2
	QuantityHumidity         = 3
	QuantitySignalQuality    = 4
	QuantityAvgSnr           = 5
	QuantitySequenceNumber   = 6
	QuantityLostMessageCount = 7
)

// Sensor is one configured measurement channel of a device type. The id is
// part of the wire contract: binary decoders emit values keyed by these ids.
type Sensor struct {
	ID           int       `json:"id" db:"id"`
	DeviceTypeID int       `json:"device_type_id" db:"device_type_id"`
	QuantityID   int       `json:"quantity_id" db:"quantity_id"`
	Name         string    `json:"name" db:"name"`
	Unit         string    `json:"unit" db:"unit"`
	Placement    Placement `json:"placement" db:"placement"`
	// Attr names the JSON key this sensor reads from on push devices.
	// Empty for sensors fed by binary payloads or protocol metadata.
	Attr string `json:"attr,omitempty" db:"attr"`
}

// DeviceType describes a family of telemetry units: how they transmit and
// which sensors they carry. Types are static configuration, not user data.
type DeviceType struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Technology Technology `json:"technology"`
	Sensors    []Sensor   `json:"sensors"`
}

// SensorByID returns the sensor with the given id, or nil.
func (t *DeviceType) SensorByID(id int) *Sensor {
	for i := range t.Sensors {
		if t.Sensors[i].ID == id {
			return &t.Sensors[i]
		}
	}
	return nil
}

// SensorByQuantity returns the first sensor measuring the given quantity,
// or nil if the type does not carry one.
func (t *DeviceType) SensorByQuantity(quantityID int) *Sensor {
	for i := range t.Sensors {
		if t.Sensors[i].QuantityID == quantityID {
			return &t.Sensors[i]
		}
	}
	return nil
}

// Device is a physical telemetry unit (hive scale) owned by a beekeeper.
// Identifier and type are immutable after creation; name and token may change.
type Device struct {
	ID           string    `json:"id" db:"id"`
	Identifier   string    `json:"identifier" db:"identifier"`
	Token        string    `json:"token,omitempty" db:"token"`
	Name         string    `json:"name" db:"name"`
	DeviceTypeID int       `json:"device_type_id" db:"device_type_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
