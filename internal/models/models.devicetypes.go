// FilePath: internal/models/models.devicetypes.go
package models

// Device type ids. Types 1, 4 and 5 push their readings as plain JSON
// attributes; types 2 and 3 transmit binary payloads over Sigfox.
const (
	DeviceTypePushScale     = 1
	DeviceTypeGenericScale  = 2
	DeviceTypeAceLogicScale = 3
	DeviceTypePushStation   = 4
	DeviceTypePushLogger    = 5
)

// GenericAdapterTypeIDs lists the device types accepted on the generic
// (push) ingestion endpoint.
var GenericAdapterTypeIDs = []int{DeviceTypePushScale, DeviceTypePushStation, DeviceTypePushLogger}

// Sensor ids of the generic Sigfox scale protocol. These sensors MUST exist
// on device type 2; the binary decoder emits values keyed by them.
const (
	SensorGenericWeight1     = 13
	SensorGenericInnerTemp11 = 14
	SensorGenericInnerTemp12 = 15
	SensorGenericHumidity1   = 16
	SensorGenericWeight2     = 20
	SensorGenericInnerTemp21 = 21
	SensorGenericInnerTemp22 = 22
	SensorGenericHumidity2   = 23
	SensorGenericOuterTemp   = 27
)

// Sensor ids of the AceLogic scale protocol (device type 3).
const (
	SensorAceLogicWeight     = 31
	SensorAceLogicInnerTemp1 = 32
	SensorAceLogicInnerTemp2 = 33
	SensorAceLogicHumidity   = 34
)

var deviceTypes = map[int]*DeviceType{
	DeviceTypePushScale: {
		ID:         DeviceTypePushScale,
		Name:       "Push hive scale",
		Technology: TechPush,
		Sensors: []Sensor{
			{ID: 1, DeviceTypeID: 1, QuantityID: QuantityWeight, Name: "Weight", Unit: "kg", Placement: PlacementHive1, Attr: "weight"},
			{ID: 2, DeviceTypeID: 1, QuantityID: QuantityTemperature, Name: "Inner temperature 1", Unit: "°C", Placement: PlacementHive1, Attr: "inner_temp_1"},
			{ID: 3, DeviceTypeID: 1, QuantityID: QuantityTemperature, Name: "Inner temperature 2", Unit: "°C", Placement: PlacementHive1, Attr: "inner_temp_2"},
			{ID: 4, DeviceTypeID: 1, QuantityID: QuantityHumidity, Name: "Inner humidity", Unit: "%", Placement: PlacementHive1, Attr: "humidity"},
			{ID: 5, DeviceTypeID: 1, QuantityID: QuantityTemperature, Name: "Outer temperature", Unit: "°C", Placement: PlacementApiary, Attr: "outer_temp"},
		},
	},
	DeviceTypeGenericScale: {
		ID:         DeviceTypeGenericScale,
		Name:       "Generic Sigfox scale",
		Technology: TechSigfox,
		Sensors: []Sensor{
			{ID: 10, DeviceTypeID: 2, QuantityID: QuantityAvgSnr, Name: "Average SNR", Unit: "dB", Placement: PlacementApiary},
			{ID: 11, DeviceTypeID: 2, QuantityID: QuantitySequenceNumber, Name: "Sequence number", Unit: "", Placement: PlacementApiary},
			{ID: 12, DeviceTypeID: 2, QuantityID: QuantityLostMessageCount, Name: "Lost messages", Unit: "", Placement: PlacementApiary},
			{ID: SensorGenericWeight1, DeviceTypeID: 2, QuantityID: QuantityWeight, Name: "Weight 1", Unit: "kg", Placement: PlacementHive1},
			{ID: SensorGenericInnerTemp11, DeviceTypeID: 2, QuantityID: QuantityTemperature, Name: "Inner temperature 1.1", Unit: "°C", Placement: PlacementHive1},
			{ID: SensorGenericInnerTemp12, DeviceTypeID: 2, QuantityID: QuantityTemperature, Name: "Inner temperature 1.2", Unit: "°C", Placement: PlacementHive1},
			{ID: SensorGenericHumidity1, DeviceTypeID: 2, QuantityID: QuantityHumidity, Name: "Inner humidity 1", Unit: "%", Placement: PlacementHive1},
			{ID: SensorGenericWeight2, DeviceTypeID: 2, QuantityID: QuantityWeight, Name: "Weight 2", Unit: "kg", Placement: PlacementHive2},
			{ID: SensorGenericInnerTemp21, DeviceTypeID: 2, QuantityID: QuantityTemperature, Name: "Inner temperature 2.1", Unit: "°C", Placement: PlacementHive2},
			{ID: SensorGenericInnerTemp22, DeviceTypeID: 2, QuantityID: QuantityTemperature, Name: "Inner temperature 2.2", Unit: "°C", Placement: PlacementHive2},
			{ID: SensorGenericHumidity2, DeviceTypeID: 2, QuantityID: QuantityHumidity, Name: "Inner humidity 2", Unit: "%", Placement: PlacementHive2},
			{ID: SensorGenericOuterTemp, DeviceTypeID: 2, QuantityID: QuantityTemperature, Name: "Outer temperature", Unit: "°C", Placement: PlacementApiary},
		},
	},
	DeviceTypeAceLogicScale: {
		ID:         DeviceTypeAceLogicScale,
		Name:       "AceLogic hive scale",
		Technology: TechSigfox,
		Sensors: []Sensor{
			{ID: 36, DeviceTypeID: 3, QuantityID: QuantityAvgSnr, Name: "Average SNR", Unit: "dB", Placement: PlacementApiary},
			{ID: 37, DeviceTypeID: 3, QuantityID: QuantitySequenceNumber, Name: "Sequence number", Unit: "", Placement: PlacementApiary},
			{ID: 38, DeviceTypeID: 3, QuantityID: QuantityLostMessageCount, Name: "Lost messages", Unit: "", Placement: PlacementApiary},
			{ID: SensorAceLogicWeight, DeviceTypeID: 3, QuantityID: QuantityWeight, Name: "Weight", Unit: "kg", Placement: PlacementHive1},
			{ID: SensorAceLogicInnerTemp1, DeviceTypeID: 3, QuantityID: QuantityTemperature, Name: "Inner temperature 1", Unit: "°C", Placement: PlacementHive1},
			{ID: SensorAceLogicInnerTemp2, DeviceTypeID: 3, QuantityID: QuantityTemperature, Name: "Inner temperature 2", Unit: "°C", Placement: PlacementHive1},
			{ID: SensorAceLogicHumidity, DeviceTypeID: 3, QuantityID: QuantityHumidity, Name: "Inner humidity", Unit: "%", Placement: PlacementHive1},
		},
	},
	DeviceTypePushStation: {
		ID:         DeviceTypePushStation,
		Name:       "Push weather station",
		Technology: TechPush,
		Sensors: []Sensor{
			{ID: 41, DeviceTypeID: 4, QuantityID: QuantityTemperature, Name: "Outer temperature", Unit: "°C", Placement: PlacementApiary, Attr: "outer_temp"},
			{ID: 42, DeviceTypeID: 4, QuantityID: QuantityHumidity, Name: "Outer humidity", Unit: "%", Placement: PlacementApiary, Attr: "humidity"},
		},
	},
	DeviceTypePushLogger: {
		ID:         DeviceTypePushLogger,
		Name:       "Push data logger",
		Technology: TechPush,
		Sensors: []Sensor{
			{ID: 51, DeviceTypeID: 5, QuantityID: QuantityWeight, Name: "Weight", Unit: "kg", Placement: PlacementHive1, Attr: "weight"},
			{ID: 52, DeviceTypeID: 5, QuantityID: QuantityTemperature, Name: "Inner temperature", Unit: "°C", Placement: PlacementHive1, Attr: "inner_temp_1"},
			{ID: 53, DeviceTypeID: 5, QuantityID: QuantityHumidity, Name: "Inner humidity", Unit: "%", Placement: PlacementHive1, Attr: "humidity"},
			{ID: 54, DeviceTypeID: 5, QuantityID: QuantityTemperature, Name: "Outer temperature", Unit: "°C", Placement: PlacementApiary, Attr: "outer_temp"},
		},
	},
}

// DeviceTypeByID returns the static configuration of a device type, or nil
// if the id is unknown.
func DeviceTypeByID(id int) *DeviceType {
	return deviceTypes[id]
}

// DeviceTypes returns all configured device types.
func DeviceTypes() []*DeviceType {
	types := make([]*DeviceType, 0, len(deviceTypes))
	for _, t := range deviceTypes {
		types = append(types, t)
	}
	return types
}
