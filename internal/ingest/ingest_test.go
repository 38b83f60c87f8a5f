// FilePath: internal/ingest/ingest_test.go
package ingest

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevices struct {
	devices map[string]*models.Device
}

func (f *fakeDevices) GetByIdentifier(_ context.Context, identifier string) (*models.Device, error) {
	device, ok := f.devices[identifier]
	if !ok {
		return nil, errors.NewNotFoundError("device not found", nil)
	}
	return device, nil
}

type fakeConnections struct {
	records []*models.SensorConnection
}

func (f *fakeConnections) BeginTx(context.Context) (database.Transaction, error) { return nil, nil }
func (f *fakeConnections) Create(context.Context, *models.SensorConnection, database.Transaction) error {
	return nil
}
func (f *fakeConnections) ActiveForDevice(_ context.Context, deviceID string, at time.Time) ([]*models.SensorConnection, error) {
	var active []*models.SensorConnection
	for _, record := range f.records {
		if record.DeviceID == deviceID && record.ActiveAt(at) {
			active = append(active, record)
		}
	}
	return active, nil
}
func (f *fakeConnections) OpenForDevice(context.Context, string) ([]*models.SensorConnection, error) {
	return nil, nil
}
func (f *fakeConnections) Close(context.Context, string, time.Time, database.Transaction) error {
	return nil
}
func (f *fakeConnections) DeleteByDevice(context.Context, string) error { return nil }

type fakeMeasurements struct {
	batches   [][]*models.Measurement
	lastValue map[int]float64
	insertErr error
}

func (f *fakeMeasurements) BeginTx(context.Context) (database.Transaction, error) { return nil, nil }
func (f *fakeMeasurements) InsertBatch(_ context.Context, measurements []*models.Measurement) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.batches = append(f.batches, measurements)
	return nil
}
func (f *fakeMeasurements) List(context.Context, models.MeasurementFilters) ([]*models.Measurement, error) {
	return nil, nil
}
func (f *fakeMeasurements) LastValue(_ context.Context, _ string, sensorID int, _ string, _ *string) (*float64, error) {
	value, ok := f.lastValue[sensorID]
	if !ok {
		return nil, nil
	}
	return &value, nil
}
func (f *fakeMeasurements) ClearAssignment(context.Context, string, int, string, *string, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeMeasurements) AssignUnassigned(context.Context, string, int, string, *string, time.Time) (int64, error) {
	return 0, nil
}
func (f *fakeMeasurements) DeleteByDevice(context.Context, string) error { return nil }

// body decodes a JSON document the way the callback handlers do, with
// numbers kept as json.Number.
func body(t *testing.T, raw string) map[string]any {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	data := make(map[string]any)
	require.NoError(t, decoder.Decode(&data))
	return data
}

func pushDevice() *models.Device {
	return &models.Device{ID: "dev_push", Identifier: "PUSH01", DeviceTypeID: models.DeviceTypePushScale}
}

func sigfoxDevice(typeID int) *models.Device {
	return &models.Device{ID: "dev_sfx", Identifier: "ABCD1234", DeviceTypeID: typeID}
}

func valuesBySensor(t *testing.T, measurements []*models.Measurement) map[int]float64 {
	t.Helper()
	values := make(map[int]float64, len(measurements))
	for _, m := range measurements {
		values[m.SensorID] = m.Value
	}
	return values
}

func TestGenericAdapterPersistsPresentAttributesOnly(t *testing.T) {
	measurements := &fakeMeasurements{}
	adapter := NewGenericAdapter(
		&fakeDevices{devices: map[string]*models.Device{"PUSH01": pushDevice()}},
		&fakeConnections{}, measurements, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"PUSH01","time":"2023-11-14T22:13:20+00:00","inner_temp_1":36.5}`), "")

	require.NoError(t, err)
	require.Len(t, measurements.batches, 1)
	rows := measurements.batches[0]
	require.Len(t, rows, 1)
	assert.Equal(t, 2, rows[0].SensorID)
	assert.Equal(t, 36.5, rows[0].Value)
	assert.Nil(t, rows[0].ApiaryID)
	assert.Nil(t, rows[0].HiveID)
	assert.Equal(t, time.Date(2023, 11, 14, 22, 13, 20, 0, time.UTC), rows[0].MeasuredAt.UTC())
}

func TestGenericAdapterRejectsNonNumericValue(t *testing.T) {
	measurements := &fakeMeasurements{}
	adapter := NewGenericAdapter(
		&fakeDevices{devices: map[string]*models.Device{"PUSH01": pushDevice()}},
		&fakeConnections{}, measurements, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"PUSH01","time":"2023-11-14T22:13:20Z","weight":"heavy"}`), "")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, measurements.batches)
}

func TestGenericAdapterRejectsMalformedTime(t *testing.T) {
	adapter := NewGenericAdapter(
		&fakeDevices{devices: map[string]*models.Device{"PUSH01": pushDevice()}},
		&fakeConnections{}, &fakeMeasurements{}, false)

	for _, raw := range []string{"yesterday", "2023-11-14T22:13:20", "1700000000"} {
		err := adapter.Insert(context.Background(),
			body(t, `{"device":"PUSH01","time":"`+raw+`"}`), "")
		require.Error(t, err, "time %q", raw)
		assert.True(t, errors.IsValidation(err))
	}
}

func TestGenericAdapterRejectsUnknownDevice(t *testing.T) {
	adapter := NewGenericAdapter(&fakeDevices{}, &fakeConnections{}, &fakeMeasurements{}, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"NOPE","time":"2023-11-14T22:13:20Z"}`), "")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestGenericAdapterRejectsSigfoxDevice(t *testing.T) {
	adapter := NewGenericAdapter(
		&fakeDevices{devices: map[string]*models.Device{"ABCD1234": sigfoxDevice(models.DeviceTypeGenericScale)}},
		&fakeConnections{}, &fakeMeasurements{}, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"ABCD1234","time":"2023-11-14T22:13:20Z","weight":1.5}`), "")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestGenericAdapterTagsRowsWithActiveConnection(t *testing.T) {
	hiveID := "hive_1"
	connections := &fakeConnections{records: []*models.SensorConnection{{
		ID:        "conn_1",
		DeviceID:  "dev_push",
		SensorID:  1,
		ApiaryID:  "apiary_1",
		HiveID:    &hiveID,
		StartedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}
	measurements := &fakeMeasurements{}
	adapter := NewGenericAdapter(
		&fakeDevices{devices: map[string]*models.Device{"PUSH01": pushDevice()}},
		connections, measurements, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"PUSH01","time":"2023-11-14T22:13:20Z","weight":42.1,"humidity":55}`), "")

	require.NoError(t, err)
	require.Len(t, measurements.batches, 1)
	for _, row := range measurements.batches[0] {
		switch row.SensorID {
		case 1:
			require.NotNil(t, row.ApiaryID)
			assert.Equal(t, "apiary_1", *row.ApiaryID)
			require.NotNil(t, row.HiveID)
			assert.Equal(t, hiveID, *row.HiveID)
		case 4:
			assert.Nil(t, row.ApiaryID)
			assert.Nil(t, row.HiveID)
		default:
			t.Fatalf("unexpected sensor %d", row.SensorID)
		}
	}
}

func TestTokenVerification(t *testing.T) {
	device := pushDevice()
	device.Token = "s3cret"
	devices := &fakeDevices{devices: map[string]*models.Device{"PUSH01": device}}
	raw := `{"device":"PUSH01","time":"2023-11-14T22:13:20Z","weight":1}`

	t.Run("disabled accepts any token", func(t *testing.T) {
		adapter := NewGenericAdapter(devices, &fakeConnections{}, &fakeMeasurements{}, false)
		assert.NoError(t, adapter.Insert(context.Background(), body(t, raw), "wrong"))
	})

	t.Run("enabled rejects mismatch", func(t *testing.T) {
		adapter := NewGenericAdapter(devices, &fakeConnections{}, &fakeMeasurements{}, true)
		err := adapter.Insert(context.Background(), body(t, raw), "wrong")
		require.Error(t, err)
		assert.True(t, errors.IsToken(err))
	})

	t.Run("enabled accepts match", func(t *testing.T) {
		adapter := NewGenericAdapter(devices, &fakeConnections{}, &fakeMeasurements{}, true)
		assert.NoError(t, adapter.Insert(context.Background(), body(t, raw), "s3cret"))
	})
}

func TestSigfoxAdapterEndToEnd(t *testing.T) {
	measurements := &fakeMeasurements{}
	adapter := NewSigfoxAdapter(
		&fakeDevices{devices: map[string]*models.Device{"ABCD1234": sigfoxDevice(models.DeviceTypeAceLogicScale)}},
		&fakeConnections{}, measurements, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"ABCD1234","time":1700000000,"data":"313305053333"}`), "")

	require.NoError(t, err)
	require.Len(t, measurements.batches, 1)
	rows := measurements.batches[0]
	require.Len(t, rows, 4)

	expected := time.Unix(1700000000, 0).UTC()
	for _, row := range rows {
		assert.Equal(t, "dev_sfx", row.DeviceID)
		assert.Equal(t, expected, row.MeasuredAt.UTC())
		assert.Nil(t, row.ApiaryID)
		assert.Nil(t, row.HiveID)
		assert.NotEmpty(t, row.ID)
	}
	values := valuesBySensor(t, rows)
	assert.InDelta(t, 49.2, values[models.SensorAceLogicWeight], 1e-9)
	assert.InDelta(t, 5.2, values[models.SensorAceLogicHumidity], 1e-9)
}

func TestSigfoxAdapterRejectsMalformedPayload(t *testing.T) {
	adapter := NewSigfoxAdapter(
		&fakeDevices{devices: map[string]*models.Device{"ABCD1234": sigfoxDevice(models.DeviceTypeAceLogicScale)}},
		&fakeConnections{}, &fakeMeasurements{}, false)

	for _, data := range []string{"XYZ", "0123456789012345678901234"} {
		err := adapter.Insert(context.Background(),
			body(t, `{"device":"ABCD1234","time":1700000000,"data":"`+data+`"}`), "")
		require.Error(t, err, "data %q", data)
		assert.True(t, errors.IsValidation(err))
	}
}

func TestSigfoxAdapterRejectsPushDevice(t *testing.T) {
	adapter := NewSigfoxAdapter(
		&fakeDevices{devices: map[string]*models.Device{"PUSH01": pushDevice()}},
		&fakeConnections{}, &fakeMeasurements{}, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"PUSH01","time":1700000000,"data":""}`), "")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestSigfoxAdapterMergesTransportValues(t *testing.T) {
	// Sequence sensor 11 of the generic scale is actively connected and a
	// sequence number 10 was stored before, so a message with seqNumber 15
	// records the sequence and a lost count of 4 alongside the payload.
	connections := &fakeConnections{records: []*models.SensorConnection{{
		ID:        "conn_seq",
		DeviceID:  "dev_sfx",
		SensorID:  11,
		ApiaryID:  "apiary_1",
		StartedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
	}}}
	measurements := &fakeMeasurements{lastValue: map[int]float64{11: 10}}
	adapter := NewSigfoxAdapter(
		&fakeDevices{devices: map[string]*models.Device{"ABCD1234": sigfoxDevice(models.DeviceTypeGenericScale)}},
		connections, measurements, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"ABCD1234","time":1700000000,"data":"04D28C5A3727106497640000","seqNumber":15,"avgSnr":9.5}`), "")

	require.NoError(t, err)
	require.Len(t, measurements.batches, 1)
	values := valuesBySensor(t, measurements.batches[0])

	assert.Equal(t, 9.5, values[10])
	assert.Equal(t, 15.0, values[11])
	assert.Equal(t, 4.0, values[12])
	assert.InDelta(t, 12.34, values[models.SensorGenericWeight1], 1e-9)
	assert.InDelta(t, -50.0, values[models.SensorGenericOuterTemp], 1e-9)
}

func TestSigfoxAdapterCountsLostMessagesAtMessageInstant(t *testing.T) {
	// The assignment covering the message instant has since been closed.
	// The lost count still resolves through it: backdated deliveries must
	// compare against the sequence history of the assignment they belong
	// to, not whatever is connected now.
	ended := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	connections := &fakeConnections{records: []*models.SensorConnection{{
		ID:        "conn_seq",
		DeviceID:  "dev_sfx",
		SensorID:  11,
		ApiaryID:  "apiary_1",
		StartedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndedAt:   &ended,
	}}}
	measurements := &fakeMeasurements{lastValue: map[int]float64{11: 10}}
	adapter := NewSigfoxAdapter(
		&fakeDevices{devices: map[string]*models.Device{"ABCD1234": sigfoxDevice(models.DeviceTypeGenericScale)}},
		connections, measurements, false)

	// 1700000000 is 2023-11-14, inside the closed assignment's interval.
	err := adapter.Insert(context.Background(),
		body(t, `{"device":"ABCD1234","time":1700000000,"data":"","seqNumber":15}`), "")

	require.NoError(t, err)
	require.Len(t, measurements.batches, 1)
	values := valuesBySensor(t, measurements.batches[0])
	assert.Equal(t, 15.0, values[11])
	assert.Equal(t, 4.0, values[12])
}

func TestSigfoxAdapterSkipsLostCountWithoutHistory(t *testing.T) {
	// No active connection for the sequence sensor: the sequence number is
	// still recorded but no lost count can be derived.
	measurements := &fakeMeasurements{lastValue: map[int]float64{11: 10}}
	adapter := NewSigfoxAdapter(
		&fakeDevices{devices: map[string]*models.Device{"ABCD1234": sigfoxDevice(models.DeviceTypeGenericScale)}},
		&fakeConnections{}, measurements, false)

	err := adapter.Insert(context.Background(),
		body(t, `{"device":"ABCD1234","time":1700000000,"data":"","seqNumber":15}`), "")

	require.NoError(t, err)
	require.Len(t, measurements.batches, 1)
	values := valuesBySensor(t, measurements.batches[0])
	assert.Equal(t, 15.0, values[11])
	assert.NotContains(t, values, 12)
}

func TestInsertRejectsSensorOutsideDeviceType(t *testing.T) {
	measurements := &fakeMeasurements{}
	c := &core{
		devices:      &fakeDevices{},
		connections:  &fakeConnections{},
		measurements: measurements,
	}
	device := sigfoxDevice(models.DeviceTypeAceLogicScale)
	deviceType := models.DeviceTypeByID(models.DeviceTypeAceLogicScale)

	err := c.insert(context.Background(), device, deviceType, time.Now(),
		map[int]float64{models.SensorAceLogicWeight: 12.5, 99: 1.0})

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, measurements.batches, "no rows may be written when validation fails")
}

func TestInsertRejectsDuplicateActiveConnections(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	connections := &fakeConnections{records: []*models.SensorConnection{
		{ID: "c1", DeviceID: "dev_sfx", SensorID: models.SensorAceLogicWeight, ApiaryID: "a1", StartedAt: start},
		{ID: "c2", DeviceID: "dev_sfx", SensorID: models.SensorAceLogicWeight, ApiaryID: "a2", StartedAt: start},
	}}
	measurements := &fakeMeasurements{}
	c := &core{devices: &fakeDevices{}, connections: connections, measurements: measurements}

	err := c.insert(context.Background(), sigfoxDevice(models.DeviceTypeAceLogicScale),
		models.DeviceTypeByID(models.DeviceTypeAceLogicScale), time.Now(),
		map[int]float64{models.SensorAceLogicWeight: 12.5})

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
	assert.Empty(t, measurements.batches)
}
