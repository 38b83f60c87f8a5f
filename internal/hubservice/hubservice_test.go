// FilePath: internal/hubservice/hubservice_test.go
package hubservice

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/database"
	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTx struct{}

func (mockTx) Commit() error   { return nil }
func (mockTx) Rollback() error { return nil }
func (mockTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

type mockApiaries struct {
	items map[string]*models.Apiary
}

func (m *mockApiaries) BeginTx(context.Context) (database.Transaction, error) { return mockTx{}, nil }
func (m *mockApiaries) Create(_ context.Context, apiary *models.Apiary) error {
	m.items[apiary.ID] = apiary
	return nil
}
func (m *mockApiaries) Get(_ context.Context, id string) (*models.Apiary, error) {
	apiary, ok := m.items[id]
	if !ok {
		return nil, errors.NewNotFoundError("apiary not found", nil)
	}
	return apiary, nil
}
func (m *mockApiaries) Update(_ context.Context, apiary *models.Apiary) error {
	m.items[apiary.ID] = apiary
	return nil
}
func (m *mockApiaries) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}
func (m *mockApiaries) List(context.Context, int, int) ([]*models.Apiary, error) { return nil, nil }

type mockHives struct {
	items map[string]*models.Hive
}

func (m *mockHives) BeginTx(context.Context) (database.Transaction, error) { return mockTx{}, nil }
func (m *mockHives) Create(_ context.Context, hive *models.Hive) error {
	m.items[hive.ID] = hive
	return nil
}
func (m *mockHives) Get(_ context.Context, id string) (*models.Hive, error) {
	hive, ok := m.items[id]
	if !ok {
		return nil, errors.NewNotFoundError("hive not found", nil)
	}
	return hive, nil
}
func (m *mockHives) Update(_ context.Context, hive *models.Hive) error {
	m.items[hive.ID] = hive
	return nil
}
func (m *mockHives) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}
func (m *mockHives) List(context.Context, int, int) ([]*models.Hive, error) { return nil, nil }
func (m *mockHives) ListByApiary(_ context.Context, apiaryID string) ([]*models.Hive, error) {
	var hives []*models.Hive
	for _, hive := range m.items {
		if hive.ApiaryID == apiaryID {
			hives = append(hives, hive)
		}
	}
	return hives, nil
}

type mockNotes struct {
	items map[string]*models.HiveNote
}

func (m *mockNotes) BeginTx(context.Context) (database.Transaction, error) { return mockTx{}, nil }
func (m *mockNotes) Create(_ context.Context, note *models.HiveNote) error {
	m.items[note.ID] = note
	return nil
}
func (m *mockNotes) List(context.Context, string, int, int) ([]*models.HiveNote, error) {
	return nil, nil
}
func (m *mockNotes) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}
func (m *mockNotes) DeleteByHive(_ context.Context, hiveID string) error {
	for id, note := range m.items {
		if note.HiveID == hiveID {
			delete(m.items, id)
		}
	}
	return nil
}

type mockDevices struct {
	items map[string]*models.Device
}

func (m *mockDevices) BeginTx(context.Context) (database.Transaction, error) { return mockTx{}, nil }
func (m *mockDevices) Create(_ context.Context, device *models.Device) error {
	m.items[device.ID] = device
	return nil
}
func (m *mockDevices) Get(_ context.Context, id string) (*models.Device, error) {
	device, ok := m.items[id]
	if !ok {
		return nil, errors.NewNotFoundError("device not found", nil)
	}
	return device, nil
}
func (m *mockDevices) GetByIdentifier(_ context.Context, identifier string) (*models.Device, error) {
	for _, device := range m.items {
		if device.Identifier == identifier {
			return device, nil
		}
	}
	return nil, errors.NewNotFoundError("device not found", nil)
}
func (m *mockDevices) Update(_ context.Context, device *models.Device) error {
	m.items[device.ID] = device
	return nil
}
func (m *mockDevices) Delete(_ context.Context, id string) error {
	delete(m.items, id)
	return nil
}
func (m *mockDevices) List(context.Context, int, int) ([]*models.Device, error) { return nil, nil }

type mockConnections struct {
	records []*models.SensorConnection
	created []*models.SensorConnection
}

func (m *mockConnections) BeginTx(context.Context) (database.Transaction, error) {
	return mockTx{}, nil
}
func (m *mockConnections) Create(_ context.Context, conn *models.SensorConnection, _ database.Transaction) error {
	m.records = append(m.records, conn)
	m.created = append(m.created, conn)
	return nil
}
func (m *mockConnections) ActiveForDevice(_ context.Context, deviceID string, at time.Time) ([]*models.SensorConnection, error) {
	var active []*models.SensorConnection
	for _, record := range m.records {
		if record.DeviceID == deviceID && record.ActiveAt(at) {
			active = append(active, record)
		}
	}
	return active, nil
}
func (m *mockConnections) OpenForDevice(_ context.Context, deviceID string) ([]*models.SensorConnection, error) {
	var open []*models.SensorConnection
	for _, record := range m.records {
		if record.DeviceID == deviceID && record.EndedAt == nil {
			open = append(open, record)
		}
	}
	return open, nil
}
func (m *mockConnections) Close(_ context.Context, id string, at time.Time, _ database.Transaction) error {
	for _, record := range m.records {
		if record.ID == id {
			ended := at
			record.EndedAt = &ended
			return nil
		}
	}
	return errors.NewNotFoundError("connection not found", nil)
}
func (m *mockConnections) DeleteByDevice(_ context.Context, deviceID string) error {
	kept := m.records[:0]
	for _, record := range m.records {
		if record.DeviceID != deviceID {
			kept = append(kept, record)
		}
	}
	m.records = kept
	return nil
}

type retagCall struct {
	sensorID int
	apiaryID string
	hiveID   *string
	since    time.Time
}

type mockMeasurements struct {
	stored   []*models.Measurement
	cleared  []retagCall
	assigned []retagCall
	deleted  []string
}

func (m *mockMeasurements) BeginTx(context.Context) (database.Transaction, error) {
	return mockTx{}, nil
}
func (m *mockMeasurements) InsertBatch(context.Context, []*models.Measurement) error { return nil }
func (m *mockMeasurements) List(_ context.Context, filters models.MeasurementFilters) ([]*models.Measurement, error) {
	if filters.Limit > 0 && len(m.stored) > filters.Limit {
		return m.stored[:filters.Limit], nil
	}
	return m.stored, nil
}
func (m *mockMeasurements) LastValue(context.Context, string, int, string, *string) (*float64, error) {
	return nil, nil
}
func (m *mockMeasurements) ClearAssignment(_ context.Context, _ string, sensorID int, apiaryID string, hiveID *string, since time.Time) (int64, error) {
	m.cleared = append(m.cleared, retagCall{sensorID, apiaryID, hiveID, since})
	return 1, nil
}
func (m *mockMeasurements) AssignUnassigned(_ context.Context, _ string, sensorID int, apiaryID string, hiveID *string, since time.Time) (int64, error) {
	m.assigned = append(m.assigned, retagCall{sensorID, apiaryID, hiveID, since})
	return 1, nil
}
func (m *mockMeasurements) DeleteByDevice(_ context.Context, deviceID string) error {
	m.deleted = append(m.deleted, deviceID)
	return nil
}

type fixture struct {
	svc          *HubService
	apiaries     *mockApiaries
	hives        *mockHives
	notes        *mockNotes
	devices      *mockDevices
	connections  *mockConnections
	measurements *mockMeasurements
}

func newFixture() *fixture {
	f := &fixture{
		apiaries:     &mockApiaries{items: map[string]*models.Apiary{}},
		hives:        &mockHives{items: map[string]*models.Hive{}},
		notes:        &mockNotes{items: map[string]*models.HiveNote{}},
		devices:      &mockDevices{items: map[string]*models.Device{}},
		connections:  &mockConnections{},
		measurements: &mockMeasurements{},
	}
	f.svc = New(f.apiaries, f.hives, f.notes, f.devices, f.connections, f.measurements, nil)
	return f
}

func TestCreateApiaryAssignsIDAndTimestamps(t *testing.T) {
	f := newFixture()
	apiary := &models.Apiary{Name: "Orchard"}

	require.NoError(t, f.svc.CreateApiary(context.Background(), apiary))

	assert.NotEmpty(t, apiary.ID)
	assert.False(t, apiary.CreatedAt.IsZero())
	assert.Contains(t, f.apiaries.items, apiary.ID)
}

func TestCreateApiaryRequiresName(t *testing.T) {
	f := newFixture()

	err := f.svc.CreateApiary(context.Background(), &models.Apiary{})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestDeleteApiaryRefusesWhileHostingHives(t *testing.T) {
	f := newFixture()
	f.apiaries.items["ap1"] = &models.Apiary{ID: "ap1", Name: "Orchard"}
	f.hives.items["hv1"] = &models.Hive{ID: "hv1", ApiaryID: "ap1", Name: "Hive 1"}

	err := f.svc.DeleteApiary(context.Background(), "ap1")

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Contains(t, f.apiaries.items, "ap1")
}

func TestCreateHiveRequiresExistingApiary(t *testing.T) {
	f := newFixture()

	err := f.svc.CreateHive(context.Background(), &models.Hive{Name: "Hive 1", ApiaryID: "missing"})

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}

func TestDeleteHiveCascadesNotes(t *testing.T) {
	f := newFixture()
	f.apiaries.items["ap1"] = &models.Apiary{ID: "ap1", Name: "Orchard"}
	f.hives.items["hv1"] = &models.Hive{ID: "hv1", ApiaryID: "ap1", Name: "Hive 1"}
	f.notes.items["hn1"] = &models.HiveNote{ID: "hn1", HiveID: "hv1", Text: "queen seen"}
	f.notes.items["hn2"] = &models.HiveNote{ID: "hn2", HiveID: "other", Text: "unrelated"}

	require.NoError(t, f.svc.DeleteHive(context.Background(), "hv1"))

	assert.NotContains(t, f.hives.items, "hv1")
	assert.NotContains(t, f.notes.items, "hn1")
	assert.Contains(t, f.notes.items, "hn2")
}

func TestCreateDeviceRejectsUnknownType(t *testing.T) {
	f := newFixture()

	err := f.svc.CreateDevice(context.Background(), &models.Device{
		Identifier: "ABCD1234", Name: "Scale", DeviceTypeID: 99,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestUpdateDeviceKeepsIdentifierAndType(t *testing.T) {
	f := newFixture()
	f.devices.items["dev1"] = &models.Device{
		ID: "dev1", Identifier: "ABCD1234", Name: "Scale", DeviceTypeID: models.DeviceTypeAceLogicScale,
	}

	update := &models.Device{ID: "dev1", Identifier: "CHANGED", Name: "Renamed", DeviceTypeID: 1}
	require.NoError(t, f.svc.UpdateDevice(context.Background(), update))

	stored := f.devices.items["dev1"]
	assert.Equal(t, "ABCD1234", stored.Identifier)
	assert.Equal(t, models.DeviceTypeAceLogicScale, stored.DeviceTypeID)
	assert.Equal(t, "Renamed", stored.Name)
}

func TestDeleteDeviceCascades(t *testing.T) {
	f := newFixture()
	f.devices.items["dev1"] = &models.Device{ID: "dev1", Identifier: "ABCD1234", Name: "Scale", DeviceTypeID: 3}
	f.connections.records = []*models.SensorConnection{{
		ID: "cn1", DeviceID: "dev1", SensorID: 31, ApiaryID: "ap1",
		StartedAt: time.Now().Add(-time.Hour),
	}}

	require.NoError(t, f.svc.DeleteDevice(context.Background(), "dev1"))

	assert.NotContains(t, f.devices.items, "dev1")
	assert.Empty(t, f.connections.records)
	assert.Equal(t, []string{"dev1"}, f.measurements.deleted)
}

func TestListMeasurementsRequiresAFilter(t *testing.T) {
	f := newFixture()

	_, err := f.svc.ListMeasurements(context.Background(), models.MeasurementFilters{})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestLatestMeasurementReturnsNewestRow(t *testing.T) {
	f := newFixture()
	f.measurements.stored = []*models.Measurement{
		{ID: "ms2", DeviceID: "dev1", SensorID: 31, Value: 48.3},
		{ID: "ms1", DeviceID: "dev1", SensorID: 31, Value: 47.1},
	}

	latest, err := f.svc.LatestMeasurement(context.Background(), models.MeasurementFilters{DeviceID: "dev1"})

	require.NoError(t, err)
	assert.Equal(t, "ms2", latest.ID)
}

func TestLatestMeasurementWithoutHistory(t *testing.T) {
	f := newFixture()

	_, err := f.svc.LatestMeasurement(context.Background(), models.MeasurementFilters{DeviceID: "dev1"})

	require.Error(t, err)
	assert.True(t, errors.IsNotFound(err))
}
