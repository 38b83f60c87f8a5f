// FilePath: internal/hubservice/hubservice.device_test.go
package hubservice

import (
	"context"
	"testing"
	"time"

	"github.com/eibon93/vcelstva-hub/internal/errors"
	"github.com/eibon93/vcelstva-hub/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func connectFixture() *fixture {
	f := newFixture()
	f.apiaries.items["ap1"] = &models.Apiary{ID: "ap1", Name: "Orchard"}
	f.apiaries.items["ap2"] = &models.Apiary{ID: "ap2", Name: "Meadow"}
	f.hives.items["hv1"] = &models.Hive{ID: "hv1", ApiaryID: "ap1", Name: "Hive 1"}
	f.hives.items["hv2"] = &models.Hive{ID: "hv2", ApiaryID: "ap2", Name: "Hive 2"}
	f.devices.items["dev1"] = &models.Device{
		ID: "dev1", Identifier: "ABCD1234", Name: "Scale", DeviceTypeID: models.DeviceTypeGenericScale,
	}
	return f
}

func TestConnectDeviceRoutesSensorsByPlacement(t *testing.T) {
	f := connectFixture()
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	created, err := f.svc.ConnectDevice(context.Background(), "dev1", ConnectRequest{
		ApiaryID: "ap1",
		Hives:    map[models.Placement]string{models.PlacementHive1: "hv1"},
		At:       &at,
	})
	require.NoError(t, err)

	// Generic scale: 4 apiary-wide sensors, 4 sensors on slot 1, 4 on the
	// unused slot 2.
	require.Len(t, created, 8)
	for _, record := range created {
		assert.Equal(t, "dev1", record.DeviceID)
		assert.Equal(t, "ap1", record.ApiaryID)
		assert.Equal(t, at, record.StartedAt)
		assert.Nil(t, record.EndedAt)

		sensor := models.DeviceTypeByID(models.DeviceTypeGenericScale).SensorByID(record.SensorID)
		require.NotNil(t, sensor)
		if sensor.Placement == models.PlacementApiary {
			assert.Nil(t, record.HiveID)
		} else {
			assert.Equal(t, models.PlacementHive1, sensor.Placement)
			require.NotNil(t, record.HiveID)
			assert.Equal(t, "hv1", *record.HiveID)
		}
	}

	// Measurements ingested unassigned since the instant get the new tags.
	assert.Len(t, f.measurements.assigned, 8)
	for _, call := range f.measurements.assigned {
		assert.Equal(t, "ap1", call.apiaryID)
		assert.Equal(t, at, call.since)
	}
}

func TestConnectDeviceClosesPreviousAssignment(t *testing.T) {
	f := connectFixture()
	oldHive := "hv2"
	f.connections.records = []*models.SensorConnection{{
		ID: "cn_old", DeviceID: "dev1", SensorID: models.SensorGenericWeight1,
		ApiaryID: "ap2", HiveID: &oldHive,
		StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	_, err := f.svc.ConnectDevice(context.Background(), "dev1", ConnectRequest{
		ApiaryID: "ap1",
		Hives:    map[models.Placement]string{models.PlacementHive1: "hv1"},
		At:       &at,
	})
	require.NoError(t, err)

	old := f.connections.records[0]
	require.NotNil(t, old.EndedAt)
	assert.Equal(t, at, *old.EndedAt)

	// Stale rows written under the old assignment after the move instant
	// are detached.
	require.Len(t, f.measurements.cleared, 1)
	cleared := f.measurements.cleared[0]
	assert.Equal(t, models.SensorGenericWeight1, cleared.sensorID)
	assert.Equal(t, "ap2", cleared.apiaryID)
	require.NotNil(t, cleared.hiveID)
	assert.Equal(t, "hv2", *cleared.hiveID)
	assert.Equal(t, at, cleared.since)
}

func TestConnectDeviceRejectsHiveAtOtherApiary(t *testing.T) {
	f := connectFixture()

	_, err := f.svc.ConnectDevice(context.Background(), "dev1", ConnectRequest{
		ApiaryID: "ap1",
		Hives:    map[models.Placement]string{models.PlacementHive1: "hv2"},
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Empty(t, f.connections.created)
}

func TestConnectDeviceRejectsUnusedSlot(t *testing.T) {
	f := connectFixture()

	_, err := f.svc.ConnectDevice(context.Background(), "dev1", ConnectRequest{
		ApiaryID: "ap1",
		Hives:    map[models.Placement]string{models.PlacementHive3: "hv1"},
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestConnectDeviceRejectsInstantBeforeOpenRecord(t *testing.T) {
	f := connectFixture()
	f.connections.records = []*models.SensorConnection{{
		ID: "cn_old", DeviceID: "dev1", SensorID: models.SensorGenericWeight1,
		ApiaryID:  "ap1",
		StartedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}}
	at := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	_, err := f.svc.ConnectDevice(context.Background(), "dev1", ConnectRequest{
		ApiaryID: "ap1",
		At:       &at,
	})

	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
	assert.Nil(t, f.connections.records[0].EndedAt)
}

func TestDisconnectDeviceClosesAndDetaches(t *testing.T) {
	f := connectFixture()
	hive := "hv1"
	f.connections.records = []*models.SensorConnection{
		{
			ID: "cn1", DeviceID: "dev1", SensorID: models.SensorGenericWeight1,
			ApiaryID: "ap1", HiveID: &hive,
			StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			ID: "cn2", DeviceID: "dev1", SensorID: models.SensorGenericOuterTemp,
			ApiaryID:  "ap1",
			StartedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, f.svc.DisconnectDevice(context.Background(), "dev1", &at))

	for _, record := range f.connections.records {
		require.NotNil(t, record.EndedAt)
		assert.Equal(t, at, *record.EndedAt)
	}
	assert.Len(t, f.measurements.cleared, 2)
	assert.Empty(t, f.measurements.assigned)
}
