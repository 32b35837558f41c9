package transit_test

import (
	"testing"
	"time"

	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/transit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

func newTestRecord(t *testing.T) (*transit.Record, time.Time) {
	t.Helper()
	pickupAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	record, err := transit.NewRecord(
		kernel.NewUUID(), kernel.NewUUID(), testPoint(t, 52.52, 13.40), pickupAt)
	require.NoError(t, err)
	return record, pickupAt
}

func TestNewRecord(t *testing.T) {
	record, pickupAt := newTestRecord(t)

	assert.Equal(t, pickupAt, record.PickupDate())
	assert.False(t, record.HasDroppedOff())
	assert.Nil(t, record.DropoffPoint())
	assert.Nil(t, record.DropoffDate())
	// The trail opens with the pickup sample.
	require.Len(t, record.Movements(), 1)
	assert.Equal(t, pickupAt, record.Movements()[0].Date())
}

func TestRecord_AppendMovement(t *testing.T) {
	t.Run("appends in time order", func(t *testing.T) {
		record, pickupAt := newTestRecord(t)

		require.NoError(t, record.AppendMovement(testPoint(t, 52.53, 13.40), pickupAt.Add(5*time.Minute)))
		require.NoError(t, record.AppendMovement(testPoint(t, 52.54, 13.40), pickupAt.Add(10*time.Minute)))

		trail := record.Movements()
		require.Len(t, trail, 3)
		for i := 1; i < len(trail); i++ {
			assert.False(t, trail[i].Date().Before(trail[i-1].Date()))
		}
	})

	t.Run("equal timestamps are allowed", func(t *testing.T) {
		record, pickupAt := newTestRecord(t)

		require.NoError(t, record.AppendMovement(testPoint(t, 52.53, 13.40), pickupAt))
	})

	t.Run("out-of-order sample is rejected", func(t *testing.T) {
		record, pickupAt := newTestRecord(t)

		err := record.AppendMovement(testPoint(t, 52.53, 13.40), pickupAt.Add(-time.Minute))
		require.ErrorIs(t, err, transit.ErrMovementDateOutOfOrder)
		assert.Len(t, record.Movements(), 1)
	})

	t.Run("closed leg rejects samples", func(t *testing.T) {
		record, pickupAt := newTestRecord(t)
		require.NoError(t, record.CompleteDropoff(testPoint(t, 52.55, 13.40), pickupAt.Add(time.Hour)))

		err := record.AppendMovement(testPoint(t, 52.56, 13.40), pickupAt.Add(2*time.Hour))
		require.ErrorIs(t, err, transit.ErrRecordAlreadyDroppedOff)
	})
}

func TestRecord_CompleteDropoff(t *testing.T) {
	t.Run("sets dropoff fields once", func(t *testing.T) {
		record, pickupAt := newTestRecord(t)
		dropPoint := testPoint(t, 52.55, 13.40)
		dropAt := pickupAt.Add(30 * time.Minute)

		require.NoError(t, record.CompleteDropoff(dropPoint, dropAt))

		assert.True(t, record.HasDroppedOff())
		require.NotNil(t, record.DropoffPoint())
		require.NotNil(t, record.DropoffDate())
		assert.Equal(t, dropAt, *record.DropoffDate())

		err := record.CompleteDropoff(dropPoint, dropAt.Add(time.Minute))
		require.ErrorIs(t, err, transit.ErrRecordAlreadyDroppedOff)
	})

	t.Run("dropoff before pickup is rejected", func(t *testing.T) {
		record, pickupAt := newTestRecord(t)

		err := record.CompleteDropoff(testPoint(t, 52.55, 13.40), pickupAt.Add(-time.Minute))
		require.Error(t, err)
		assert.False(t, record.HasDroppedOff())
	})
}

func TestRecord_Restart(t *testing.T) {
	record, pickupAt := newTestRecord(t)
	require.NoError(t, record.CompleteDropoff(testPoint(t, 52.55, 13.40), pickupAt.Add(time.Hour)))

	newPickup := testPoint(t, 52.60, 13.40)
	newAt := pickupAt.Add(24 * time.Hour)
	require.NoError(t, record.Restart(newPickup, newAt))

	assert.False(t, record.HasDroppedOff())
	assert.Equal(t, newAt, record.PickupDate())
	assert.True(t, record.PickupPoint().IsEqual(newPickup))
}

func TestRestoreRecord(t *testing.T) {
	t.Run("dropoff fields must be set together", func(t *testing.T) {
		point := testPoint(t, 52.52, 13.40)
		_, err := transit.RestoreRecord(
			kernel.NewUUID(), kernel.NewUUID(), point, time.Now(), &point, nil, nil)
		require.Error(t, err)
	})

	t.Run("open record restores", func(t *testing.T) {
		point := testPoint(t, 52.52, 13.40)
		record, err := transit.RestoreRecord(
			kernel.NewUUID(), kernel.NewUUID(), point, time.Now(), nil, nil, nil)
		require.NoError(t, err)
		assert.False(t, record.HasDroppedOff())
	})
}
