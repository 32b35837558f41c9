package commands_test

import (
	"testing"
	"time"

	"relay/internal/core/domain/model/account"
	"relay/internal/core/domain/model/kernel"
	"relay/internal/core/domain/model/pack"

	"github.com/stretchr/testify/require"
)

// One degree of latitude is about 111195 meters with the haversine Earth
// radius, so latitude offsets give predictable test distances.
const degreesPerMeterLat = 1.0 / 111194.93

func mustGeoPoint(t *testing.T, lat, lon float64) kernel.GeoPoint {
	t.Helper()
	point, err := kernel.NewGeoPoint(lat, lon)
	require.NoError(t, err)
	return point
}

// pointAtDistance returns a point the given number of meters due north of base.
func pointAtDistance(t *testing.T, base kernel.GeoPoint, meters float64) kernel.GeoPoint {
	t.Helper()
	return mustGeoPoint(t, base.Latitude()+meters*degreesPerMeterLat, base.Longitude())
}

func testContent(t *testing.T, destination kernel.GeoPoint, topicName string, topicID kernel.UUID) pack.Content {
	t.Helper()

	recipient, err := pack.NewRecipient("City Council", "", "", "", "")
	require.NoError(t, err)

	dest, err := pack.NewDestination("Town Hall", "1 Main Square", destination)
	require.NoError(t, err)

	topicRef, err := pack.NewTopicRef(topicName, topicID)
	require.NoError(t, err)

	content, err := pack.NewContent(
		"environment",
		"Save the river",
		"A petition carried by hand",
		time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC),
		recipient,
		dest,
		topicRef,
		"",
		"Thanks for carrying!",
		nil,
	)
	require.NoError(t, err)
	return content
}

func testAccount(t *testing.T, id kernel.UUID, name string, balance int) *account.Account {
	t.Helper()
	acc, err := account.NewAccount(
		id, name, "", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), balance)
	require.NoError(t, err)
	return acc
}
