package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func withLocation(t *testing.T, loc *time.Location) {
	t.Helper()

	previous := appLocation
	appLocation = loc

	t.Cleanup(func() { appLocation = previous })
}

func TestDateKeepsScannedDay(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	withLocation(t, west)

	// DATE columns come back from the driver as UTC midnight.
	scanned := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

	date := Date(scanned)
	assert.Equal(t, time.Date(2024, 7, 10, 0, 0, 0, 0, west), date)

	end := EndOfDate(scanned)
	assert.Equal(t, 10, end.Day())
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, west, end.Location())

	// StartOfDay converts first, which lands on the previous day here.
	assert.Equal(t, 9, StartOfDay(scanned).Day())
}

func TestDateMatchesParsedDate(t *testing.T) {
	east := time.FixedZone("UTC+8", 8*60*60)
	withLocation(t, east)

	parsed, err := ParseDate("2024-07-10")
	assert.NoError(t, err)
	assert.Equal(t, parsed, Date(parsed))
	assert.Equal(t, parsed, Date(time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)))
}

func TestNightsBetweenScannedDates(t *testing.T) {
	withLocation(t, time.FixedZone("UTC-5", -5*60*60))

	checkIn := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)
	checkOut := time.Date(2024, 7, 12, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 2, NightsBetween(checkIn, checkOut))
}
