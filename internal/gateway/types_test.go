package gateway

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampShapes(t *testing.T) {
	var b struct {
		A Timestamp `json:"a"`
		B Timestamp `json:"b"`
		C Timestamp `json:"c"`
		D Timestamp `json:"d"`
		E Timestamp `json:"e"`
	}
	raw := `{"a":"2025-08-25T08:30:00","b":1756110600000,"c":"Unknown","d":null,"e":"2025-08-25T08:30:00Z"}`
	require.NoError(t, json.Unmarshal([]byte(raw), &b))

	assert.True(t, b.A.Equal(time.Date(2025, 8, 25, 8, 30, 0, 0, time.Local)))
	assert.Equal(t, int64(1756110600000), b.B.UnixMilli())
	assert.True(t, b.C.IsZero())
	assert.Equal(t, "Unknown", b.C.Raw)
	assert.True(t, b.D.IsZero())
	assert.Equal(t, time.UTC, b.E.Location())

	assert.False(t, b.C.Before(time.Now()), "unknown departures are never in the past")
	assert.True(t, b.A.Before(time.Date(2030, 1, 1, 0, 0, 0, 0, time.Local)))
}

func TestAdminUserFlagSpellings(t *testing.T) {
	var users []AdminUser
	raw := `[{"id":1,"blocked":true,"verified":false},{"id":2,"isBlocked":false,"isVerified":true}]`
	require.NoError(t, json.Unmarshal([]byte(raw), &users))

	assert.True(t, users[0].Blocked)
	assert.False(t, users[0].Verified)
	assert.False(t, users[1].Blocked)
	assert.True(t, users[1].Verified)
}

func TestAdminRideKeepsRawRecord(t *testing.T) {
	var ride AdminRide
	raw := `{"rideId":5,"source":"A","destination":"B","fare":100,"seatsFilled":3,"bookings":[]}`
	require.NoError(t, json.Unmarshal([]byte(raw), &ride))

	assert.Equal(t, int64(5), ride.RideID)
	assert.Equal(t, "A", ride.Source)
	assert.EqualValues(t, 100, ride.Record["fare"])
}

func TestPaymentStatusSpellings(t *testing.T) {
	var p Payment
	require.NoError(t, json.Unmarshal([]byte(`{"paymentId":9,"status":"PENDING"}`), &p))
	assert.Equal(t, "PENDING", p.PaymentStatus)
}
