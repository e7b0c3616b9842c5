package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrice(t *testing.T) {
	cases := map[string]string{
		"₹80":       "80",
		"₹1299":     "1299",
		"Rs. 1,299": "1299",
		"45/-":      "45",
		"12.50":     "12.5",
	}
	for display, want := range cases {
		amount, err := ParsePrice(display)
		require.NoError(t, err, display)
		assert.True(t, amount.Equal(decimal.RequireFromString(want)), "%s parsed as %s", display, amount)
	}

	for _, bad := range []string{"", "free", "₹", "1.2.3"} {
		_, err := ParsePrice(bad)
		assert.ErrorIs(t, err, ErrInvalidPrice, bad)
	}
}

func TestTimestampReadsLegacyLayouts(t *testing.T) {
	var rec struct {
		RegistrationDate Timestamp `json:"registrationDate"`
		BookingDate      Timestamp `json:"bookingDate"`
	}
	data := `{"registrationDate":"2025-01-01T00:00:00","bookingDate":"2025-03-04T10:11:12.123456"}`
	require.NoError(t, json.Unmarshal([]byte(data), &rec))

	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), rec.RegistrationDate.Time)
	assert.Equal(t, time.Date(2025, 3, 4, 10, 11, 12, 123456000, time.UTC), rec.BookingDate.Time)

	out, err := json.Marshal(rec.RegistrationDate)
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-01T00:00:00Z"`, string(out))
}

func TestTimestampScan(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.Scan([]byte("2025-01-01 08:30:00")))
	assert.Equal(t, 8, ts.Hour())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	v, err := ts.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestFlexString(t *testing.T) {
	var body struct {
		Quantity FlexString `json:"quantity"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"quantity":"2 packets"}`), &body))
	assert.Equal(t, FlexString("2 packets"), body.Quantity)

	require.NoError(t, json.Unmarshal([]byte(`{"quantity":3}`), &body))
	assert.Equal(t, FlexString("3"), body.Quantity)

	assert.Error(t, json.Unmarshal([]byte(`{"quantity":{}}`), &body))
}

func TestStorePatchApply(t *testing.T) {
	name := "New Name"
	store := Store{ShopName: "Old", Email: "a@b.com"}
	patch := StorePatch{ShopName: &name}

	assert.False(t, patch.IsEmpty())
	patch.Apply(&store)
	assert.Equal(t, "New Name", store.ShopName)
	assert.Equal(t, "a@b.com", store.Email)
	assert.True(t, StorePatch{}.IsEmpty())
}
