package dao

import (
	"encoding/binary"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecWidths(t *testing.T) {
	assert.Equal(t, 144, UserCodec(LayoutV2).Width())
	assert.Equal(t, 140, UserCodec(LayoutV1).Width())
	assert.Equal(t, 212, EventCodec().Width())
	assert.Equal(t, 148, StaffCodec().Width())
	assert.Equal(t, 164, VendorCodec().Width())
	assert.Equal(t, 24, RegistrationCodec().Width())
}

func TestEventRoundTrip(t *testing.T) {
	// Scenario A record.
	in := Event{
		ID:          1,
		OrgID:       7,
		Name:        "Summer Fest",
		Venue:       "Central Park",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
		TotalSeats:  500,
		SoldTickets: 0,
		Type:        1,
	}
	buf := EventCodec().Encode(in)
	require.Len(t, buf, 212)

	assert.Equal(t, int32(500), int32(binary.LittleEndian.Uint32(buf[200:])))
	assert.Equal(t, int32(1), int32(binary.LittleEndian.Uint32(buf[208:])))
	assert.Equal(t, []byte{0, 0}, buf[198:200])

	out, err := EventCodec().Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestRegistrationRoundTrip(t *testing.T) {
	in := Registration{CustomerID: 42, EventID: 1, TicketNumber: 10532, FeeStatus: "Unpaid"}
	buf := RegistrationCodec().Encode(in)
	require.Len(t, buf, 24)
	assert.Equal(t, "Unpaid\x00\x00\x00\x00", string(buf[12:22]))

	out, err := RegistrationCodec().Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "Unpaid", out.FeeStatus)
	assert.Equal(t, in, out)
}

func TestRoundTripEveryEntity(t *testing.T) {
	long := func(n int) string { return strings.Repeat("x", n) }

	t.Run("user max width", func(t *testing.T) {
		in := User{ID: 999, Name: long(49), Email: long(49), Username: long(19), Password: long(19)}
		out, err := UserCodec(LayoutV2).Decode(UserCodec(LayoutV2).Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("user empty strings", func(t *testing.T) {
		in := User{ID: 100}
		out, err := UserCodec(LayoutV2).Decode(UserCodec(LayoutV2).Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("legacy user", func(t *testing.T) {
		in := User{ID: 321, Name: "Bob", Email: "bob@example.com", Username: "bob", Password: long(15)}
		out, err := UserCodec(LayoutV1).Decode(UserCodec(LayoutV1).Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("staff", func(t *testing.T) {
		in := Staff{ID: 512, EventID: 1, Name: "Dana", Email: "dana@example.com", Team: long(19), Position: "Lead"}
		out, err := StaffCodec().Decode(StaffCodec().Encode(in))
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("vendor", func(t *testing.T) {
		in := Vendor{ID: 640, EventID: 1, Name: "Food Co", Email: "food@example.com", ProductService: long(49), ChargesDue: 1250.5}
		buf := VendorCodec().Encode(in)
		assert.Equal(t, float32(1250.5), math.Float32frombits(binary.LittleEndian.Uint32(buf[160:])))

		out, err := VendorCodec().Decode(buf)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestEncodeTruncatesToWidthMinusOne(t *testing.T) {
	in := Staff{ID: 1, Name: strings.Repeat("n", 80), Team: strings.Repeat("t", 25)}
	buf := StaffCodec().Encode(in)
	require.Len(t, buf, 148)
	assert.Equal(t, byte(0), buf[8+49])
	assert.Equal(t, byte(0), buf[108+19])

	out, err := StaffCodec().Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("n", 49), out.Name)
	assert.Equal(t, strings.Repeat("t", 19), out.Team)
}

func TestDecodeStopsAtFirstZero(t *testing.T) {
	buf := UserCodec(LayoutV2).Encode(User{ID: 5, Name: "Alice"})
	// Bytes after the terminator are never part of the value.
	copy(buf[4+6:], "garbage")

	out, err := UserCodec(LayoutV2).Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "Alice", out.Name)
}

func TestDecodeSingleByteText(t *testing.T) {
	buf := UserCodec(LayoutV2).Encode(User{ID: 5})
	buf[4] = 0xE9

	out, err := UserCodec(LayoutV2).Decode(buf)
	require.NoError(t, err)
	assert.Equal(t, "é", out.Name)
}

func TestDecodeShortBuffer(t *testing.T) {
	_, err := EventCodec().Decode(make([]byte, 100))
	assert.ErrorIs(t, err, ErrShortRecord)
}
