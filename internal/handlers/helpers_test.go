package handlers

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/lavanderia-scheduler/internal/domain/laundry"
)

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in   string
		want time.Duration
		err  error
	}{
		{"1h", time.Hour, nil},
		{"1h30m", 90 * time.Minute, nil},
		{"01:30", 90 * time.Minute, nil},
		{"01:30:15", 90*time.Minute + 15*time.Second, nil},
		{" 00:45 ", 45 * time.Minute, nil},
		{"0s", 0, nil},
		{"-1h", 0, laundry.ErrInvalidDuration},
		{"-01:00", 0, laundry.ErrInvalidDuration},
		{"01", 0, laundry.ErrInvalidDuration},
		{"1:2:3:4", 0, laundry.ErrInvalidDuration},
		{"aa:bb", 0, laundry.ErrInvalidDuration},
		{"", 0, laundry.ErrInvalidDuration},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseDuration(tt.in)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateTime(t *testing.T) {
	loc, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	got, err := parseDateTime("2030-06-01T10:00:00Z", loc)
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)))

	// hora local de São Paulo (UTC-3)
	for _, in := range []string{"2030-06-01T07:00", "2030-06-01 07:00", "2030-06-01T07:00:00"} {
		got, err = parseDateTime(in, loc)
		require.NoError(t, err, in)
		assert.True(t, got.Equal(time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC)), in)
	}

	_, err = parseDateTime("amanhã", loc)
	assert.ErrorIs(t, err, laundry.ErrInvalidDateTime)
}

func TestParseID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	for in, ok := range map[string]bool{"7": true, "0": false, "-1": false, "abc": false} {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Params = gin.Params{{Key: "id", Value: in}}

		id, err := parseID(c)
		if ok {
			require.NoError(t, err, in)
			assert.Equal(t, uint(7), id)
		} else {
			assert.ErrorIs(t, err, laundry.ErrInvalidRequest, in)
		}
	}
}
