package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRole(t *testing.T) {
	role, err := NormalizeRole("driver")
	require.NoError(t, err)
	assert.Equal(t, "DRIVER", role)

	role, err = NormalizeRole("Admin")
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)

	_, err = NormalizeRole("SUPERUSER")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUPERUSER")
}

func TestNormalizeVehicleStatus(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"AVAILABLE", "AVAILABLE", false},
		{"booked", "BOOKED", false},
		{"Maintenance", "MAINTENANCE", false},
		{"UNAVAILABLE", "BOOKED", false}, // documented synonym
		{"unavailable", "BOOKED", false},
		{"", "AVAILABLE", false}, // blank defaults
		{"PARKED", "", true},
	}
	for _, tt := range tests {
		got, err := NormalizeVehicleStatus(tt.input)
		if tt.wantErr {
			require.Error(t, err, "input %q", tt.input)
			assert.Contains(t, err.Error(), tt.input)
			continue
		}
		require.NoError(t, err, "input %q", tt.input)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
	}
}

func TestNormalizeVehicleType(t *testing.T) {
	got, err := NormalizeVehicleType("suv")
	require.NoError(t, err)
	assert.Equal(t, "SUV", got)

	_, err = NormalizeVehicleType("SPACESHIP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPACESHIP")
}

func TestNormalizeSeverity(t *testing.T) {
	// Blank severity stays unset rather than erroring.
	got, err := NormalizeSeverity("")
	require.NoError(t, err)
	assert.Equal(t, "", got)

	got, err = NormalizeSeverity("critical")
	require.NoError(t, err)
	assert.Equal(t, "CRITICAL", got)

	_, err = NormalizeSeverity("SEVERE")
	require.Error(t, err)
}

func TestNormalizePaymentStatus(t *testing.T) {
	// Blank defaults to SUCCESS.
	got, err := NormalizePaymentStatus("")
	require.NoError(t, err)
	assert.Equal(t, "SUCCESS", got)

	got, err = NormalizePaymentStatus("refunded")
	require.NoError(t, err)
	assert.Equal(t, "REFUNDED", got)

	_, err = NormalizePaymentStatus("PAID")
	require.Error(t, err)
}

func TestNormalizeBookingStatus(t *testing.T) {
	got, err := NormalizeBookingStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, "CANCELLED", got)

	_, err = NormalizeBookingStatus("ARCHIVED")
	require.Error(t, err)
}
