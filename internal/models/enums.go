package models

import (
	"fmt"
	"strings"
)

// Allowed values per enum field. Input is matched case-insensitively and
// stored in the canonical uppercase form; anything else is rejected at the
// handler boundary.
var (
	UserRoles              = []string{"ADMIN", "DRIVER", "USER", "STAFF"}
	DriverStatuses         = []string{"ACTIVE", "ON_TRIP", "INACTIVE"}
	VehicleTypes           = []string{"SEDAN", "SUV", "HATCHBACK", "TRUCK", "VAN", "BIKE", "SCOOTER"}
	VehicleStatuses        = []string{"AVAILABLE", "BOOKED", "MAINTENANCE"}
	BookingStatuses        = []string{"PENDING", "CONFIRMED", "COMPLETED", "CANCELLED"}
	BookingPaymentStatuses = []string{"PENDING", "PAID", "REFUNDED"}
	PaymentStatuses        = []string{"CREATED", "SUCCESS", "FAILED", "REFUNDED"}
	ReportSeverities       = []string{"LOW", "MEDIUM", "HIGH", "CRITICAL"}
	ReportStatuses         = []string{"OPEN", "INVESTIGATING", "ESTIMATED", "RESOLVED", "PAID"}
)

func normalizeEnum(field, value string, allowed []string) (string, error) {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("invalid %s '%s', must be one of %s", field, value, strings.Join(allowed, ", "))
}

func NormalizeRole(value string) (string, error) {
	return normalizeEnum("role", value, UserRoles)
}

func NormalizeDriverStatus(value string) (string, error) {
	return normalizeEnum("driver status", value, DriverStatuses)
}

func NormalizeVehicleType(value string) (string, error) {
	return normalizeEnum("vehicle type", value, VehicleTypes)
}

// NormalizeVehicleStatus maps the UNAVAILABLE synonym to BOOKED and defaults
// a blank status to AVAILABLE.
func NormalizeVehicleStatus(value string) (string, error) {
	if value == "" {
		return "AVAILABLE", nil
	}
	if strings.EqualFold(value, "UNAVAILABLE") {
		return "BOOKED", nil
	}
	return normalizeEnum("vehicle status", value, VehicleStatuses)
}

func NormalizeBookingStatus(value string) (string, error) {
	return normalizeEnum("booking status", value, BookingStatuses)
}

func NormalizeBookingPaymentStatus(value string) (string, error) {
	return normalizeEnum("payment status", value, BookingPaymentStatuses)
}

// NormalizePaymentStatus defaults a blank status to SUCCESS: payment records
// are created after the external processor already captured the charge.
func NormalizePaymentStatus(value string) (string, error) {
	if value == "" {
		return "SUCCESS", nil
	}
	return normalizeEnum("payment status", value, PaymentStatuses)
}

// NormalizeSeverity keeps a blank severity unset rather than rejecting it.
func NormalizeSeverity(value string) (string, error) {
	if value == "" {
		return "", nil
	}
	return normalizeEnum("severity", value, ReportSeverities)
}

func NormalizeReportStatus(value string) (string, error) {
	return normalizeEnum("report status", value, ReportStatuses)
}
