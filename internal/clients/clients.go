// Package clients holds the HTTP clients the services use to call each
// other's /internal endpoints. Lookups are best-effort: a miss, a non-2xx
// response and a transport error all come back as "not resolved" — callers
// decide whether that rejects a creation or nulls an enriched field.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"wheelio/internal/models"
)

const requestTimeout = 10 * time.Second

type baseClient struct {
	httpClient *http.Client
	baseURL    string
	log        *zap.Logger
}

func newBaseClient(baseURL string, log *zap.Logger) baseClient {
	return baseClient{
		httpClient: &http.Client{Timeout: requestTimeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        log,
	}
}

// getJSON fetches url and decodes the body into out. The returned bool is
// false on any failure; the failure reason is logged, never propagated.
func (c baseClient) getJSON(ctx context.Context, url string, out interface{}) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("collaborator unreachable", zap.String("url", url), zap.Error(err))
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false
	}
	if resp.StatusCode != http.StatusOK {
		c.log.Warn("collaborator returned error status", zap.String("url", url), zap.Int("status", resp.StatusCode))
		return false
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		c.log.Warn("collaborator returned bad payload", zap.String("url", url), zap.Error(err))
		return false
	}
	return true
}

// --- User service ---

type UserClient struct {
	baseClient
}

func NewUserClient(baseURL string, log *zap.Logger) *UserClient {
	return &UserClient{newBaseClient(baseURL, log)}
}

func (c *UserClient) GetUser(ctx context.Context, id string) (*models.User, bool) {
	var user models.User
	if !c.getJSON(ctx, fmt.Sprintf("%s/internal/users/%s", c.baseURL, id), &user) {
		return nil, false
	}
	return &user, true
}

func (c *UserClient) GetUsers(ctx context.Context, ids []string) []models.User {
	users := []models.User{}
	if len(ids) == 0 {
		return users
	}
	url := fmt.Sprintf("%s/internal/users?ids=%s", c.baseURL, strings.Join(ids, ","))
	c.getJSON(ctx, url, &users)
	return users
}

func (c *UserClient) GetDriver(ctx context.Context, id string) (*models.DriverProfile, bool) {
	var profile models.DriverProfile
	if !c.getJSON(ctx, fmt.Sprintf("%s/internal/drivers/%s", c.baseURL, id), &profile) {
		return nil, false
	}
	return &profile, true
}

// --- Vehicle service ---

type VehicleClient struct {
	baseClient
}

func NewVehicleClient(baseURL string, log *zap.Logger) *VehicleClient {
	return &VehicleClient{newBaseClient(baseURL, log)}
}

func (c *VehicleClient) GetVehicle(ctx context.Context, id string) (*models.Vehicle, bool) {
	var vehicle models.Vehicle
	if !c.getJSON(ctx, fmt.Sprintf("%s/internal/vehicles/%s", c.baseURL, id), &vehicle) {
		return nil, false
	}
	return &vehicle, true
}

func (c *VehicleClient) GetVehicles(ctx context.Context, ids []string) []models.Vehicle {
	vehicles := []models.Vehicle{}
	if len(ids) == 0 {
		return vehicles
	}
	url := fmt.Sprintf("%s/internal/vehicles?ids=%s", c.baseURL, strings.Join(ids, ","))
	c.getJSON(ctx, url, &vehicles)
	return vehicles
}

// --- Booking service ---

type BookingClient struct {
	baseClient
}

func NewBookingClient(baseURL string, log *zap.Logger) *BookingClient {
	return &BookingClient{newBaseClient(baseURL, log)}
}

func (c *BookingClient) GetBooking(ctx context.Context, id string) (*models.Booking, bool) {
	var booking models.Booking
	if !c.getJSON(ctx, fmt.Sprintf("%s/internal/bookings/%s", c.baseURL, id), &booking) {
		return nil, false
	}
	return &booking, true
}
