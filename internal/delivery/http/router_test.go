package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"telehealth-api/cmd/bootstrap"
	"telehealth-api/config"
	"telehealth-api/internal/delivery/dto"
	"telehealth-api/internal/domain/entity"
	"telehealth-api/internal/infrastructure/cache"
	"telehealth-api/internal/testutil"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   json.RawMessage `json:"error"`
}

var unlimited = config.RateLimitConfig{RPS: 1000, Burst: 1000}

type apiClient struct {
	t       *testing.T
	handler http.Handler
}

func newServer(t *testing.T, limit config.RateLimitConfig) (*apiClient, *gorm.DB) {
	t.Helper()

	db := testutil.NewDB(t)
	log := logrus.New()
	log.SetOutput(io.Discard)

	cfg := &config.Config{
		Cache:     config.CacheConfig{TTL: time.Minute},
		RateLimit: limit,
		Transport: config.TransportConfig{DefaultDistanceKm: 5},
	}
	h, err := bootstrap.NewHandler(cfg, db, cache.NewMemoryCache(time.Minute, time.Minute), log)
	require.NoError(t, err)
	return &apiClient{t: t, handler: h}, db
}

func (c *apiClient) do(method, path string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(c.t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestHealth(t *testing.T) {
	api, _ := newServer(t, unlimited)

	rec, env := api.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestRequestIDIsEchoed(t *testing.T) {
	api, _ := newServer(t, unlimited)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestPreflightOnWriteOnlyRoute(t *testing.T) {
	api, _ := newServer(t, unlimited)

	for _, path := range []string{"/api/consultations", "/api/consultations/1/accept", "/api/ratings"} {
		req := httptest.NewRequest(http.MethodOptions, path, nil)
		req.Header.Set("Origin", "https://app.example.com")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		api.handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"), path)
		assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodPost, path)
	}
}

func TestUnknownRoute(t *testing.T) {
	api, _ := newServer(t, unlimited)

	rec, env := api.do(http.MethodGet, "/api/nothing-here", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, env.Success)
}

func TestRegisterAndLogin(t *testing.T) {
	api, _ := newServer(t, unlimited)

	register := dto.RegisterRequest{Email: "Jane@Example.com", Password: "secret123", Name: "Jane", Role: "patient"}
	rec, env := api.do(http.MethodPost, "/api/auth/register", register)
	require.Equal(t, http.StatusOK, rec.Code)
	var account dto.AccountResponse
	decodeData(t, env, &account)
	assert.Equal(t, "jane@example.com", account.Email)

	rec, _ = api.do(http.MethodPost, "/api/auth/register", register)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "jane@example.com", Password: "wrong-password"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env = api.do(http.MethodPost, "/api/auth/login", dto.LoginRequest{Email: "jane@example.com", Password: "secret123"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
}

func TestMalformedInput(t *testing.T) {
	api, _ := newServer(t, unlimited)

	rec, env := api.do(http.MethodPost, "/api/consultations", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Invalid request body", env.Message)

	rec, env = api.do(http.MethodPost, "/api/consultations", map[string]interface{}{"patientId": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Validation failed", env.Message)
	assert.NotEmpty(t, env.Error)

	rec, _ = api.do(http.MethodGet, "/api/consultations/abc", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/consultations/42", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestConsultationAndRatingFlow(t *testing.T) {
	api, db := newServer(t, unlimited)
	patient := testutil.CreateAccount(t, db, "patient@example.com", entity.RolePatient, false)
	doctor := testutil.CreateDoctor(t, db, "doc@example.com", true, true, "0")
	offline := testutil.CreateDoctor(t, db, "offline@example.com", true, false, "0")

	rec, env := api.do(http.MethodGet, "/api/doctors/available", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var available dto.DoctorListResponse
	decodeData(t, env, &available)
	require.Len(t, available.Doctors, 1)
	assert.Equal(t, doctor.UserID, available.Doctors[0].UserID)

	rec, _ = api.do(http.MethodPost, "/api/consultations", dto.CreateConsultationRequest{
		PatientID: patient.ID, DoctorID: offline.UserID, Type: "regular", Symptoms: "fever",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = api.do(http.MethodPost, "/api/consultations", dto.CreateConsultationRequest{
		PatientID: patient.ID, DoctorID: doctor.UserID, Type: "regular", Symptoms: "fever",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var consultation dto.ConsultationResponse
	decodeData(t, env, &consultation)
	assert.Equal(t, "pending", consultation.Status)

	base := "/api/consultations/" + itoa(consultation.ID)

	rec, _ = api.do(http.MethodPost, base+"/complete", dto.CompleteConsultationRequest{})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = api.do(http.MethodPost, base+"/accept", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &consultation)
	assert.Equal(t, "active", consultation.Status)
	assert.NotNil(t, consultation.StartedAt)

	rating := dto.CreateRatingRequest{ConsultationID: consultation.ID, PatientID: patient.ID, DoctorID: doctor.UserID, Rating: 4}
	rec, _ = api.do(http.MethodPost, "/api/ratings", rating)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = api.do(http.MethodPut, base, map[string]string{"status": "completed", "diagnosis": "flu"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &consultation)
	assert.Equal(t, "completed", consultation.Status)
	assert.Equal(t, "flu", consultation.Diagnosis)
	assert.NotNil(t, consultation.EndedAt)

	rec, _ = api.do(http.MethodPost, base+"/cancel", nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rating.Rating = 9
	rec, _ = api.do(http.MethodPost, "/api/ratings", rating)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rating.Rating = 4
	rec, env = api.do(http.MethodPost, "/api/ratings", rating)
	require.Equal(t, http.StatusOK, rec.Code)
	var submitted dto.RatingResponse
	decodeData(t, env, &submitted)
	assert.Equal(t, 1, submitted.DoctorTotalRatings)
	assert.True(t, decimal.RequireFromString("4").Equal(submitted.DoctorRating))

	rec, _ = api.do(http.MethodPost, "/api/ratings", rating)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, env = api.do(http.MethodGet, "/api/consultations/patient/"+itoa(patient.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var list dto.ConsultationListResponse
	decodeData(t, env, &list)
	assert.Equal(t, 1, list.Total)
}

func TestTransportFlow(t *testing.T) {
	api, db := newServer(t, unlimited)
	patient := testutil.CreateAccount(t, db, "patient@example.com", entity.RolePatient, false)
	provider := testutil.CreateProvider(t, db, "City Ambulance", entity.TransportAmbulance, true, "4.5")

	rec, _ := api.do(http.MethodGet, "/api/transport/providers/available", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/transport/providers/available?type=helicopter", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env := api.do(http.MethodGet, "/api/transport/providers/available?type=ambulance", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var providers dto.ProviderListResponse
	decodeData(t, env, &providers)
	assert.Equal(t, 1, providers.Total)

	rec, env = api.do(http.MethodGet, "/api/transport/providers/"+itoa(provider.ID)+"/fare", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var quote dto.FareQuoteResponse
	decodeData(t, env, &quote)
	assert.True(t, decimal.RequireFromString("112.50").Equal(quote.EstimatedFare))

	rec, _ = api.do(http.MethodGet, "/api/transport/providers/"+itoa(provider.ID)+"/fare?distanceKm=far", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	fake := decimal.RequireFromString("1.00")
	rec, env = api.do(http.MethodPost, "/api/transport/bookings", dto.CreateBookingRequest{
		PatientID:       patient.ID,
		ProviderID:      provider.ID,
		Type:            "ambulance",
		PickupLocation:  "Home",
		DropoffLocation: "Hospital",
		EstimatedFare:   &fake,
		Urgency:         "high",
		ContactNumber:   "+254700000001",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	var booking dto.BookingResponse
	decodeData(t, env, &booking)
	assert.Equal(t, "pending", booking.Status)
	assert.True(t, decimal.RequireFromString("112.50").Equal(booking.EstimatedFare))

	rec, env = api.do(http.MethodGet, "/api/transport/bookings/pending", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var pending dto.BookingListResponse
	decodeData(t, env, &pending)
	assert.Equal(t, 1, pending.Total)

	base := "/api/transport/bookings/" + itoa(booking.ID)

	rec, _ = api.do(http.MethodPut, base, map[string]string{"status": "accepted", "actualFare": "90"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = api.do(http.MethodPut, base, map[string]string{"status": "arrived"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	for _, status := range []string{"accepted", "en_route", "arrived", "in_transit"} {
		rec, env = api.do(http.MethodPut, base, map[string]string{"status": status})
		require.Equal(t, http.StatusOK, rec.Code, status)
		decodeData(t, env, &booking)
		assert.Equal(t, status, booking.Status)
	}

	rec, env = api.do(http.MethodPut, base, map[string]string{"status": "completed", "actualFare": "120.00"})
	require.Equal(t, http.StatusOK, rec.Code)
	decodeData(t, env, &booking)
	assert.Equal(t, "completed", booking.Status)
	require.NotNil(t, booking.ActualFare)
	assert.True(t, decimal.RequireFromString("120").Equal(*booking.ActualFare))
	assert.NotNil(t, booking.CompletedAt)

	rec, _ = api.do(http.MethodPut, base, map[string]string{"status": "cancelled"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec, _ = api.do(http.MethodGet, "/api/transport/bookings/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRateLimit(t *testing.T) {
	api, _ := newServer(t, config.RateLimitConfig{RPS: 0.001, Burst: 1})

	rec, _ := api.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := api.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.False(t, env.Success)
}

func TestMetricsEndpoint(t *testing.T) {
	api, _ := newServer(t, unlimited)

	api.do(http.MethodGet, "/api/health", nil)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	api.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `telehealth_http_requests_total{method="GET",route="/api/health",status="200"} 1`)
}

func itoa(id int64) string {
	return strconv.FormatInt(id, 10)
}
