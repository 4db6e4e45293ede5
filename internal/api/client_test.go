package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

// sampleResponse returns a valid Al Adhan API response for testing.
func sampleResponse() Response {
	return Response{
		Code:   200,
		Status: "OK",
		Data: Data{
			Timings: Timings{
				Fajr:    "04:51",
				Sunrise: "06:09",
				Dhuhr:   "11:59",
				Asr:     "15:19",
				Sunset:  "17:48",
				Maghrib: "17:48",
				Isha:    "19:18",
			},
			Date: DateInfo{
				Readable:  "16 Oct 2026",
				Timestamp: "1792137600",
			},
			Meta: Meta{
				Timezone: "Asia/Riyadh",
				Method:   MethodInfo{ID: 99, Name: "Custom"},
			},
		},
	}
}

func testDate() time.Time {
	return time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient("", 0)
	if c == nil {
		t.Fatal("NewClient returned nil")
	}
	if c.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", c.BaseURL, DefaultBaseURL)
	}
	if c.httpClient.Timeout != defaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.httpClient.Timeout, defaultTimeout)
	}
}

func TestNewClient_Overrides(t *testing.T) {
	c := NewClient("http://example.test/v1", 3*time.Second)
	if c.BaseURL != "http://example.test/v1" {
		t.Errorf("BaseURL = %q", c.BaseURL)
	}
	if c.httpClient.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", c.httpClient.Timeout)
	}
}

func TestFetchByCity_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.URL.Path, "/timingsByCity/16-10-2026") {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("city") != "Makkah" {
			t.Errorf("city = %q, want %q", q.Get("city"), "Makkah")
		}
		if q.Get("country") != "SA" {
			t.Errorf("country = %q, want %q", q.Get("country"), "SA")
		}
		if q.Get("method") != "99" {
			t.Errorf("method = %q, want %q", q.Get("method"), "99")
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)

	got, err := c.FetchByCity(context.Background(), testDate(), "Makkah", "SA", CalculationMethod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings.Fajr != "04:51" {
		t.Errorf("Fajr = %q, want %q", got.Data.Timings.Fajr, "04:51")
	}
	if got.Data.Meta.Timezone != "Asia/Riyadh" {
		t.Errorf("Timezone = %q, want %q", got.Data.Meta.Timezone, "Asia/Riyadh")
	}
}

func TestFetchByCity_IgnoresExtraFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"code":200,"status":"OK","data":{"timings":{
			"Fajr":"04:51","Sunrise":"06:09","Dhuhr":"11:59","Asr":"15:19",
			"Sunset":"17:48","Maghrib":"17:48","Isha":"19:18",
			"Imsak":"04:41","Midnight":"23:59","Firstthird":"21:55"}}}`))
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)
	got, err := c.FetchByCity(context.Background(), testDate(), "Madina", "SA", CalculationMethod)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Data.Timings.Isha != "19:18" {
		t.Errorf("Isha = %q, want %q", got.Data.Timings.Isha, "19:18")
	}
}

func TestFetchByCity_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)
	_, err := c.FetchByCity(context.Background(), testDate(), "Makkah", "SA", CalculationMethod)
	if err == nil {
		t.Fatal("expected error for HTTP 503, got nil")
	}
	if !errors.Is(err, ErrStatus) {
		t.Errorf("error should wrap ErrStatus, got: %v", err)
	}
	if !strings.Contains(err.Error(), "503") {
		t.Errorf("error should mention 503, got: %v", err)
	}
}

func TestFetchByCity_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)
	_, err := c.FetchByCity(context.Background(), testDate(), "Makkah", "SA", CalculationMethod)
	if err == nil {
		t.Fatal("expected error for invalid JSON, got nil")
	}
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("error should wrap ErrMalformed, got: %v", err)
	}
	if !strings.Contains(err.Error(), "decode") {
		t.Errorf("error should mention decode, got: %v", err)
	}
}

func TestFetchByCity_NonOKStatus(t *testing.T) {
	resp := Response{Code: 400, Status: "Bad Request"}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	c := NewClient(server.URL, 0)
	_, err := c.FetchByCity(context.Background(), testDate(), "Nowhere", "XX", CalculationMethod)
	if err == nil {
		t.Fatal("expected error for non-OK status, got nil")
	}
	if !errors.Is(err, ErrStatus) {
		t.Errorf("error should wrap ErrStatus, got: %v", err)
	}
	if !strings.Contains(err.Error(), "400") {
		t.Errorf("error should mention 400, got: %v", err)
	}
}

func TestFetchByCity_ConnectionRefused(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", 0) // nothing listening

	_, err := c.FetchByCity(context.Background(), testDate(), "Makkah", "SA", CalculationMethod)
	if err == nil {
		t.Fatal("expected error for connection refused, got nil")
	}
	if !errors.Is(err, ErrTransport) {
		t.Errorf("error should wrap ErrTransport, got: %v", err)
	}
}

func TestFetchByCity_ContextCanceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(sampleResponse())
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(server.URL, 0)
	_, err := c.FetchByCity(ctx, testDate(), "Makkah", "SA", CalculationMethod)
	if !errors.Is(err, ErrTransport) {
		t.Fatalf("expected ErrTransport for canceled context, got: %v", err)
	}
}
