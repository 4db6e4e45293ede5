package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/smokyabdulrahman/salat-clock/internal/api"
	"github.com/smokyabdulrahman/salat-clock/internal/city"
	"github.com/smokyabdulrahman/salat-clock/internal/prayer"
)

var today = time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)

func sampleTimings() prayer.Timings {
	return prayer.Timings{"05:00", "12:00", "15:30", "18:00", "19:30"}
}

func mustCity(t *testing.T, name string) city.City {
	t.Helper()
	c, err := city.Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

// fakeFetcher returns a canned response or error.
type fakeFetcher struct {
	resp  *api.Response
	err   error
	calls []string
}

func (f *fakeFetcher) FetchByCity(_ context.Context, _ time.Time, city, country string, method int) (*api.Response, error) {
	f.calls = append(f.calls, city+"/"+country)
	if method != api.CalculationMethod {
		return nil, errors.New("unexpected method")
	}
	return f.resp, f.err
}

func okResponse() *api.Response {
	return &api.Response{
		Code:   200,
		Status: "OK",
		Data: api.Data{
			Timings: api.Timings{Fajr: "05:00", Dhuhr: "12:00", Asr: "15:30", Maghrib: "18:00", Isha: "19:30"},
			Date: api.DateInfo{Hijri: api.HijriDate{
				Day: "4", Month: api.HijriMonth{En: "Jumādá al-ūlá"}, Year: "1448",
			}},
		},
	}
}

func TestNew_StartsEmpty(t *testing.T) {
	b := New(city.Default())
	if b.HasData() {
		t.Error("new board should have no data")
	}
	if got := b.Snapshot(today.Add(16 * time.Hour)); got != (Countdown{}) {
		t.Errorf("Snapshot with no data = %+v, want zero", got)
	}
}

func TestApply_Success(t *testing.T) {
	b := New(city.Default())
	req := b.Select(mustCity(t, "Madina"), today)

	if !b.Apply(Result{Request: req, Timings: sampleTimings(), Hijri: "4 Jumada 1448 AH"}) {
		t.Fatal("Apply should accept the latest result")
	}
	if !b.HasData() {
		t.Fatal("expected data after Apply")
	}
	shown, ok := b.Shown()
	if !ok || shown.Name != "Madina" {
		t.Errorf("Shown() = %v, %v", shown.Name, ok)
	}
	if b.Hijri() != "4 Jumada 1448 AH" {
		t.Errorf("Hijri() = %q", b.Hijri())
	}
}

func TestSelect_ClearsImmediately(t *testing.T) {
	b := New(city.Default())
	first := b.Select(city.Default(), today)
	b.Apply(Result{Request: first, Timings: sampleTimings()})

	pending := b.Select(mustCity(t, "Algeria"), today)
	if b.HasData() {
		t.Fatal("Select must clear timings before the fetch resolves")
	}
	if b.Snapshot(today.Add(16*time.Hour)).HasData {
		t.Error("countdown should be inert while fetch is pending")
	}
	if pending.Gen != first.Gen+1 {
		t.Errorf("generation = %d, want %d", pending.Gen, first.Gen+1)
	}
	if pending.ID == first.ID || pending.ID == "" {
		t.Errorf("request ids should be unique, got %q and %q", first.ID, pending.ID)
	}
}

func TestApply_DropsStaleResult(t *testing.T) {
	b := New(city.Default())
	stale := b.Select(mustCity(t, "Makkah"), today)
	latest := b.Select(mustCity(t, "Algeria"), today)

	// The older fetch completes after the newer selection.
	if b.Apply(Result{Request: stale, Timings: sampleTimings()}) {
		t.Fatal("stale result should be rejected")
	}
	if b.HasData() {
		t.Fatal("stale result must not install timings")
	}

	if !b.Apply(Result{Request: latest, Timings: sampleTimings()}) {
		t.Fatal("latest result should be accepted")
	}
	if shown, _ := b.Shown(); shown.Name != "Algeria" {
		t.Errorf("shown city = %q, want Algeria", shown.Name)
	}
}

func TestApply_FailureLeavesEmpty(t *testing.T) {
	b := New(city.Default())
	req := b.Select(city.Default(), today)

	fetchErr := errors.New("boom")
	if !b.Apply(Result{Request: req, Err: fetchErr}) {
		t.Fatal("failure of the latest request should be applied")
	}
	if b.HasData() {
		t.Error("timings must stay empty after a failure")
	}
	if !errors.Is(b.Err(), fetchErr) {
		t.Errorf("Err() = %v, want %v", b.Err(), fetchErr)
	}

	b.DismissError()
	if b.Err() != nil {
		t.Error("DismissError should clear the error")
	}
}

func TestRefresh_KeepsCity(t *testing.T) {
	b := New(mustCity(t, "Madina"))
	req := b.Refresh(today)
	if req.City.Name != "Madina" || req.Gen != 1 {
		t.Errorf("Refresh() = %+v", req)
	}
}

func TestSnapshot(t *testing.T) {
	b := New(city.Default())
	req := b.Select(city.Default(), today)
	b.Apply(Result{Request: req, Timings: sampleTimings()})

	tests := []struct {
		name string
		now  time.Time
		want Countdown
	}{
		{
			name: "afternoon",
			now:  time.Date(2026, 10, 16, 16, 0, 0, 0, time.UTC),
			want: Countdown{HasData: true, Next: prayer.Next{Index: 3, Name: "Maghrib", At: prayer.Clock{Hour: 18}}, Hours: 2, Minutes: 0, Seconds: 59},
		},
		{
			name: "after isha",
			now:  time.Date(2026, 10, 16, 20, 0, 0, 0, time.UTC),
			want: Countdown{HasData: true, Next: prayer.Next{Index: 0, Name: "Fajr", At: prayer.Clock{Hour: 5}, Tomorrow: true}, Hours: 9, Minutes: 0, Seconds: 59},
		},
		{
			name: "mid minute",
			now:  time.Date(2026, 10, 16, 11, 20, 45, 0, time.UTC),
			want: Countdown{HasData: true, Next: prayer.Next{Index: 1, Name: "Dhuhr", At: prayer.Clock{Hour: 12}}, Hours: 0, Minutes: 39, Seconds: 14},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.Snapshot(tt.now); got != tt.want {
				t.Errorf("Snapshot() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFetch_Success(t *testing.T) {
	f := &fakeFetcher{resp: okResponse()}
	b := New(city.Default())
	req := b.Select(mustCity(t, "Algeria"), today)

	res := Fetch(context.Background(), f, req, false, zerolog.Nop())
	if res.Err != nil {
		t.Fatalf("unexpected error: %v", res.Err)
	}
	if res.Timings != sampleTimings() {
		t.Errorf("Timings = %v", res.Timings)
	}
	if res.Hijri != "4 Jumādá al-ūlá 1448 AH" {
		t.Errorf("Hijri = %q", res.Hijri)
	}
	if len(f.calls) != 1 || f.calls[0] != "Algeria/DZ" {
		t.Errorf("calls = %v, want one call for Algeria/DZ", f.calls)
	}
}

func TestFetch_TransportError(t *testing.T) {
	f := &fakeFetcher{err: api.ErrTransport}
	b := New(city.Default())
	req := b.Select(city.Default(), today)

	res := Fetch(context.Background(), f, req, false, zerolog.Nop())
	if !errors.Is(res.Err, api.ErrTransport) {
		t.Fatalf("Err = %v, want ErrTransport", res.Err)
	}

	b.Apply(res)
	if b.HasData() {
		t.Error("timings must stay empty after a failed fetch")
	}
}

func TestFetch_IncompleteTimingsIsMalformed(t *testing.T) {
	resp := okResponse()
	resp.Data.Timings.Isha = ""
	f := &fakeFetcher{resp: resp}
	req := New(city.Default()).Select(city.Default(), today)

	res := Fetch(context.Background(), f, req, false, zerolog.Nop())
	if !errors.Is(res.Err, api.ErrMalformed) {
		t.Fatalf("Err = %v, want ErrMalformed", res.Err)
	}
	if !res.Timings.IsZero() {
		t.Errorf("partial timings leaked: %v", res.Timings)
	}
}
