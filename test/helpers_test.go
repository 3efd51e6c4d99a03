package test

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

const challengePayload = `{
  "load": 480,
  "fuels": {"gas(euro/MWh)": 13.4, "kerosine(euro/MWh)": 50.8, "co2(euro/ton)": 20, "wind(%)": 60},
  "powerplants": [
    {"name": "gasfiredbig1", "type": "gasfired", "efficiency": 0.53, "pmin": 100, "pmax": 460},
    {"name": "gasfiredbig2", "type": "gasfired", "efficiency": 0.53, "pmin": 100, "pmax": 460},
    {"name": "gasfiredsomewhatsmaller", "type": "gasfired", "efficiency": 0.37, "pmin": 40, "pmax": 210},
    {"name": "tj1", "type": "turbojet", "efficiency": 0.3, "pmin": 0, "pmax": 16},
    {"name": "windpark1", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 150},
    {"name": "windpark2", "type": "windturbine", "efficiency": 1, "pmin": 0, "pmax": 36}
  ]
}`

// fakeInflux answers health checks and keeps every written line.
type fakeInflux struct {
	*httptest.Server
	mu    sync.Mutex
	lines []string
}

func newFakeInflux() *fakeInflux {
	f := &fakeInflux{}
	f.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"name":"influxdb","message":"ready for queries and writes","status":"pass","checks":[],"version":"2.7.0","commit":"test"}`)
		case "/api/v2/write":
			data, _ := io.ReadAll(r.Body)
			f.mu.Lock()
			for _, l := range strings.Split(strings.TrimSpace(string(data)), "\n") {
				if l != "" {
					f.lines = append(f.lines, l)
				}
			}
			f.mu.Unlock()
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	return f
}

func (f *fakeInflux) count(measurement string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, l := range f.lines {
		if strings.HasPrefix(l, measurement+",") || strings.HasPrefix(l, measurement+" ") {
			n++
		}
	}
	return n
}

func waitForMetric(url, substr string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			body, _ := io.ReadAll(resp.Body)
			if err := resp.Body.Close(); err != nil {
				return err
			}
			if strings.Contains(string(body), substr) {
				return nil
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	return fmt.Errorf("metric %s not found", substr)
}
