package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/powerplan/core/metrics"
	"github.com/kilianp07/powerplan/infra/logger"
)

// InfluxSink writes production plans to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordPlan writes one point per plant followed by the plan summary.
func (s *InfluxSink) RecordPlan(rec coremetrics.PlanRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, e := range rec.Plan {
		p := write.NewPointWithMeasurement("production_plan").
			AddTag("plan_id", rec.PlanID).
			AddTag("strategy", rec.Strategy).
			AddTag("plant", e.Name).
			AddField("p_mw", round3(e.P)).
			SetTime(rec.Time)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	sum := rec.Summary
	p := write.NewPointWithMeasurement("production_plan_summary").
		AddTag("plan_id", rec.PlanID).
		AddTag("strategy", rec.Strategy).
		AddField("requested_mw", round3(sum.Requested)).
		AddField("total_mw", round3(sum.Total)).
		AddField("thermal_mw", round3(sum.Thermal)).
		AddField("wind_mw", round3(sum.Wind)).
		AddField("residual_mw", round3(sum.Residual)).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordFault writes a planner failure.
func (s *InfluxSink) RecordFault(rec coremetrics.FaultRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("production_plan_fault").
		AddTag("strategy", rec.Strategy).
		AddField("reason", rec.Reason).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000)).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordSetpoint writes the outcome of a setpoint publication.
func (s *InfluxSink) RecordSetpoint(rec coremetrics.SetpointRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("plant_setpoint").
		AddTag("plan_id", rec.PlanID).
		AddTag("plant", rec.Plant).
		AddTag("published", strconv.FormatBool(rec.Published))
	if rec.CommandID != "" {
		p = p.AddTag("command_id", rec.CommandID)
	}
	p = p.AddField("p_mw", round3(rec.PowerMW)).
		AddField("latency_ms", round3(rec.Latency.Seconds()*1000))
	if rec.Error != "" {
		p = p.AddField("error", rec.Error)
	}
	p = p.SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
