package metrics

import (
	"context"
	"math"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/coreflux/dispatchd/core/metrics"
	"github.com/coreflux/dispatchd/infra/logger"
)

// InfluxSink writes assignment events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config) *InfluxSink {
	client := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
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

// RecordAssignments writes each assignment as a line protocol event.
func (s *InfluxSink) RecordAssignments(recs []coremetrics.AssignmentRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range recs {
		p := write.NewPointWithMeasurement("assignment_event").
			AddTag("technician_id", r.TechnicianID).
			AddTag("priority", string(r.Priority)).
			AddTag("skill", r.Skill).
			AddTag("batch_id", r.BatchID).
			AddField("request_id", r.RequestID).
			AddField("score", round3(r.Score)).
			AddField("skill_score", round3(r.SkillScore)).
			AddField("distance_km", round3(r.DistanceKm)).
			AddField("availability", round3(r.Availability)).
			AddField("performance", round3(r.Performance)).
			SetTime(r.AssignedAt)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordBatch writes the batch summary as one point.
func (s *InfluxSink) RecordBatch(rec coremetrics.BatchRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("batch_event").
		AddTag("batch_id", rec.BatchID).
		AddField("processed", rec.Processed).
		AddField("assigned", rec.Assigned).
		AddField("skipped", rec.Skipped).
		AddField("mean_confidence", round3(rec.MeanConfidence)).
		AddField("duration_ms", rec.Duration.Milliseconds()).
		SetTime(rec.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() {
	s.client.Close()
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
