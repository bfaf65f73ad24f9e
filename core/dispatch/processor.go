package dispatch

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/coreflux/dispatchd/core/events"
	"github.com/coreflux/dispatchd/core/logger"
	"github.com/coreflux/dispatchd/core/match"
	"github.com/coreflux/dispatchd/core/metrics"
	"github.com/coreflux/dispatchd/core/model"
	"github.com/coreflux/dispatchd/internal/eventbus"
)

// BatchProcessor pulls a priority-ordered batch of pending requests and runs
// the scoring and assignment pipeline for each one. Requests are processed in
// sequence; a failure on one request never aborts the rest of the batch. The
// only concurrency handled here is cross-process: competing batch runs are
// resolved by the conditional assignment write alone.
type BatchProcessor struct {
	requests    RequestRepository
	technicians TechnicianRepository
	calendar    CalendarRepository
	scorer      *match.CandidateScorer
	cfg         Config
	log         logger.Logger
	sink        metrics.MetricsSink
	bus         eventbus.EventBus
	publisher   ResultPublisher
	now         func() time.Time
}

// NewBatchProcessor creates a processor. The request, technician and calendar
// repositories and the scorer are mandatory; the metrics sink, event bus and
// result publisher may be nil.
func NewBatchProcessor(requests RequestRepository, technicians TechnicianRepository, calendar CalendarRepository, scorer *match.CandidateScorer, cfg Config, log logger.Logger, sink metrics.MetricsSink, bus eventbus.EventBus, publisher ResultPublisher) (*BatchProcessor, error) {
	if requests == nil || technicians == nil || calendar == nil || scorer == nil {
		return nil, fmt.Errorf("dispatch: nil parameter provided to NewBatchProcessor")
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &BatchProcessor{
		requests:    requests,
		technicians: technicians,
		calendar:    calendar,
		scorer:      scorer,
		cfg:         cfg,
		log:         log,
		sink:        sink,
		bus:         bus,
		publisher:   publisher,
		now:         time.Now,
	}, nil
}

// Run processes up to limit pending requests ordered by priority rank then
// request identifier. A non-positive limit falls back to the configured one.
// The returned error is non-nil only when the pending batch itself could not
// be fetched; per-request failures are reported as skips.
func (p *BatchProcessor) Run(ctx context.Context, limit int) (BatchResult, error) {
	if limit <= 0 {
		limit = p.cfg.Limit
	}
	result := BatchResult{
		BatchID: uuid.NewString(),
		Started: p.now(),
	}
	p.publish(events.BatchStartedEvent{BatchID: result.BatchID, Limit: limit, Time: result.Started})

	ids, err := p.requests.PendingIDs(ctx, limit)
	if err != nil {
		return result, fmt.Errorf("fetch pending requests: %w", err)
	}
	p.log.Infof("batch %s: %d pending request(s)", result.BatchID, len(ids))

	for _, id := range ids {
		asn, err := p.processRequest(ctx, result.BatchID, id)
		if err == nil {
			result.Assignments = append(result.Assignments, asn)
			continue
		}
		result.Skips = append(result.Skips, p.skipFor(result.BatchID, id, err))
	}

	result.Finished = p.now()
	p.finishBatch(&result)
	return result, nil
}

// Rank evaluates and ranks the eligible candidates for one pending request
// without committing anything. Used for dry-run inspection.
func (p *BatchProcessor) Rank(ctx context.Context, id int64) ([]model.ScoredCandidate, error) {
	req, err := p.requests.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	eligible, err := p.eligibleTechnicians(ctx, *req)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	candidates := make([]model.ScoredCandidate, 0, len(eligible))
	for _, tech := range eligible {
		candidates = append(candidates, p.scorer.Score(ctx, tech, *req))
	}
	match.Rank(candidates)
	return candidates, nil
}

// processRequest runs the full pipeline for one request: load, filter, score,
// rank, assign.
func (p *BatchProcessor) processRequest(ctx context.Context, batchID string, id int64) (Assignment, error) {
	req, err := p.requests.Get(ctx, id)
	if err != nil {
		return Assignment{}, err
	}

	eligible, err := p.eligibleTechnicians(ctx, *req)
	if err != nil {
		return Assignment{}, fmt.Errorf("list technicians: %w", err)
	}
	candidatesEvaluated.Observe(float64(len(eligible)))
	if len(eligible) == 0 {
		return Assignment{}, ErrNoEligibleCandidate
	}

	candidates := make([]model.ScoredCandidate, 0, len(eligible))
	for _, tech := range eligible {
		candidates = append(candidates, p.scorer.Score(ctx, tech, *req))
	}
	winner, alternatives, ok := match.Select(candidates, p.cfg.TopN)
	if !ok {
		return Assignment{}, ErrNoEligibleCandidate
	}
	p.logCandidates(*req, winner, alternatives)

	assignedAt := p.now()
	if err := p.requests.Assign(ctx, req.ID, winner.Technician.ID, round2(winner.Composite), assignedAt); err != nil {
		return Assignment{}, err
	}
	p.log.Infof("assigned technician %s to request %d (confidence %.3f)", winner.Technician.ID, req.ID, winner.Composite)

	asn := Assignment{
		RequestID:    req.ID,
		TechnicianID: winner.Technician.ID,
		Priority:     req.Priority,
		Skill:        req.RequiredSkill,
		Confidence:   winner.Composite,
	}
	for _, alt := range alternatives {
		asn.Alternatives = append(asn.Alternatives, Alternative{
			TechnicianID: alt.Technician.ID,
			Score:        alt.Composite,
		})
	}

	requestsProcessed.WithLabelValues(string(req.Priority), "assigned").Inc()
	assignmentConfidence.Observe(winner.Composite)
	p.publish(events.AssignmentEvent{
		BatchID:      batchID,
		RequestID:    req.ID,
		TechnicianID: winner.Technician.ID,
		Priority:     req.Priority,
		Confidence:   winner.Composite,
		Time:         assignedAt,
	})
	p.recordAssignment(batchID, *req, winner, assignedAt)
	return asn, nil
}

// eligibleTechnicians applies the state, capacity and calendar preconditions.
// The repository already filters on state and remaining capacity; the calendar
// gate is applied per technician for the appointment date. Calendar failures
// fail open.
func (p *BatchProcessor) eligibleTechnicians(ctx context.Context, req model.DispatchRequest) ([]model.Technician, error) {
	techs, err := p.technicians.ListEligible(ctx, req.State)
	if err != nil {
		return nil, err
	}
	eligible := techs[:0]
	for _, tech := range techs {
		if !tech.HasCapacity() {
			continue
		}
		if !p.calendarAllows(ctx, tech.ID, req.AppointmentStart) {
			continue
		}
		eligible = append(eligible, tech)
	}
	return eligible, nil
}

func (p *BatchProcessor) calendarAllows(ctx context.Context, technicianID string, date time.Time) bool {
	entry, err := p.calendar.Entry(ctx, technicianID, date)
	if err != nil {
		p.log.Warnf("calendar lookup failed for %s, assuming available: %v", technicianID, err)
		return true
	}
	if entry == nil {
		return true
	}
	return entry.Allows()
}

func (p *BatchProcessor) skipFor(batchID string, id int64, err error) Skip {
	skip := Skip{RequestID: id}
	switch {
	case errors.Is(err, ErrNotFound):
		skip.Reason = ReasonNotFound
	case errors.Is(err, ErrRaceLost):
		skip.Reason = ReasonRaceLost
		p.log.Infof("request %d: another process completed it first", id)
	case errors.Is(err, ErrNoEligibleCandidate):
		skip.Reason = ReasonUnassignable
		p.log.Warnf("request %d: no eligible technician, left pending", id)
	default:
		skip.Reason = ReasonStorage
		skip.Detail = err.Error()
		p.log.Errorf("request %d failed, left pending for retry: %v", id, err)
	}
	requestsProcessed.WithLabelValues("", skip.Reason).Inc()
	p.publish(events.SkipEvent{BatchID: batchID, RequestID: id, Reason: skip.Reason, Err: err})
	return skip
}

func (p *BatchProcessor) finishBatch(result *BatchResult) {
	dur := result.Finished.Sub(result.Started)
	batchDuration.Observe(dur.Seconds())
	p.publish(events.BatchFinishedEvent{
		BatchID:  result.BatchID,
		Assigned: len(result.Assignments),
		Skipped:  len(result.Skips),
		Duration: dur,
	})

	if br, ok := p.sink.(metrics.BatchRecorder); ok {
		confidences := make([]float64, 0, len(result.Assignments))
		for _, a := range result.Assignments {
			confidences = append(confidences, a.Confidence)
		}
		mean := 0.0
		if len(confidences) > 0 {
			mean = stat.Mean(confidences, nil)
		}
		if err := br.RecordBatch(metrics.BatchRecord{
			BatchID:        result.BatchID,
			Processed:      len(result.Assignments) + len(result.Skips),
			Assigned:       len(result.Assignments),
			Skipped:        len(result.Skips),
			MeanConfidence: mean,
			Duration:       dur,
			Time:           result.Finished,
		}); err != nil {
			p.log.Errorf("batch metrics error: %v", err)
		}
	}

	if p.publisher != nil {
		if err := p.publisher.PublishBatch(*result); err != nil {
			p.log.Errorf("batch result publish failed: %v", err)
		}
	}
	p.log.Infof("batch %s done: %d assigned, %d skipped in %s",
		result.BatchID, len(result.Assignments), len(result.Skips), dur)
}

func (p *BatchProcessor) recordAssignment(batchID string, req model.DispatchRequest, winner model.ScoredCandidate, at time.Time) {
	err := p.sink.RecordAssignments([]metrics.AssignmentRecord{{
		BatchID:      batchID,
		RequestID:    req.ID,
		TechnicianID: winner.Technician.ID,
		Priority:     req.Priority,
		Skill:        req.RequiredSkill,
		Score:        winner.Composite,
		SkillScore:   winner.SkillScore,
		DistanceKm:   winner.DistanceKm,
		Availability: winner.AvailabilityScore,
		Performance:  winner.PerformanceScore,
		AssignedAt:   at,
	}})
	if err != nil {
		p.log.Errorf("metrics error: %v", err)
	}
}

func (p *BatchProcessor) logCandidates(req model.DispatchRequest, winner model.ScoredCandidate, alternatives []model.ScoredCandidate) {
	fields := map[string]any{
		"request_id":   req.ID,
		"priority":     string(req.Priority),
		"skill":        req.RequiredSkill,
		"winner":       winner.Technician.ID,
		"score":        winner.Composite,
		"skill_score":  winner.SkillScore,
		"distance_km":  winner.DistanceKm,
		"availability": winner.AvailabilityScore,
		"performance":  winner.PerformanceScore,
	}
	for i, alt := range alternatives {
		fields[fmt.Sprintf("alt_%d", i+1)] = fmt.Sprintf("%s:%.3f", alt.Technician.ID, alt.Composite)
	}
	p.log.Debugw("candidate ranking", fields)
}

func (p *BatchProcessor) publish(ev eventbus.Event) {
	if p.bus != nil {
		p.bus.Publish(ev)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
