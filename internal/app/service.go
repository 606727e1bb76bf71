// Package app provides the core business service that implements the
// dependencies required by the HTTP API: template authoring, sheet
// scoring, and judge aggregation over a pluggable store.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	repository "github.com/drillmeet/scoresheet/internal/adapters/repository"
	"github.com/drillmeet/scoresheet/internal/directory"
	"github.com/drillmeet/scoresheet/internal/domain/builder"
	"github.com/drillmeet/scoresheet/internal/domain/field"
	"github.com/drillmeet/scoresheet/internal/domain/judging"
	"github.com/drillmeet/scoresheet/internal/domain/model"
	"github.com/drillmeet/scoresheet/internal/domain/scoring"
	"github.com/drillmeet/scoresheet/internal/gen"
	"github.com/drillmeet/scoresheet/pkg/logger"
	"github.com/drillmeet/scoresheet/pkg/metrics"
)

// ErrGeneratorDisabled is returned when no generation collaborator is
// configured.
var ErrGeneratorDisabled = errors.New("template generation is not configured")

// Service implements the API dependencies for the score-sheet system.
type Service struct {
	mu sync.RWMutex

	store     repository.Store
	generator gen.Generator
	dir       directory.Directory
	now       func() time.Time

	started bool

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend. Defaults to an in-memory
// store when unset.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithGenerator sets the AI template-generation collaborator.
func WithGenerator(g gen.Generator) Option {
	return func(s *Service) {
		s.generator = g
	}
}

// WithDirectory sets the cadet display-name resolver.
func WithDirectory(d directory.Directory) Option {
	return func(s *Service) {
		s.dir = d
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.store == nil {
		s.store = repository.NewMemStore()
		s.logger.Info(ctx, "using in-memory store")
	}
	if s.dir == nil {
		s.dir = directory.NewInMemoryDirectory(nil)
	}
	s.started = true
	s.logger.Info(ctx, "score sheet service started")
	return nil
}

// Stop shuts the service down. The store's connection (if any) is owned
// and closed by the caller that opened it.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "score sheet service stopped")
}

// SaveTemplate validates and persists a template, minting an id for new
// ones. Invalid criteria block the save.
func (s *Service) SaveTemplate(ctx context.Context, t model.Template) (model.Template, error) {
	if err := field.ValidateAll(t.Criteria); err != nil {
		return model.Template{}, err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if err := s.store.PutTemplate(ctx, t); err != nil {
		metrics.RecordStoreError()
		return model.Template{}, fmt.Errorf("save template: %w", err)
	}
	metrics.RecordTemplateSaved()
	metrics.UpdateTotalTemplates(s.store.CountTemplates(ctx))
	s.logger.Info(ctx, "template saved",
		logger.String("templateID", t.ID),
		logger.String("name", t.Name),
		logger.Int("fields", len(t.Criteria)),
	)
	return s.store.GetTemplate(ctx, t.ID)
}

// GetTemplate returns one template by id.
func (s *Service) GetTemplate(ctx context.Context, id string) (model.Template, error) {
	return s.store.GetTemplate(ctx, id)
}

// ListTemplates returns all stored templates.
func (s *Service) ListTemplates(ctx context.Context) ([]model.Template, error) {
	return s.store.ListTemplates(ctx)
}

// DeleteTemplate removes a template.
func (s *Service) DeleteTemplate(ctx context.Context, id string) error {
	return s.store.DeleteTemplate(ctx, id)
}

// CreateEvent persists a judge's submitted score sheet. The total is
// recomputed against the referenced template; client-sent totals are
// ignored. A missing template blocks the save.
func (s *Service) CreateEvent(ctx context.Context, e model.Event) (model.Event, error) {
	tpl, err := s.store.GetTemplate(ctx, e.Sheet.TemplateID)
	if err != nil {
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.Sheet.TemplateName = tpl.Name
	e.Sheet.Scores, e.TotalPoints = s.score(tpl, e.Sheet)
	e.Sheet.CalculatedAt = s.now()

	created, err := s.store.CreateEvent(ctx, e)
	if err != nil {
		metrics.RecordStoreError()
		return model.Event{}, fmt.Errorf("create event: %w", err)
	}
	metrics.RecordEventScored()
	metrics.UpdateTotalEvents(s.store.CountEvents(ctx))
	s.logger.Info(ctx, "score sheet submitted",
		logger.String("eventID", created.ID),
		logger.String("event", created.EventType),
		logger.String("judge", created.Sheet.JudgeNumber),
		logger.Float64("total", created.TotalPoints),
	)
	return created, nil
}

// GetEvent returns one scored instance by id.
func (s *Service) GetEvent(ctx context.Context, id string) (model.Event, error) {
	return s.store.GetEvent(ctx, id)
}

// UpdateEvent is the edit path: it overwrites scores, cadet ids, and
// team name on an existing event, recomputes the total, and refreshes
// the calculation timestamp.
func (s *Service) UpdateEvent(ctx context.Context, id string, patch model.EventPatch) (model.Event, error) {
	e, err := s.store.GetEvent(ctx, id)
	if err != nil {
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	tpl, err := s.store.GetTemplate(ctx, e.Sheet.TemplateID)
	if err != nil {
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	if patch.Scores != nil {
		e.Sheet.Scores = patch.Scores
	}
	if patch.CadetIDs != nil {
		e.CadetIDs = patch.CadetIDs
	}
	if patch.TeamName != "" {
		e.TeamName = patch.TeamName
	}
	e.Sheet.Scores, e.TotalPoints = s.score(tpl, e.Sheet)
	e.Sheet.CalculatedAt = s.now()

	updated, err := s.store.UpdateEvent(ctx, e)
	if err != nil {
		metrics.RecordStoreError()
		return model.Event{}, fmt.Errorf("update event: %w", err)
	}
	metrics.RecordEventScored()
	s.logger.Info(ctx, "score sheet resubmitted",
		logger.String("eventID", updated.ID),
		logger.Float64("total", updated.TotalPoints),
	)
	return updated, nil
}

// ListEvents returns scored instances matching the filter.
func (s *Service) ListEvents(ctx context.Context, f model.Filter) ([]model.Event, error) {
	return s.store.ListEvents(ctx, f)
}

// DeleteEvent removes a scored instance.
func (s *Service) DeleteEvent(ctx context.Context, id string) error {
	return s.store.DeleteEvent(ctx, id)
}

// score replays the sheet's entries through a scoring session so entry
// constraints (max values, judge-1 penalty gating) are enforced, then
// returns the accepted values and the recomputed total.
func (s *Service) score(tpl model.Template, sheet model.ScoreSheet) (map[string]scoring.Value, float64) {
	session := scoring.NewSession(tpl.Criteria, scoring.WithJudgeNumber(sheet.JudgeNumber))
	for id, v := range sheet.Scores {
		values, _ := session.Set(id, v)
		if v.Set && !values[id].Set {
			metrics.RecordRejectedWrite()
		}
		if v.Notes != "" {
			session.SetNotes(id, v.Notes)
		}
	}
	metrics.RecordTotalComputed()
	return session.Values(), session.Total()
}

// Matrix builds the judge comparison view for one competition event
// type. A missing or unresolvable template yields the explicit
// TemplateMissing empty state rather than an error.
func (s *Service) Matrix(ctx context.Context, f model.Filter) (judging.Matrix, error) {
	events, err := s.store.ListEvents(ctx, f)
	if err != nil {
		metrics.RecordStoreError()
		return judging.Matrix{}, fmt.Errorf("build matrix: %w", err)
	}

	var tpl *model.Template
	for _, e := range events {
		if e.Sheet.TemplateID == "" {
			continue
		}
		t, err := s.store.GetTemplate(ctx, e.Sheet.TemplateID)
		if err == nil {
			tpl = &t
			break
		}
		if !errors.Is(err, repository.ErrTemplateNotFound) {
			metrics.RecordStoreError()
			return judging.Matrix{}, fmt.Errorf("build matrix: %w", err)
		}
	}

	m := judging.BuildMatrix(events, tpl)
	s.resolveCadetNames(ctx, &m)
	metrics.RecordMatrixBuild()
	return m, nil
}

// resolveCadetNames fills display names for each judge column; unknown
// ids fall back to the raw id.
func (s *Service) resolveCadetNames(ctx context.Context, m *judging.Matrix) {
	for i := range m.Judges {
		ids := m.Judges[i].CadetIDs
		if len(ids) == 0 {
			continue
		}
		names := make([]string, len(ids))
		for j, id := range ids {
			name, err := s.dir.DisplayName(ctx, id)
			if err != nil {
				name = id
			}
			names[j] = name
		}
		m.Judges[i].CadetNames = names
	}
}

// GenerateTemplate sends document text to the generation collaborator
// and validates the returned criteria before accepting them. The
// returned template is the canonical re-serialized document.
func (s *Service) GenerateTemplate(ctx context.Context, documentText string) (gen.Result, error) {
	if s.generator == nil {
		return gen.Result{}, ErrGeneratorDisabled
	}
	metrics.RecordGenerateRequest()
	res, err := s.generator.Generate(ctx, documentText)
	if err != nil {
		metrics.RecordGenerateFailure()
		return gen.Result{}, fmt.Errorf("generate template: %w", err)
	}
	if !res.Success {
		metrics.RecordGenerateFailure()
		return res, nil
	}

	b := builder.New()
	if err := b.AcceptGenerated(res.Template); err != nil {
		metrics.RecordGenerateFailure()
		return gen.Result{Success: false, Error: err.Error()}, nil
	}
	criteria, err := b.Criteria()
	if err != nil {
		metrics.RecordGenerateFailure()
		return gen.Result{}, fmt.Errorf("generate template: %w", err)
	}
	return gen.Result{Success: true, Template: criteria}, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started": s.started,
	}
	if s.started {
		templates := s.store.CountTemplates(ctx)
		events := s.store.CountEvents(ctx)
		stats["totalTemplates"] = templates
		stats["totalEvents"] = events
		metrics.UpdateTotalTemplates(templates)
		metrics.UpdateTotalEvents(events)
	}
	return stats
}
