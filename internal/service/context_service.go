package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"brainmode-be/internal/config"
	"brainmode-be/internal/dto"
	"brainmode-be/internal/pkg/logger"
	"brainmode-be/internal/repository/contract"
	"brainmode-be/pkg/brain"
	"brainmode-be/pkg/brain/palette"
	"brainmode-be/pkg/events"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const contextModule = "ContextService"

const tracerName = "brainmode-be/internal/service"

// startSpan is a no-op unless a tracer provider is installed.
func startSpan(ctx context.Context, name, id string) (context.Context, trace.Span) {
	return otel.Tracer(tracerName).Start(ctx, name, trace.WithAttributes(attribute.String("context.id", id)))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type IContextService interface {
	Open(ctx context.Context, req *dto.OpenContextRequest) (*dto.ContextResponse, error)
	Show(ctx context.Context, id string) (*dto.ContextResponse, error)
	Close(ctx context.Context, id string) error
	Clone(ctx context.Context, id string, req *dto.CloneContextRequest) (*dto.ContextResponse, error)
	ApplyResponse(ctx context.Context, id string, payload []byte) (*dto.ContextResponse, error)
	SetFields(ctx context.Context, id string, req dto.SetFieldsRequest) (*dto.ContextResponse, error)
	CheckGuard(ctx context.Context, id string, guard string) (*dto.GuardResponse, error)
	CheckHeight(height int) (*dto.GuardResponse, error)
	PutAtoms(ctx context.Context, id string, req *dto.PutAtomsRequest) (*dto.ContextResponse, error)
	VisibleAtoms(ctx context.Context, id string) ([]*dto.VisibleAtomResponse, error)
	Messages(limit, offset int) ([]*dto.MessageResponse, error)
}

type contextService struct {
	repo      contract.ContextRepository
	publisher events.Publisher
	palette   *palette.Palette
	defaults  config.BrainConfig
	logger    logger.ILogger
	messenger *logger.Messenger
	locks     *keyedMutex
}

func NewContextService(
	repo contract.ContextRepository,
	publisher events.Publisher,
	pal *palette.Palette,
	defaults config.BrainConfig,
	log logger.ILogger,
	messenger *logger.Messenger,
) IContextService {
	if err := brain.AssertHeightInBounds(defaults.DefaultHeight); err != nil {
		log.Warn(contextModule, "Ignoring configured default height", map[string]interface{}{"error": err.Error()})
		defaults.DefaultHeight = brain.DefaultHeight
	}
	return &contextService{
		repo:      repo,
		publisher: publisher,
		palette:   pal,
		defaults:  defaults,
		logger:    log,
		messenger: messenger,
		locks:     newKeyedMutex(),
	}
}

func (s *contextService) Open(ctx context.Context, req *dto.OpenContextRequest) (res *dto.ContextResponse, err error) {
	c := brain.Default()
	c.Height = s.defaults.DefaultHeight
	c.ValueLengthCutoff = s.defaults.ValueLengthCutoff
	c.MinimizeVerbatimBlocks = s.defaults.MinimizeVerbatimBlocks

	if err = applyOpenRequest(c, req); err != nil {
		return nil, err
	}

	id := req.Id
	if id == "" {
		id = uuid.NewString()
	}

	ctx, span := startSpan(ctx, "ContextService.Open", id)
	defer func() { endSpan(span, err) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	// An explicit id must not replace a live view.
	if _, err = s.repo.FindByID(ctx, id); err == nil {
		return nil, fmt.Errorf("view %s: %w", id, contract.ErrContextExists)
	} else if !errors.Is(err, contract.ErrContextNotFound) {
		return nil, err
	}

	if err = s.repo.Save(ctx, id, c); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewContextEvent(events.ContextOpened, id, map[string]interface{}{
		"mode":    string(c.Mode),
		"root_id": c.RootID,
	}))
	s.messenger.Debug("opened view %s in %s mode", id, c.Mode)

	return &dto.ContextResponse{Id: id, Context: c}, nil
}

// applyOpenRequest routes the optional request fields through the symbolic setters so the
// same validation applies as for later updates.
func applyOpenRequest(c *brain.Context, req *dto.OpenContextRequest) error {
	fields := []struct {
		field brain.Field
		value string
	}{
		{brain.FieldMode, req.Mode},
		{brain.FieldStyle, req.Style},
		{brain.FieldViewStyle, req.ViewStyle},
		{brain.FieldRootID, req.RootId},
		{brain.FieldTitle, req.Title},
		{brain.FieldQuery, req.Query},
		{brain.FieldQueryType, req.QueryType},
		{brain.FieldFile, req.File},
		{brain.FieldFormat, req.Format},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if err := c.Set(f.field, f.value); err != nil {
			return err
		}
	}
	if req.Height != nil {
		if err := c.Set(brain.FieldHeight, *req.Height); err != nil {
			return err
		}
	}
	if c.InSearchMode() {
		c.Height = 1
	}
	return nil
}

func (s *contextService) Show(ctx context.Context, id string) (*dto.ContextResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &dto.ContextResponse{Id: id, Context: c}, nil
}

func (s *contextService) Close(ctx context.Context, id string) error {
	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, events.NewContextEvent(events.ContextClosed, id, nil))
	return nil
}

func (s *contextService) Clone(ctx context.Context, id string, req *dto.CloneContextRequest) (res *dto.ContextResponse, err error) {
	ctx, span := startSpan(ctx, "ContextService.Clone", id)
	defer func() { endSpan(span, err) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := source.Clone(req.Line)
	cloneId := uuid.NewString()

	// The source keeps the refreshed cursor line.
	if err = s.repo.Save(ctx, id, source); err != nil {
		return nil, err
	}
	if err = s.repo.Save(ctx, cloneId, clone); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewContextEvent(events.ContextCloned, cloneId, map[string]interface{}{
		"source_id":           id,
		"line":                req.Line,
		"default_sharability": clone.DefaultSharabilityOr(brain.FallbackSharability),
	}))

	return &dto.ContextResponse{Id: cloneId, Context: clone}, nil
}

func (s *contextService) ApplyResponse(ctx context.Context, id string, payload []byte) (*dto.ContextResponse, error) {
	return s.mutate(ctx, id, events.ContextParsed, func(c *brain.Context) (map[string]interface{}, error) {
		if err := c.ParseResponse(payload); err != nil {
			return nil, err
		}
		return map[string]interface{}{"root_id": c.RootID, "height": c.Height}, nil
	})
}

// SetFields applies all updates or none. Fields are set in name order so that the first
// reported error does not depend on map iteration.
func (s *contextService) SetFields(ctx context.Context, id string, req dto.SetFieldsRequest) (*dto.ContextResponse, error) {
	names := make([]string, 0, len(req))
	for name := range req {
		names = append(names, name)
	}
	sort.Strings(names)

	return s.mutate(ctx, id, events.ContextUpdated, func(c *brain.Context) (map[string]interface{}, error) {
		for _, name := range names {
			if err := c.Set(brain.Field(name), req[name]); err != nil {
				return nil, err
			}
		}
		return map[string]interface{}{"fields": names}, nil
	})
}

func (s *contextService) CheckGuard(ctx context.Context, id string, guard string) (*dto.GuardResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := c.CheckGuard(guard); err != nil {
		return nil, err
	}
	return &dto.GuardResponse{Guard: guard, Passed: true}, nil
}

func (s *contextService) CheckHeight(height int) (*dto.GuardResponse, error) {
	if err := brain.AssertHeightInBounds(height); err != nil {
		return nil, err
	}
	return &dto.GuardResponse{Guard: "height", Passed: true}, nil
}

func (s *contextService) PutAtoms(ctx context.Context, id string, req *dto.PutAtomsRequest) (*dto.ContextResponse, error) {
	return s.mutate(ctx, id, events.ContextUpdated, func(c *brain.Context) (map[string]interface{}, error) {
		if c.AtomsByID == nil {
			c.AtomsByID = brain.AtomCache{}
		}
		if req.Replace {
			c.AtomsByID.Reset()
		}
		c.AtomsByID.Put(req.Atoms...)
		return map[string]interface{}{
			"fields": []string{string(brain.FieldAtomsByID)},
			"atoms":  c.AtomsByID.Len(),
		}, nil
	})
}

// VisibleAtoms lists the cached atoms that pass the view's sharability and weight filters,
// ready for display.
func (s *contextService) VisibleAtoms(ctx context.Context, id string) ([]*dto.VisibleAtomResponse, error) {
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	result := make([]*dto.VisibleAtomResponse, 0, c.AtomsByID.Len())
	for _, atomId := range c.AtomsByID.IDs() {
		atom, _ := c.AtomsByID.Get(atomId)
		if !c.Admits(atom) {
			continue
		}
		style := s.palette.Style(c, atom)
		res := &dto.VisibleAtomResponse{
			Id:          atom.ID,
			Title:       c.TruncateValue(atom.Title),
			Sharability: atom.Sharability,
			Weight:      atom.Weight,
			Color:       string(s.palette.Color(c, atom)),
			Bold:        style.GetBold(),
			Faint:       style.GetFaint(),
			Priority:    atom.Priority,
		}
		if !atom.Created.IsZero() {
			res.Created = brain.FormatDate(atom.Created) + " " + brain.FormatTime(atom.Created)
		}
		result = append(result, res)
	}
	return result, nil
}

func (s *contextService) Messages(limit, offset int) ([]*dto.MessageResponse, error) {
	entries, err := s.messenger.History(limit, offset)
	if err != nil {
		return nil, err
	}
	result := make([]*dto.MessageResponse, 0, len(entries))
	for _, e := range entries {
		result = append(result, &dto.MessageResponse{
			Timestamp: e.Timestamp,
			Level:     e.Level,
			Message:   e.Message,
		})
	}
	return result, nil
}

// mutate loads the context, applies fn and saves it, holding the view lock throughout.
// When fn fails nothing is saved.
func (s *contextService) mutate(
	ctx context.Context,
	id string,
	eventType string,
	fn func(c *brain.Context) (map[string]interface{}, error),
) (res *dto.ContextResponse, err error) {
	ctx, span := startSpan(ctx, "ContextService."+eventType, id)
	defer func() { endSpan(span, err) }()

	unlock := s.locks.Lock(id)
	defer unlock()

	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := fn(c)
	if err != nil {
		return nil, err
	}
	if err = s.repo.Save(ctx, id, c); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewContextEvent(eventType, id, details))
	return &dto.ContextResponse{Id: id, Context: c}, nil
}

// publish never fails the request: the context is already saved.
func (s *contextService) publish(ctx context.Context, event events.Event) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn(contextModule, "Failed to publish context event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
	}
}

// keyedMutex serialises operations on the same view id. An entry lives while anyone holds
// or waits for it, so all callers for one id always share the same mutex.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*keyedLock
}

type keyedLock struct {
	mu   sync.Mutex
	refs int
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*keyedLock)}
}

func (k *keyedMutex) Lock(id string) (unlock func()) {
	k.mu.Lock()
	l, ok := k.locks[id]
	if !ok {
		l = &keyedLock{}
		k.locks[id] = l
	}
	l.refs++
	k.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		k.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(k.locks, id)
		}
		k.mu.Unlock()
	}
}

// Len reports how many ids are locked or awaited.
func (k *keyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.locks)
}
