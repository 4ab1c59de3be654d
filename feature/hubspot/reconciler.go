package hubspot

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"destination-sync/core/fault"
	"destination-sync/core/logger"
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// CodeInvalidSyncMode is returned for unknown sync modes.
const CodeInvalidSyncMode = "INVALID_SYNC_MODE"

// Reconciler keeps HubSpot event definitions in line with outgoing events and
// sends them.
type Reconciler struct {
	client      *Client
	cache       *reconcile.SchemaCache
	metrics     *metrics.Metrics
	logger      *zap.Logger
	mode        SyncMode
	concurrency int
}

// NewReconciler creates a reconciler. An invalid configured sync mode falls back to upsert.
func NewReconciler(client *Client, cache *reconcile.SchemaCache, cfg Config, m *metrics.Metrics, logg *zap.Logger) *Reconciler {
	mode, err := ParseSyncMode(cfg.SyncMode, SyncUpsert)
	if err != nil {
		mode = SyncUpsert
	}
	if cfg.PropertyConcurrency <= 0 {
		cfg.PropertyConcurrency = 4
	}
	if logg == nil {
		logg = zap.NewNop()
	}

	return &Reconciler{
		client:      client,
		cache:       cache,
		metrics:     m,
		logger:      logg,
		mode:        mode,
		concurrency: cfg.PropertyConcurrency,
	}
}

// ReconcileAndSend makes sure the event's schema exists remotely with every
// property of the payload, then sends the event.
func (r *Reconciler) ReconcileAndSend(ctx context.Context, payload EventPayload, s Settings) (res *SendResult, err error) {
	defer func() {
		r.metrics.ObserveOutcome("event_schema", fault.Label(err))
	}()

	if strings.TrimSpace(payload.EventName) == "" {
		return nil, fault.Validation(fault.CodeMissingField, "Missing event name value")
	}
	mode, err := ParseSyncMode(s.SyncMode, r.mode)
	if err != nil {
		return nil, fault.Validation(CodeInvalidSyncMode, err.Error())
	}

	values, desired := BuildSchema(payload)
	log := logger.WithScope(r.logger, s.ScopeID).With(zap.String("event", desired.Name), zap.String("sync_mode", string(mode)))

	if cached, ok := r.cache.Get(s.ScopeID, desired.Name); ok {
		if !cached.Names(desired.Name) {
			return nil, fmt.Errorf("schema cache returned %q (%s) for event %q", cached.Name, cached.FullyQualifiedName, desired.Name)
		}
		// Anything short of a full match is re-checked against the remote definition.
		if diff, derr := reconcile.Diff(desired, &cached.Schema); derr == nil && diff.Match == reconcile.FullMatch {
			log.Debug("Event schema cache hit", zap.String("fqn", cached.FullyQualifiedName))
			return r.send(ctx, payload, values, s, cached, diff, ActionCached)
		}
		log.Debug("Cached event schema is incomplete")
	}

	action := ActionConfirmed
	known, err := r.cache.Do(s.ScopeID, signature(desired), func() (reconcile.CachedSchema, error) {
		cs, a, err := r.ensure(ctx, desired, s, mode, log)
		action = a
		return cs, err
	})
	if err != nil {
		log.Warn("Event schema reconciliation failed", logger.FaultFields(err)...)
		return nil, err
	}

	diff, err := reconcile.Diff(desired, &known.Schema)
	if err != nil {
		return nil, err
	}
	if diff.Match != reconcile.FullMatch {
		return nil, fault.Retryable(fmt.Sprintf("event schema %s is not complete yet", desired.Name), http.StatusServiceUnavailable)
	}
	return r.send(ctx, payload, values, s, known, diff, action)
}

// ensure brings the remote definition in line with desired and caches the result.
func (r *Reconciler) ensure(ctx context.Context, desired reconcile.Schema, s Settings, mode SyncMode, log *zap.Logger) (reconcile.CachedSchema, SchemaAction, error) {
	def, err := r.client.GetEventDefinition(ctx, s, desired.Name)
	if err != nil {
		return reconcile.CachedSchema{}, "", err
	}

	if def == nil {
		if mode == SyncUpdate {
			return reconcile.CachedSchema{}, "", fault.Fatal(CodeSyncModeBlocked,
				fmt.Sprintf("event schema %s does not exist and sync mode %s forbids creating it", desired.Name, mode),
				http.StatusBadRequest)
		}

		created, err := r.client.CreateEventDefinition(ctx, s, desired)
		if err != nil {
			return reconcile.CachedSchema{}, "", err
		}
		cs := reconcile.CachedSchema{Schema: desired.Clone(), FullyQualifiedName: created.FullyQualifiedName}
		r.cache.Set(s.ScopeID, cs)
		log.Info("Created event schema", zap.String("fqn", cs.FullyQualifiedName), zap.Int("properties", len(desired.Properties)))
		return cs, ActionCreated, nil
	}

	known, err := def.toSchema(desired.Name, desired)
	if err != nil {
		return reconcile.CachedSchema{}, "", err
	}
	fqn := def.FullyQualifiedName
	if fqn == "" {
		fqn = def.Name
	}
	cs := reconcile.CachedSchema{Schema: known, FullyQualifiedName: fqn}

	diff, err := reconcile.Diff(desired, &known)
	if err != nil {
		return reconcile.CachedSchema{}, "", err
	}

	switch diff.Match {
	case reconcile.FullMatch:
		r.cache.Set(s.ScopeID, cs)
		log.Debug("Remote event schema matches", zap.String("fqn", fqn))
		return cs, ActionConfirmed, nil

	case reconcile.PropertiesMissing:
		if mode == SyncAdd {
			return reconcile.CachedSchema{}, "", fault.Fatal(CodeSyncModeBlocked,
				fmt.Sprintf("event schema %s is missing properties %s and sync mode %s forbids adding them",
					desired.Name, strings.Join(sortedNames(diff.MissingProperties), ", "), mode),
				http.StatusBadRequest)
		}
		if err := r.addProperties(ctx, s, fqn, diff.MissingProperties); err != nil {
			return reconcile.CachedSchema{}, "", err
		}
		for name, d := range diff.MissingProperties {
			cs.Properties[name] = d
		}
		r.cache.Set(s.ScopeID, cs)
		log.Info("Added properties to event schema", zap.String("fqn", fqn), zap.Strings("properties", sortedNames(diff.MissingProperties)))
		return cs, ActionUpdated, nil
	}

	return reconcile.CachedSchema{}, "", fmt.Errorf("unexpected schema diff %q for event %s", diff.Match, desired.Name)
}

// addProperties creates missing properties concurrently and folds their outcomes.
func (r *Reconciler) addProperties(ctx context.Context, s Settings, fqn string, missing map[string]reconcile.PropertyDescriptor) error {
	names := sortedNames(missing)
	outcomes := make([]fault.Outcome, len(names))

	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			outcomes[i] = fault.Outcome{
				Step: name,
				Err:  r.client.CreatePropertyDefinition(ctx, s, fqn, name, missing[name]),
			}
			return nil
		})
	}
	_ = g.Wait()

	return fault.Fold(CodeUpdateSchema, "failed to add properties to event schema "+fqn, outcomes)
}

func (r *Reconciler) send(ctx context.Context, payload EventPayload, values map[string]PropertyValue, s Settings, schema reconcile.CachedSchema, diff reconcile.SchemaDiff, action SchemaAction) (*SendResult, error) {
	status, err := r.client.SendEvent(ctx, s, eventCompletion{
		EventName:  schema.FullyQualifiedName,
		ObjectID:   payload.RecordDetails.ObjectID,
		Email:      payload.RecordDetails.Email,
		UTK:        payload.RecordDetails.UTK,
		OccurredAt: payload.OccurredAt,
		Properties: wireProperties(values, diff.StringifiedProperties),
	})
	if err != nil {
		return nil, err
	}

	return &SendResult{
		EventName:          payload.EventName,
		FullyQualifiedName: schema.FullyQualifiedName,
		SchemaAction:       action,
		Status:             status,
	}, nil
}
