package blackbaud

import (
	"context"
	"strings"

	"destination-sync/core/fault"
	"destination-sync/core/logger"
	"destination-sync/core/metrics"
	"destination-sync/core/reconcile"
	"destination-sync/core/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const updatePrefix = "One or more errors occurred when updating existing constituent"

// Reconciler finds or creates constituents and keeps their contact records in line.
type Reconciler struct {
	client  *Client
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewReconciler creates a record reconciler.
func NewReconciler(client *Client, m *metrics.Metrics, logg *zap.Logger) *Reconciler {
	if logg == nil {
		logg = zap.NewNop()
	}
	return &Reconciler{client: client, metrics: m, logger: logg}
}

// ReconcileRecord creates the constituent described by p, or updates the
// existing one identified by constituent id, lookup id or email.
func (r *Reconciler) ReconcileRecord(ctx context.Context, p ConstituentPayload, s Settings) (res *RecordResult, err error) {
	defer func() {
		r.metrics.ObserveOutcome("record", fault.Label(err))
	}()

	fields, err := p.constituentFields()
	if err != nil {
		return nil, err
	}

	id := p.ConstituentID
	if id == "" {
		if id, err = r.findExisting(ctx, p, s); err != nil {
			return nil, err
		}
	}

	if id == "" {
		return r.create(ctx, p, fields, s)
	}
	if err := r.update(ctx, id, p, fields, s); err != nil {
		return nil, err
	}
	return &RecordResult{ID: id}, nil
}

// findExisting searches by lookup id, else by email. Without either it returns "".
func (r *Reconciler) findExisting(ctx context.Context, p ConstituentPayload, s Settings) (string, error) {
	switch {
	case p.LookupID != "":
		return r.client.SearchConstituent(ctx, s, SearchLookupID, p.LookupID)
	case p.Email != nil && p.Email.Address != "":
		return r.client.SearchConstituent(ctx, s, SearchEmailAddress, p.Email.Address)
	default:
		return "", nil
	}
}

func (r *Reconciler) create(ctx context.Context, p ConstituentPayload, fields constituentFields, s Settings) (*RecordResult, error) {
	if strings.TrimSpace(p.Last) == "" {
		return nil, fault.Validation(fault.CodeMissingField, "Missing last name value")
	}

	id, err := r.client.CreateConstituent(ctx, s, createConstituentBody{
		constituentFields: fields,
		Type:              "Individual",
		Address:           nonEmpty(addressFields(p.Address)),
		Email:             nonEmpty(emailFields(p.Email)),
		OnlinePresence:    nonEmpty(onlinePresenceFields(p.OnlinePresence)),
		Phone:             nonEmpty(phoneFields(p.Phone)),
	})
	if err != nil {
		return nil, err
	}

	r.logger.Debug("Created constituent", zap.String("constituent_id", id))
	return &RecordResult{ID: id, Created: true}, nil
}

func (r *Reconciler) update(ctx context.Context, id string, p ConstituentPayload, fields constituentFields, s Settings) error {
	var outcomes []fault.Outcome

	if fields.hasUpdates() {
		if err := r.client.UpdateConstituent(ctx, s, id, fields); err != nil {
			if kind, _ := fault.KindOf(err); kind != fault.KindRetryable {
				return err
			}
			outcomes = append(outcomes, fault.Outcome{Step: "constituent", Err: err})
		}
	}

	outcomes = append(outcomes, r.reconcileSubRecords(ctx, s, id, p)...)

	if err := fault.Fold(CodeUpdateConstituent, updatePrefix, outcomes); err != nil {
		r.logger.Warn("Constituent update failed", append(logger.FaultFields(err), zap.String("constituent_id", id))...)
		return err
	}
	return nil
}

// reconcileSubRecords reconciles every supplied sub-record type concurrently.
// Outcomes keep the order address, email, online presence, phone.
func (r *Reconciler) reconcileSubRecords(ctx context.Context, s Settings, id string, p ConstituentPayload) []fault.Outcome {
	type job struct {
		kind    subRecordKind
		desired reconcile.Fields
	}

	var jobs []job
	for _, j := range []job{
		{addressKind, addressFields(p.Address)},
		{emailKind, emailFields(p.Email)},
		{onlinePresenceKind, onlinePresenceFields(p.OnlinePresence)},
		{phoneKind, phoneFields(p.Phone)},
	} {
		if len(j.desired) > 0 {
			jobs = append(jobs, j)
		}
	}

	outcomes := make([]fault.Outcome, len(jobs))
	var g errgroup.Group
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			outcomes[i] = fault.Outcome{
				Step: j.kind.label,
				Err:  r.reconcileSubRecord(ctx, s, id, j.kind, j.desired),
			}
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}

func (r *Reconciler) reconcileSubRecord(ctx context.Context, s Settings, id string, k subRecordKind, desired reconcile.Fields) error {
	existing, err := r.client.ListSubRecords(ctx, s, id, k)
	if err != nil {
		return err
	}

	idx, err := reconcile.FindMatch(existing, desired, k.match)
	if err != nil {
		return err
	}

	log := r.logger.With(zap.String("constituent_id", id), zap.String("type", k.label))
	if idx < 0 {
		log.Debug("Creating sub-record", zap.Int("existing", len(existing)))
		return r.client.CreateSubRecord(ctx, s, k, k.createBody(id, desired, len(existing)))
	}

	current := existing[idx]
	patch := k.patchBody(current, desired)
	if patch == nil {
		log.Debug("Sub-record up to date")
		return nil
	}

	recordID := utils.ToString(current["id"])
	log.Debug("Patching sub-record", zap.String("record_id", recordID))
	return r.client.UpdateSubRecord(ctx, s, k, recordID, patch)
}
