// internal/form/form.go
package form

import (
	"context"
	"fmt"
	"sync"
	"time"

	apperrors "club-signup/internal/common/errors"
	"club-signup/internal/common/logger"
	"club-signup/internal/common/metrics"
	"club-signup/internal/common/observability"
	"club-signup/internal/common/validation"
	"club-signup/internal/models"
)

// Creator is the write half of a document store.
type Creator interface {
	Create(ctx context.Context, collection, id string, app models.Application) error
}

// Form holds one applicant's in-progress submission. It is safe for
// concurrent use; at most one write is ever in flight.
type Form struct {
	store        Creator
	rules        *validation.RuleSet
	collection   string
	writeTimeout time.Duration
	newID        func() string
	logger       logger.Logger
	obs          *observability.Observability

	mu      sync.Mutex
	state   State
	values  models.Application
	touched map[string]bool
	errors  map[string]string
	docID   string
	lastErr error
}

// New returns an empty form in the Editing state. Every field starts
// untouched with its rule result already computed, so VisibleError stays
// empty until the field is blurred or a submit is attempted.
func New(store Creator, opts ...Option) *Form {
	f := &Form{
		store:   store,
		rules:   validation.DefaultRuleSet(),
		newID:   newDocumentID,
		logger:  logger.NewNoOpLogger(),
		state:   Editing,
		touched: make(map[string]bool),
		errors:  make(map[string]string),
	}
	WithConfig(DefaultConfig())(f)
	for _, opt := range opts {
		opt(f)
	}
	for _, field := range f.rules.Fields() {
		f.revalidate(field)
	}
	return f
}

// UpdateField sets a field value and re-runs its rules.
func (f *Form) UpdateField(name, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(name); err != nil {
		return err
	}
	f.values.Set(name, value)
	f.revalidate(name)
	if f.state == Failed {
		f.state = Editing
	}
	return nil
}

// Blur marks a field as touched and re-runs its rules.
func (f *Form) Blur(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editable(name); err != nil {
		return err
	}
	f.touched[name] = true
	f.revalidate(name)
	return nil
}

// VisibleError returns the field's error text once the field is touched.
func (f *Form) VisibleError(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.visibleError(name)
}

// Submit touches and validates every field. When all pass it writes the
// record under a fresh document ID and returns that ID.
func (f *Form) Submit(ctx context.Context) (string, error) {
	f.mu.Lock()
	switch f.state {
	case Submitted:
		f.mu.Unlock()
		return "", ErrFormClosed
	case Submitting:
		f.mu.Unlock()
		return "", ErrSubmitInProgress
	}

	result := f.rules.Validate(f.values)
	for _, fr := range result.Fields {
		f.touched[fr.Field] = true
		f.setError(fr)
	}
	if !result.Valid() {
		f.state = Editing
		f.mu.Unlock()
		for _, fr := range result.Fields {
			if !fr.Valid {
				metrics.ValidationFailures.WithLabelValues(fr.Field, fr.Code).Inc()
			}
		}
		f.record(ctx, "invalid", 0)
		return "", fmt.Errorf("%w: %w", ErrInvalid, apperrors.NewValidationFailedError(result.Invalid()))
	}

	f.state = Submitting
	f.lastErr = nil
	record := f.values
	id := f.newID()
	f.mu.Unlock()

	start := time.Now()
	err := f.write(ctx, id, record)
	elapsed := time.Since(start)

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		f.state = Failed
		f.lastErr = err
		f.logger.Error("application write failed", map[string]interface{}{
			"collection": f.collection,
			"documentId": id,
			"error":      err,
		})
		f.record(ctx, "failed", elapsed)
		return "", err
	}

	f.state = Submitted
	f.docID = id
	f.logger.Info("application submitted", map[string]interface{}{
		"collection": f.collection,
		"documentId": id,
	})
	f.record(ctx, "submitted", elapsed)
	return id, nil
}

func (f *Form) write(ctx context.Context, id string, record models.Application) error {
	if f.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.writeTimeout)
		defer cancel()
	}
	return f.store.Create(ctx, f.collection, id, record)
}

func (f *Form) record(ctx context.Context, outcome string, elapsed time.Duration) {
	metrics.SubmissionsTotal.WithLabelValues(outcome).Inc()
	f.obs.RecordSubmission(ctx, outcome)
	if elapsed > 0 {
		f.obs.RecordSubmitDuration(ctx, elapsed, outcome)
	}
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Values() models.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

// Errors returns the current error text of every failing field, touched
// or not.
func (f *Form) Errors() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]string, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// DocumentID is empty until a write has succeeded.
func (f *Form) DocumentID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.docID
}

// LastError returns the error of the most recent failed write.
func (f *Form) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

func (f *Form) Touched(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.touched[name]
}

// Snapshot returns everything a page needs to render the form.
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	v := View{
		State:      f.state,
		Values:     make(map[string]string),
		Errors:     make(map[string]string),
		DocumentID: f.docID,
	}
	for _, field := range f.rules.Fields() {
		v.Values[field], _ = f.values.Get(field)
		if msg := f.visibleError(field); msg != "" {
			v.Errors[field] = msg
		}
	}
	if f.lastErr != nil {
		v.Failure = f.lastErr.Error()
	}
	return v
}

func (f *Form) editable(name string) error {
	if !models.IsField(name) {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if f.state == Submitted {
		return ErrFormClosed
	}
	return nil
}

func (f *Form) revalidate(name string) {
	value, _ := f.values.Get(name)
	if fr, ok := f.rules.ValidateField(name, value); ok {
		f.setError(fr)
	}
}

func (f *Form) setError(fr validation.FieldResult) {
	if fr.Valid {
		delete(f.errors, fr.Field)
		return
	}
	f.errors[fr.Field] = fr.Message
}

func (f *Form) visibleError(name string) string {
	if !f.touched[name] {
		return ""
	}
	return f.errors[name]
}
