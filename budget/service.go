package budget

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jrsteele09/go-auth-client/forms"
	"github.com/jrsteele09/go-auth-client/gateway"
	interrors "github.com/jrsteele09/go-auth-client/internal/errors"
	"github.com/jrsteele09/go-auth-client/session"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// LocalStore persists locally synthesized records so the demo survives
// restarts without a backend.
type LocalStore interface {
	SaveLocal(budget Budget) error
	DeleteLocal(id ID) error
	LoadLocal() ([]Budget, error)
}

// CreateRequest carries the budget create/update payload.
type CreateRequest struct {
	Name        string    `json:"name"`
	Description string    `json:"description"`
	TotalAmount float64   `json:"totalAmount"`
	Department  string    `json:"department"`
	Category    string    `json:"category"`
	StartDate   time.Time `json:"startDate"`
	EndDate     time.Time `json:"endDate"`
}

// Service owns the local budget state and the calls that mutate it.
// Mutations are optimistic: a failed backend call falls back to a
// locally synthesized record tagged OriginLocal rather than failing the
// demo. There is no reconciliation pass; Local records stay Local.
type Service struct {
	gateway *gateway.Client
	store   *session.Store
	local   LocalStore
	logger  zerolog.Logger

	nowTime func() time.Time
	newID   func() ID

	mu      sync.RWMutex
	records []Record
}

type ServiceOption func(*Service)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) ServiceOption {
	return func(s *Service) {
		s.nowTime = nowFunc
	}
}

// WithIDGenerator sets the local-record id generator (primarily for testing)
func WithIDGenerator(idFunc func() ID) ServiceOption {
	return func(s *Service) {
		s.newID = idFunc
	}
}

func WithLocalStore(local LocalStore) ServiceOption {
	return func(s *Service) {
		s.local = local
	}
}

func WithLogger(logger zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = logger
	}
}

func NewService(gatewayClient *gateway.Client, store *session.Store, options ...ServiceOption) (*Service, error) {
	if gatewayClient == nil {
		return nil, errors.New("[budget.NewService] gateway client is required")
	}
	if store == nil {
		return nil, errors.New("[budget.NewService] session store is required")
	}

	service := &Service{
		gateway: gatewayClient,
		store:   store,
		logger:  zerolog.Nop(),
		nowTime: time.Now,
		newID:   func() ID { return ID(uuid.New().String()) },
	}

	for _, opt := range options {
		opt(service)
	}

	if service.local != nil {
		saved, err := service.local.LoadLocal()
		if err != nil {
			return nil, errors.Wrap(err, "[budget.NewService] load local records")
		}
		for _, b := range saved {
			service.records = append(service.records, Record{Budget: b, Origin: OriginLocal})
		}
	}

	return service, nil
}

// Records returns a copy of the current budget list.
func (s *Service) Records() []Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := make([]Record, len(s.records))
	copy(records, s.records)
	return records
}

// Fetch replaces the confirmed records with the backend's list, keeping any
// Local records appended after them. When the backend is unreachable the
// current state is kept and returned alongside the error.
func (s *Service) Fetch(ctx context.Context) ([]Record, error) {
	envelope, err := s.gateway.Get(ctx, "/budgets")
	if err != nil || !envelope.Success {
		if err == nil {
			err = errors.New("[Service.Fetch] " + envelope.DisplayMessage("failed to fetch budgets"))
		}
		s.logger.Warn().Err(err).Msg("Budget fetch failed, keeping local state")
		return s.Records(), err
	}

	var budgets []Budget
	if err := envelope.DecodeData(&budgets); err != nil {
		return s.Records(), errors.Wrap(err, "[Service.Fetch] decode")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var locals []Record
	for _, r := range s.records {
		if r.Origin == OriginLocal {
			locals = append(locals, r)
		}
	}
	s.records = s.records[:0]
	for _, b := range budgets {
		s.records = append(s.records, Record{Budget: b, Origin: OriginConfirmed})
	}
	s.records = append(s.records, locals...)

	records := make([]Record, len(s.records))
	copy(records, s.records)
	return records, nil
}

// Create posts a new budget. On a confirmed response the server record is
// adopted; on any failure a Local record is synthesized from the request so
// the demo keeps working offline.
func (s *Service) Create(ctx context.Context, req CreateRequest) (Record, error) {
	envelope, err := s.gateway.Post(ctx, "/budgets", req)
	if err == nil && envelope.Success {
		created := Budget{}
		if decodeErr := envelope.DecodeData(&created); decodeErr == nil {
			record := Record{Budget: created, Origin: OriginConfirmed}
			s.append(record)
			return record, nil
		}
	}

	record := Record{Budget: s.synthesize(req), Origin: OriginLocal}
	s.append(record)
	if s.local != nil {
		if saveErr := s.local.SaveLocal(record.Budget); saveErr != nil {
			s.logger.Warn().Err(saveErr).Msg("Failed to persist local budget record")
		}
	}
	s.logger.Info().Str("id", string(record.ID)).Msg("Backend unavailable, created local budget record")
	return record, nil
}

// synthesize builds the local echo of a create request: a fresh DRAFT with
// nothing spent and the remaining amount equal to the total.
func (s *Service) synthesize(req CreateRequest) Budget {
	now := s.nowTime()

	name := req.Name
	if name == "" {
		name = "New Budget"
	}
	department := req.Department
	if department == "" {
		department = "General"
	}
	category := req.Category
	if category == "" {
		category = "General"
	}
	startDate := req.StartDate
	if startDate.IsZero() {
		startDate = now
	}
	endDate := req.EndDate
	if endDate.IsZero() {
		endDate = now.AddDate(1, 0, 0)
	}

	return Budget{
		ID:              s.newID(),
		Name:            name,
		Description:     req.Description,
		TotalAmount:     req.TotalAmount,
		SpentAmount:     0,
		RemainingAmount: req.TotalAmount,
		Department:      department,
		Category:        category,
		Status:          StatusDraft,
		CreatedBy:       s.store.User(),
		StartDate:       startDate,
		EndDate:         endDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// Update puts the changes to the backend; on failure the record is patched
// in place and re-tagged Local, since it now diverges from server state.
func (s *Service) Update(ctx context.Context, id ID, req CreateRequest) (Record, error) {
	envelope, err := s.gateway.Put(ctx, "/budgets/"+string(id), req)
	if err == nil && envelope.Success {
		updated := Budget{}
		if decodeErr := envelope.DecodeData(&updated); decodeErr == nil {
			return s.replace(id, Record{Budget: updated, Origin: OriginConfirmed})
		}
	}

	return s.patch(id, func(b *Budget) {
		if req.Name != "" {
			b.Name = req.Name
		}
		if req.Description != "" {
			b.Description = req.Description
		}
		if req.TotalAmount > 0 {
			b.TotalAmount = req.TotalAmount
			b.RemainingAmount = b.TotalAmount - b.SpentAmount
		}
		if req.Department != "" {
			b.Department = req.Department
		}
		if req.Category != "" {
			b.Category = req.Category
		}
		if !req.StartDate.IsZero() {
			b.StartDate = req.StartDate
		}
		if !req.EndDate.IsZero() {
			b.EndDate = req.EndDate
		}
	})
}

// Approve marks the budget approved. On local fallback the cached user is
// recorded as the approver.
func (s *Service) Approve(ctx context.Context, id ID) (Record, error) {
	return s.decide(ctx, id, "approve", StatusApproved)
}

// Reject marks the budget rejected.
func (s *Service) Reject(ctx context.Context, id ID) (Record, error) {
	return s.decide(ctx, id, "reject", StatusRejected)
}

func (s *Service) decide(ctx context.Context, id ID, action string, status Status) (Record, error) {
	envelope, err := s.gateway.Post(ctx, "/budgets/"+string(id)+"/"+action, nil)
	if err == nil && envelope.Success {
		decided := Budget{}
		if decodeErr := envelope.DecodeData(&decided); decodeErr == nil {
			return s.replace(id, Record{Budget: decided, Origin: OriginConfirmed})
		}
	}

	return s.patch(id, func(b *Budget) {
		b.Status = status
		b.ApprovedBy = s.store.User()
	})
}

// Delete removes the budget. A Confirmed record is only removed when the
// backend confirmed the delete; a Local record is removed unconditionally,
// since the backend never knew about it.
func (s *Service) Delete(ctx context.Context, id ID) error {
	record, ok := s.find(id)
	if !ok {
		return errors.Wrap(interrors.ErrNotFound, string(id))
	}

	envelope, err := s.gateway.Delete(ctx, "/budgets/"+string(id))
	confirmed := err == nil && envelope.Success

	if !confirmed && record.Origin != OriginLocal {
		if err != nil {
			return errors.Wrap(err, "[Service.Delete]")
		}
		return errors.New("[Service.Delete] " + envelope.DisplayMessage("failed to delete budget"))
	}

	s.remove(id)
	if record.Origin == OriginLocal && s.local != nil {
		if delErr := s.local.DeleteLocal(id); delErr != nil {
			s.logger.Warn().Err(delErr).Msg("Failed to remove persisted local record")
		}
	}
	return nil
}

// SubmitBudget adapts the budget form controller's validated input onto
// Create, implementing forms.BudgetSubmitter.
func (s *Service) SubmitBudget(ctx context.Context, input forms.BudgetInput) error {
	_, err := s.Create(ctx, CreateRequest{
		Name:        input.Name,
		Description: input.Description,
		TotalAmount: input.TotalAmount,
		Department:  input.Department,
		Category:    input.Category,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
	})
	return err
}

func (s *Service) append(record Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = append(s.records, record)
}

func (s *Service) find(id ID) (Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, true
		}
	}
	return Record{}, false
}

func (s *Service) remove(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return
		}
	}
}

func (s *Service) replace(id ID, record Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records[i] = record
			return record, nil
		}
	}
	return Record{}, errors.Wrap(interrors.ErrNotFound, string(id))
}

// patch mutates a record in place, stamps UpdatedAt, and tags it Local.
func (s *Service) patch(id ID, mutate func(*Budget)) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.records {
		if s.records[i].ID == id {
			mutate(&s.records[i].Budget)
			s.records[i].UpdatedAt = s.nowTime()
			s.records[i].Origin = OriginLocal
			if s.local != nil {
				if err := s.local.SaveLocal(s.records[i].Budget); err != nil {
					s.logger.Warn().Err(err).Msg("Failed to persist local budget record")
				}
			}
			return s.records[i], nil
		}
	}
	return Record{}, errors.Wrap(interrors.ErrNotFound, string(id))
}
