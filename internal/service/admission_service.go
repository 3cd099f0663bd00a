package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/repository"
	"github.com/raslen-der12/event-api-sub000/pkg/rabbitmq"
	"gorm.io/gorm"
)

var (
	ErrResourceNotFound   = errors.New("resource not found")
	ErrResourceFull       = errors.New("resource has no remaining capacity")
	ErrAlreadyRegistered  = errors.New("actor already holds an active registration for this resource")
	ErrSessionMismatch    = errors.New("session does not belong to the given event")
	ErrDuplicateSessions  = errors.New("duplicate session ids in request")
	ErrRegistrationClosed = errors.New("registration window is not open")

	// ErrReconcileRequired means a compensating release failed after an
	// earlier failure: capacity counters may be permanently too high until
	// reconciled by hand. Never swallowed.
	ErrReconcileRequired = errors.New("inconsistent capacity state, manual reconciliation required")
)

// ResourceRef names one capacity resource: the event itself when SessionID
// is nil, otherwise a session of that event.
type ResourceRef struct {
	EventID   uint
	SessionID *uint
}

func EventRef(eventID uint) ResourceRef {
	return ResourceRef{EventID: eventID}
}

func SessionRef(eventID, sessionID uint) ResourceRef {
	return ResourceRef{EventID: eventID, SessionID: &sessionID}
}

func (r ResourceRef) String() string {
	if r.SessionID == nil {
		return fmt.Sprintf("event %d", r.EventID)
	}
	return fmt.Sprintf("session %d", *r.SessionID)
}

// AdmissionService guards events and sessions against overbooking. Each
// seat reservation is a single atomic conditional increment at the database;
// the service holds no in-process locks and stays correct across any number
// of concurrent request handlers and process instances.
type AdmissionService interface {
	Reserve(ctx context.Context, ref ResourceRef, actorID string, role models.ActorRole) (*models.Registration, error)
	ReserveMany(ctx context.Context, eventID uint, sessionIDs []uint, actorID string, role models.ActorRole) ([]models.Registration, error)
	Release(ctx context.Context, ref ResourceRef, actorID string) error
	JoinWaitlist(ctx context.Context, ref ResourceRef, actorID string, role models.ActorRole) (*models.Registration, error)
	ListRegistrations(ctx context.Context, eventID uint, status *models.RegistrationStatus) ([]models.Registration, error)
}

type admissionService struct {
	events        repository.EventRepository
	sessions      repository.SessionRepository
	registrations repository.RegistrationRepository
	publisher     *rabbitmq.Publisher
	now           func() time.Time
}

func NewAdmissionService(
	events repository.EventRepository,
	sessions repository.SessionRepository,
	registrations repository.RegistrationRepository,
	publisher *rabbitmq.Publisher,
) AdmissionService {
	return &admissionService{
		events:        events,
		sessions:      sessions,
		registrations: registrations,
		publisher:     publisher,
		now:           time.Now,
	}
}

func (s *admissionService) Reserve(ctx context.Context, ref ResourceRef, actorID string, role models.ActorRole) (*models.Registration, error) {
	if err := s.validateRef(ctx, ref); err != nil {
		return nil, err
	}

	reg, err := s.reserveOne(ctx, ref, actorID, role)
	if err != nil {
		return nil, err
	}

	s.publish("registration.created", reg)
	return reg, nil
}

// ReserveMany registers an actor for an event and a list of its sessions as
// one all-or-nothing operation. Each underlying reservation is its own
// atomic store operation; atomicity from the caller's point of view comes
// from the compensating release of everything granted before a failure.
func (s *admissionService) ReserveMany(ctx context.Context, eventID uint, sessionIDs []uint, actorID string, role models.ActorRole) ([]models.Registration, error) {
	// Ambiguous intent and cross-event sessions are rejected before any
	// reservation is attempted.
	seen := make(map[uint]struct{}, len(sessionIDs))
	for _, id := range sessionIDs {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("session %d listed twice: %w", id, ErrDuplicateSessions)
		}
		seen[id] = struct{}{}
	}

	if err := s.validateRef(ctx, EventRef(eventID)); err != nil {
		return nil, err
	}

	if len(sessionIDs) > 0 {
		sessions, err := s.sessions.FindByIDs(ctx, sessionIDs)
		if err != nil {
			return nil, fmt.Errorf("load sessions: %w", err)
		}
		byID := make(map[uint]models.Session, len(sessions))
		for _, sess := range sessions {
			byID[sess.ID] = sess
		}
		for _, id := range sessionIDs {
			sess, ok := byID[id]
			if !ok {
				return nil, fmt.Errorf("session %d: %w", id, ErrResourceNotFound)
			}
			if sess.EventID != eventID {
				return nil, fmt.Errorf("session %d belongs to event %d: %w", id, sess.EventID, ErrSessionMismatch)
			}
		}
	}

	var granted []models.Registration

	reg, err := s.reserveOne(ctx, EventRef(eventID), actorID, role)
	if err != nil {
		return nil, err
	}
	granted = append(granted, *reg)

	for _, sessionID := range sessionIDs {
		reg, err := s.reserveOne(ctx, SessionRef(eventID, sessionID), actorID, role)
		if err != nil {
			if rbErr := s.rollback(ctx, granted); rbErr != nil {
				return nil, fmt.Errorf("%v; rollback also failed: %w", err, rbErr)
			}
			return nil, err
		}
		granted = append(granted, *reg)
	}

	s.publish("registration.created", granted)
	return granted, nil
}

// Release cancels the actor's active registration on the resource and frees
// its seat. Idempotent: releasing a cancelled or nonexistent registration is
// a no-op success so refund workflows can retry safely. A freed seat is
// offered to the earliest waitlisted actor, if any.
func (s *admissionService) Release(ctx context.Context, ref ResourceRef, actorID string) error {
	reg, err := s.registrations.FindActive(ctx, ref.EventID, ref.SessionID, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find registration: %w", err)
	}

	cancelled, err := s.registrations.Cancel(ctx, reg.ID)
	if err != nil {
		return fmt.Errorf("cancel registration: %w", err)
	}
	if !cancelled {
		// Lost a race with another release of the same registration.
		return nil
	}

	if reg.Status == models.StatusRegistered {
		if err := s.releaseSeat(ctx, ref); err != nil {
			return fmt.Errorf("release seat for %s after cancelling registration %d: %v: %w",
				ref, reg.ID, err, ErrReconcileRequired)
		}
		if err := s.promoteWaitlisted(ctx, ref); err != nil {
			return err
		}
	}

	s.publish("registration.cancelled", reg)
	return nil
}

// JoinWaitlist adds an explicit waitlist entry. A full resource never
// waitlists automatically; callers opt in through this operation.
func (s *admissionService) JoinWaitlist(ctx context.Context, ref ResourceRef, actorID string, role models.ActorRole) (*models.Registration, error) {
	if err := s.validateRef(ctx, ref); err != nil {
		return nil, err
	}

	reg := &models.Registration{
		EventID:   ref.EventID,
		SessionID: ref.SessionID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    models.StatusWaitlisted,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("create waitlist entry: %w", err)
	}

	s.publish("registration.waitlisted", reg)
	return reg, nil
}

func (s *admissionService) ListRegistrations(ctx context.Context, eventID uint, status *models.RegistrationStatus) ([]models.Registration, error) {
	if _, err := s.events.FindByID(ctx, eventID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("event %d: %w", eventID, ErrResourceNotFound)
		}
		return nil, fmt.Errorf("load event: %w", err)
	}
	return s.registrations.FindByEvent(ctx, eventID, status)
}

// validateRef checks that the resource exists, that a session belongs to the
// stated event, and that the registration window is open.
func (s *admissionService) validateRef(ctx context.Context, ref ResourceRef) error {
	event, err := s.events.FindByID(ctx, ref.EventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("event %d: %w", ref.EventID, ErrResourceNotFound)
		}
		return fmt.Errorf("load event: %w", err)
	}

	now := s.now()
	if now.Before(event.RegistrationStartAt) || now.After(event.RegistrationEndAt) {
		return ErrRegistrationClosed
	}

	if ref.SessionID != nil {
		session, err := s.sessions.FindByID(ctx, *ref.SessionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%s: %w", ref, ErrResourceNotFound)
			}
			return fmt.Errorf("load session: %w", err)
		}
		if session.EventID != ref.EventID {
			return fmt.Errorf("session %d belongs to event %d: %w", session.ID, session.EventID, ErrSessionMismatch)
		}
	}
	return nil
}

// reserveOne claims one seat and records the registration. The seat claim is
// the single conditional increment; if the registration insert then fails
// (duplicate claim), the increment is compensated before returning.
func (s *admissionService) reserveOne(ctx context.Context, ref ResourceRef, actorID string, role models.ActorRole) (*models.Registration, error) {
	ok, err := s.tryReserveSeat(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("reserve %s: %w", ref, err)
	}
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrResourceFull)
	}

	reg := &models.Registration{
		EventID:   ref.EventID,
		SessionID: ref.SessionID,
		ActorID:   actorID,
		ActorRole: role,
		Status:    models.StatusRegistered,
	}
	if err := s.registrations.Create(ctx, reg); err != nil {
		if relErr := s.releaseSeat(ctx, ref); relErr != nil {
			return nil, fmt.Errorf("compensate %s after failed insert: %v: %w", ref, relErr, ErrReconcileRequired)
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, fmt.Errorf("%s: %w", ref, ErrAlreadyRegistered)
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

// rollback releases every reservation granted earlier in a failed
// ReserveMany, in reverse order. Any failure here leaves counters too high,
// which must be surfaced, not swallowed.
func (s *admissionService) rollback(ctx context.Context, granted []models.Registration) error {
	var failed []string
	for i := len(granted) - 1; i >= 0; i-- {
		reg := granted[i]
		ref := ResourceRef{EventID: reg.EventID, SessionID: reg.SessionID}
		if _, err := s.registrations.Cancel(ctx, reg.ID); err != nil {
			failed = append(failed, fmt.Sprintf("%s (cancel: %v)", ref, err))
			continue
		}
		if err := s.releaseSeat(ctx, ref); err != nil {
			failed = append(failed, fmt.Sprintf("%s (decrement: %v)", ref, err))
		}
	}
	if len(failed) > 0 {
		return fmt.Errorf("%s: %w", strings.Join(failed, "; "), ErrReconcileRequired)
	}
	return nil
}

// promoteWaitlisted hands a freed seat to the earliest waitlisted actor. If
// the seat was snatched by a concurrent reservation first, the candidate
// simply stays waitlisted.
func (s *admissionService) promoteWaitlisted(ctx context.Context, ref ResourceRef) error {
	cand, err := s.registrations.FirstWaitlisted(ctx, ref.EventID, ref.SessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return fmt.Errorf("find waitlisted: %w", err)
	}

	ok, err := s.tryReserveSeat(ctx, ref)
	if err != nil {
		return fmt.Errorf("reserve seat for promotion: %w", err)
	}
	if !ok {
		return nil
	}

	if err := s.registrations.MarkRegistered(ctx, cand.ID); err != nil {
		if relErr := s.releaseSeat(ctx, ref); relErr != nil {
			return fmt.Errorf("compensate %s after failed promotion: %v: %w", ref, relErr, ErrReconcileRequired)
		}
		return fmt.Errorf("promote registration %d: %w", cand.ID, err)
	}

	cand.Status = models.StatusRegistered
	s.publish("registration.promoted", cand)
	return nil
}

func (s *admissionService) tryReserveSeat(ctx context.Context, ref ResourceRef) (bool, error) {
	if ref.SessionID == nil {
		return s.events.TryReserveSeat(ctx, ref.EventID)
	}
	return s.sessions.TryReserveSeat(ctx, *ref.SessionID)
}

func (s *admissionService) releaseSeat(ctx context.Context, ref ResourceRef) error {
	if ref.SessionID == nil {
		return s.events.ReleaseSeat(ctx, ref.EventID)
	}
	return s.sessions.ReleaseSeat(ctx, *ref.SessionID)
}

func (s *admissionService) publish(routingKey string, payload any) {
	if s.publisher == nil {
		return
	}
	_ = s.publisher.Publish(routingKey, payload)
}
