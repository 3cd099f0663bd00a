//go:build integration

package integration

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/repository"
	"github.com/raslen-der12/event-api-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestEvent(t *testing.T, name string, capacity int) *models.Event {
	t.Helper()
	event := &models.Event{
		Name:                name,
		Capacity:            capacity,
		RegistrationStartAt: time.Now().Add(-1 * time.Hour),
		RegistrationEndAt:   time.Now().Add(1 * time.Hour),
	}
	require.NoError(t, testDB.Create(event).Error)
	return event
}

func createTestSession(t *testing.T, eventID uint, title string, capacity int) *models.Session {
	t.Helper()
	session := &models.Session{EventID: eventID, Title: title, Capacity: capacity}
	require.NoError(t, testDB.Create(session).Error)
	return session
}

func newAdmissionService() service.AdmissionService {
	return service.NewAdmissionService(
		repository.NewEventRepository(testDB),
		repository.NewSessionRepository(testDB),
		repository.NewRegistrationRepository(testDB),
		nil,
	)
}

func eventCount(t *testing.T, id uint) int {
	t.Helper()
	var event models.Event
	require.NoError(t, testDB.First(&event, id).Error)
	return event.ReservedCount
}

func sessionCount(t *testing.T, id uint) int {
	t.Helper()
	var session models.Session
	require.NoError(t, testDB.First(&session, id).Error)
	return session.ReservedCount
}

// 60 actors race for 50 seats: exactly 50 admitted, 10 turned away, never
// more registrations than seats.
func TestConcurrentReservations_NoOversell(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Founders Summit", 50)
	svc := newAdmissionService()

	const attempts = 60
	var wg sync.WaitGroup
	errs := make(chan error, attempts)

	wg.Add(attempts)
	for i := 0; i < attempts; i++ {
		go func(n int) {
			defer wg.Done()
			_, err := svc.Reserve(t.Context(), service.EventRef(event.ID), fmt.Sprintf("actor-%03d", n), models.RoleAttendee)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var admitted, full int
	for err := range errs {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, service.ErrResourceFull):
			full++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}

	assert.Equal(t, 50, admitted)
	assert.Equal(t, 10, full)
	assert.Equal(t, 50, eventCount(t, event.ID))

	var dbRegs int64
	testDB.Model(&models.Registration{}).
		Where("event_id = ? AND status = ?", event.ID, models.StatusRegistered).
		Count(&dbRegs)
	assert.Equal(t, int64(50), dbRegs)
}

// A mid-list full session aborts the whole registration and restores every
// counter touched earlier in the call.
func TestReserveMany_Atomicity(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Founders Summit", 100)
	s1 := createTestSession(t, event.ID, "Workshop A", 10)
	s2 := createTestSession(t, event.ID, "Workshop B", 1)
	s3 := createTestSession(t, event.ID, "Workshop C", 10)
	svc := newAdmissionService()

	// fill s2 so the second registration fails there
	_, err := svc.Reserve(t.Context(), service.SessionRef(event.ID, s2.ID), "actor-other", models.RoleAttendee)
	require.NoError(t, err)

	_, err = svc.ReserveMany(t.Context(), event.ID, []uint{s1.ID, s2.ID, s3.ID}, "actor-1", models.RoleAttendee)
	assert.ErrorIs(t, err, service.ErrResourceFull)

	var active int64
	testDB.Model(&models.Registration{}).
		Where("actor_id = ? AND status <> ?", "actor-1", models.StatusCancelled).
		Count(&active)
	assert.Equal(t, int64(0), active, "no partial registration may survive")

	assert.Equal(t, 0, eventCount(t, event.ID))
	assert.Equal(t, 0, sessionCount(t, s1.ID))
	assert.Equal(t, 1, sessionCount(t, s2.ID))
	assert.Equal(t, 0, sessionCount(t, s3.ID))
}

func TestReserveMany_Success(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Founders Summit", 100)
	s1 := createTestSession(t, event.ID, "Workshop A", 10)
	s2 := createTestSession(t, event.ID, "Workshop B", 10)
	svc := newAdmissionService()

	regs, err := svc.ReserveMany(t.Context(), event.ID, []uint{s1.ID, s2.ID}, "actor-1", models.RoleExhibitor)

	require.NoError(t, err)
	require.Len(t, regs, 3)
	assert.Equal(t, 1, eventCount(t, event.ID))
	assert.Equal(t, 1, sessionCount(t, s1.ID))
	assert.Equal(t, 1, sessionCount(t, s2.ID))
}

// The partial unique index rejects the duplicate insert and the service
// compensates the already-applied increment.
func TestDuplicateRegistration_CompensatesIncrement(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Founders Summit", 10)
	svc := newAdmissionService()

	_, err := svc.Reserve(t.Context(), service.EventRef(event.ID), "actor-dup", models.RoleAttendee)
	require.NoError(t, err)

	_, err = svc.Reserve(t.Context(), service.EventRef(event.ID), "actor-dup", models.RoleAttendee)
	assert.ErrorIs(t, err, service.ErrAlreadyRegistered)
	assert.Equal(t, 1, eventCount(t, event.ID))
}

func TestDoubleRelease_DecrementsOnce(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Founders Summit", 10)
	svc := newAdmissionService()

	_, err := svc.Reserve(t.Context(), service.EventRef(event.ID), "actor-1", models.RoleAttendee)
	require.NoError(t, err)
	require.Equal(t, 1, eventCount(t, event.ID))

	require.NoError(t, svc.Release(t.Context(), service.EventRef(event.ID), "actor-1"))
	require.NoError(t, svc.Release(t.Context(), service.EventRef(event.ID), "actor-1"))

	assert.Equal(t, 0, eventCount(t, event.ID))

	// the seat can be taken again after the release
	_, err = svc.Reserve(t.Context(), service.EventRef(event.ID), "actor-1", models.RoleAttendee)
	assert.NoError(t, err)
}

func TestUnboundedEvent_AlwaysAdmits(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Open Meetup", 0)
	svc := newAdmissionService()

	for i := 0; i < 30; i++ {
		_, err := svc.Reserve(t.Context(), service.EventRef(event.ID), fmt.Sprintf("actor-%d", i), models.RoleAttendee)
		require.NoError(t, err)
	}

	assert.Equal(t, 30, eventCount(t, event.ID))
}

func TestRelease_PromotesWaitlisted(t *testing.T) {
	cleanTables()
	event := createTestEvent(t, "Tiny Roundtable", 1)
	svc := newAdmissionService()

	_, err := svc.Reserve(t.Context(), service.EventRef(event.ID), "actor-seated", models.RoleAttendee)
	require.NoError(t, err)

	_, err = svc.JoinWaitlist(t.Context(), service.EventRef(event.ID), "actor-waiting", models.RoleAttendee)
	require.NoError(t, err)

	require.NoError(t, svc.Release(t.Context(), service.EventRef(event.ID), "actor-seated"))

	var promoted models.Registration
	require.NoError(t, testDB.
		Where("event_id = ? AND actor_id = ?", event.ID, "actor-waiting").
		First(&promoted).Error)
	assert.Equal(t, models.StatusRegistered, promoted.Status)
	assert.Equal(t, 1, eventCount(t, event.ID))
}
