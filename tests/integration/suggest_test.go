//go:build integration

package integration

import (
	"testing"

	"github.com/raslen-der12/event-api-sub000/internal/models"
	"github.com/raslen-der12/event-api-sub000/internal/repository"
	"github.com/raslen-der12/event-api-sub000/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSuggestService() service.SuggestService {
	return service.NewSuggestService(
		repository.NewProfileProvider(testDB),
		repository.NewConnectionRepository(testDB),
	)
}

func seedAttendee(t *testing.T, actorID, name, lookingFor, offering string, open bool) {
	t.Helper()
	require.NoError(t, testDB.Create(&models.Attendee{
		ActorID:        actorID,
		EventID:        1,
		FullName:       name,
		LookingFor:     lookingFor,
		Offering:       offering,
		OpenToMeetings: open,
	}).Error)
}

func TestSuggest_AcrossRoleTables(t *testing.T) {
	cleanTables()
	seedAttendee(t, "me", "Mona", "AI, logistics", "fintech consulting", true)
	require.NoError(t, testDB.Create(&models.Exhibitor{
		ActorID: "exhibitor-1", EventID: 1, FullName: "Sam",
		CompanyName: "Nimbus AI", LookingFor: "fintech", Offering: "AI consulting",
		OpenToMeetings: true,
	}).Error)
	require.NoError(t, testDB.Create(&models.Speaker{
		ActorID: "speaker-1", EventID: 1, FullName: "Wanda",
		TalkTitle: "Shipping at scale", Offering: "logistics software",
		OpenToMeetings: true,
	}).Error)
	svc := newSuggestService()

	got, err := svc.Suggest(t.Context(), "me", service.SuggestOptions{Limit: 10})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "exhibitor-1", got[0].ActorID)
	assert.Equal(t, models.RoleExhibitor, got[0].Role)
	assert.Equal(t, 8.0, got[0].Score)
	assert.Equal(t, "speaker-1", got[1].ActorID)
	assert.Equal(t, 5.0, got[1].Score)
}

func TestSuggest_ExcludesContactsAndBlocks(t *testing.T) {
	cleanTables()
	seedAttendee(t, "me", "Mona", "AI", "", true)
	seedAttendee(t, "contact", "Cora", "", "AI consulting", true)
	seedAttendee(t, "blocker", "Ben", "", "AI platforms", true)
	seedAttendee(t, "fresh", "Fred", "", "AI tools", true)

	require.NoError(t, testDB.Create(&models.Conversation{
		EventID: 1, ActorA: "me", ActorB: "contact", Status: models.ConversationActive,
	}).Error)
	// blocked in the other direction still excludes
	require.NoError(t, testDB.Create(&models.Block{ActorID: "blocker", BlockedID: "me"}).Error)

	svc := newSuggestService()
	got, err := svc.Suggest(t.Context(), "me", service.SuggestOptions{Limit: 10})

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "fresh", got[0].ActorID)
}

func TestSuggest_NameSearchIsCaseInsensitive(t *testing.T) {
	cleanTables()
	seedAttendee(t, "me", "Mona", "", "", true)
	seedAttendee(t, "a", "Zara Ahmed", "", "", true)
	seedAttendee(t, "b", "Adam ZARA", "", "", false)
	seedAttendee(t, "c", "Carlos", "", "", true)

	svc := newSuggestService()
	got, err := svc.Suggest(t.Context(), "me", service.SuggestOptions{Limit: 10, NameFilter: "zara"})

	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ActorID)
	assert.Equal(t, "a", got[1].ActorID)
	assert.Equal(t, 0.0, got[0].Score)
}

func TestResolve_TriesEachRoleTable(t *testing.T) {
	cleanTables()
	require.NoError(t, testDB.Create(&models.Speaker{
		ActorID: "speaker-only", EventID: 1, FullName: "Sol", TalkTitle: "Keynote",
	}).Error)

	provider := repository.NewProfileProvider(testDB)
	profile, err := provider.Resolve(t.Context(), "speaker-only")

	require.NoError(t, err)
	assert.Equal(t, models.RoleSpeaker, profile.Role)
	assert.Equal(t, "Keynote", profile.Headline)
}
