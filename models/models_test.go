package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validEventForm() EventForm {
	return EventForm{
		Nome:        "Tornata di Giugno",
		Descrizione: "Tornata rituale in grado di Apprendista.",
		DataInizio:  "2026-06-21T20:00:00Z",
		DataFine:    "2026-06-21T23:00:00Z",
	}
}

func TestEventFormValidate(t *testing.T) {
	form := validEventForm()
	assert.NoError(t, form.Validate())
}

func TestEventFormRequiresNome(t *testing.T) {
	form := validEventForm()
	form.Nome = ""
	assert.Error(t, form.Validate())
}

func TestEventFormRejectsMalformedDate(t *testing.T) {
	form := validEventForm()
	form.DataInizio = "21/06/2026"
	assert.Error(t, form.Validate())
}

func TestEventFormRejectsEndBeforeStart(t *testing.T) {
	form := validEventForm()
	form.DataFine = "2026-06-21T18:00:00Z"

	err := form.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data di fine")
}

func TestEventPatchChecksRangeAgainstCurrentValues(t *testing.T) {
	current := Event{
		DataInizio: "2026-06-21T20:00:00Z",
		DataFine:   "2026-06-21T23:00:00Z",
	}

	// Moving only the end before the stored start must fail.
	patch := EventPatch{DataFine: strPtr("2026-06-21T19:00:00Z")}
	assert.Error(t, patch.Validate(current))

	// Moving both together is fine.
	patch = EventPatch{
		DataInizio: strPtr("2026-06-22T20:00:00Z"),
		DataFine:   strPtr("2026-06-22T23:00:00Z"),
	}
	assert.NoError(t, patch.Validate(current))
}

func TestEventPatchRejectsBlankNome(t *testing.T) {
	patch := EventPatch{Nome: strPtr("")}
	assert.Error(t, patch.Validate(Event{}))
}

func TestEventPatchAllowsVisibilityOnlyUpdate(t *testing.T) {
	visible := false
	patch := EventPatch{IsVisible: &visible}
	assert.NoError(t, patch.Validate(Event{
		DataInizio: "2026-06-21T20:00:00Z",
		DataFine:   "2026-06-21T23:00:00Z",
	}))
}

func TestRoleFormValidate(t *testing.T) {
	assert.NoError(t, (&RoleForm{Role: RoleAdmin}).Validate())
	assert.NoError(t, (&RoleForm{Role: RoleUser}).Validate())
	assert.Error(t, (&RoleForm{Role: "superuser"}).Validate())
	assert.Error(t, (&RoleForm{}).Validate())
}

func TestUserDisplayName(t *testing.T) {
	u := User{Nome: "Mario", Cognome: "Rossi"}
	assert.Equal(t, "Mario Rossi", u.DisplayName())
}
