package request

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/chahin-fh/laboissimlocal/internal/domain"
)

func TestCreateEventRequestValidate(t *testing.T) {
	start := time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	end := start.Add(2 * time.Hour)

	valid := CreateEventRequest{
		Title:     "Séminaire annuel",
		EventType: domain.EventTypeSeminar,
		StartDate: start,
		EndDate:   end,
	}

	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("empty event type allowed", func(t *testing.T) {
		req := valid
		req.EventType = ""
		assert.NoError(t, req.Validate())
	})

	t.Run("unknown event type", func(t *testing.T) {
		req := valid
		req.EventType = "gala"
		assert.Error(t, req.Validate())
	})

	t.Run("missing title", func(t *testing.T) {
		req := valid
		req.Title = ""
		assert.Error(t, req.Validate())
	})

	t.Run("end before start", func(t *testing.T) {
		req := valid
		req.EndDate = start.Add(-time.Hour)
		assert.ErrorIs(t, req.Validate(), errEndBeforeStart)
	})

	t.Run("missing dates", func(t *testing.T) {
		req := valid
		req.StartDate = time.Time{}
		assert.Error(t, req.Validate())
	})
}

func TestUpdateRegistrationStatusRequestValidate(t *testing.T) {
	assert.NoError(t, (&UpdateRegistrationStatusRequest{
		RegistrationID: 1,
		Status:         domain.RegistrationStatusConfirmed,
	}).Validate())

	assert.Error(t, (&UpdateRegistrationStatusRequest{
		RegistrationID: 1,
		Status:         "waitlisted",
	}).Validate())

	assert.Error(t, (&UpdateRegistrationStatusRequest{
		Status: domain.RegistrationStatusConfirmed,
	}).Validate())
}
