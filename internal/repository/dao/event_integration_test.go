package dao

import (
	"context"
	"fmt"
	"testing"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// startPostgres spins up a throwaway postgres container, skipping the
// test when no docker daemon is reachable.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	if err = pool.Client.Ping(); err != nil {
		t.Skipf("docker not reachable: %v", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=laboissim_test",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = pool.Purge(resource)
	})

	dsn := fmt.Sprintf(
		"host=localhost port=%v user=test password=test dbname=laboissim_test sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB
	err = pool.Retry(func() error {
		var openErr error
		db, openErr = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if openErr != nil {
			return openErr
		}

		sqlDB, openErr := db.DB()
		if openErr != nil {
			return openErr
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)
	require.NoError(t, InitTables(db))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, username string) User {
	t.Helper()

	user := User{
		Username: username,
		Email:    username + "@lab.fr",
		Password: "!",
		IsActive: true,
	}
	require.NoError(t, db.Create(&user).Error)

	return user
}

func TestEventDAORegister(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	eventDAO := NewEventDAO(db)
	creator := seedUser(t, db, "creator")
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	carol := seedUser(t, db, "carol")

	max := uint(1)
	event, err := eventDAO.Insert(ctx, Event{
		Title:           "Séminaire",
		Location:        "Amphi A",
		EventType:       "seminar",
		IsActive:        true,
		CreatedByID:     creator.ID,
		MaxParticipants: &max,
	})
	require.NoError(t, err)

	reg, err := eventDAO.Register(ctx, event.ID, alice.ID, "premier arrivé")
	require.NoError(t, err)
	assert.Equal(t, "pending", reg.Status)
	assert.Equal(t, "premier arrivé", reg.Notes)

	t.Run("duplicate registration rejected", func(t *testing.T) {
		_, err := eventDAO.Register(ctx, event.ID, alice.ID, "")
		assert.ErrorIs(t, err, ErrAlreadyRegistered)
	})

	t.Run("pending does not consume capacity", func(t *testing.T) {
		// alice is still pending, so bob fits despite max=1
		_, err := eventDAO.Register(ctx, event.ID, bob.ID, "")
		assert.NoError(t, err)
	})

	t.Run("confirmed counts toward capacity", func(t *testing.T) {
		_, err := eventDAO.UpdateRegistrationStatus(ctx, event.ID, reg.ID, "confirmed")
		require.NoError(t, err)

		_, err = eventDAO.Register(ctx, event.ID, carol.ID, "")
		assert.ErrorIs(t, err, ErrEventFull)
	})

	t.Run("unregister frees the row", func(t *testing.T) {
		require.NoError(t, eventDAO.Unregister(ctx, event.ID, bob.ID))
		assert.ErrorIs(t, eventDAO.Unregister(ctx, event.ID, bob.ID), ErrRegistrationNotFound)
	})

	t.Run("unknown event", func(t *testing.T) {
		_, err := eventDAO.Register(ctx, 9999, alice.ID, "")
		assert.ErrorIs(t, err, ErrEventNotFound)
	})
}

func TestEventDAOInactiveVisibility(t *testing.T) {
	db := startPostgres(t)
	ctx := context.Background()

	eventDAO := NewEventDAO(db)
	creator := seedUser(t, db, "creator")

	active, err := eventDAO.Insert(ctx, Event{
		Title: "Actif", Location: "Salle 1", EventType: "meeting",
		IsActive: true, CreatedByID: creator.ID,
	})
	require.NoError(t, err)

	inactive, err := eventDAO.Insert(ctx, Event{
		Title: "Archivé", Location: "Salle 2", EventType: "meeting",
		IsActive: true, CreatedByID: creator.ID,
	})
	require.NoError(t, err)

	// zero-value bools are skipped on insert because of the column
	// default, deactivation goes through Update
	inactive.IsActive = false
	inactive.Registrations = nil
	inactive, err = eventDAO.Update(ctx, inactive)
	require.NoError(t, err)
	require.False(t, inactive.IsActive)

	visible, err := eventDAO.FindAll(ctx, false)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, active.ID, visible[0].ID)

	all, err := eventDAO.FindAll(ctx, true)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	_, err = eventDAO.FindByID(ctx, inactive.ID, false)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = eventDAO.FindByID(ctx, inactive.ID, true)
	assert.NoError(t, err)
}
