package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/cafedesk/app/models"
	"github.com/shashiranjanraj/cafedesk/app/repositories"
)

func TestAuditBetweenIsInclusiveByDay(t *testing.T) {
	f := newFixture(t)
	repo := repositories.NewAuditRepository(f.db)
	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.Local)

	for i, ts := range []time.Time{
		day.Add(-time.Second),
		day,
		day.Add(12 * time.Hour),
		day.Add(24*time.Hour - time.Millisecond),
		day.Add(24 * time.Hour),
	} {
		entry := models.AuditLogEntry{User: "admin", Action: "test", Details: string(rune('a' + i)), Timestamp: ts}
		require.NoError(t, repo.Append(&entry))
	}

	noon := day.Add(12 * time.Hour)
	got, err := f.audit.Between(context.Background(), &noon, &noon)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "d", got[0].Details)
	assert.Equal(t, "c", got[1].Details)
	assert.Equal(t, "b", got[2].Details)

	all, err := f.audit.Between(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	since, err := f.audit.Between(context.Background(), &noon, nil)
	require.NoError(t, err)
	assert.Len(t, since, 4)

	before := day.AddDate(0, 0, -1)
	_, err = f.audit.Between(context.Background(), &noon, &before)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRecordOutsideTransaction(t *testing.T) {
	f := newFixture(t)
	at := time.Date(2026, 5, 1, 9, 30, 0, 0, time.Local)
	f.audit.now = func() time.Time { return at }

	f.audit.Record(context.Background(), "admin", ActionBackupCompleted, "Backup done")

	entries, err := f.audit.Between(context.Background(), &at, &at)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "admin", entries[0].User)
	assert.True(t, at.Equal(entries[0].Timestamp))
}
