package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleBackup(t *testing.T) {
	loc, err := time.LoadLocation("Asia/Kolkata")
	require.NoError(t, err)

	s := NewScheduler(loc)
	id, err := s.ScheduleBackup("0 3 * * *", func() (string, error) { return "", nil })
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	next := s.Next(id).In(loc)
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())
	assert.True(t, next.After(time.Now()))
}

func TestScheduleBackupInvalidSpec(t *testing.T) {
	s := NewScheduler(nil)
	_, err := s.ScheduleBackup("every night", func() (string, error) { return "", errors.New("unused") })
	assert.Error(t, err)
}
