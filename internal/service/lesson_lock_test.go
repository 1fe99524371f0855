package service

import (
	"testing"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockFixture(t *testing.T) (*testEnv, *model.Lesson) {
	t.Helper()
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)
	return env, lesson
}

func TestAcquireLockOnUnlockedLesson(t *testing.T) {
	env, lesson := lockFixture(t)

	state, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)
	assert.True(t, state.Locked)
	assert.True(t, state.Owned)
	require.NotNil(t, state.LockedBy)
	assert.Equal(t, "alice", *state.LockedBy)
	require.NotNil(t, state.ExpiresAt)
}

func TestAcquireLockRejectedWhileFresh(t *testing.T) {
	env, lesson := lockFixture(t)

	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	_, err = env.Lessons.AcquireLock(lesson.ID, "bob")
	assert.ErrorIs(t, err, util.ErrConflict)

	// The rejection must not disturb the holder.
	state, err := env.Lessons.GetLockState(lesson.ID, "alice")
	require.NoError(t, err)
	assert.True(t, state.Owned)
}

func TestAcquireLockRenewalRestartsWindow(t *testing.T) {
	env, lesson := lockFixture(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env.setClock(start)
	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	env.setClock(start.Add(20 * time.Minute))
	renewed, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)
	require.NotNil(t, renewed.LockedAt)
	assert.Equal(t, start.Add(20*time.Minute), *renewed.LockedAt)

	// 45 minutes after the original acquire but only 25 after the renewal,
	// so the lock still stands.
	env.setClock(start.Add(45 * time.Minute))
	_, err = env.Lessons.AcquireLock(lesson.ID, "bob")
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestAcquireLockStealsExpiredLock(t *testing.T) {
	env, lesson := lockFixture(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env.setClock(start)
	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	env.setClock(start.Add(31 * time.Minute))
	state, err := env.Lessons.AcquireLock(lesson.ID, "bob")
	require.NoError(t, err)
	assert.True(t, state.Owned)
	require.NotNil(t, state.LockedBy)
	assert.Equal(t, "bob", *state.LockedBy)

	// The original holder is now on the outside.
	_, err = env.Lessons.AcquireLock(lesson.ID, "alice")
	assert.ErrorIs(t, err, util.ErrConflict)
}

func TestReleaseLockIdempotentWhenUnlocked(t *testing.T) {
	env, lesson := lockFixture(t)

	assert.NoError(t, env.Lessons.ReleaseLock(lesson.ID, "alice"))
}

func TestReleaseLockByOwner(t *testing.T) {
	env, lesson := lockFixture(t)

	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)
	require.NoError(t, env.Lessons.ReleaseLock(lesson.ID, "alice"))

	state, err := env.Lessons.GetLockState(lesson.ID, "alice")
	require.NoError(t, err)
	assert.False(t, state.Locked)

	// Released means anyone may take it.
	_, err = env.Lessons.AcquireLock(lesson.ID, "bob")
	assert.NoError(t, err)
}

func TestReleaseLockByNonOwnerRejected(t *testing.T) {
	env, lesson := lockFixture(t)

	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	err = env.Lessons.ReleaseLock(lesson.ID, "bob")
	assert.ErrorIs(t, err, util.ErrForbidden)

	state, err := env.Lessons.GetLockState(lesson.ID, "alice")
	require.NoError(t, err)
	assert.True(t, state.Owned, "failed release leaves the lock in place")
}

func TestReleaseExpiredLockByNonOwnerRejected(t *testing.T) {
	env, lesson := lockFixture(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env.setClock(start)
	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	// Even expired, the row still names alice; only an acquire may claim it.
	env.setClock(start.Add(31 * time.Minute))
	err = env.Lessons.ReleaseLock(lesson.ID, "bob")
	assert.ErrorIs(t, err, util.ErrForbidden)
}

func TestGetLockStateReportsExpiredAsUnlocked(t *testing.T) {
	env, lesson := lockFixture(t)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env.setClock(start)
	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	env.setClock(start.Add(30 * time.Minute))
	state, err := env.Lessons.GetLockState(lesson.ID, "bob")
	require.NoError(t, err)
	assert.False(t, state.Locked, "a lock at exactly the timeout boundary is expired")
}

func TestLockNotFoundLesson(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Lessons.AcquireLock("missing", "alice")
	assert.ErrorIs(t, err, util.ErrNotFound)

	err = env.Lessons.ReleaseLock("missing", "alice")
	assert.ErrorIs(t, err, util.ErrNotFound)
}
