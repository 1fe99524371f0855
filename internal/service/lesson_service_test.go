package service

import (
	"testing"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateLessonAppends(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)

	for want := 0; want < 3; want++ {
		lesson := env.seedLesson(t, section.ID)
		assert.Equal(t, want, lesson.OrderIndex)
	}
}

func TestCreateLessonSectionNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Lessons.CreateLesson("missing", LessonCreateRequest{Title: "x"})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestGetLessonLoadsLeavesInOrder(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	first, err := env.Lessons.CreateExercise(lesson.ID, ExerciseRequest{Title: "One"})
	require.NoError(t, err)
	second, err := env.Lessons.CreateExercise(lesson.ID, ExerciseRequest{Title: "Two"})
	require.NoError(t, err)
	_, err = env.Lessons.SetQuiz(lesson.ID, QuizRequest{Title: "Check"})
	require.NoError(t, err)

	got, err := env.Lessons.GetLesson(lesson.ID)
	require.NoError(t, err)
	require.Len(t, got.Exercises, 2)
	assert.Equal(t, first.ID, got.Exercises[0].ID)
	assert.Equal(t, second.ID, got.Exercises[1].ID)
	require.NotNil(t, got.Quiz)
	assert.Equal(t, "Check", got.Quiz.Title)
}

func TestUpdateLessonBlockedByForeignLock(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	title := "Edited"
	_, err = env.Lessons.UpdateLesson(lesson.ID, "bob", LessonUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, util.ErrConflict)

	updated, err := env.Lessons.UpdateLesson(lesson.ID, "alice", LessonUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
}

func TestDeleteLessonOutsideSectionNotFound(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	secA := env.seedSection(t, course.ID)
	secB := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, secA.ID)

	err := env.Lessons.DeleteLesson(secB.ID, lesson.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)

	_, err = env.Lessons.GetLesson(lesson.ID)
	assert.NoError(t, err, "mismatched delete must not remove the lesson")
}

func TestDeleteLessonCompactsAndRemovesLeaves(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)

	first := env.seedLesson(t, section.ID)
	second := env.seedLesson(t, section.ID)
	third := env.seedLesson(t, section.ID)

	_, err := env.Lessons.CreateExercise(second.ID, ExerciseRequest{Title: "Orphan-to-be"})
	require.NoError(t, err)
	_, err = env.Lessons.SetQuiz(second.ID, QuizRequest{Title: "Orphan-to-be"})
	require.NoError(t, err)

	require.NoError(t, env.Lessons.DeleteLesson(section.ID, second.ID))

	var lessons []model.Lesson
	require.NoError(t, env.DB.Where("section_id = ?", section.ID).Order("order_index asc").Find(&lessons).Error)
	require.Len(t, lessons, 2)
	assert.Equal(t, first.ID, lessons[0].ID)
	assert.Equal(t, 0, lessons[0].OrderIndex)
	assert.Equal(t, third.ID, lessons[1].ID)
	assert.Equal(t, 1, lessons[1].OrderIndex)

	var leaves int64
	require.NoError(t, env.DB.Model(&model.Exercise{}).Where("lesson_id = ?", second.ID).Count(&leaves).Error)
	assert.Zero(t, leaves)
	require.NoError(t, env.DB.Model(&model.Quiz{}).Where("lesson_id = ?", second.ID).Count(&leaves).Error)
	assert.Zero(t, leaves)
}

func TestReorderLessons(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)

	a := env.seedLesson(t, section.ID)
	b := env.seedLesson(t, section.ID)

	lessons, err := env.Lessons.ReorderLessons(section.ID, []string{b.ID, a.ID})
	require.NoError(t, err)
	require.Len(t, lessons, 2)
	assert.Equal(t, b.ID, lessons[0].ID)
	assert.Equal(t, a.ID, lessons[1].ID)
}

func TestReorderLessonsRejectsForeignLesson(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	secA := env.seedSection(t, course.ID)
	secB := env.seedSection(t, course.ID)

	a := env.seedLesson(t, secA.ID)
	b := env.seedLesson(t, secB.ID)

	_, err := env.Lessons.ReorderLessons(secA.ID, []string{a.ID, b.ID})
	assert.ErrorIs(t, err, util.ErrBadRequest)
}

func TestDeleteExerciseCompacts(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	first, err := env.Lessons.CreateExercise(lesson.ID, ExerciseRequest{Title: "One"})
	require.NoError(t, err)
	second, err := env.Lessons.CreateExercise(lesson.ID, ExerciseRequest{Title: "Two"})
	require.NoError(t, err)
	third, err := env.Lessons.CreateExercise(lesson.ID, ExerciseRequest{Title: "Three"})
	require.NoError(t, err)
	assert.Equal(t, 2, third.OrderIndex)

	require.NoError(t, env.Lessons.DeleteExercise(second.ID))

	var exercises []model.Exercise
	require.NoError(t, env.DB.Where("lesson_id = ?", lesson.ID).Order("order_index asc").Find(&exercises).Error)
	require.Len(t, exercises, 2)
	assert.Equal(t, first.ID, exercises[0].ID)
	assert.Equal(t, 0, exercises[0].OrderIndex)
	assert.Equal(t, third.ID, exercises[1].ID)
	assert.Equal(t, 1, exercises[1].OrderIndex)
}

func TestSetQuizUpserts(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	created, err := env.Lessons.SetQuiz(lesson.ID, QuizRequest{Title: "v1"})
	require.NoError(t, err)

	replaced, err := env.Lessons.SetQuiz(lesson.ID, QuizRequest{Title: "v2"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, replaced.ID, "second set replaces the quiz in place")
	assert.Equal(t, "v2", replaced.Title)

	var count int64
	require.NoError(t, env.DB.Model(&model.Quiz{}).Where("lesson_id = ?", lesson.ID).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDeleteQuizThenMissing(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	_, err := env.Lessons.SetQuiz(lesson.ID, QuizRequest{Title: "v1"})
	require.NoError(t, err)
	require.NoError(t, env.Lessons.DeleteQuiz(lesson.ID))

	err = env.Lessons.DeleteQuiz(lesson.ID)
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestLockExpiryUnblocksUpdate(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	env.setClock(start)
	_, err := env.Lessons.AcquireLock(lesson.ID, "alice")
	require.NoError(t, err)

	title := "Edited"
	env.setClock(start.Add(29 * time.Minute))
	_, err = env.Lessons.UpdateLesson(lesson.ID, "bob", LessonUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, util.ErrConflict)

	env.setClock(start.Add(31 * time.Minute))
	_, err = env.Lessons.UpdateLesson(lesson.ID, "bob", LessonUpdateRequest{Title: &title})
	assert.NoError(t, err, "expired lock no longer blocks other editors")
}
