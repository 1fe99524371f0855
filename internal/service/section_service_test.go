package service

import (
	"testing"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSectionAssignsContiguousIndices(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")

	for want := 0; want < 3; want++ {
		section := env.seedSection(t, course.ID)
		assert.Equal(t, want, section.OrderIndex)
	}
}

func TestCreateSectionCourseNotFound(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.Sections.CreateSection("missing", SectionCreateRequest{Title: "x"})
	assert.ErrorIs(t, err, util.ErrNotFound)
}

func TestCreateSectionIndicesIndependentPerCourse(t *testing.T) {
	env := newTestEnv(t)
	courseA := env.seedCourse(t, "teacher-1")
	courseB := env.seedCourse(t, "teacher-1")

	env.seedSection(t, courseA.ID)
	env.seedSection(t, courseA.ID)
	first := env.seedSection(t, courseB.ID)

	assert.Equal(t, 0, first.OrderIndex)
}

func TestUpdateSectionKeepsPosition(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	env.seedSection(t, course.ID)
	section := env.seedSection(t, course.ID)

	title := "Renamed"
	updated, err := env.Sections.UpdateSection(section.ID, SectionUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 1, updated.OrderIndex)
}

func TestDeleteSectionCompactsSiblings(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")

	first := env.seedSection(t, course.ID)
	second := env.seedSection(t, course.ID)
	third := env.seedSection(t, course.ID)

	require.NoError(t, env.Sections.DeleteSection(second.ID))

	var sections []model.Section
	require.NoError(t, env.DB.Where("course_id = ?", course.ID).Order("order_index asc").Find(&sections).Error)
	require.Len(t, sections, 2)
	assert.Equal(t, first.ID, sections[0].ID)
	assert.Equal(t, 0, sections[0].OrderIndex)
	assert.Equal(t, third.ID, sections[1].ID)
	assert.Equal(t, 1, sections[1].OrderIndex)

	// The next append lands right after the compacted tail.
	fourth := env.seedSection(t, course.ID)
	assert.Equal(t, 2, fourth.OrderIndex)
}

func TestDeleteSectionRefusedWhileNotEmpty(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")
	section := env.seedSection(t, course.ID)
	lesson := env.seedLesson(t, section.ID)

	err := env.Sections.DeleteSection(section.ID)
	assert.ErrorIs(t, err, util.ErrConflict)

	// Emptying the section first makes the delete legal.
	require.NoError(t, env.Lessons.DeleteLesson(section.ID, lesson.ID))
	require.NoError(t, env.Sections.DeleteSection(section.ID))
}

func TestReorderSections(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")

	a := env.seedSection(t, course.ID)
	b := env.seedSection(t, course.ID)
	c := env.seedSection(t, course.ID)

	sections, err := env.Sections.ReorderSections(course.ID, []string{c.ID, a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, c.ID, sections[0].ID)
	assert.Equal(t, a.ID, sections[1].ID)
	assert.Equal(t, b.ID, sections[2].ID)
	for i, sec := range sections {
		assert.Equal(t, i, sec.OrderIndex)
	}
}

func TestReorderSectionsRejectsPartialSet(t *testing.T) {
	env := newTestEnv(t)
	course := env.seedCourse(t, "teacher-1")

	a := env.seedSection(t, course.ID)
	env.seedSection(t, course.ID)

	_, err := env.Sections.ReorderSections(course.ID, []string{a.ID})
	assert.ErrorIs(t, err, util.ErrBadRequest)
}

func TestReorderSectionsRejectsForeignSection(t *testing.T) {
	env := newTestEnv(t)
	courseA := env.seedCourse(t, "teacher-1")
	courseB := env.seedCourse(t, "teacher-1")

	a := env.seedSection(t, courseA.ID)
	b := env.seedSection(t, courseB.ID)

	_, err := env.Sections.ReorderSections(courseA.ID, []string{a.ID, b.ID})
	assert.ErrorIs(t, err, util.ErrBadRequest)
}
