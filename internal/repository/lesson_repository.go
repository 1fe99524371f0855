package repository

import (
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"

	"gorm.io/gorm"
)

type LessonRepository struct {
	DB *gorm.DB
}

func NewLessonRepository(db *gorm.DB) *LessonRepository {
	return &LessonRepository{DB: db}
}

func (r *LessonRepository) Create(lesson *model.Lesson) error {
	return r.DB.Create(lesson).Error
}

func (r *LessonRepository) Save(lesson *model.Lesson) error {
	return r.DB.Save(lesson).Error
}

func (r *LessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

// FindInSection fetches a lesson only if it belongs to the given section.
func (r *LessonRepository) FindInSection(sectionID, lessonID string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.First(&lesson, "id = ? AND section_id = ?", lessonID, sectionID).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) FindWithLeaves(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	err := r.DB.
		Preload("Exercises", func(db *gorm.DB) *gorm.DB { return db.Order("order_index asc") }).
		Preload("Quiz").
		First(&lesson, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}

func (r *LessonRepository) ListBySection(sectionID string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	err := r.DB.Where("section_id = ?", sectionID).Order("order_index asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) ListBySectionIDs(sectionIDs []string) ([]model.Lesson, error) {
	var lessons []model.Lesson
	if len(sectionIDs) == 0 {
		return lessons, nil
	}
	err := r.DB.Where("section_id IN ?", sectionIDs).Order("order_index asc").Find(&lessons).Error
	return lessons, err
}

func (r *LessonRepository) CountBySection(sectionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Lesson{}).Where("section_id = ?", sectionID).Count(&count).Error
	return count, err
}

// CountByCourseIDs returns lesson counts keyed by course id, joined through
// sections, in one grouped query.
func (r *LessonRepository) CountByCourseIDs(courseIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseID string
		N        int64
	}
	err := r.DB.Model(&model.Lesson{}).
		Select("sections.course_id AS course_id, COUNT(lessons.id) AS n").
		Joins("JOIN sections ON sections.id = lessons.section_id").
		Where("sections.course_id IN ?", courseIDs).
		Group("sections.course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseID] = row.N
	}
	return counts, nil
}
