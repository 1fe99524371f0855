package repository

import (
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"

	"gorm.io/gorm"
)

// ClassAssignmentRepository is read-only from the content subsystem's point
// of view; assignment writes belong to the class management collaborator.
type ClassAssignmentRepository struct {
	DB *gorm.DB
}

func NewClassAssignmentRepository(db *gorm.DB) *ClassAssignmentRepository {
	return &ClassAssignmentRepository{DB: db}
}

// CountByCourse counts distinct classes the course is assigned to.
func (r *ClassAssignmentRepository) CountByCourse(courseID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ClassAssignment{}).
		Where("course_id = ?", courseID).
		Distinct("class_id").
		Count(&count).Error
	return count, err
}

func (r *ClassAssignmentRepository) CountByCourseIDs(courseIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(courseIDs))
	if len(courseIDs) == 0 {
		return counts, nil
	}

	var rows []struct {
		CourseID string
		N        int64
	}
	err := r.DB.Model(&model.ClassAssignment{}).
		Select("course_id, COUNT(DISTINCT class_id) AS n").
		Where("course_id IN ?", courseIDs).
		Group("course_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		counts[row.CourseID] = row.N
	}
	return counts, nil
}
