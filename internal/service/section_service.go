package service

import (
	"errors"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/monitoring"

	"gorm.io/gorm"
)

type SectionService struct {
	SectionRepo *repository.SectionRepository
	LessonRepo  *repository.LessonRepository
	CourseRepo  *repository.CourseRepository
	DB          *gorm.DB
}

func NewSectionService(
	sectionRepo *repository.SectionRepository,
	lessonRepo *repository.LessonRepository,
	courseRepo *repository.CourseRepository,
	db *gorm.DB,
) *SectionService {
	return &SectionService{
		SectionRepo: sectionRepo,
		LessonRepo:  lessonRepo,
		CourseRepo:  courseRepo,
		DB:          db,
	}
}

type SectionCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SectionUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// CreateSection appends a section to the end of the course's section list.
// The index read and the insert share a transaction so two concurrent
// creates cannot claim the same slot.
func (s *SectionService) CreateSection(courseID string, req SectionCreateRequest) (*model.Section, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course not found")
		}
		return nil, err
	}

	var section *model.Section
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		index, err := repository.NextOrderIndex(tx, &model.Section{}, "course_id", courseID)
		if err != nil {
			return err
		}
		section = &model.Section{
			CourseID:    courseID,
			Title:       req.Title,
			Description: req.Description,
			OrderIndex:  index,
		}
		return tx.Create(section).Error
	})
	if err != nil {
		return nil, err
	}
	return section, nil
}

func (s *SectionService) UpdateSection(id string, req SectionUpdateRequest) (*model.Section, error) {
	section, err := s.findSection(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Description != nil {
		section.Description = *req.Description
	}

	if err := s.SectionRepo.Save(section); err != nil {
		return nil, err
	}
	return section, nil
}

// DeleteSection refuses while the section still has lessons; emptying it is
// an explicit caller action, not an implicit cascade. On success the sibling
// indices above the removed slot shift down inside the same transaction.
func (s *SectionService) DeleteSection(id string) error {
	section, err := s.findSection(id)
	if err != nil {
		return err
	}

	lessonCount, err := s.LessonRepo.CountBySection(id)
	if err != nil {
		return err
	}
	if lessonCount > 0 {
		return util.ConflictError("section still has lessons")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Section{}, "id = ?", id).Error; err != nil {
			return err
		}
		return repository.CompactAfterRemoval(tx, &model.Section{}, "course_id", section.CourseID, section.OrderIndex)
	})
	if err != nil {
		return err
	}

	monitoring.CascadeDeletes.WithLabelValues("section").Inc()
	return nil
}

// ReorderSections applies an explicit full ordering of the course's
// sections as one atomic batch.
func (s *SectionService) ReorderSections(courseID string, orderedIDs []string) ([]model.Section, error) {
	if _, err := s.CourseRepo.FindByID(courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("course not found")
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return repository.ApplyExplicitOrder(tx, &model.Section{}, "course_id", courseID, orderedIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.SectionRepo.ListByCourse(courseID)
}

func (s *SectionService) findSection(id string) (*model.Section, error) {
	section, err := s.SectionRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("section not found")
	}
	if err != nil {
		return nil, err
	}
	return section, nil
}
