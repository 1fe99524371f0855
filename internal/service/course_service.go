package service

import (
	"errors"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/logger"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo          *repository.CourseRepository
	SectionRepo         *repository.SectionRepository
	LessonRepo          *repository.LessonRepository
	ClassAssignmentRepo *repository.ClassAssignmentRepository
	UserRepo            *repository.UserRepository
	DB                  *gorm.DB
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	sectionRepo *repository.SectionRepository,
	lessonRepo *repository.LessonRepository,
	classAssignmentRepo *repository.ClassAssignmentRepository,
	userRepo *repository.UserRepository,
	db *gorm.DB,
) *CourseService {
	return &CourseService{
		CourseRepo:          courseRepo,
		SectionRepo:         sectionRepo,
		LessonRepo:          lessonRepo,
		ClassAssignmentRepo: classAssignmentRepo,
		UserRepo:            userRepo,
		DB:                  db,
	}
}

type CourseCreateRequest struct {
	Title       string               `json:"title" binding:"required"`
	Description string               `json:"description"`
	Language    model.CourseLanguage `json:"language" binding:"required,oneof=javascript python"`
}

type CourseUpdateRequest struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Language    *model.CourseLanguage `json:"language"`
}

// SectionDetail is a section with its lessons, both in order_index order.
type SectionDetail struct {
	model.Section
	Lessons []model.Lesson `json:"lessons"`
}

// CourseDetail is the full tree plus counts computed live from the store.
type CourseDetail struct {
	model.Course
	CreatorName  string          `json:"creatorName,omitempty"`
	Sections     []SectionDetail `json:"sections"`
	SectionCount int             `json:"sectionCount"`
	LessonCount  int             `json:"lessonCount"`
	ClassCount   int             `json:"classCount"`
}

// CourseSummary is the list-page projection of a course.
type CourseSummary struct {
	model.Course
	CreatorName  string `json:"creatorName,omitempty"`
	SectionCount int64  `json:"sectionCount"`
	LessonCount  int64  `json:"lessonCount"`
	ClassCount   int64  `json:"classCount"`
}

func (s *CourseService) CreateCourse(creatorID string, req CourseCreateRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Language:    req.Language,
		Status:      model.CourseDraft,
		CreatedBy:   creatorID,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) UpdateCourse(id string, req CourseUpdateRequest) (*model.Course, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		course.Title = *req.Title
	}
	if req.Description != nil {
		course.Description = *req.Description
	}
	if req.Language != nil {
		course.Language = *req.Language
	}

	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourseDetail(id string) (*CourseDetail, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}

	sections, err := s.SectionRepo.ListByCourse(id)
	if err != nil {
		return nil, err
	}

	sectionIDs := make([]string, len(sections))
	for i, sec := range sections {
		sectionIDs[i] = sec.ID
	}
	lessons, err := s.LessonRepo.ListBySectionIDs(sectionIDs)
	if err != nil {
		return nil, err
	}
	lessonsBySection := make(map[string][]model.Lesson, len(sections))
	for _, lesson := range lessons {
		lessonsBySection[lesson.SectionID] = append(lessonsBySection[lesson.SectionID], lesson)
	}

	classCount, err := s.ClassAssignmentRepo.CountByCourse(id)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{
		Course:       *course,
		Sections:     make([]SectionDetail, 0, len(sections)),
		SectionCount: len(sections),
		LessonCount:  len(lessons),
		ClassCount:   int(classCount),
	}
	for _, sec := range sections {
		detail.Sections = append(detail.Sections, SectionDetail{
			Section: sec,
			Lessons: lessonsBySection[sec.ID],
		})
	}

	if creator, err := s.UserRepo.FindByID(course.CreatedBy); err == nil {
		detail.CreatorName = creator.Name
	}

	return detail, nil
}

// ListCourses pages courses with per-course counts. Counts and creator names
// come from batched lookups so the query count stays flat per page.
func (s *CourseService) ListCourses(filter repository.CourseFilter, page, limit int) ([]CourseSummary, int64, error) {
	courses, total, err := s.CourseRepo.List(filter, page, limit)
	if err != nil {
		return nil, 0, err
	}

	courseIDs := make([]string, len(courses))
	creatorIDs := make([]string, 0, len(courses))
	seenCreators := make(map[string]struct{}, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
		if _, ok := seenCreators[course.CreatedBy]; !ok {
			seenCreators[course.CreatedBy] = struct{}{}
			creatorIDs = append(creatorIDs, course.CreatedBy)
		}
	}

	sectionCounts, err := s.SectionRepo.CountByCourseIDs(courseIDs)
	if err != nil {
		return nil, 0, err
	}
	lessonCounts, err := s.LessonRepo.CountByCourseIDs(courseIDs)
	if err != nil {
		return nil, 0, err
	}
	classCounts, err := s.ClassAssignmentRepo.CountByCourseIDs(courseIDs)
	if err != nil {
		return nil, 0, err
	}
	creatorNames, err := s.UserRepo.NamesByIDs(creatorIDs)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]CourseSummary, 0, len(courses))
	for _, course := range courses {
		summaries = append(summaries, CourseSummary{
			Course:       course,
			CreatorName:  creatorNames[course.CreatedBy],
			SectionCount: sectionCounts[course.ID],
			LessonCount:  lessonCounts[course.ID],
			ClassCount:   classCounts[course.ID],
		})
	}
	return summaries, total, nil
}

// DeleteCourse removes the course and everything it owns. The assignment
// guard runs before any write; inside the transaction each section's lesson
// leaves go first, then the lessons, the section, and finally the course, so
// a concurrent reader never sees an orphaned leaf.
func (s *CourseService) DeleteCourse(id string) error {
	course, err := s.findCourse(id)
	if err != nil {
		return err
	}

	classCount, err := s.ClassAssignmentRepo.CountByCourse(id)
	if err != nil {
		return err
	}
	if classCount > 0 {
		return util.ConflictError("course is assigned to one or more classes")
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		var sections []model.Section
		if err := tx.Where("course_id = ?", id).Order("order_index asc").Find(&sections).Error; err != nil {
			return err
		}

		for _, sec := range sections {
			var lessonIDs []string
			if err := tx.Model(&model.Lesson{}).Where("section_id = ?", sec.ID).Pluck("id", &lessonIDs).Error; err != nil {
				return err
			}
			if len(lessonIDs) > 0 {
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Exercise{}).Error; err != nil {
					return err
				}
				if err := tx.Where("lesson_id IN ?", lessonIDs).Delete(&model.Quiz{}).Error; err != nil {
					return err
				}
				if err := tx.Where("id IN ?", lessonIDs).Delete(&model.Lesson{}).Error; err != nil {
					return err
				}
			}
			if err := tx.Delete(&model.Section{}, "id = ?", sec.ID).Error; err != nil {
				return err
			}
		}

		return tx.Delete(&model.Course{}, "id = ?", id).Error
	})
	if err != nil {
		return err
	}

	monitoring.CascadeDeletes.WithLabelValues("course").Inc()
	logger.Log.Info("course deleted",
		zap.String("courseId", id),
		zap.String("title", course.Title),
	)
	return nil
}

// Publish flips a draft course to published. A course without sections has
// nothing to teach, so the gate refuses it.
func (s *CourseService) Publish(id string) (*model.Course, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}

	if course.Status == model.CoursePublished {
		return nil, util.BadRequestError("course is already published")
	}

	sectionCount, err := s.SectionRepo.CountByCourse(id)
	if err != nil {
		return nil, err
	}
	if sectionCount == 0 {
		return nil, util.BadRequestError("course has no sections")
	}

	course.Status = model.CoursePublished
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

// Unpublish always succeeds on a published course; there is no content
// precondition in that direction.
func (s *CourseService) Unpublish(id string) (*model.Course, error) {
	course, err := s.findCourse(id)
	if err != nil {
		return nil, err
	}

	if course.Status == model.CourseDraft {
		return nil, util.BadRequestError("course is not published")
	}

	course.Status = model.CourseDraft
	if err := s.CourseRepo.Save(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) findCourse(id string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("course not found")
	}
	if err != nil {
		return nil, err
	}
	return course, nil
}
