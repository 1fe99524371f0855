package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/config"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/logger"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type LessonService struct {
	LessonRepo   *repository.LessonRepository
	SectionRepo  *repository.SectionRepository
	ExerciseRepo *repository.ExerciseRepository
	QuizRepo     *repository.QuizRepository
	Storage      *StorageService
	DB           *gorm.DB

	lockTimeout time.Duration
	now         func() time.Time
}

func NewLessonService(
	lessonRepo *repository.LessonRepository,
	sectionRepo *repository.SectionRepository,
	exerciseRepo *repository.ExerciseRepository,
	quizRepo *repository.QuizRepository,
	storage *StorageService,
	cfg *config.Config,
	db *gorm.DB,
) *LessonService {
	return &LessonService{
		LessonRepo:   lessonRepo,
		SectionRepo:  sectionRepo,
		ExerciseRepo: exerciseRepo,
		QuizRepo:     quizRepo,
		Storage:      storage,
		DB:           db,
		lockTimeout:  time.Duration(cfg.Content.LockTimeoutMinutes) * time.Minute,
		now:          time.Now,
	}
}

type LessonCreateRequest struct {
	Title   string `json:"title" binding:"required"`
	Content string `json:"content"`
}

type LessonUpdateRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

func (s *LessonService) CreateLesson(sectionID string, req LessonCreateRequest) (*model.Lesson, error) {
	if _, err := s.SectionRepo.FindByID(sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("section not found")
		}
		return nil, err
	}

	var lesson *model.Lesson
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		index, err := repository.NextOrderIndex(tx, &model.Lesson{}, "section_id", sectionID)
		if err != nil {
			return err
		}
		lesson = &model.Lesson{
			SectionID:  sectionID,
			Title:      req.Title,
			Content:    req.Content,
			OrderIndex: index,
		}
		return tx.Create(lesson).Error
	})
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) GetLesson(id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindWithLeaves(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("lesson not found")
	}
	if err != nil {
		return nil, err
	}
	return lesson, nil
}

// UpdateLesson applies a partial content update. A lock held by someone else
// blocks the write until it expires or is released.
func (s *LessonService) UpdateLesson(id, userID string, req LessonUpdateRequest) (*model.Lesson, error) {
	lesson, err := s.findLesson(id)
	if err != nil {
		return nil, err
	}
	if s.heldByOther(lesson, userID) {
		return nil, util.ErrLockHeld
	}

	if req.Title != nil {
		lesson.Title = *req.Title
	}
	if req.Content != nil {
		lesson.Content = *req.Content
	}

	if err := s.LessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

// DeleteLesson removes the lesson and its owned leaves, leaves first, then
// compacts the section's lesson indices, all in one transaction.
func (s *LessonService) DeleteLesson(sectionID, lessonID string) error {
	lesson, err := s.LessonRepo.FindInSection(sectionID, lessonID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NotFoundError("lesson not found in section")
	}
	if err != nil {
		return err
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&model.Exercise{}).Error; err != nil {
			return err
		}
		if err := tx.Where("lesson_id = ?", lessonID).Delete(&model.Quiz{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Lesson{}, "id = ?", lessonID).Error; err != nil {
			return err
		}
		return repository.CompactAfterRemoval(tx, &model.Lesson{}, "section_id", sectionID, lesson.OrderIndex)
	})
	if err != nil {
		return err
	}

	monitoring.CascadeDeletes.WithLabelValues("lesson").Inc()
	return nil
}

// ReorderLessons applies an explicit full ordering of the section's lessons
// as one atomic batch.
func (s *LessonService) ReorderLessons(sectionID string, orderedIDs []string) ([]model.Lesson, error) {
	if _, err := s.SectionRepo.FindByID(sectionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.NotFoundError("section not found")
		}
		return nil, err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		return repository.ApplyExplicitOrder(tx, &model.Lesson{}, "section_id", sectionID, orderedIDs)
	})
	if err != nil {
		return nil, err
	}

	return s.LessonRepo.ListBySection(sectionID)
}

type ExerciseRequest struct {
	Title        string `json:"title" binding:"required"`
	Instructions string `json:"instructions"`
	StarterCode  string `json:"starterCode"`
	Solution     string `json:"solution"`
}

type ExerciseUpdateRequest struct {
	Title        *string `json:"title"`
	Instructions *string `json:"instructions"`
	StarterCode  *string `json:"starterCode"`
	Solution     *string `json:"solution"`
}

func (s *LessonService) CreateExercise(lessonID string, req ExerciseRequest) (*model.Exercise, error) {
	if _, err := s.findLesson(lessonID); err != nil {
		return nil, err
	}

	var exercise *model.Exercise
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		index, err := repository.NextOrderIndex(tx, &model.Exercise{}, "lesson_id", lessonID)
		if err != nil {
			return err
		}
		exercise = &model.Exercise{
			LessonID:     lessonID,
			Title:        req.Title,
			Instructions: req.Instructions,
			StarterCode:  req.StarterCode,
			Solution:     req.Solution,
			OrderIndex:   index,
		}
		return tx.Create(exercise).Error
	})
	if err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *LessonService) UpdateExercise(id string, req ExerciseUpdateRequest) (*model.Exercise, error) {
	exercise, err := s.ExerciseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("exercise not found")
	}
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		exercise.Title = *req.Title
	}
	if req.Instructions != nil {
		exercise.Instructions = *req.Instructions
	}
	if req.StarterCode != nil {
		exercise.StarterCode = *req.StarterCode
	}
	if req.Solution != nil {
		exercise.Solution = *req.Solution
	}

	if err := s.ExerciseRepo.Save(exercise); err != nil {
		return nil, err
	}
	return exercise, nil
}

func (s *LessonService) DeleteExercise(id string) error {
	exercise, err := s.ExerciseRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return util.NotFoundError("exercise not found")
	}
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Exercise{}, "id = ?", id).Error; err != nil {
			return err
		}
		return repository.CompactAfterRemoval(tx, &model.Exercise{}, "lesson_id", exercise.LessonID, exercise.OrderIndex)
	})
}

type QuizRequest struct {
	Title     string `json:"title" binding:"required"`
	Questions string `json:"questions"`
}

// SetQuiz creates or replaces the lesson's single quiz.
func (s *LessonService) SetQuiz(lessonID string, req QuizRequest) (*model.Quiz, error) {
	if _, err := s.findLesson(lessonID); err != nil {
		return nil, err
	}

	quiz, err := s.QuizRepo.FindByLesson(lessonID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if quiz == nil {
		quiz = &model.Quiz{
			LessonID:  lessonID,
			Title:     req.Title,
			Questions: req.Questions,
		}
		if err := s.QuizRepo.Create(quiz); err != nil {
			return nil, err
		}
		return quiz, nil
	}

	quiz.Title = req.Title
	quiz.Questions = req.Questions
	if err := s.QuizRepo.Save(quiz); err != nil {
		return nil, err
	}
	return quiz, nil
}

func (s *LessonService) DeleteQuiz(lessonID string) error {
	if _, err := s.QuizRepo.FindByLesson(lessonID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.NotFoundError("lesson has no quiz")
		}
		return err
	}
	return s.QuizRepo.DeleteByLesson(lessonID)
}

// AttachVideo probes an uploaded video, pushes it and a generated thumbnail
// to storage, and records the metadata on the lesson.
func (s *LessonService) AttachVideo(ctx context.Context, lessonID, userID, localPath, originalName string) (*model.Lesson, error) {
	lesson, err := s.findLesson(lessonID)
	if err != nil {
		return nil, err
	}
	if s.heldByOther(lesson, userID) {
		return nil, util.ErrLockHeld
	}

	info, err := util.GetVideoInfo(localPath)
	if err != nil {
		return nil, util.BadRequestError(fmt.Sprintf("unreadable video file: %v", err))
	}

	ext := filepath.Ext(originalName)
	objectName := fmt.Sprintf("lessons/%s/video%s", lessonID, ext)
	videoURL, err := s.Storage.UploadFile(ctx, objectName, localPath, "video/"+strings.TrimPrefix(ext, "."))
	if err != nil {
		return nil, err
	}

	thumbPath := localPath + ".jpg"
	thumbURL := ""
	if err := util.GenerateThumbnail(localPath, thumbPath, "00:00:01"); err != nil {
		logger.Log.Warn("thumbnail generation failed",
			zap.String("lessonId", lessonID),
			zap.Error(err),
		)
	} else {
		thumbURL, err = s.Storage.UploadFile(ctx, fmt.Sprintf("lessons/%s/thumb.jpg", lessonID), thumbPath, "image/jpeg")
		if err != nil {
			return nil, err
		}
	}

	lesson.VideoURL = videoURL
	lesson.VideoDuration = info.Duration
	lesson.ThumbnailURL = thumbURL
	if err := s.LessonRepo.Save(lesson); err != nil {
		return nil, err
	}
	return lesson, nil
}

func (s *LessonService) findLesson(id string) (*model.Lesson, error) {
	lesson, err := s.LessonRepo.FindByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFoundError("lesson not found")
	}
	if err != nil {
		return nil, err
	}
	return lesson, nil
}
