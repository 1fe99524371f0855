package repository

import (
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) Create(quiz *model.Quiz) error {
	return r.DB.Create(quiz).Error
}

func (r *QuizRepository) Save(quiz *model.Quiz) error {
	return r.DB.Save(quiz).Error
}

func (r *QuizRepository) FindByLesson(lessonID string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.First(&quiz, "lesson_id = ?", lessonID).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

func (r *QuizRepository) DeleteByLesson(lessonID string) error {
	return r.DB.Where("lesson_id = ?", lessonID).Delete(&model.Quiz{}).Error
}
