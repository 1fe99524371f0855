package controller

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/service"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type LessonController struct {
	LessonService *service.LessonService
}

func NewLessonController(lessonService *service.LessonService) *LessonController {
	return &LessonController{LessonService: lessonService}
}

// CreateLesson godoc
// @Summary Create a lesson
// @Description Appends a new lesson at the end of the section
// @Tags lessons
// @Accept json
// @Produce json
// @Param sectionId path string true "Section ID"
// @Param lesson body service.LessonCreateRequest true "Lesson payload"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/sections/{sectionId}/lessons [post]
func (ctrl *LessonController) CreateLesson(c *gin.Context) {
	var req service.LessonCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lesson, err := ctrl.LessonService.CreateLesson(c.Param("sectionId"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Created(c, lesson)
}

// GetLesson godoc
// @Summary Get a lesson
// @Description Returns the lesson with its exercises and quiz
// @Tags lessons
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id} [get]
func (ctrl *LessonController) GetLesson(c *gin.Context) {
	lesson, err := ctrl.LessonService.GetLesson(c.Param("id"))
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, lesson)
}

// UpdateLesson godoc
// @Summary Update a lesson
// @Description Applies a partial content update; blocked while someone else holds the edit lock
// @Tags lessons
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param lesson body service.LessonUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/lessons/{id} [put]
func (ctrl *LessonController) UpdateLesson(c *gin.Context) {
	var req service.LessonUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	lesson, err := ctrl.LessonService.UpdateLesson(c.Param("id"), claims.UserID, req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, lesson)
}

// DeleteLesson godoc
// @Summary Delete a lesson
// @Description Removes the lesson with its exercises and quiz, then closes the ordering gap
// @Tags lessons
// @Produce json
// @Param sectionId path string true "Section ID"
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/sections/{sectionId}/lessons/{id} [delete]
func (ctrl *LessonController) DeleteLesson(c *gin.Context) {
	if err := ctrl.LessonService.DeleteLesson(c.Param("sectionId"), c.Param("id")); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

// ReorderLessons godoc
// @Summary Reorder lessons
// @Description Applies a complete new ordering of the section's lessons in one batch
// @Tags lessons
// @Accept json
// @Produce json
// @Param sectionId path string true "Section ID"
// @Param order body ReorderRequest true "Every lesson id in the desired order"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/sections/{sectionId}/lessons/reorder [put]
func (ctrl *LessonController) ReorderLessons(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	lessons, err := ctrl.LessonService.ReorderLessons(c.Param("sectionId"), req.OrderedIDs)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, lessons)
}

// GetLock godoc
// @Summary Inspect the edit lock
// @Description Reports the lesson's lock as seen by the caller right now
// @Tags locks
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/lock [get]
func (ctrl *LessonController) GetLock(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	state, err := ctrl.LessonService.GetLockState(c.Param("id"), claims.UserID)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, state)
}

// AcquireLock godoc
// @Summary Acquire the edit lock
// @Description Takes or renews the lesson's edit lock; an expired lock is taken over
// @Tags locks
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/lessons/{id}/lock [post]
func (ctrl *LessonController) AcquireLock(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	state, err := ctrl.LessonService.AcquireLock(c.Param("id"), claims.UserID)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, state)
}

// ReleaseLock godoc
// @Summary Release the edit lock
// @Description Clears the caller's lock; releasing an unlocked lesson succeeds quietly
// @Tags locks
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/lock [delete]
func (ctrl *LessonController) ReleaseLock(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if err := ctrl.LessonService.ReleaseLock(c.Param("id"), claims.UserID); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"released": true})
}

// CreateExercise godoc
// @Summary Add an exercise
// @Description Appends a coding exercise at the end of the lesson
// @Tags exercises
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param exercise body service.ExerciseRequest true "Exercise payload"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/exercises [post]
func (ctrl *LessonController) CreateExercise(c *gin.Context) {
	var req service.ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exercise, err := ctrl.LessonService.CreateExercise(c.Param("id"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Created(c, exercise)
}

// UpdateExercise godoc
// @Summary Update an exercise
// @Tags exercises
// @Accept json
// @Produce json
// @Param id path string true "Exercise ID"
// @Param exercise body service.ExerciseUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exercises/{id} [put]
func (ctrl *LessonController) UpdateExercise(c *gin.Context) {
	var req service.ExerciseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	exercise, err := ctrl.LessonService.UpdateExercise(c.Param("id"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, exercise)
}

// DeleteExercise godoc
// @Summary Delete an exercise
// @Description Removes the exercise and closes the ordering gap
// @Tags exercises
// @Produce json
// @Param id path string true "Exercise ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/exercises/{id} [delete]
func (ctrl *LessonController) DeleteExercise(c *gin.Context) {
	if err := ctrl.LessonService.DeleteExercise(c.Param("id")); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

// SetQuiz godoc
// @Summary Set the lesson quiz
// @Description Creates or replaces the lesson's single quiz
// @Tags quizzes
// @Accept json
// @Produce json
// @Param id path string true "Lesson ID"
// @Param quiz body service.QuizRequest true "Quiz payload"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/quiz [put]
func (ctrl *LessonController) SetQuiz(c *gin.Context) {
	var req service.QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	quiz, err := ctrl.LessonService.SetQuiz(c.Param("id"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, quiz)
}

// DeleteQuiz godoc
// @Summary Delete the lesson quiz
// @Tags quizzes
// @Produce json
// @Param id path string true "Lesson ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/lessons/{id}/quiz [delete]
func (ctrl *LessonController) DeleteQuiz(c *gin.Context) {
	if err := ctrl.LessonService.DeleteQuiz(c.Param("id")); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

// UploadVideo godoc
// @Summary Upload a lesson video
// @Description Stores the video, probes its duration and generates a thumbnail
// @Tags lessons
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Lesson ID"
// @Param video formData file true "Video file"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/lessons/{id}/video [post]
func (ctrl *LessonController) UploadVideo(c *gin.Context) {
	file, err := c.FormFile("video")
	if err != nil {
		util.BadRequest(c, "video file is required")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload-%s%s", c.Param("id"), filepath.Ext(file.Filename)))
	if err := c.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer os.Remove(tmpPath)
	defer os.Remove(tmpPath + ".jpg")

	claims := util.GetUserFromContext(c)
	lesson, err := ctrl.LessonService.AttachVideo(c.Request.Context(), c.Param("id"), claims.UserID, tmpPath, file.Filename)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, lesson)
}
