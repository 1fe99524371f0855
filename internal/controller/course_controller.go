package controller

import (
	"strconv"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/model"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/repository"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/service"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type CourseController struct {
	CourseService *service.CourseService
}

func NewCourseController(courseService *service.CourseService) *CourseController {
	return &CourseController{CourseService: courseService}
}

// CreateCourse godoc
// @Summary Create a course
// @Description Creates a draft course owned by the authenticated user
// @Tags courses
// @Accept json
// @Produce json
// @Param course body service.CourseCreateRequest true "Course payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Router /api/v1/courses [post]
func (ctrl *CourseController) CreateCourse(c *gin.Context) {
	var req service.CourseCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	claims := util.GetUserFromContext(c)
	course, err := ctrl.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Created(c, course)
}

// ListCourses godoc
// @Summary List courses
// @Description Returns a filtered, paginated course list with live counts
// @Tags courses
// @Produce json
// @Param status query string false "Filter by status" Enums(draft, published)
// @Param language query string false "Filter by language" Enums(javascript, python)
// @Param createdBy query string false "Filter by creator id"
// @Param search query string false "Match against title"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Page size" default(20)
// @Success 200 {object} util.PageResponse
// @Router /api/v1/courses [get]
func (ctrl *CourseController) ListCourses(c *gin.Context) {
	filter := repository.CourseFilter{
		Status:    model.CourseStatus(c.Query("status")),
		Language:  model.CourseLanguage(c.Query("language")),
		CreatedBy: c.Query("createdBy"),
		Search:    c.Query("search"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	courses, total, err := ctrl.CourseService.ListCourses(filter, page, limit)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Page(c, courses, total, page, limit)
}

// GetCourse godoc
// @Summary Get course detail
// @Description Returns the course with its full section and lesson tree plus live counts
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{courseId} [get]
func (ctrl *CourseController) GetCourse(c *gin.Context) {
	detail, err := ctrl.CourseService.GetCourseDetail(c.Param("courseId"))
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, detail)
}

// UpdateCourse godoc
// @Summary Update a course
// @Description Applies a partial update to the course's own fields
// @Tags courses
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param course body service.CourseUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{courseId} [put]
func (ctrl *CourseController) UpdateCourse(c *gin.Context) {
	var req service.CourseUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctrl.CourseService.UpdateCourse(c.Param("courseId"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, course)
}

// DeleteCourse godoc
// @Summary Delete a course
// @Description Removes the course and everything under it; refused while any class uses it
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/courses/{courseId} [delete]
func (ctrl *CourseController) DeleteCourse(c *gin.Context) {
	if err := ctrl.CourseService.DeleteCourse(c.Param("courseId")); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

// PublishCourse godoc
// @Summary Publish a course
// @Description Moves a draft course with at least one section to published
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{courseId}/publish [post]
func (ctrl *CourseController) PublishCourse(c *gin.Context) {
	course, err := ctrl.CourseService.Publish(c.Param("courseId"))
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, course)
}

// UnpublishCourse godoc
// @Summary Unpublish a course
// @Description Moves a published course back to draft
// @Tags courses
// @Produce json
// @Param courseId path string true "Course ID"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{courseId}/unpublish [post]
func (ctrl *CourseController) UnpublishCourse(c *gin.Context) {
	course, err := ctrl.CourseService.Unpublish(c.Param("courseId"))
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, course)
}
