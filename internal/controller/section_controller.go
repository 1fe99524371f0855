package controller

import (
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/service"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type SectionController struct {
	SectionService *service.SectionService
}

func NewSectionController(sectionService *service.SectionService) *SectionController {
	return &SectionController{SectionService: sectionService}
}

// ReorderRequest carries the complete new ordering of a parent's children.
type ReorderRequest struct {
	OrderedIDs []string `json:"orderedIds" binding:"required,min=1"`
}

// CreateSection godoc
// @Summary Create a section
// @Description Appends a new section at the end of the course
// @Tags sections
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param section body service.SectionCreateRequest true "Section payload"
// @Success 201 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{courseId}/sections [post]
func (ctrl *SectionController) CreateSection(c *gin.Context) {
	var req service.SectionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	section, err := ctrl.SectionService.CreateSection(c.Param("courseId"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Created(c, section)
}

// UpdateSection godoc
// @Summary Update a section
// @Description Renames or redescribes a section, position untouched
// @Tags sections
// @Accept json
// @Produce json
// @Param sectionId path string true "Section ID"
// @Param section body service.SectionUpdateRequest true "Fields to change"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/sections/{sectionId} [put]
func (ctrl *SectionController) UpdateSection(c *gin.Context) {
	var req service.SectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	section, err := ctrl.SectionService.UpdateSection(c.Param("sectionId"), req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, section)
}

// DeleteSection godoc
// @Summary Delete a section
// @Description Removes an empty section and closes the ordering gap
// @Tags sections
// @Produce json
// @Param sectionId path string true "Section ID"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/sections/{sectionId} [delete]
func (ctrl *SectionController) DeleteSection(c *gin.Context) {
	if err := ctrl.SectionService.DeleteSection(c.Param("sectionId")); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"deleted": true})
}

// ReorderSections godoc
// @Summary Reorder sections
// @Description Applies a complete new ordering of the course's sections in one batch
// @Tags sections
// @Accept json
// @Produce json
// @Param courseId path string true "Course ID"
// @Param order body ReorderRequest true "Every section id in the desired order"
// @Success 200 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /api/v1/courses/{courseId}/sections/reorder [put]
func (ctrl *SectionController) ReorderSections(c *gin.Context) {
	var req ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	sections, err := ctrl.SectionService.ReorderSections(c.Param("courseId"), req.OrderedIDs)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, sections)
}
