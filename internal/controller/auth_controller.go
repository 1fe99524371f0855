package controller

import (
	"strings"

	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/service"
	"github.com/spencerjirehcebrian/silver-edge-academy-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept json
// @Produce json
// @Param user body service.RegisterRequest true "Registration payload"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 409 {object} util.Response
// @Router /api/v1/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctrl.AuthService.Register(req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Created(c, user)
}

// Login godoc
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body service.LoginRequest true "Login payload"
// @Success 200 {object} util.Response
// @Failure 403 {object} util.Response
// @Router /api/v1/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	resp, err := ctrl.AuthService.Login(req)
	if err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, resp)
}

// Logout godoc
// @Summary Log out
// @Description Revokes the presented token for the rest of its lifetime
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Failure 401 {object} util.Response
// @Router /api/v1/auth/logout [post]
func (ctrl *AuthController) Logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token := strings.TrimPrefix(header, "Bearer ")
	if token == "" || token == header {
		util.Unauthorized(c)
		return
	}

	if err := ctrl.AuthService.Logout(c.Request.Context(), token); err != nil {
		util.HandleServiceError(c, err)
		return
	}
	util.Success(c, gin.H{"loggedOut": true})
}
