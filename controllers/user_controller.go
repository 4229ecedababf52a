package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/services"
)

type UserController struct {
	users   *services.UserService
	ratings *services.RatingService
}

func NewUserController(users *services.UserService, ratings *services.RatingService) *UserController {
	return &UserController{users: users, ratings: ratings}
}

// GetUser returns a public profile by id.
func (uc *UserController) GetUser(c *gin.Context) {
	profile, err := uc.users.GetProfile(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// UpdateProfile edits the caller's own profile.
func (uc *UserController) UpdateProfile(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	profile, err := uc.users.UpdateProfile(c.Request.Context(), c.GetString(middleware.ContextUserID), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": profile})
}

// GetUserRatings returns a user's rating aggregate with the raw entries.
func (uc *UserController) GetUserRatings(c *gin.Context) {
	summary, err := uc.ratings.GetUserRatings(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
