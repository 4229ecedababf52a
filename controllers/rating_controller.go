package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/services"
)

type RatingController struct {
	ratings *services.RatingService
}

func NewRatingController(ratings *services.RatingService) *RatingController {
	return &RatingController{ratings: ratings}
}

// SubmitRating rates the seller or rider on a delivered order. Buyers only.
func (rc *RatingController) SubmitRating(c *gin.Context) {
	var req services.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	rating, err := rc.ratings.SubmitRating(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"rating": rating})
}

// CreateReview reviews a product from a delivered order. Buyers only.
func (rc *RatingController) CreateReview(c *gin.Context) {
	var req services.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	review, err := rc.ratings.CreateReview(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

// VoteHelpful bumps a review's helpful counter.
func (rc *RatingController) VoteHelpful(c *gin.Context) {
	review, err := rc.ratings.VoteHelpful(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

// SubmitDispute files a complaint against an order.
func (rc *RatingController) SubmitDispute(c *gin.Context) {
	var req services.SubmitDisputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	dispute, err := rc.ratings.SubmitDispute(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"dispute": dispute})
}

// MyDisputes lists disputes the caller has filed.
func (rc *RatingController) MyDisputes(c *gin.Context) {
	disputes, err := rc.ratings.GetUserDisputes(c.Request.Context(), c.GetString(middleware.ContextUserID))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"disputes": disputes})
}
