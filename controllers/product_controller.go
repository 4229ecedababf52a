package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/middleware"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
	"github.com/yaseeradam/smartlink-backend/services"
)

// RegisterValidators installs custom binding validators; call once at
// startup.
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			value := fl.Field().String()
			for _, cat := range models.ProductCategories {
				if value == cat {
					return true
				}
			}
			return false
		})
	}
}

type ProductController struct {
	products *services.ProductService
	ratings  *services.RatingService
}

func NewProductController(products *services.ProductService, ratings *services.RatingService) *ProductController {
	return &ProductController{products: products, ratings: ratings}
}

// Create adds a product to the caller's catalog. Sellers only.
func (pc *ProductController) Create(c *gin.Context) {
	var req services.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := pc.products.CreateProduct(c.Request.Context(), c.GetString(middleware.ContextUserID), &req)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"product": product})
}

// List returns the public catalog with filters and pagination.
func (pc *ProductController) List(c *gin.Context) {
	filter := repository.ProductFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		SellerID: c.Query("seller"),
		SortBy:   c.Query("sortBy"),
		Page:     queryInt(c, "page", 1),
		Limit:    queryInt(c, "limit", 20),
	}

	list, err := pc.products.ListProducts(c.Request.Context(), filter)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (pc *ProductController) Get(c *gin.Context) {
	product, err := pc.products.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (pc *ProductController) Update(c *gin.Context) {
	var updates map[string]interface{}
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	product, err := pc.products.UpdateProduct(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID), updates)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"product": product})
}

func (pc *ProductController) Delete(c *gin.Context) {
	err := pc.products.DeleteProduct(c.Request.Context(), c.Param("id"), c.GetString(middleware.ContextUserID))
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (pc *ProductController) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": pc.products.Categories()})
}

// Reviews returns a product's reviews, optionally filtered by star rating.
func (pc *ProductController) Reviews(c *gin.Context) {
	list, err := pc.ratings.GetProductReviews(
		c.Request.Context(),
		c.Param("id"),
		queryInt(c, "rating", 0),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 10),
	)
	if err != nil {
		apperrors.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
