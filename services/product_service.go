package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/models"
	"github.com/yaseeradam/smartlink-backend/repository"
)

type CreateProductRequest struct {
	Name           string                 `json:"name" binding:"required,min=2,max=200"`
	Description    string                 `json:"description" binding:"required,max=5000"`
	Price          float64                `json:"price" binding:"required,gt=0"`
	Category       string                 `json:"category" binding:"required,category"`
	CustomCategory string                 `json:"customCategory"`
	Images         []string               `json:"images" binding:"omitempty,max=10"`
	Stock          int                    `json:"stock" binding:"min=0"`
	Specifications []models.Specification `json:"specifications"`
	Tags           []string               `json:"tags"`
	Weight         float64                `json:"weight" binding:"omitempty,gt=0"`
}

// ProductService handles the seller catalog. Deletes are soft; inactive
// products drop out of public listings but stay resolvable by order
// history.
type ProductService struct {
	products repository.ProductRepository
	log      *zap.Logger
}

func NewProductService(products repository.ProductRepository, log *zap.Logger) *ProductService {
	return &ProductService{products: products, log: log}
}

func (s *ProductService) CreateProduct(ctx context.Context, sellerID string, req *CreateProductRequest) (*models.Product, error) {
	now := time.Now().UTC()
	product := &models.Product{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Description:    req.Description,
		Price:          req.Price,
		Category:       req.Category,
		CustomCategory: req.CustomCategory,
		Images:         req.Images,
		SellerID:       sellerID,
		Stock:          req.Stock,
		Specifications: req.Specifications,
		Tags:           req.Tags,
		IsActive:       true,
		Weight:         req.Weight,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if product.Images == nil {
		product.Images = []string{}
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, apperrors.Unavailable("Failed to create product", err)
	}
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Unavailable("Failed to load product", err)
	}
	return product, nil
}

// ProductList is a paginated catalog listing.
type ProductList struct {
	Products []*models.Product `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Pages    int64             `json:"pages"`
}

func (s *ProductService) ListProducts(ctx context.Context, filter repository.ProductFilter) (*ProductList, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	products, total, err := s.products.Find(ctx, filter)
	if err != nil {
		return nil, apperrors.Unavailable("Failed to fetch products", err)
	}
	if products == nil {
		products = []*models.Product{}
	}

	pages := total / int64(filter.Limit)
	if total%int64(filter.Limit) != 0 {
		pages++
	}
	return &ProductList{Products: products, Total: total, Page: filter.Page, Pages: pages}, nil
}

// productUpdatableFields maps request keys to their stored field names.
var productUpdatableFields = map[string]string{
	"name":           "name",
	"description":    "description",
	"price":          "price",
	"category":       "category",
	"customCategory": "custom_category",
	"images":         "images",
	"stock":          "stock",
	"specifications": "specifications",
	"tags":           "tags",
	"weight":         "weight",
	"isActive":       "is_active",
}

// UpdateProduct applies allow-listed field updates. Seller-only.
func (s *ProductService) UpdateProduct(ctx context.Context, id, sellerID string, updates map[string]interface{}) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	if product.SellerID != sellerID {
		return nil, apperrors.Forbidden("Not authorized to update this product")
	}

	set := bson.M{}
	for key, value := range updates {
		field, ok := productUpdatableFields[key]
		if !ok {
			continue
		}
		set[field] = value
	}
	if len(set) == 0 {
		return product, nil
	}

	updated, err := s.products.UpdateFields(ctx, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Product not found")
		}
		return nil, apperrors.Unavailable("Failed to update product", err)
	}
	return updated, nil
}

// DeleteProduct soft-deletes the product. Seller-only.
func (s *ProductService) DeleteProduct(ctx context.Context, id, sellerID string) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if product.SellerID != sellerID {
		return apperrors.Forbidden("Not authorized to delete this product")
	}

	if err := s.products.Deactivate(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Product not found")
		}
		return apperrors.Unavailable("Failed to delete product", err)
	}
	return nil
}

func (s *ProductService) Categories() []string {
	return models.ProductCategories
}
