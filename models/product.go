package models

import "time"

// ProductCategories is the closed set of catalog categories.
var ProductCategories = []string{
	"electronics", "fashion", "food", "home", "books", "sports", "beauty", "automotive",
	"phones", "computers", "furniture", "appliances", "toys", "jewelry", "health",
	"groceries", "pets", "garden", "tools", "music", "art", "baby", "office", "others",
}

// RatingSummary is a running average with its sample count.
type RatingSummary struct {
	Average float64 `json:"average" bson:"average"`
	Count   int     `json:"count" bson:"count"`
}

type Specification struct {
	Key   string `json:"key" bson:"key"`
	Value string `json:"value" bson:"value"`
}

type Product struct {
	ID             string          `json:"id" bson:"_id"`
	Name           string          `json:"name" bson:"name"`
	Description    string          `json:"description" bson:"description"`
	Price          float64         `json:"price" bson:"price"`
	Category       string          `json:"category" bson:"category"`
	CustomCategory string          `json:"customCategory,omitempty" bson:"custom_category,omitempty"`
	Images         []string        `json:"images" bson:"images"`
	SellerID       string          `json:"seller" bson:"seller_id"`
	Stock          int             `json:"stock" bson:"stock"`
	Rating         RatingSummary   `json:"rating" bson:"rating"`
	Specifications []Specification `json:"specifications,omitempty" bson:"specifications,omitempty"`
	Tags           []string        `json:"tags,omitempty" bson:"tags,omitempty"`
	IsActive       bool            `json:"isActive" bson:"is_active"`
	Weight         float64         `json:"weight,omitempty" bson:"weight,omitempty"`
	CreatedAt      time.Time       `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time       `json:"updatedAt" bson:"updated_at"`
}
