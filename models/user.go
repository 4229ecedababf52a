package models

import "time"

// User roles
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleRider  = "rider"
)

// Vehicle types accepted for riders
const (
	VehicleMotorcycle = "motorcycle"
	VehicleBicycle    = "bicycle"
	VehicleCar        = "car"
)

// Coordinates is a latitude/longitude pair.
type Coordinates struct {
	Latitude  float64 `json:"latitude" bson:"latitude"`
	Longitude float64 `json:"longitude" bson:"longitude"`
}

// Location is a free-text address with optional coordinates.
type Location struct {
	Address     string       `json:"address" bson:"address"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type User struct {
	ID         string    `json:"id" bson:"_id"`
	Name       string    `json:"name" bson:"name"`
	Email      string    `json:"email" bson:"email"`
	Password   string    `json:"-" bson:"password"`
	Phone      string    `json:"phone" bson:"phone"`
	Role       string    `json:"role" bson:"role"`
	Location   *Location `json:"location,omitempty" bson:"location,omitempty"`
	Avatar     string    `json:"avatar,omitempty" bson:"avatar,omitempty"`
	Bio        string    `json:"bio,omitempty" bson:"bio,omitempty"`
	IsVerified bool      `json:"isVerified" bson:"is_verified"`
	IsActive   bool      `json:"isActive" bson:"is_active"`

	// Seller specific fields
	BusinessName        string `json:"businessName,omitempty" bson:"business_name,omitempty"`
	BusinessDescription string `json:"businessDescription,omitempty" bson:"business_description,omitempty"`
	BusinessCategory    string `json:"businessCategory,omitempty" bson:"business_category,omitempty"`

	// Rider specific fields
	VehicleType   string `json:"vehicleType,omitempty" bson:"vehicle_type,omitempty"`
	LicenseNumber string `json:"licenseNumber,omitempty" bson:"license_number,omitempty"`
	IsAvailable   bool   `json:"isAvailable" bson:"is_available"`

	// Running average over all ratings received, one decimal place.
	Rating      float64 `json:"rating" bson:"rating"`
	RatingCount int     `json:"ratingCount" bson:"rating_count"`

	CreatedAt time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updated_at"`
}

// Public returns the wire-visible subset of a user profile.
func (u *User) Public() map[string]interface{} {
	return map[string]interface{}{
		"id":           u.ID,
		"name":         u.Name,
		"email":        u.Email,
		"phone":        u.Phone,
		"role":         u.Role,
		"location":     u.Location,
		"avatar":       u.Avatar,
		"bio":          u.Bio,
		"isVerified":   u.IsVerified,
		"businessName": u.BusinessName,
		"vehicleType":  u.VehicleType,
		"rating":       u.Rating,
		"ratingCount":  u.RatingCount,
	}
}
