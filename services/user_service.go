package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/yaseeradam/smartlink-backend/apperrors"
	"github.com/yaseeradam/smartlink-backend/repository"
)

// UserService handles profile reads and edits.
type UserService struct {
	users repository.UserRepository
	log   *zap.Logger
}

func NewUserService(users repository.UserRepository, log *zap.Logger) *UserService {
	return &UserService{users: users, log: log}
}

func (s *UserService) GetProfile(ctx context.Context, userID string) (map[string]interface{}, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unavailable("Failed to load user", err)
	}
	return user.Public(), nil
}

// userUpdatableFields maps request keys to stored field names. Email,
// password, role and rating aggregates are never editable here.
var userUpdatableFields = map[string]string{
	"name":                "name",
	"phone":               "phone",
	"location":            "location",
	"avatar":              "avatar",
	"bio":                 "bio",
	"businessName":        "business_name",
	"businessDescription": "business_description",
	"businessCategory":    "business_category",
	"vehicleType":         "vehicle_type",
	"licenseNumber":       "license_number",
	"isAvailable":         "is_available",
}

// UpdateProfile applies allow-listed field updates to the caller's own
// profile; unknown keys are ignored.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, updates map[string]interface{}) (map[string]interface{}, error) {
	set := bson.M{}
	for key, value := range updates {
		field, ok := userUpdatableFields[key]
		if !ok {
			continue
		}
		set[field] = value
	}
	if len(set) == 0 {
		return s.GetProfile(ctx, userID)
	}

	user, err := s.users.UpdateFields(ctx, userID, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("User not found")
		}
		return nil, apperrors.Unavailable("Failed to update profile", err)
	}
	return user.Public(), nil
}
