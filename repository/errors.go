package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	// ErrNotFound means the id matched no record.
	ErrNotFound = errors.New("record not found")
	// ErrInsufficientStock means a conditional stock decrement did not match.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrDuplicate means a uniqueness constraint was violated on insert.
	ErrDuplicate = errors.New("duplicate record")
)

// mapFindErr translates driver not-found errors into ErrNotFound.
func mapFindErr(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return err
}

// mapWriteErr translates driver duplicate-key errors into ErrDuplicate.
func mapWriteErr(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return ErrDuplicate
	}
	return err
}
