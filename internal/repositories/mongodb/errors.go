package mongodb

import (
	"errors"
	"fmt"

	"cybertrax/internal/repositories/interfaces"

	"go.mongodb.org/mongo-driver/mongo"
)

// wrapError maps driver errors onto repository sentinels.
func wrapError(op string, err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return interfaces.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("failed to %s: %w", op, interfaces.ErrDuplicate)
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
