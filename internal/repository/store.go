package repository

import (
	"github.com/google/uuid"
	"github.com/stemsi/mathsession-backend/internal/model"
)

// parseID reports malformed ids as missing records.
func parseID(id string) (uuid.UUID, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, model.ErrNotFound
	}
	return parsed, nil
}
