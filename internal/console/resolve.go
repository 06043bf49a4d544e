package console

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dtroode/internhub/internal/model"
)

// resolveID finds the single item whose id starts with prefix. An exact id
// always wins over prefix matches.
func resolveID[T any](kind, prefix string, items []T, idOf func(T) string) (uuid.UUID, error) {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	if prefix == "" {
		return uuid.Nil, model.NewValidationError(kind, "id is required")
	}

	var matches []string
	for _, item := range items {
		id := idOf(item)
		if id == prefix {
			return uuid.Parse(id)
		}
		if strings.HasPrefix(id, prefix) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return uuid.Nil, &model.NotFoundError{Kind: kind, ID: prefix}
	case 1:
		return uuid.Parse(matches[0])
	default:
		return uuid.Nil, model.NewValidationError(kind, fmt.Sprintf("id prefix %q matches %d entries", prefix, len(matches)))
	}
}

// shortID is the display form of an id.
func shortID(id uuid.UUID) string {
	return id.String()[:8]
}
