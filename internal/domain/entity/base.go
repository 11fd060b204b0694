package entity

import "github.com/google/uuid"

// ensureID присваивает новый UUID, если он еще не задан.
func ensureID(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}
