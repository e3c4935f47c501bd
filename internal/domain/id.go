package domain

import "github.com/google/uuid"

// ValidID indica si id tiene la forma canónica de un UUID (36 caracteres con guiones),
// que es como se generan y almacenan todos los IDs.
func ValidID(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
