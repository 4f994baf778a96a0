package service

import (
	"github.com/pawprints/pawprints-backend/internal/models"
	"github.com/pawprints/pawprints-backend/pkg/apperr"
)

// Authorize decides whether an actor may mutate a resource owned by
// ownerID. Owners may always mutate their own resources; moderators and
// admins may mutate anything. Reads are unrestricted and never pass
// through here.
func Authorize(actor models.Actor, ownerID uint) error {
	if actor.ID == ownerID {
		return nil
	}
	if actor.Role.CanModerate() {
		return nil
	}
	return apperr.Forbidden("You do not have permission to modify this resource")
}
