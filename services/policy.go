package services

import (
	"nhatro-backend/models"
)

// Decision is the result of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision { return Decision{Allowed: true} }

func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Decide is the single authorization policy consulted by every lifecycle
// manager. Actors whose role appears in bypassRoles act regardless of
// ownership; any other actor must match one of ownerIDs (resource owners:
// the motel's landlord, a contract's tenant, an appointment's requester).
func Decide(actor models.User, bypassRoles []string, ownerIDs ...uint) Decision {
	for _, role := range bypassRoles {
		if actor.Role == role {
			return allow()
		}
	}
	for _, id := range ownerIDs {
		if id != 0 && actor.ID == id {
			return allow()
		}
	}
	return deny("not permitted for role " + actor.Role)
}
