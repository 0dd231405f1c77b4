package postgres

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/osse101/IdleYard_Go/internal/domain"
)

// parseAccountUUID parses an account ID string to uuid.UUID. Malformed
// IDs come from the caller, so the error classifies as validation.
func parseAccountUUID(accountID string) (uuid.UUID, error) {
	u, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", domain.ErrInvalidAccountID, err)
	}
	return u, nil
}
