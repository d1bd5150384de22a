package dock

import (
	"github.com/google/uuid"

	"github.com/bnema/dockyard/internal/application/usecase"
)

// UUIDGenerator returns node ids built from random UUIDs.
func UUIDGenerator() usecase.IDGenerator {
	return uuid.NewString
}
