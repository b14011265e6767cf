package id

import (
	"github.com/google/uuid"
)

// UUIDGenerator implements ports.IDGenerator with random UUIDs. Custom
// habit ids used to come from a wall-clock timestamp; an injected generator
// keeps the core deterministic under test.
type UUIDGenerator struct{}

func New() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) NewID() string {
	return uuid.New().String()
}
