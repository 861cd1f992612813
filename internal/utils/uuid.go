package utils

import "github.com/google/uuid"

// IDGenerator produces opaque identifiers.
type IDGenerator interface {
	Generate() string
}

// UUIDGenerator generates random (version 4) UUIDs.
// Version 4 is used for session IDs so that no part of the ID is derived from time.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	return uuid.NewString()
}
