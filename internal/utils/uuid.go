package utils

import "github.com/google/uuid"

// UUIDGenerator produces sync item identifiers. UUIDv7 keeps IDs
// time-ordered, which keeps queue rows roughly insertion-sorted even when
// inspected outside the application.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
