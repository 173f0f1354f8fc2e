package model

import (
	"strings"
	"time"
)

// Household is one verified home address inside the community. Every
// resident who verifies the same address belongs to the same household.
type Household struct {
	ID        string    `json:"id"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// NormalizeAddress canonicalises a street address so that spelling
// variations in case and spacing land on the same household.
func NormalizeAddress(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}
