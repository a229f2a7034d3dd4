package session

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"
)

// Profile is the persisted per-user record
type Profile struct {
	Points   int       `json:"points"`
	LastSave time.Time `json:"last_save"`
}

// EncodeProfile serializes a profile as indented JSON
func EncodeProfile(p Profile) ([]byte, error) {
	data, err := sonic.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return data, nil
}

// DecodeProfile parses a profile record. Negative totals are rejected.
func DecodeProfile(data []byte) (Profile, error) {
	var p Profile
	if err := sonic.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("failed to unmarshal profile: %w", err)
	}
	if p.Points < 0 {
		return Profile{}, fmt.Errorf("invalid profile: negative points %d", p.Points)
	}
	return p, nil
}
