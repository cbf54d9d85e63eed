package models

import "time"

// DefaultUsers returns the sample records seeded into an empty store.
// IDs are fixed so a seed that races another seed collides on the key
// instead of duplicating rows.
func DefaultUsers(now time.Time) []UserRecord {
	now = now.UTC()
	return []UserRecord{
		{
			ID:           "seed-admin01",
			UserID:       "ADMIN01",
			Name:         "System Administrator",
			DefaultGroup: "SYSADM",
			Owner:        "IBMUSER",
			Status:       StatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "seed-jdoe",
			UserID:       "JDOE",
			Name:         "John Doe - Contractor",
			DefaultGroup: "STAFF",
			Owner:        "ADMIN01",
			Status:       StatusActive,
			CreatedAt:    now,
		},
		{
			ID:           "seed-finance01",
			UserID:       "FINANCE01",
			Name:         "Finance User",
			DefaultGroup: "FINANCE",
			Owner:        "ADMIN01",
			Status:       StatusActive,
			CreatedAt:    now,
		},
	}
}
