// Package models holds the user record shared by the client data-access layer
// and the user service, together with the normalization and validation rules
// both backends apply.
package models

import (
	"slices"
	"strings"
	"time"
)

// Status is the lifecycle state shown in the user list.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// AuthOption selects the password/phrase policy rendered in the command preview.
//
//	"1" password only
//	"2" password phrase only
//	"3" password and phrase
//	"4" PROTECTED, no password
type AuthOption string

const (
	AuthPassword       AuthOption = "1"
	AuthPhrase         AuthOption = "2"
	AuthPasswordPhrase AuthOption = "3"
	AuthProtected      AuthOption = "4"
)

// Valid reports whether a is one of the four policy options.
func (a AuthOption) Valid() bool {
	switch a {
	case AuthPassword, AuthPhrase, AuthPasswordPhrase, AuthProtected:
		return true
	}
	return false
}

// UserRecord is a RACF user identity. ID is opaque and immutable; UserID is
// the business key and is stored uppercase.
type UserRecord struct {
	ID           string     `json:"id"`
	UserID       string     `json:"userid"`
	Name         string     `json:"name"`
	DefaultGroup string     `json:"defaultGroup"`
	Owner        string     `json:"owner"`
	Status       Status     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	AuthOption   AuthOption `json:"authOption,omitempty"`
	Expiration   string     `json:"expiration,omitempty"`
}

// SortByUserID orders records by userid ascending, keeping ties in input order.
func SortByUserID(users []UserRecord) {
	slices.SortStableFunc(users, func(a, b UserRecord) int {
		return strings.Compare(a.UserID, b.UserID)
	})
}
