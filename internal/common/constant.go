// Package common contains shared constants and the error taxonomy used across
// the client data-access layer and the user service.
package common

// DefaultOwner is stored in the owner field when a payload omits it.
const DefaultOwner = "IBMUSER"

// MaxUserIDLength is the RACF limit on a user id after trimming.
const MaxUserIDLength = 8
