// Package racf renders RACF command previews for user records. Commands are
// text for the operator to review; nothing here executes them.
package racf

import (
	"strings"

	"github.com/dmitrijs2005/racfadmin/internal/models"
)

const (
	placeholderUserID = "<USERID>"
	placeholderGroup  = "<GROUP>"
	placeholderName   = "<NAME>"
	mask              = "********"
)

// Credentials are the secrets typed at create time. They are never stored,
// and only their presence shows up in a preview.
type Credentials struct {
	Password string
	Phrase   string
}

func orPlaceholder(v, placeholder string) string {
	if strings.TrimSpace(v) == "" {
		return placeholder
	}
	return v
}

// quote wraps s in apostrophes, doubling any inside it.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func expDate(exp string) string {
	return "EXPDATE(" + strings.ReplaceAll(exp, "-", "") + ")"
}

// AddUser renders the ADDUSER command that would create rec.
//
//	ADDUSER JDOE DFLTGRP(STAFF) OWNER(IBMUSER) NAME('John Doe') PROTECTED EXPDATE(20301231)
func AddUser(rec models.UserRecord, cred Credentials) string {
	parts := []string{
		"ADDUSER " + orPlaceholder(rec.UserID, placeholderUserID),
		"DFLTGRP(" + orPlaceholder(rec.DefaultGroup, placeholderGroup) + ")",
	}
	if rec.Owner != "" {
		parts = append(parts, "OWNER("+rec.Owner+")")
	}
	parts = append(parts, "NAME("+quote(orPlaceholder(rec.Name, placeholderName))+")")

	switch rec.AuthOption {
	case models.AuthProtected:
		parts = append(parts, "PROTECTED")
	case models.AuthPassword, models.AuthPasswordPhrase, "":
		if cred.Password != "" {
			parts = append(parts, "PASSWORD("+mask+")")
		}
	}
	if cred.Phrase != "" && (rec.AuthOption == models.AuthPhrase || rec.AuthOption == models.AuthPasswordPhrase) {
		parts = append(parts, "PHRASE('"+mask+"')")
	}
	if rec.Expiration != "" {
		parts = append(parts, expDate(rec.Expiration))
	}
	return strings.Join(parts, " ")
}

// AltUser renders the ALTUSER command that takes before to after. Only
// changed attributes appear; with nothing changed the result is "".
func AltUser(before, after models.UserRecord) string {
	var parts []string
	if after.Name != before.Name {
		parts = append(parts, "NAME("+quote(after.Name)+")")
	}
	if after.DefaultGroup != before.DefaultGroup {
		parts = append(parts, "DFLTGRP("+after.DefaultGroup+")")
	}
	if after.Owner != before.Owner {
		parts = append(parts, "OWNER("+after.Owner+")")
	}
	if after.Status != before.Status {
		if after.Status == models.StatusInactive {
			parts = append(parts, "REVOKE")
		} else {
			parts = append(parts, "RESUME")
		}
	}
	if after.AuthOption != before.AuthOption {
		if after.AuthOption == models.AuthProtected {
			parts = append(parts, "NOPASSWORD NOPHRASE")
		} else if before.AuthOption == models.AuthProtected {
			parts = append(parts, "PASSWORD")
		}
	}
	if after.Expiration != before.Expiration && after.Expiration != "" {
		parts = append(parts, expDate(after.Expiration))
	}
	if len(parts) == 0 {
		return ""
	}
	return "ALTUSER " + before.UserID + " " + strings.Join(parts, " ")
}

// DelUser renders the DELUSER command for userID.
func DelUser(userID string) string {
	return "DELUSER " + orPlaceholder(userID, placeholderUserID)
}
