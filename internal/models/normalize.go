package models

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/racfadmin/internal/common"
)

const (
	msgUserIDRequired = "User ID is required"
	msgUserIDTooLong  = "User ID must be at most 8 characters"
	msgNameRequired   = "Name is required"
	msgGroupRequired  = "Default group is required"
	msgStatusInvalid  = "Status must be Active or Inactive"
	msgAuthInvalid    = "Auth option must be one of 1, 2, 3, 4"
	msgNullNotAllowed = "Expected string, received null"
)

// NormalizeUserID trims and uppercases a business key. Lookups and uniqueness
// checks compare normalized values only.
func NormalizeUserID(userID string) string {
	return strings.ToUpper(strings.TrimSpace(userID))
}

func upper(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

func normalizeOwner(owner string) string {
	if o := upper(owner); o != "" {
		return o
	}
	return common.DefaultOwner
}

func checkUserID(userID string, errs *common.ValidationErrors) {
	switch {
	case userID == "":
		*errs = append(*errs, &common.ValidationError{Field: "userid", Message: msgUserIDRequired})
	case utf8.RuneCountInString(userID) > common.MaxUserIDLength:
		*errs = append(*errs, &common.ValidationError{Field: "userid", Message: msgUserIDTooLong})
	}
}

// NormalizeCreate validates p and returns the canonical form every backend
// stores: trimmed fields, uppercase userid/defaultGroup/owner, owner defaulting
// to IBMUSER, status to Active and authOption to "1".
func NormalizeCreate(p CreateUserPayload) (CreateUserPayload, error) {
	out := CreateUserPayload{
		UserID:       NormalizeUserID(p.UserID),
		Name:         strings.TrimSpace(p.Name),
		DefaultGroup: upper(p.DefaultGroup),
		Owner:        normalizeOwner(p.Owner),
		Status:       p.Status,
		AuthOption:   p.AuthOption,
		Expiration:   strings.TrimSpace(p.Expiration),
	}
	if out.Status == "" {
		out.Status = StatusActive
	}
	if out.AuthOption == "" {
		out.AuthOption = AuthPassword
	}

	var errs common.ValidationErrors
	checkUserID(out.UserID, &errs)
	if out.Name == "" {
		errs = append(errs, &common.ValidationError{Field: "name", Message: msgNameRequired})
	}
	if out.DefaultGroup == "" {
		errs = append(errs, &common.ValidationError{Field: "defaultGroup", Message: msgGroupRequired})
	}
	if !out.Status.Valid() {
		errs = append(errs, &common.ValidationError{Field: "status", Message: msgStatusInvalid})
	}
	if !out.AuthOption.Valid() {
		errs = append(errs, &common.ValidationError{Field: "authOption", Message: msgAuthInvalid})
	}
	if len(errs) > 0 {
		return CreateUserPayload{}, errs
	}
	return out, nil
}

// NormalizeUpdate applies the create rules to every present field. Null is
// accepted only for expiration, where it (like "") means clear.
func NormalizeUpdate(p UpdateUserPayload) (UpdateUserPayload, error) {
	var errs common.ValidationErrors
	nullCheck := func(field string, null bool) bool {
		if null {
			errs = append(errs, &common.ValidationError{Field: field, Message: msgNullNotAllowed})
		}
		return null
	}

	out := UpdateUserPayload{}
	if p.UserID.Set && !nullCheck("userid", p.UserID.Null) {
		out.UserID = Some(NormalizeUserID(p.UserID.Value))
		checkUserID(out.UserID.Value, &errs)
	}
	if p.Name.Set && !nullCheck("name", p.Name.Null) {
		out.Name = Some(strings.TrimSpace(p.Name.Value))
		if out.Name.Value == "" {
			errs = append(errs, &common.ValidationError{Field: "name", Message: msgNameRequired})
		}
	}
	if p.DefaultGroup.Set && !nullCheck("defaultGroup", p.DefaultGroup.Null) {
		out.DefaultGroup = Some(upper(p.DefaultGroup.Value))
		if out.DefaultGroup.Value == "" {
			errs = append(errs, &common.ValidationError{Field: "defaultGroup", Message: msgGroupRequired})
		}
	}
	if p.Owner.Set && !nullCheck("owner", p.Owner.Null) {
		out.Owner = Some(normalizeOwner(p.Owner.Value))
	}
	if p.Status.Set && !nullCheck("status", p.Status.Null) {
		out.Status = Some(p.Status.Value)
		if !p.Status.Value.Valid() {
			errs = append(errs, &common.ValidationError{Field: "status", Message: msgStatusInvalid})
		}
	}
	if p.AuthOption.Set && !nullCheck("authOption", p.AuthOption.Null) {
		out.AuthOption = Some(p.AuthOption.Value)
		if !p.AuthOption.Value.Valid() {
			errs = append(errs, &common.ValidationError{Field: "authOption", Message: msgAuthInvalid})
		}
	}
	if p.Expiration.Set {
		out.Expiration = Some(strings.TrimSpace(p.Expiration.Value))
	}

	if len(errs) > 0 {
		return UpdateUserPayload{}, errs
	}
	return out, nil
}
