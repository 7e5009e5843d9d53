package users

import (
	"net/url"
	"slices"
	"time"

	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
)

const basePath = "api/v2/users"

func userPath(id string, sub ...string) string {
	p := basePath + "/" + url.PathEscape(id)
	for _, s := range sub {
		p += "/" + s
	}
	return p
}

// User is a user record. A and U are the app_metadata and user_metadata
// payload types.
type User[A, U any] struct {
	UserID        string     `json:"user_id" validate:"required"`
	Email         string     `json:"email,omitempty"`
	EmailVerified *bool      `json:"email_verified,omitempty"`
	Username      string     `json:"username,omitempty"`
	PhoneNumber   string     `json:"phone_number,omitempty"`
	PhoneVerified *bool      `json:"phone_verified,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	Identities    []Identity `json:"identities,omitempty"`
	AppMetadata   *A         `json:"app_metadata,omitempty"`
	UserMetadata  *U         `json:"user_metadata,omitempty"`
	Picture       string     `json:"picture,omitempty"`
	Name          string     `json:"name,omitempty"`
	Nickname      string     `json:"nickname,omitempty"`
	GivenName     string     `json:"given_name,omitempty"`
	FamilyName    string     `json:"family_name,omitempty"`
	Multifactor   []string   `json:"multifactor,omitempty"`
	LastIP        string     `json:"last_ip,omitempty"`
	LastLogin     *time.Time `json:"last_login,omitempty"`
	LoginsCount   int        `json:"logins_count,omitempty"`
	Blocked       *bool      `json:"blocked,omitempty"`
}

// Identity links a user to a connection.
type Identity struct {
	Connection string `json:"connection"`
	UserID     string `json:"user_id"`
	Provider   string `json:"provider"`
	IsSocial   bool   `json:"isSocial"`
}

// idField is always projected so a partial user still decodes.
const idField = "user_id"

// projection returns the field list to send. An included list always
// carries user_id and an excluded one never does.
func projection(names management.FieldList, include *bool) management.FieldList {
	if len(names) == 0 {
		return names
	}
	included := include == nil || *include
	if included && slices.Contains(names, idField) {
		return names
	}
	out := make(management.FieldList, 0, len(names)+1)
	for _, n := range names {
		if n != idField {
			out = append(out, n)
		}
	}
	if included {
		out = append(out, idField)
	}
	return out
}

// UpdateFromUser returns an update carrying the mutable fields of u that
// hold a value. Empty strings, unset flags and absent metadata stay unset.
func UpdateFromUser[A, U any](u User[A, U]) UserUpdate[A, U] {
	upd := UserUpdate[A, U]{
		EmailVerified: u.EmailVerified,
		Blocked:       u.Blocked,
		AppMetadata:   u.AppMetadata,
		UserMetadata:  u.UserMetadata,
	}
	set := func(dst **string, v string) {
		if v != "" {
			*dst = util.Ptr(v)
		}
	}
	set(&upd.Email, u.Email)
	set(&upd.Username, u.Username)
	set(&upd.PhoneNumber, u.PhoneNumber)
	set(&upd.GivenName, u.GivenName)
	set(&upd.FamilyName, u.FamilyName)
	set(&upd.Name, u.Name)
	set(&upd.Nickname, u.Nickname)
	set(&upd.Picture, u.Picture)
	if u.PhoneNumber != "" {
		upd.PhoneVerified = u.PhoneVerified
	}
	return upd
}
