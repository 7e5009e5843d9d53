package users

import (
	"net/http"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
)

// UserUpdate is the body of an update. Nil fields are left out; metadata
// fragments are merged by the server one level deep.
type UserUpdate[A, U any] struct {
	Blocked           *bool   `json:"blocked,omitempty"`
	Email             *string `json:"email,omitempty"`
	EmailVerified     *bool   `json:"email_verified,omitempty"`
	Username          *string `json:"username,omitempty"`
	PhoneNumber       *string `json:"phone_number,omitempty"`
	PhoneVerified     *bool   `json:"phone_verified,omitempty"`
	GivenName         *string `json:"given_name,omitempty"`
	FamilyName        *string `json:"family_name,omitempty"`
	Name              *string `json:"name,omitempty"`
	Nickname          *string `json:"nickname,omitempty"`
	Picture           *string `json:"picture,omitempty"`
	Password          *string `json:"password,omitempty"`
	Connection        *string `json:"connection,omitempty"`
	ClientID          *string `json:"client_id,omitempty"`
	VerifyEmail       *bool   `json:"verify_email,omitempty"`
	VerifyPhoneNumber *bool   `json:"verify_phone_number,omitempty"`
	AppMetadata       *A      `json:"app_metadata,omitempty"`
	UserMetadata      *U      `json:"user_metadata,omitempty"`
}

// UpdateRequest changes fields of one user.
type UpdateRequest[A, U any] struct {
	management.Bound
	management.Returns[User[A, U]]

	Body UserUpdate[A, U]

	id string
}

var _ management.ClientRequestBuilder[User[struct{}, struct{}]] = (*UpdateRequest[struct{}, struct{}])(nil)

// Update starts an update of the user with id on c.
func Update[A, U any](c *management.Client, id string) *UpdateRequest[A, U] {
	return &UpdateRequest[A, U]{Bound: management.BindTo(c), id: id}
}

// With replaces the whole body.
func (r *UpdateRequest[A, U]) With(body UserUpdate[A, U]) *UpdateRequest[A, U] {
	r.Body = body
	return r
}

// Blocked blocks or unblocks the user.
func (r *UpdateRequest[A, U]) Blocked(b bool) *UpdateRequest[A, U] {
	r.Body.Blocked = &b
	return r
}

// Email changes the email address.
func (r *UpdateRequest[A, U]) Email(s string) *UpdateRequest[A, U] {
	r.Body.Email = &s
	return r
}

// EmailVerified marks the email address verified or not.
func (r *UpdateRequest[A, U]) EmailVerified(b bool) *UpdateRequest[A, U] {
	r.Body.EmailVerified = &b
	return r
}

// PhoneNumber changes the phone number.
func (r *UpdateRequest[A, U]) PhoneNumber(s string) *UpdateRequest[A, U] {
	r.Body.PhoneNumber = &s
	return r
}

// PhoneVerified marks the phone number verified or not.
func (r *UpdateRequest[A, U]) PhoneVerified(b bool) *UpdateRequest[A, U] {
	r.Body.PhoneVerified = &b
	return r
}

// GivenName sets the given name.
func (r *UpdateRequest[A, U]) GivenName(s string) *UpdateRequest[A, U] {
	r.Body.GivenName = &s
	return r
}

// FamilyName sets the family name.
func (r *UpdateRequest[A, U]) FamilyName(s string) *UpdateRequest[A, U] {
	r.Body.FamilyName = &s
	return r
}

// Name sets the full name.
func (r *UpdateRequest[A, U]) Name(s string) *UpdateRequest[A, U] {
	r.Body.Name = &s
	return r
}

// Nickname sets the nickname.
func (r *UpdateRequest[A, U]) Nickname(s string) *UpdateRequest[A, U] {
	r.Body.Nickname = &s
	return r
}

// Picture sets the picture URL.
func (r *UpdateRequest[A, U]) Picture(s string) *UpdateRequest[A, U] {
	r.Body.Picture = &s
	return r
}

// Password sets a new password. Connection is required with it.
func (r *UpdateRequest[A, U]) Password(s string) *UpdateRequest[A, U] {
	r.Body.Password = &s
	return r
}

// Connection names the connection a password or email change applies to.
func (r *UpdateRequest[A, U]) Connection(s string) *UpdateRequest[A, U] {
	r.Body.Connection = &s
	return r
}

// ClientID names the application used for verification emails.
func (r *UpdateRequest[A, U]) ClientID(s string) *UpdateRequest[A, U] {
	r.Body.ClientID = &s
	return r
}

// VerifyEmail sends a verification email after an email change.
func (r *UpdateRequest[A, U]) VerifyEmail(b bool) *UpdateRequest[A, U] {
	r.Body.VerifyEmail = &b
	return r
}

// VerifyPhoneNumber sends a verification code after a phone number change.
func (r *UpdateRequest[A, U]) VerifyPhoneNumber(b bool) *UpdateRequest[A, U] {
	r.Body.VerifyPhoneNumber = &b
	return r
}

// AppMetadata ships a fragment merged into the stored app_metadata.
func (r *UpdateRequest[A, U]) AppMetadata(a A) *UpdateRequest[A, U] {
	r.Body.AppMetadata = &a
	return r
}

// UserMetadata ships a fragment merged into the stored user_metadata.
func (r *UpdateRequest[A, U]) UserMetadata(u U) *UpdateRequest[A, U] {
	r.Body.UserMetadata = &u
	return r
}

// Build prepares PATCH api/v2/users/{id}.
func (r *UpdateRequest[A, U]) Build(f management.Factory) *httpclient.Request {
	req := f(http.MethodPatch, userPath(r.id))
	if err := util.ValidateNonEmpty("user id", r.id); err != nil {
		return req.Fail(err)
	}
	return req.SetJSON(r.Body)
}
