package users

import (
	"net/http"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
)

// UserCreate is the body of a create request.
type UserCreate[A, U any] struct {
	Connection    string `json:"connection"`
	Email         string `json:"email,omitempty"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	UserID        string `json:"user_id,omitempty"`
	GivenName     string `json:"given_name,omitempty"`
	FamilyName    string `json:"family_name,omitempty"`
	Name          string `json:"name,omitempty"`
	Nickname      string `json:"nickname,omitempty"`
	Picture       string `json:"picture,omitempty"`
	Blocked       *bool  `json:"blocked,omitempty"`
	EmailVerified *bool  `json:"email_verified,omitempty"`
	PhoneVerified *bool  `json:"phone_verified,omitempty"`
	VerifyEmail   *bool  `json:"verify_email,omitempty"`
	AppMetadata   *A     `json:"app_metadata,omitempty"`
	UserMetadata  *U     `json:"user_metadata,omitempty"`
}

// CreateRequest creates a user in a connection.
type CreateRequest[A, U any] struct {
	management.Bound
	management.Returns[User[A, U]]

	Body UserCreate[A, U]
}

// Create starts a create request for a user in connection on c.
func Create[A, U any](c *management.Client, connection string) *CreateRequest[A, U] {
	return &CreateRequest[A, U]{Bound: management.BindTo(c), Body: UserCreate[A, U]{Connection: connection}}
}

// Email sets the email address.
func (r *CreateRequest[A, U]) Email(s string) *CreateRequest[A, U] {
	r.Body.Email = s
	return r
}

// Username sets the username, for connections that require one.
func (r *CreateRequest[A, U]) Username(s string) *CreateRequest[A, U] {
	r.Body.Username = s
	return r
}

// Password sets the initial password.
func (r *CreateRequest[A, U]) Password(s string) *CreateRequest[A, U] {
	r.Body.Password = s
	return r
}

// Name sets the full name.
func (r *CreateRequest[A, U]) Name(s string) *CreateRequest[A, U] {
	r.Body.Name = s
	return r
}

// Nickname sets the nickname.
func (r *CreateRequest[A, U]) Nickname(s string) *CreateRequest[A, U] {
	r.Body.Nickname = s
	return r
}

// Blocked creates the user blocked.
func (r *CreateRequest[A, U]) Blocked(b bool) *CreateRequest[A, U] {
	r.Body.Blocked = &b
	return r
}

// EmailVerified marks the email address as already verified.
func (r *CreateRequest[A, U]) EmailVerified(b bool) *CreateRequest[A, U] {
	r.Body.EmailVerified = &b
	return r
}

// VerifyEmail sends a verification email on creation.
func (r *CreateRequest[A, U]) VerifyEmail(b bool) *CreateRequest[A, U] {
	r.Body.VerifyEmail = &b
	return r
}

// AppMetadata sets the initial app_metadata.
func (r *CreateRequest[A, U]) AppMetadata(a A) *CreateRequest[A, U] {
	r.Body.AppMetadata = &a
	return r
}

// UserMetadata sets the initial user_metadata.
func (r *CreateRequest[A, U]) UserMetadata(u U) *CreateRequest[A, U] {
	r.Body.UserMetadata = &u
	return r
}

// Build prepares POST api/v2/users.
func (r *CreateRequest[A, U]) Build(f management.Factory) *httpclient.Request {
	req := f(http.MethodPost, basePath)
	if err := util.ValidateNonEmpty("connection", r.Body.Connection); err != nil {
		return req.Fail(err)
	}
	return req.SetJSON(r.Body)
}
