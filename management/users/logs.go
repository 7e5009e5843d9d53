package users

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/kbukum/mgmtkit/httpclient"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/util"
)

// UserLog is one log event of a user.
type UserLog struct {
	Date         time.Time       `json:"date" validate:"required"`
	Kind         string          `json:"type"`
	Description  string          `json:"description,omitempty"`
	Connection   string          `json:"connection,omitempty"`
	ConnectionID string          `json:"connection_id,omitempty"`
	ClientID     string          `json:"client_id,omitempty"`
	ClientName   string          `json:"client_name,omitempty"`
	IP           string          `json:"ip,omitempty"`
	Hostname     string          `json:"hostname,omitempty"`
	UserID       string          `json:"user_id,omitempty"`
	UserName     string          `json:"user_name,omitempty"`
	Audience     string          `json:"audience,omitempty"`
	Scope        string          `json:"scope,omitempty"`
	Strategy     string          `json:"strategy,omitempty"`
	StrategyType string          `json:"strategy_type,omitempty"`
	LogID        string          `json:"log_id" validate:"required"`
	IsMobile     bool            `json:"isMobile"`
	UserAgent    string          `json:"user_agent,omitempty"`
	Details      json.RawMessage `json:"details,omitempty"`
	LocationInfo *LocationInfo   `json:"location_info,omitempty"`
}

// LocationInfo is the geolocation of a log event's IP address.
type LocationInfo struct {
	CountryCode   string  `json:"country_code"`
	CountryCode3  string  `json:"country_code3"`
	CountryName   string  `json:"country_name"`
	CityName      string  `json:"city_name"`
	Latitude      float32 `json:"latitude"`
	Longitude     float32 `json:"longitude"`
	TimeZone      string  `json:"time_zone"`
	ContinentCode string  `json:"continent_code"`
}

// UserLogs is the response of a logs request. Totals is set only when
// include_totals was requested.
type UserLogs struct {
	Logs   []UserLog `validate:"dive"`
	Totals *Totals
}

func (l *UserLogs) UnmarshalJSON(data []byte) error {
	t, err := decodeList(data, "logs", &l.Logs)
	if err != nil {
		return err
	}
	l.Totals = t
	return nil
}

func (l UserLogs) MarshalJSON() ([]byte, error) {
	return encodeList("logs", l.Logs, l.Totals)
}

// LogsRequest fetches the log events of one user.
type LogsRequest struct {
	management.Returns[UserLogs] `schema:"-"`

	Paging management.Page
	Order  management.Sort `schema:"sort,omitempty"`

	id string `schema:"-"`
}

var (
	_ management.RequestBuilder[UserLogs] = (*LogsRequest)(nil)
	_ management.Pageable                 = (*LogsRequest)(nil)
	_ management.Sortable                 = (*LogsRequest)(nil)
)

// Logs starts a logs request for userID.
func Logs(userID string) *LogsRequest {
	return &LogsRequest{id: userID}
}

// LogsFor starts a logs request for u.
func LogsFor[A, U any](u User[A, U]) *LogsRequest {
	return Logs(u.UserID)
}

// UserID returns the user the logs belong to.
func (r *LogsRequest) UserID() string { return r.id }

// Page sets the zero-based page index.
func (r *LogsRequest) Page(n uint) *LogsRequest {
	r.Paging.Page(n)
	return r
}

// PerPage sets the page size.
func (r *LogsRequest) PerPage(n uint) *LogsRequest {
	r.Paging.PerPage(n)
	return r
}

// IncludeTotals asks for the paging totals with the logs.
func (r *LogsRequest) IncludeTotals(b bool) *LogsRequest {
	r.Paging.IncludeTotals(b)
	return r
}

// Sort orders the logs by field, e.g. "date".
func (r *LogsRequest) Sort(field string, order management.Ordering) *LogsRequest {
	r.Order.Sort(field, order)
	return r
}

// Pagination and Sorting let pagers drive the request.
func (r *LogsRequest) Pagination() *management.Page { return &r.Paging }
func (r *LogsRequest) Sorting() *management.Sort    { return &r.Order }

// Build prepares GET api/v2/users/{id}/logs.
func (r *LogsRequest) Build(f management.Factory) *httpclient.Request {
	req := f(http.MethodGet, userPath(r.id, "logs"))
	if err := util.ValidateNonEmpty("user id", r.id); err != nil {
		return req.Fail(err)
	}
	return management.WithQuery(req, r)
}
