package managementtest

import (
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/mgmtkit/management"
)

const timeLayout = "2006-01-02T15:04:05.000Z"

func (s *Server) routes() http.Handler {
	r := gin.New()
	r.Use(gin.Recovery(), s.record(), s.replay())

	r.POST("/oauth/token", s.issueToken)

	api := r.Group("/api/v2", s.authenticate())
	api.GET("/users", s.listUsers)
	api.POST("/users", s.createUser)
	api.GET("/users/:id", s.getUser)
	api.PATCH("/users/:id", s.updateUser)
	api.DELETE("/users/:id", s.deleteUser)
	api.GET("/users/:id/logs", s.listLogs)
	return r
}

func abortWithAPIError(c *gin.Context, status int, message, code string) {
	c.AbortWithStatusJSON(status, management.APIError{
		StatusCode: status,
		Reason:     http.StatusText(status),
		Message:    message,
		ErrorCode:  code,
	})
}

func (s *Server) issueToken(c *gin.Context) {
	var body struct {
		GrantType    string `json:"grant_type"`
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		Audience     string `json:"audience"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid_request", "error_description": err.Error()})
		return
	}
	if body.GrantType != "client_credentials" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unsupported_grant_type"})
		return
	}
	if body.ClientID != s.clientID || body.ClientSecret != s.clientSecret {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "access_denied", "error_description": "Unauthorized"})
		return
	}

	s.mu.Lock()
	s.issued++
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"access_token": s.token,
		"token_type":   "Bearer",
		"expires_in":   int(s.tokenTTL.Seconds()),
		"scope":        "read:users update:users delete:users create:users read:logs",
	})
}

func (s *Server) getUser(c *gin.Context) {
	s.mu.RLock()
	u, ok := s.state.Users[c.Param("id")]
	if ok {
		u = maps.Clone(u)
	}
	s.mu.RUnlock()

	if !ok {
		abortWithAPIError(c, http.StatusNotFound, "The user does not exist.", "inexistent_user")
		return
	}
	c.JSON(http.StatusOK, project(u, c.Query("fields"), c.Query("include_fields")))
}

func (s *Server) listUsers(c *gin.Context) {
	s.mu.RLock()
	all := s.state.list()
	s.mu.RUnlock()

	users := filter(all, c.Query("q"))
	if err := sortBy(users, c.Query("sort")); err != nil {
		abortWithAPIError(c, http.StatusBadRequest, err.Error(), "invalid_query_string")
		return
	}
	page, start, limit, err := paginate(users, c)
	if err != nil {
		abortWithAPIError(c, http.StatusBadRequest, err.Error(), "invalid_query_string")
		return
	}
	for i, u := range page {
		page[i] = project(u, c.Query("fields"), c.Query("include_fields"))
	}
	respondList(c, "users", page, start, limit, len(users))
}

func (s *Server) listLogs(c *gin.Context) {
	s.mu.RLock()
	logs := slices.Clone(s.state.Logs[c.Param("id")])
	s.mu.RUnlock()

	if err := sortBy(logs, c.Query("sort")); err != nil {
		abortWithAPIError(c, http.StatusBadRequest, err.Error(), "invalid_query_string")
		return
	}
	page, start, limit, err := paginate(logs, c)
	if err != nil {
		abortWithAPIError(c, http.StatusBadRequest, err.Error(), "invalid_query_string")
		return
	}
	respondList(c, "logs", page, start, limit, len(logs))
}

func (s *Server) updateUser(c *gin.Context) {
	var patch object
	if err := c.ShouldBindJSON(&patch); err != nil || len(patch) == 0 {
		abortWithAPIError(c, http.StatusBadRequest, "Payload validation error: 'Too few properties defined (0), minimum 1'.", "invalid_body")
		return
	}

	id := c.Param("id")
	s.mu.Lock()
	u, ok := s.state.Users[id]
	if ok {
		u = maps.Clone(u)
		for k, v := range patch {
			switch k {
			case "app_metadata", "user_metadata":
				u[k] = mergeMetadata(u[k], v)
			case "password", "connection", "client_id", "verify_email", "verify_phone_number":
			default:
				u[k] = v
			}
		}
		u["updated_at"] = time.Now().UTC().Format(timeLayout)
		s.state.put(u)
	}
	s.mu.Unlock()

	if !ok {
		abortWithAPIError(c, http.StatusNotFound, "The user does not exist.", "inexistent_user")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) createUser(c *gin.Context) {
	var body object
	if err := c.ShouldBindJSON(&body); err != nil {
		abortWithAPIError(c, http.StatusBadRequest, "Payload validation error: 'Invalid JSON'.", "invalid_body")
		return
	}
	connection, _ := body["connection"].(string)
	if connection == "" {
		abortWithAPIError(c, http.StatusBadRequest, "Payload validation error: 'Missing required property: connection'.", "invalid_body")
		return
	}
	email, _ := body["email"].(string)

	s.mu.Lock()
	defer s.mu.Unlock()

	if email != "" {
		for _, u := range s.state.Users {
			if u["email"] == email {
				abortWithAPIError(c, http.StatusConflict, "The user already exists.", "auth0_idp_error")
				return
			}
		}
	}

	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	if v, ok := body["user_id"].(string); ok && v != "" {
		raw = v
	}
	now := time.Now().UTC().Format(timeLayout)
	u := object{}
	for k, v := range body {
		switch k {
		case "connection", "password", "verify_email", "user_id":
		default:
			u[k] = v
		}
	}
	u["user_id"] = "auth0|" + raw
	u["created_at"] = now
	u["updated_at"] = now
	u["identities"] = []any{object{"connection": connection, "user_id": raw, "provider": "auth0", "isSocial": false}}
	if _, ok := u["email_verified"]; !ok {
		u["email_verified"] = false
	}
	s.state.put(u)
	c.JSON(http.StatusCreated, maps.Clone(u))
}

func (s *Server) deleteUser(c *gin.Context) {
	s.mu.Lock()
	s.state.remove(c.Param("id"))
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

// mergeMetadata merges a metadata fragment one level deep. Null values
// remove keys.
func mergeMetadata(current, fragment any) any {
	frag, ok := fragment.(map[string]any)
	if !ok {
		return fragment
	}
	out := object{}
	if cur, ok := current.(map[string]any); ok {
		maps.Copy(out, cur)
	}
	for k, v := range frag {
		if v == nil {
			delete(out, k)
			continue
		}
		out[k] = v
	}
	return out
}

// filter applies a `field:value` or `field:"value"` search. Without a field
// it matches email, name and nickname by substring.
func filter(users []object, q string) []object {
	q = strings.TrimSpace(q)
	if q == "" {
		return users
	}
	field, value, found := strings.Cut(q, ":")
	value = strings.Trim(value, `"`)

	out := users[:0]
	for _, u := range users {
		if found {
			if fmt.Sprint(u[field]) == value {
				out = append(out, u)
			}
			continue
		}
		for _, k := range []string{"email", "name", "nickname"} {
			if s, _ := u[k].(string); strings.Contains(s, q) {
				out = append(out, u)
				break
			}
		}
	}
	return out
}

func sortBy(items []object, sort string) error {
	if sort == "" {
		return nil
	}
	parsed, err := management.ParseSort(sort)
	if err != nil {
		return err
	}
	slices.SortStableFunc(items, func(a, b object) int {
		c := strings.Compare(fmt.Sprint(a[parsed.Field]), fmt.Sprint(b[parsed.Field]))
		if parsed.Order == management.Descending {
			return -c
		}
		return c
	})
	return nil
}

func paginate(items []object, c *gin.Context) (page []object, start, limit int, err error) {
	limit = management.DefaultPerPage
	if v := c.Query("per_page"); v != "" {
		if limit, err = strconv.Atoi(v); err != nil || limit < 0 {
			return nil, 0, 0, fmt.Errorf("Query validation error: 'Invalid per_page %q'.", v)
		}
		if limit > management.MaxPerPage {
			return nil, 0, 0, fmt.Errorf("Query validation error: 'per_page' must be at most %d.", management.MaxPerPage)
		}
	}
	n := 0
	if v := c.Query("page"); v != "" {
		if n, err = strconv.Atoi(v); err != nil || n < 0 {
			return nil, 0, 0, fmt.Errorf("Query validation error: 'Invalid page %q'.", v)
		}
	}
	start = n * limit
	if start > len(items) {
		start = len(items)
	}
	end := min(start+limit, len(items))
	return items[start:end], start, limit, nil
}

func respondList(c *gin.Context, key string, page []object, start, limit, total int) {
	if page == nil {
		page = []object{}
	}
	if c.Query("include_totals") != "true" {
		c.JSON(http.StatusOK, page)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"start":  start,
		"limit":  limit,
		"length": len(page),
		"total":  total,
		key:      page,
	})
}

// project applies fields/include_fields.
func project(u object, fields, include string) object {
	if fields == "" {
		return u
	}
	names := strings.Split(fields, ",")
	out := object{}
	if include == "false" {
		maps.Copy(out, u)
		for _, n := range names {
			delete(out, n)
		}
		return out
	}
	for _, n := range names {
		if v, ok := u[n]; ok {
			out[n] = v
		}
	}
	return out
}
