package managementtest

import (
	"encoding/json"
	"fmt"
	"maps"

	"github.com/kbukum/mgmtkit/testutil/fixtures"
)

// object is a JSON object as the fake stores it. The fake never needs the
// caller's metadata types.
type object = map[string]any

// state is everything Snapshot captures.
type state struct {
	Users map[string]object   `json:"users"`
	Order []string            `json:"order"`
	Logs  map[string][]object `json:"logs"`
}

func seedState() (*state, error) {
	st := &state{Users: map[string]object{}, Logs: map[string][]object{}}

	var user object
	if err := json.Unmarshal(fixtures.Load(fixtures.User), &user); err != nil {
		return nil, fmt.Errorf("seed user: %w", err)
	}
	st.put(user)

	var logs []object
	if err := json.Unmarshal(fixtures.Load(fixtures.Logs), &logs); err != nil {
		return nil, fmt.Errorf("seed logs: %w", err)
	}
	st.Logs[user["user_id"].(string)] = logs
	return st, nil
}

func (s *state) put(u object) {
	id, _ := u["user_id"].(string)
	if _, ok := s.Users[id]; !ok {
		s.Order = append(s.Order, id)
	}
	s.Users[id] = u
}

func (s *state) remove(id string) bool {
	if _, ok := s.Users[id]; !ok {
		return false
	}
	delete(s.Users, id)
	delete(s.Logs, id)
	for i, v := range s.Order {
		if v == id {
			s.Order = append(s.Order[:i], s.Order[i+1:]...)
			break
		}
	}
	return true
}

func (s *state) list() []object {
	out := make([]object, 0, len(s.Order))
	for _, id := range s.Order {
		out = append(out, maps.Clone(s.Users[id]))
	}
	return out
}

func (s *state) clone() (*state, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var out state
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
