package fixtures

import (
	"embed"
	"fmt"
)

//go:embed *.json
var files embed.FS

// Fixture names.
const (
	User       = "user.json"
	Logs       = "logs.json"
	LogsTotals = "logs_totals.json"
	Users      = "users_totals.json"
	APIError   = "error_404.json"
)

// Load returns the named fixture. It panics on unknown names so a typo fails
// the test that uses it.
func Load(name string) []byte {
	data, err := files.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("fixtures: %v", err))
	}
	return data
}
