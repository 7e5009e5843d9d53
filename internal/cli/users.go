package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/mgmtkit/logger"
	"github.com/kbukum/mgmtkit/management"
	"github.com/kbukum/mgmtkit/management/users"
)

// metadata is the untyped shape of app_metadata and user_metadata.
type metadata = map[string]any

// pageFlags are the paging and sorting flags shared by list commands.
type pageFlags struct {
	page    uint
	perPage uint
	sort    string
	totals  bool
}

func (f *pageFlags) register(cmd *cobra.Command) {
	cmd.Flags().UintVar(&f.page, "page", 0, "Zero-based page number")
	cmd.Flags().UintVar(&f.perPage, "per-page", 0, fmt.Sprintf("Page size, at most %d", management.MaxPerPage))
	cmd.Flags().StringVar(&f.sort, "sort", "", "Sort as field:1 or field:-1")
	cmd.Flags().BoolVar(&f.totals, "totals", false, "Include totals in the response")
}

// apply sets only the flags given on the command line.
func (f *pageFlags) apply(cmd *cobra.Command, p *management.Page, s *management.Sort) error {
	if cmd.Flags().Changed("page") {
		p.Page(f.page)
	}
	if cmd.Flags().Changed("per-page") {
		p.PerPage(f.perPage)
	}
	if cmd.Flags().Changed("totals") {
		p.IncludeTotals(f.totals)
	}
	if f.sort != "" {
		parsed, err := management.ParseSort(f.sort)
		if err != nil {
			return err
		}
		*s = parsed
	}
	return nil
}

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Read and change users",
	}
	cmd.AddCommand(
		newUsersGetCmd(a),
		newUsersListCmd(a),
		newUsersLogsCmd(a),
		newUsersCreateCmd(a),
		newUsersUpdateCmd(a),
		newUsersDeleteCmd(a),
	)
	return cmd
}

func newUsersGetCmd(a *app) *cobra.Command {
	var fields []string
	var include bool

	cmd := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string, c *management.Client) error {
			req := users.Get[metadata, metadata](args[0])
			if len(fields) > 0 {
				req.Fields(fields...).IncludeFields(include)
			}
			u, err := management.Query(cmd.Context(), c, req)
			if err != nil {
				return err
			}
			return a.print(cmd, u)
		}),
	}
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to return")
	cmd.Flags().BoolVar(&include, "include-fields", true, "Return only --fields (false excludes them)")
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	var (
		paging pageFlags
		q      string
		fields []string
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List or search users",
		Args:  cobra.NoArgs,
		RunE: a.withClient(func(cmd *cobra.Command, args []string, c *management.Client) error {
			req := users.List[metadata, metadata]()
			if q != "" {
				req.Search(q)
			}
			if len(fields) > 0 {
				req.Fields(fields...)
			}
			if err := paging.apply(cmd, req.Pagination(), req.Sorting()); err != nil {
				return err
			}
			list, err := management.Query(cmd.Context(), c, req)
			if err != nil {
				return err
			}
			return a.print(cmd, list)
		}),
	}
	paging.register(cmd)
	cmd.Flags().StringVar(&q, "q", "", "Search query")
	cmd.Flags().StringSliceVar(&fields, "fields", nil, "Fields to return")
	return cmd
}

func newUsersLogsCmd(a *app) *cobra.Command {
	var paging pageFlags

	cmd := &cobra.Command{
		Use:   "logs <id>",
		Short: "Show log events of a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string, c *management.Client) error {
			req := users.Logs(args[0])
			if err := paging.apply(cmd, req.Pagination(), req.Sorting()); err != nil {
				return err
			}
			logs, err := management.Query(cmd.Context(), c, req)
			if err != nil {
				return err
			}
			return a.print(cmd, logs)
		}),
	}
	paging.register(cmd)
	return cmd
}

func newUsersCreateCmd(a *app) *cobra.Command {
	var (
		connection string
		email      string
		password   string
		name       string
		nickname   string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Args:  cobra.NoArgs,
		RunE: a.withClient(func(cmd *cobra.Command, args []string, c *management.Client) error {
			req := users.Create[metadata, metadata](c, connection).Email(email)
			if password != "" {
				req.Password(password)
			}
			if name != "" {
				req.Name(name)
			}
			if nickname != "" {
				req.Nickname(nickname)
			}
			u, err := management.Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, u)
		}),
	}
	cmd.Flags().StringVar(&connection, "connection", "", "Connection to create the user in")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&password, "password", "", "Initial password")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname")
	_ = cmd.MarkFlagRequired("connection")
	return cmd
}

func newUsersUpdateCmd(a *app) *cobra.Command {
	var (
		blocked      bool
		email        string
		name         string
		nickname     string
		appMetadata  string
		userMetadata string
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change fields of a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string, c *management.Client) error {
			req := users.Update[metadata, metadata](c, args[0])
			flags := cmd.Flags()
			if flags.Changed("blocked") {
				req.Blocked(blocked)
			}
			if flags.Changed("email") {
				req.Email(email)
			}
			if flags.Changed("name") {
				req.Name(name)
			}
			if flags.Changed("nickname") {
				req.Nickname(nickname)
			}
			if flags.Changed("app-metadata") {
				m, err := parseMetadata("app-metadata", appMetadata)
				if err != nil {
					return err
				}
				req.AppMetadata(m)
			}
			if flags.Changed("user-metadata") {
				m, err := parseMetadata("user-metadata", userMetadata)
				if err != nil {
					return err
				}
				req.UserMetadata(m)
			}
			u, err := management.Send(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.print(cmd, u)
		}),
	}
	cmd.Flags().BoolVar(&blocked, "blocked", false, "Block or unblock the user")
	cmd.Flags().StringVar(&email, "email", "", "Email address")
	cmd.Flags().StringVar(&name, "name", "", "Full name")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname")
	cmd.Flags().StringVar(&appMetadata, "app-metadata", "", `app_metadata fragment as JSON, e.g. '{"plan":"pro"}'`)
	cmd.Flags().StringVar(&userMetadata, "user-metadata", "", "user_metadata fragment as JSON")
	return cmd
}

func newUsersDeleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: a.withClient(func(cmd *cobra.Command, args []string, c *management.Client) error {
			if _, err := management.Send(cmd.Context(), users.Delete(c, args[0])); err != nil {
				return err
			}
			a.log.Info("user deleted", logger.Fields("user_id", args[0]))
			return nil
		}),
	}
}

func parseMetadata(flag, raw string) (metadata, error) {
	var m metadata
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return m, nil
}
