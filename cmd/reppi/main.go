// Command reppi is a terminal client for the Reppi API.
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"reppi/internal/client"
)

const defaultServer = "http://localhost:8080"

type cli struct {
	v       *viper.Viper
	session *session
	api     *client.Client
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			fmt.Fprintln(os.Stderr, "Error:", apiErr.Message)
		} else {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	app := &cli{v: viper.New()}

	root := &cobra.Command{
		Use:           "reppi",
		Short:         "Track goals, reps, objectives and notes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.init()
		},
	}
	root.PersistentFlags().String("server", defaultServer, "API base URL")
	app.v.SetEnvPrefix("REPPI")
	app.v.AutomaticEnv()
	_ = app.v.BindPFlag("server", root.PersistentFlags().Lookup("server"))

	root.AddCommand(
		app.registerCmd(),
		app.loginCmd(),
		app.logoutCmd(),
		app.whoamiCmd(),
		app.categoriesCmd(),
		app.goalsCmd(),
		app.notesCmd(),
		app.objectivesCmd(),
	)
	return root
}

func (a *cli) init() error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	a.session = s
	a.api = client.New(a.v.GetString("server"), client.WithToken(s.AccessToken))
	return nil
}

func (a *cli) requireLogin() error {
	if a.api.Token() == "" {
		return errors.New("not logged in, run `reppi login` first")
	}
	return nil
}

// matchID resolves a full id or a unique prefix of one.
func matchID(kind, ref string, ids []uuid.UUID) (string, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return "", fmt.Errorf("%s id is required", kind)
	}
	var found []uuid.UUID
	for _, id := range ids {
		if strings.HasPrefix(id.String(), ref) {
			found = append(found, id)
		}
	}
	switch len(found) {
	case 0:
		return "", fmt.Errorf("no %s matches %q", kind, ref)
	case 1:
		return found[0].String(), nil
	default:
		return "", fmt.Errorf("%q matches %d %ss, use more characters", ref, len(found), kind)
	}
}

// run calls fn and, if the access token has expired, refreshes the session once and retries.
func (a *cli) run(cmd *cobra.Command, fn func() error) error {
	if err := a.requireLogin(); err != nil {
		return err
	}
	err := fn()
	if !client.IsStatus(err, http.StatusUnauthorized) || a.session.RefreshToken == "" {
		return err
	}
	pair, refreshErr := a.api.Refresh(cmd.Context(), a.session.RefreshToken)
	if refreshErr != nil {
		return errors.New("session expired, run `reppi login` again")
	}
	a.session.AccessToken = pair.AccessToken
	a.session.RefreshToken = pair.RefreshToken
	if err := a.session.save(); err != nil {
		return err
	}
	return fn()
}
