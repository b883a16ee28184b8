// Package cli implements the moodjournal command line client. It behaves
// like a single browser profile: the signed-in user is remembered in the
// configured storage between invocations.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spec-kit/mood-journal/internal/service"
	apperrors "github.com/spec-kit/mood-journal/pkg/util/errorutil"
)

// Bootstrap builds the services for one invocation and returns a cleanup.
type Bootstrap func(ctx context.Context) (*service.Container, func() error, error)

type runtime struct {
	boot      Bootstrap
	container *service.Container
	cleanup   func() error
	jsonOut   bool
}

// NewRootCommand assembles the command tree.
func NewRootCommand(boot Bootstrap) *cobra.Command {
	rt := &runtime{boot: boot}

	root := &cobra.Command{
		Use:   "moodjournal",
		Short: "Track moods and daily health from the terminal",
		Long: `moodjournal keeps a private journal of moods and daily health entries.

Examples:
  moodjournal signup ann@example.com --name Ann
  moodjournal mood log happy --note "long walk"
  moodjournal entry add --date 2024-05-01 --sleep 7.5 --stress 3 --symptoms 2 --mood 8 --engagement 6
  moodjournal dashboard
  moodjournal analyze`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return rt.start(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return rt.stop()
		},
	}
	root.PersistentFlags().BoolVar(&rt.jsonOut, "json", false, "print machine-readable JSON")

	root.AddCommand(
		newSignupCmd(rt),
		newLoginCmd(rt),
		newLogoutCmd(rt),
		newWhoamiCmd(rt),
		newProfileCmd(rt),
		newMoodCmd(rt),
		newEntryCmd(rt),
		newDashboardCmd(rt),
		newAnalyzeCmd(rt),
	)
	return root
}

// Describe renders err for a terminal user. Domain errors show only their
// public message.
func Describe(err error) string {
	var domainErr *apperrors.DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return err.Error()
}

func (rt *runtime) start(ctx context.Context) error {
	if rt.container != nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	container, cleanup, err := rt.boot(ctx)
	if err != nil {
		return err
	}
	rt.container = container
	rt.cleanup = cleanup
	return nil
}

func (rt *runtime) stop() error {
	if rt.cleanup == nil {
		return nil
	}
	cleanup := rt.cleanup
	rt.cleanup = nil
	return cleanup()
}

// session hydrates the persisted session.
func (rt *runtime) session(ctx context.Context) *service.Session {
	return rt.container.Sessions.Open(ctx, rt.container.LocalPointer())
}

// signedIn is session but fails when nobody is logged in.
func (rt *runtime) signedIn(ctx context.Context) (*service.Session, error) {
	sess := rt.session(ctx)
	if !sess.Authenticated() {
		return nil, fmt.Errorf("not logged in; run 'moodjournal login <email>' first")
	}
	return sess, nil
}
