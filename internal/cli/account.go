package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/spec-kit/mood-journal/internal/api/dto"
)

func newSignupCmd(rt *runtime) *cobra.Command {
	var password, name string
	cmd := &cobra.Command{
		Use:   "signup <email>",
		Short: "Create an account and log in",
		Long: `Create an account and log in.

The password is read from --password, or from the first line of stdin.
Without --name the part of the email before '@' is used.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}
			req := dto.SignupRequest{Email: args[0], Password: pw, Name: name}
			if err := req.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			sess := rt.session(ctx)
			ok, err := rt.container.Sessions.Signup(ctx, sess, req.Email, req.Password, req.Name)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("an account for %s already exists", req.Email)
			}
			user, _ := sess.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome, %s! You are logged in as %s.\n", user.DisplayName(), user.Email)
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password (min 6 characters)")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	return cmd
}

func newLoginCmd(rt *runtime) *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login <email>",
		Short: "Log in to an existing account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := passwordFrom(cmd.InOrStdin(), password)
			if err != nil {
				return err
			}
			req := dto.LoginRequest{Email: args[0], Password: pw}
			if err := req.Validate(); err != nil {
				return err
			}

			ctx := cmd.Context()
			sess := rt.session(ctx)
			ok, err := rt.container.Sessions.Login(ctx, sess, req.Email, req.Password)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("invalid email or password")
			}
			user, _ := sess.User()
			fmt.Fprintf(cmd.OutOrStdout(), "Welcome back, %s!\n", user.DisplayName())
			return nil
		},
	}
	cmd.Flags().StringVarP(&password, "password", "p", "", "account password")
	return cmd
}

func newLogoutCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := rt.container.Sessions.Logout(ctx, rt.session(ctx)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			user, ok := rt.session(cmd.Context()).User()
			if rt.jsonOut {
				if !ok {
					return printJSON(cmd.OutOrStdout(), map[string]any{"user": nil})
				}
				return printJSON(cmd.OutOrStdout(), map[string]any{"user": dto.ToUserResponse(user)})
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in.")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s <%s>\n", user.DisplayName(), user.Email)
			return nil
		},
	}
}

func newProfileCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show your profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := rt.signedIn(cmd.Context())
			if err != nil {
				return err
			}
			user, _ := sess.User()
			profile := dto.ProfileResponse{
				User:         dto.ToUserResponse(user),
				TotalEntries: len(rt.container.Entries.List(sess)),
				TotalMoods:   len(rt.container.Moods.List(sess)),
			}
			if rt.jsonOut {
				return printJSON(cmd.OutOrStdout(), profile)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Name:     %s\n", profile.User.DisplayName)
			fmt.Fprintf(w, "Email:    %s\n", profile.User.Email)
			fmt.Fprintf(w, "Entries:  %d\n", profile.TotalEntries)
			fmt.Fprintf(w, "Moods:    %d\n", profile.TotalMoods)
			return nil
		},
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "set-name <name>",
		Short: "Change your display name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.UpdateProfileRequest{Name: args[0]}
			if err := req.Validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			sess, err := rt.signedIn(ctx)
			if err != nil {
				return err
			}
			if err := rt.container.Sessions.UpdateUser(ctx, sess, req.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Profile updated. Hello, %s!\n", req.Name)
			return nil
		},
	})
	return cmd
}

// passwordFrom prefers the flag and falls back to one line of stdin.
func passwordFrom(stdin io.Reader, flag string) (string, error) {
	if flag != "" {
		return flag, nil
	}
	line, err := bufio.NewReader(stdin).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
