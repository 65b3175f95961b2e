package cli

import (
	"bufio"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/linemk/coffee-shop/internal/session"
)

var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Sign in and persist the session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := bufio.NewReader(cmd.InOrStdin())
		password, err := prompt(in, cmd.OutOrStdout(), "Password: ")
		if err != nil {
			return err
		}

		if err := application.Session.Login(cmd.Context(), args[0], password); err != nil {
			return fmt.Errorf("login failed: %w", err)
		}

		user := application.Session.User()
		color.Green("Signed in as %s", user.Username)
		if application.Session.IsAdmin() {
			fmt.Fprintln(cmd.OutOrStdout(), "Admin commands are available, see: coffeeshop admin --help")
		}
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the session and forget the persisted token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		application.Session.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the signed-in account",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !application.Session.IsAuthenticated() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not signed in")
			return nil
		}
		user := application.Session.User()
		fmt.Fprintf(cmd.OutOrStdout(), "Username: %s\n", user.Username)
		fmt.Fprintf(cmd.OutOrStdout(), "Email:    %s\n", user.Email)
		if application.Session.IsAdmin() {
			fmt.Fprintln(cmd.OutOrStdout(), "Role:     admin")
		}
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register <username>",
	Short: "Create a new customer account",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in, out := bufio.NewReader(cmd.InOrStdin()), cmd.OutOrStdout()

		email, err := prompt(in, out, "Email: ")
		if err != nil {
			return err
		}
		password, err := prompt(in, out, "Password: ")
		if err != nil {
			return err
		}
		confirmPassword, err := prompt(in, out, "Confirm password: ")
		if err != nil {
			return err
		}

		user, err := application.Session.Register(cmd.Context(), session.RegisterForm{
			Username:        args[0],
			Email:           email,
			Password:        password,
			ConfirmPassword: confirmPassword,
		})
		if err != nil {
			return fmt.Errorf("registration failed: %w", err)
		}

		color.Green("Account %s created, sign in with: coffeeshop login %s", user.Username, user.Username)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd, whoamiCmd, registerCmd)
}
