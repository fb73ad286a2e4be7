package cli

import (
	"bufio"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage users",
	Long:  "Manage user accounts and their passwords",
}

var usersRegisterCmd = &cobra.Command{
	Use:   "register <username> <email>",
	Short: "Register a new user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		username, email := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := readNewPassword(cmd, bufio.NewReader(cmd.InOrStdin()), "Enter password")
		if err != nil {
			return err
		}

		if err := services.Store.Register(cmd.Context(), username, email, password); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "User '%s' registered successfully\n", username)
		return nil
	},
}

var usersVerifyCmd = &cobra.Command{
	Use:   "verify <email>",
	Short: "Check a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := readPassword(cmd, bufio.NewReader(cmd.InOrStdin()), "Enter password: ")
		if err != nil {
			return err
		}

		if err := services.Store.Verify(cmd.Context(), email, password); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Password is valid")
		return nil
	},
}

var usersChangePasswordCmd = &cobra.Command{
	Use:   "change-password <email>",
	Short: "Change a user's password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := strings.TrimSpace(args[0])

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		in := bufio.NewReader(cmd.InOrStdin())
		current, err := readPassword(cmd, in, "Enter current password: ")
		if err != nil {
			return err
		}

		password, err := readNewPassword(cmd, in, "Enter new password")
		if err != nil {
			return err
		}

		if err := services.Store.ChangePassword(cmd.Context(), email, current, password); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Password changed for '%s'\n", email)
		return nil
	},
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all users",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		users, err := services.Store.ListUsers(cmd.Context())
		if err != nil {
			return err
		}

		if len(users) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No users found")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "USERNAME\tEMAIL\tCREATED AT")
		for _, user := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\n",
				user.Username,
				user.Email,
				user.CreatedAt.Format("2006-01-02 15:04:05"),
			)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersRegisterCmd)
	usersCmd.AddCommand(usersVerifyCmd)
	usersCmd.AddCommand(usersChangePasswordCmd)
	usersCmd.AddCommand(usersListCmd)
}
