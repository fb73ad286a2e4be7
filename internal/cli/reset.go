package cli

import (
	"bufio"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Manage password resets",
}

var resetInitiateCmd = &cobra.Command{
	Use:   "initiate <email>",
	Short: "Issue a password reset token",
	Long: `Issue a one-hour password reset token for a registered email address.
Any earlier token for the address stops working. The token is printed and
must be delivered to the user out of band.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		token, err := services.Store.InitiatePasswordReset(cmd.Context(), strings.TrimSpace(args[0]))
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Token:      %s\n", token.Token)
		fmt.Fprintf(cmd.OutOrStdout(), "Expires at: %s\n", token.ExpiresAt.Format(time.RFC3339))
		return nil
	},
}

var resetCompleteCmd = &cobra.Command{
	Use:   "complete <email> <token>",
	Short: "Set a new password using a reset token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		email, token := strings.TrimSpace(args[0]), strings.TrimSpace(args[1])

		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		password, err := readNewPassword(cmd, bufio.NewReader(cmd.InOrStdin()), "Enter new password")
		if err != nil {
			return err
		}

		if err := services.Store.ResetPassword(cmd.Context(), email, token, password); err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Password reset successful")
		return nil
	},
}

var resetPurgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Delete expired reset tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := initServices(cmd.Context())
		if err != nil {
			return err
		}
		defer services.Close()

		removed, err := services.Store.PurgeExpiredTokens(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired token(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resetCmd)
	resetCmd.AddCommand(resetInitiateCmd)
	resetCmd.AddCommand(resetCompleteCmd)
	resetCmd.AddCommand(resetPurgeCmd)
}
