package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword prompts for a password. Terminal input is not echoed; piped
// input is read one line at a time.
func readPassword(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), prompt)

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		password, err := term.ReadPassword(int(f.Fd()))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(password), nil
	}

	line, err := in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return strings.TrimRight(line, "\r\n"), nil
}

// readNewPassword prompts for a password twice and checks both entries match.
func readNewPassword(cmd *cobra.Command, in *bufio.Reader, prompt string) (string, error) {
	password, err := readPassword(cmd, in, prompt+": ")
	if err != nil {
		return "", err
	}

	confirm, err := readPassword(cmd, in, "Confirm "+strings.ToLower(prompt)+": ")
	if err != nil {
		return "", err
	}

	if password != confirm {
		return "", fmt.Errorf("passwords do not match")
	}
	return password, nil
}
