package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vietanh2810/eventdesk/internal/domain"
	"github.com/vietanh2810/eventdesk/internal/facade"
)

func newLoginCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:       "login <organiser|customer>",
		Short:     "Check credentials through the console process",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{string(domain.RoleOrganiser), string(domain.RoleCustomer)},
		RunE: func(cmd *cobra.Command, args []string) error {
			role := domain.Role(args[0])
			if !role.Valid() {
				return fmt.Errorf("unknown role %q", args[0])
			}

			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			username, err := prompt(in, out, "Username: ")
			if err != nil {
				return err
			}
			password, err := readPassword(in, out, "Password: ")
			if err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}

			rt, err := bootstrap(*configPath)
			if err != nil {
				return err
			}
			defer rt.close()

			var res facade.Result
			if role == domain.RoleOrganiser {
				res = rt.facade.OrganiserLogin(cmd.Context(), username, password)
			} else {
				res = rt.facade.CustomerLogin(cmd.Context(), username, password)
			}

			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			if err := enc.Encode(res); err != nil {
				return err
			}
			if !res.OK {
				return fmt.Errorf("login failed: %s", res.Code)
			}
			return nil
		},
	}
}

func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// readPassword reads without echo when stdin is a terminal.
func readPassword(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return prompt(in, io.Discard, "")
	}
	b, err := term.ReadPassword(fd)
	fmt.Fprintln(out)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}
