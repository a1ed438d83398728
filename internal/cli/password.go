package cli

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/awnumar/memguard"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = term.ReadPassword

var errPasswordMismatch = errors.New("passwords do not match")

// getPassword reads the backup password. With fromStdin it reads one line
// from the command input; otherwise it prompts on the terminal without echo,
// asking twice when confirm is set. The caller wipes the result.
func getPassword(cmd *cobra.Command, fromStdin, confirm bool) ([]byte, error) {
	if fromStdin {
		return readLine(cmd.InOrStdin())
	}

	pw, err := prompt(cmd.ErrOrStderr(), "Backup password: ")
	if err != nil {
		return nil, err
	}
	if !confirm {
		return pw, nil
	}

	again, err := prompt(cmd.ErrOrStderr(), "Repeat password: ")
	if err != nil {
		memguard.WipeBytes(pw)
		return nil, err
	}
	defer memguard.WipeBytes(again)

	if !bytes.Equal(pw, again) {
		memguard.WipeBytes(pw)
		return nil, errPasswordMismatch
	}
	return pw, nil
}

func prompt(w io.Writer, label string) ([]byte, error) {
	if _, err := fmt.Fprint(w, label); err != nil {
		return nil, err
	}
	pw, err := readPassword(int(os.Stdin.Fd()))
	fmt.Fprintln(w)
	if err != nil {
		return nil, err
	}
	if len(pw) == 0 {
		return nil, usageErrorf("password must not be empty")
	}
	return pw, nil
}

func readLine(r io.Reader) ([]byte, error) {
	line, err := bufio.NewReader(r).ReadBytes('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	pw := bytes.TrimRight(line, "\r\n")
	if len(pw) == 0 {
		return nil, usageErrorf("password must not be empty")
	}
	return pw, nil
}
