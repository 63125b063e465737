package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/spec-kit/warden-register/internal/domain"
)

// readPassword is a test seam for term.ReadPassword.
// In tests you can replace it with a stub to avoid touching the terminal.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

// promptLine prints a prompt to w and reads a single line of input from
// reader. The trailing newline is trimmed. If EOF occurs after some input
// was read, the partial line is returned.
func promptLine(reader *bufio.Reader, prompt string, w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, prompt+"\n> "); err != nil {
		return "", err
	}
	line, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && len(line) > 0 {
			return strings.TrimSpace(line), nil
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// promptPassword prints a password prompt to w and reads a password from the
// terminal without echo. A newline is printed after the read to keep the UI tidy.
func promptPassword(w io.Writer) (string, error) {
	if _, err := fmt.Fprint(w, "Enter password: "); err != nil {
		return "", err
	}
	pw, err := readPassword()
	fmt.Fprintln(w)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}

// promptConfirm asks a yes/no question and reports whether the user answered
// yes. Anything other than "y"/"yes" counts as no.
func promptConfirm(reader *bufio.Reader, prompt string, w io.Writer) (bool, error) {
	answer, err := promptLine(reader, prompt+" [y/N]", w)
	if err != nil {
		return false, err
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes", nil
}

// promptLocation lists the campus locations and reads a selection by number.
// An empty input returns current unchanged (when current is non-empty, it is
// offered as the keep-default). The selection is always a registry member.
func promptLocation(reader *bufio.Reader, current string, w io.Writer) (string, error) {
	locations := domain.Locations()
	for i, loc := range locations {
		fmt.Fprintf(w, "  [%2d] %s\n", i+1, loc)
	}

	prompt := "Select a location by number"
	if current != "" {
		prompt = fmt.Sprintf("Select a location by number (enter to keep %q)", current)
	}

	for {
		answer, err := promptLine(reader, prompt, w)
		if err != nil {
			return "", err
		}
		if answer == "" && current != "" {
			return current, nil
		}
		idx, err := strconv.Atoi(answer)
		if err != nil || idx < 1 || idx > len(locations) {
			fmt.Fprintln(w, "Please enter a number between 1 and", len(locations))
			continue
		}
		return locations[idx-1], nil
	}
}

// promptDetail reads a free-text field, offering the current value as the
// keep-default on empty input.
func promptDetail(reader *bufio.Reader, label, current string, w io.Writer) (string, error) {
	answer, err := promptLine(reader, fmt.Sprintf("%s (enter to keep %q)", label, current), w)
	if err != nil {
		return "", err
	}
	if answer == "" {
		return current, nil
	}
	return answer, nil
}
