// Where: internal/app/interaction.go
// What: TTY detection and interactive prompts.
// Why: Destructive commands confirm before acting in interactive sessions.
package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var isTerminal = func(file *os.File) bool {
	if file == nil {
		return false
	}
	fd := file.Fd()
	info, err := file.Stat()
	if err != nil {
		return false
	}
	// Character device check keeps pipes and redirects non-interactive.
	return (info.Mode()&os.ModeCharDevice) != 0 && (fd == 0 || fd == 1 || fd == 2)
}

func promptYesNo(message string) (bool, error) {
	reader := bufio.NewReader(os.Stdin)
	fmt.Fprintf(os.Stderr, "%s [y/N]: ", message)
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	trimmed := strings.TrimSpace(strings.ToLower(line))
	return trimmed == "y" || trimmed == "yes", nil
}
