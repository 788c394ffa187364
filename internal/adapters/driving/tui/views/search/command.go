package search

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

// Command is one parsed ":" command line. Words of the form key=value are
// collected into Options; the rest are positional Args.
type Command struct {
	Name    string
	Args    []string
	Options map[string]string
}

// ParseCommand splits a command line with shell quoting rules, so
// `filter s2t="xin chao" in=01:00` keeps the quoted phrase together.
func ParseCommand(line string) (Command, error) {
	words, err := shlex.Split(strings.TrimPrefix(strings.TrimSpace(line), ":"))
	if err != nil {
		return Command{}, fmt.Errorf("parse command: %w", err)
	}
	if len(words) == 0 {
		return Command{}, nil
	}

	cmd := Command{
		Name:    strings.ToLower(words[0]),
		Options: map[string]string{},
	}
	for _, word := range words[1:] {
		if key, value, ok := strings.Cut(word, "="); ok && key != "" {
			cmd.Options[strings.ToLower(key)] = value
			continue
		}
		cmd.Args = append(cmd.Args, word)
	}
	return cmd, nil
}

// Option returns the first option set among names.
func (c Command) Option(names ...string) (string, bool) {
	for _, name := range names {
		if v, ok := c.Options[name]; ok {
			return v, true
		}
	}
	return "", false
}

// splitList splits a comma separated list, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validTime accepts "", mm:ss, and hh:mm:ss.
func validTime(s string) error {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return fmt.Errorf("%w: %q", ErrBadTime, s)
	}
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 || (i > 0 && n > 59) {
			return fmt.Errorf("%w: %q", ErrBadTime, s)
		}
	}
	return nil
}
