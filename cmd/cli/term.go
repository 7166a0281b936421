package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/term"
)

// stdin is shared so piped passwords on consecutive lines are not lost to
// buffering.
var stdin = bufio.NewReader(os.Stdin)

// promptPassword reads a password without echo when stdin is a terminal,
// and a single line otherwise.
func promptPassword(prompt string) ([]byte, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, prompt)
		pw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return nil, err
		}
		return nonEmpty(pw)
	}
	line, err := stdin.ReadString('\n')
	if err != nil && line == "" {
		return nil, err
	}
	return nonEmpty([]byte(strings.TrimRight(line, "\r\n")))
}

func nonEmpty(pw []byte) ([]byte, error) {
	if len(pw) == 0 {
		return nil, errors.New("empty password")
	}
	return pw, nil
}
