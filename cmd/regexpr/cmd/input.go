package cmd

import (
	"bufio"
	"io"

	"github.com/pkg/errors"
)

// maxLine bounds a single line read from standard input.
const maxLine = 1 << 20

// eachText calls fn for every text given on the command line, or for every
// line of in when there are none.
func eachText(in io.Reader, texts []string, fn func(text string) error) error {
	if len(texts) > 0 {
		for _, text := range texts {
			if err := fn(text); err != nil {
				return err
			}
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLine)
	for scanner.Scan() {
		if err := fn(scanner.Text()); err != nil {
			return err
		}
	}
	return errors.Wrap(scanner.Err(), "reading input")
}
