package fs

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// WriteURLList writes image URLs one per line, each terminated with a
// semicolon. The file is replaced atomically.
func WriteURLList(path string, urls []string) error {
	return writeFileAtomic(path, func(out io.Writer) error {
		bw := bufio.NewWriter(out)
		for _, url := range urls {
			if _, err := bw.WriteString(url + ";\n"); err != nil {
				return err
			}
		}
		return bw.Flush()
	})
}

// ReadURLList reads a URL list written by WriteURLList. Blank lines are
// skipped; trailing semicolons are stripped.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSuffix(strings.TrimSpace(sc.Text()), ";")
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	return urls, sc.Err()
}
