package runner

import (
	"bufio"
	"io"
	"strings"
)

// MaxInputLine bounds the length of a single input line read by ReadInputs.
const MaxInputLine = 16 << 20

// ReadInputs reads one input per line. Trailing carriage returns are stripped and
// blank lines are kept as empty inputs, except a final newline.
func ReadInputs(r io.Reader) ([]string, error) {
	var inputs []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxInputLine)
	for scanner.Scan() {
		inputs = append(inputs, strings.TrimRight(scanner.Text(), "\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return inputs, nil
}
