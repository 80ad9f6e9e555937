package parser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	commentPrefix = "#"
	maxLineBytes  = 16 * 1024 * 1024
)

// isFieldSeparator accepts runs of blanks and commas between values.
func isFieldSeparator(r rune) bool {
	return unicode.IsSpace(r) || r == ','
}

// ReadTable reads a whitespace separated numeric table. Blank lines and lines
// starting with '#' are skipped. Every data row must hold the same number of
// values. name is only used in error messages.
func ReadTable(r io.Reader, name string) (*mat.Dense, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var data []float64
	cols := -1
	rows := 0
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, commentPrefix) {
			continue
		}

		fields := strings.FieldsFunc(line, isFieldSeparator)
		if len(fields) == 0 {
			return nil, &TableError{File: name, Line: lineNo, Reason: "no values"}
		}
		if cols == -1 {
			cols = len(fields)
		} else if len(fields) != cols {
			return nil, &TableError{File: name, Line: lineNo,
				Reason: fmt.Sprintf("expected %d columns, found %d", cols, len(fields))}
		}

		for i, f := range fields {
			v, err := strconv.ParseFloat(f, 64)
			if err != nil {
				return nil, &TableError{File: name, Line: lineNo,
					Reason: fmt.Sprintf("column %d: %q is not a number", i+1, f)}
			}
			data = append(data, v)
		}
		rows++
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "reading %s", name)
	}
	if rows == 0 {
		return nil, &TableError{File: name, Reason: "no data rows"}
	}

	return mat.NewDense(rows, cols, data), nil
}

// ReadTableFile opens path and reads it with ReadTable. A missing file is
// reported as a *MissingFilesError.
func ReadTableFile(path string) (*mat.Dense, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &MissingFilesError{Dir: filepath.Dir(path), Files: []string{filepath.Base(path)}}
		}
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer file.Close()

	return ReadTable(file, filepath.Base(path))
}
