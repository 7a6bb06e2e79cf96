package compiler

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/arnavsurve/crux/internal/compiler/diag"
	"github.com/arnavsurve/crux/internal/compiler/lexer"
	"github.com/arnavsurve/crux/internal/compiler/parser"
	"github.com/arnavsurve/crux/internal/compiler/token"
)

// DefaultExtension is the suffix Crux sources are expected to carry.
const DefaultExtension = ".crx"

var ErrExtension = errors.New("unexpected source extension")

// Options controls the file-level entry points.
type Options struct {
	Extension string // required suffix; empty accepts any file
	Logger    *slog.Logger
}

// CheckFile scans and parses the source at srcPath. The returned error
// covers I/O and extension problems only; language problems are in the
// report.
func CheckFile(srcPath string, opts Options) (*diag.Report, error) {
	if err := validateExtension(srcPath, opts.Extension); err != nil {
		return nil, err
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	report, err := parser.Check(bufio.NewReader(f), opts.Logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", srcPath, err)
	}
	if opts.Logger != nil {
		opts.Logger.Debug("checked source", slog.String("path", srcPath), slog.Bool("error", report.HasError()))
	}
	return report, nil
}

// TokenizeFile returns every token in the source at srcPath, ending in EOF.
func TokenizeFile(srcPath string, opts Options) ([]token.Token, error) {
	if err := validateExtension(srcPath, opts.Extension); err != nil {
		return nil, err
	}

	f, err := os.Open(srcPath)
	if err != nil {
		return nil, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	l := lexer.NewLexer(bufio.NewReader(f), opts.Logger)
	toks := l.Tokenize()
	if err := l.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", srcPath, err)
	}
	return toks, nil
}

func validateExtension(path, ext string) error {
	if ext == "" {
		return nil
	}
	if filepath.Ext(path) != ext {
		return fmt.Errorf("%s: source must have %s extension: %w", path, ext, ErrExtension)
	}
	return nil
}
