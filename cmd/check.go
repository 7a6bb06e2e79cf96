package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/arnavsurve/crux/internal/compiler"
	"github.com/arnavsurve/crux/internal/compiler/diag"
)

// ErrCheckFailed is returned when at least one source had errors.
var ErrCheckFailed = errors.New("check failed")

// check: scan + parse + resolve each source
func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <source.crx>...",
		Short: "Check Crux sources for syntax and naming errors",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.checkRun(cmd, args)
		},
	}
}

func (a *app) checkRun(cmd *cobra.Command, args []string) error {
	out := a.output(cmd)
	p := newPalette(a.colorEnabled(cmd))

	failed := 0
	var errs []error
	for _, src := range args {
		report, err := compiler.CheckFile(src, a.options())
		if err != nil {
			failed++
			errs = append(errs, err)
			fmt.Fprintf(out, "%s %s\n%v\n", p.fail.Sprint("FAIL"), src, err)
			continue
		}
		if !report.HasError() {
			fmt.Fprintf(out, "%s %s\n", p.ok.Sprint("ok"), src)
			continue
		}

		failed++
		a.logger.Info("source has errors",
			slog.String("path", src),
			slog.Int("syntax", report.Count(diag.Syntax)),
			slog.Int("declare", report.Count(diag.Declare)),
			slog.Int("resolve", report.Count(diag.Resolve)))

		text := report.Format(p.paint)
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		fmt.Fprintf(out, "%s %s\n%s", p.fail.Sprint("FAIL"), src, text)
	}

	if failed > 0 {
		errs = append(errs, fmt.Errorf("%d of %d file(s) had errors: %w", failed, len(args), ErrCheckFailed))
		return errors.Join(errs...)
	}
	return nil
}

// palette holds the colours used by check. Disabled colours print plain text.
type palette struct {
	ok, fail, syntax, naming, scopes *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		ok:     color.New(color.FgGreen),
		fail:   color.New(color.FgRed, color.Bold),
		syntax: color.New(color.FgRed),
		naming: color.New(color.FgYellow),
		scopes: color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.ok, p.fail, p.syntax, p.naming, p.scopes} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) paint(c diag.Class, piece string) string {
	if strings.HasPrefix(piece, c.String()+"(") {
		if c == diag.Syntax || c == diag.SyntaxAbort {
			return p.syntax.Sprint(piece)
		}
		return p.naming.Sprint(piece)
	}
	// scope dumps end in a newline; keep it outside the escape codes
	body := strings.TrimSuffix(piece, "\n")
	return p.scopes.Sprint(body) + piece[len(body):]
}
