package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/arnavsurve/crux/internal/config"
)

const starterProgram = `// %s: starter Crux program
var count: int;

func square(x: int): int {
  return x * x;
}

func main(): void {
  let count = ::square(7);
  ::printInt(count);
  ::println();
}
`

// init: scaffold a starter program
func newInitCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "init <name>",
		Short: "Scaffold a starter Crux program and crux.toml",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.initRun(cmd, args[0])
		},
	}
}

func (a *app) initRun(cmd *cobra.Command, name string) error {
	ext := a.cfg.Extension
	if ext == "" {
		ext = config.Default().Extension
	}
	src := name
	if !strings.HasSuffix(src, ext) {
		src += ext
	}
	out := cmd.OutOrStdout()

	fmt.Fprintf(out, "↪ scaffolding %q ...\n", src)
	base := strings.TrimSuffix(filepath.Base(src), ext)
	if err := writeNew(src, []byte(fmt.Sprintf(starterProgram, base))); err != nil {
		return err
	}
	fmt.Fprintf(out, "✔︎ wrote %s\n", src)

	cfgPath := filepath.Join(filepath.Dir(src), config.FileNames[0])
	data, err := a.cfg.Encode()
	if err != nil {
		return err
	}
	switch err := writeNew(cfgPath, data); {
	case errors.Is(err, fs.ErrExist):
		fmt.Fprintf(out, "• kept existing %s\n", cfgPath)
	case err != nil:
		return err
	default:
		fmt.Fprintf(out, "✔︎ wrote %s\n", cfgPath)
	}
	return nil
}

// writeNew creates path and fails with fs.ErrExist if it is already there.
func writeNew(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}
