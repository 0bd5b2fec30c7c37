// Package sink delivers rendered DDL to stdout or a file.
package sink

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"csv2ddl/internal/apperrors"
)

// Sink receives one rendered statement.
type Sink interface {
	Write(ctx context.Context, ddl string) error
}

// Stdout writes the statement followed by a newline to W.
type Stdout struct {
	W io.Writer
}

func (s Stdout) Write(ctx context.Context, ddl string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	w := s.W
	if w == nil {
		w = os.Stdout
	}
	_, err := io.WriteString(w, ddl+"\n")
	return err
}

// File writes the statement to Path, creating parent directories. Paths
// that resolve outside Root are refused unless AllowOutside is set.
type File struct {
	Path string
	// Root is the directory output must stay under. Empty means the
	// working directory.
	Root         string
	AllowOutside bool
}

func (f File) Write(ctx context.Context, ddl string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	target, err := f.resolve()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(target, []byte(ddl+"\n"), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", target, err)
	}
	return nil
}

// resolve returns the absolute target path after the root check.
func (f File) resolve() (string, error) {
	if strings.TrimSpace(f.Path) == "" {
		return "", fmt.Errorf("output path must not be empty")
	}
	target, err := filepath.Abs(f.Path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", f.Path, err)
	}
	if f.AllowOutside {
		return target, nil
	}

	root := f.Root
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("working directory: %w", err)
		}
	}
	if root, err = filepath.Abs(root); err != nil {
		return "", fmt.Errorf("resolve %s: %w", f.Root, err)
	}

	if !within(evalExisting(root), evalExisting(target)) {
		return "", fmt.Errorf("%w: %s is not under %s", apperrors.ErrOutputOutsideWorkdir, target, root)
	}
	return target, nil
}

// within reports whether p is root or below it.
func within(root, p string) bool {
	rel, err := filepath.Rel(root, p)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// evalExisting resolves symlinks in the longest existing prefix of p and
// re-attaches the rest.
func evalExisting(p string) string {
	rest := ""
	for cur := p; ; {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(resolved, rest)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return p
		}
		rest = filepath.Join(filepath.Base(cur), rest)
		cur = parent
	}
}
