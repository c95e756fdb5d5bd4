package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// EnsureDir ensures the provided directory exists.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// SafeWriteFile writes data to a temp file and atomically renames it into place.
func SafeWriteFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(name, 0o644); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(name, path); err != nil {
		_ = os.Remove(name)
		return fmt.Errorf("atomic rename: %w", err)
	}
	return nil
}

// SummaryName maps an input file to its output name: data.csv -> data.summary.md.
// A non-empty suffix is inserted before ".summary" to keep several series apart.
func SummaryName(input, suffix, ext string) string {
	base := filepath.Base(input)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if suffix != "" {
		base += "__" + Slug(suffix)
	}
	return base + ".summary" + ext
}

// Slug lowercases s and keeps [a-z0-9], folding spaces, '-' and '_' into '-'.
func Slug(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(s)) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune('-')
		}
	}
	out := strings.Trim(b.String(), "-")
	if out == "" {
		return "series"
	}
	return out
}

// UniquePath returns path if nothing exists there, otherwise the first free
// "name__N.ext" sibling starting at N=2.
func UniquePath(path string) (string, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return path, nil
	} else if err != nil {
		return "", err
	}
	dir, base := filepath.Split(path)
	stem, ext := splitSummaryExt(base)
	for i := 2; ; i++ {
		cand := filepath.Join(dir, fmt.Sprintf("%s__%d%s", stem, i, ext))
		if _, err := os.Stat(cand); errors.Is(err, fs.ErrNotExist) {
			return cand, nil
		} else if err != nil {
			return "", err
		}
	}
}

// splitSummaryExt keeps ".summary.md" together so numbering lands before it.
func splitSummaryExt(base string) (stem, ext string) {
	if i := strings.Index(base, ".summary."); i >= 0 {
		return base[:i], base[i:]
	}
	ext = filepath.Ext(base)
	return strings.TrimSuffix(base, ext), ext
}
