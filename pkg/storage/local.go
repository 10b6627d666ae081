package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"
)

// localDisk is the local-filesystem driver.
type localDisk struct {
	root string // absolute root directory
}

// NewLocal returns a disk rooted at root. Relative roots resolve against the
// working directory.
func NewLocal(root string) Disk {
	if !filepath.IsAbs(root) {
		cwd, _ := os.Getwd()
		root = filepath.Join(cwd, root)
	}
	return &localDisk{root: root}
}

func (d *localDisk) abs(p string) string {
	return filepath.Join(d.root, filepath.FromSlash(p))
}

// ── Write ─────────────────────────────────────────────────────────────────────

func (d *localDisk) Put(ctx context.Context, p string, content []byte) error {
	return d.PutStream(ctx, p, bytes.NewReader(content))
}

// PutStream writes to a temp file next to the target and renames it, so a
// reader never sees a half-written backup.
func (d *localDisk) PutStream(ctx context.Context, p string, r io.Reader) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full := d.abs(p)
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("storage/local: mkdir: %w", err)
	}
	f, err := os.CreateTemp(filepath.Dir(full), filepath.Base(full)+".*.part")
	if err != nil {
		return fmt.Errorf("storage/local: create %s: %w", p, err)
	}
	defer os.Remove(f.Name())

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		return fmt.Errorf("storage/local: write %s: %w", p, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("storage/local: close %s: %w", p, err)
	}
	if err := os.Rename(f.Name(), full); err != nil {
		return fmt.Errorf("storage/local: rename %s: %w", p, err)
	}
	return nil
}

// ── Metadata ──────────────────────────────────────────────────────────────────

func (d *localDisk) Size(_ context.Context, p string) (int64, error) {
	info, err := os.Stat(d.abs(p))
	if err != nil {
		return 0, fmt.Errorf("storage/local: size %s: %w", p, err)
	}
	return info.Size(), nil
}

func (d *localDisk) LastModified(_ context.Context, p string) (time.Time, error) {
	info, err := os.Stat(d.abs(p))
	if err != nil {
		return time.Time{}, fmt.Errorf("storage/local: stat %s: %w", p, err)
	}
	return info.ModTime(), nil
}

// ── Delete ────────────────────────────────────────────────────────────────────

func (d *localDisk) Delete(_ context.Context, p string) error {
	err := os.Remove(d.abs(p))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("storage/local: delete %s: %w", p, err)
	}
	return nil
}

// ── Listing ───────────────────────────────────────────────────────────────────

func (d *localDisk) Files(_ context.Context, directory string) ([]string, error) {
	entries, err := os.ReadDir(d.abs(directory))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage/local: files %s: %w", directory, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && filepath.Ext(e.Name()) != ".part" {
			out = append(out, path.Join(directory, e.Name()))
		}
	}
	sort.Strings(out)
	return out, nil
}
