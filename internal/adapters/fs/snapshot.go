package fs

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Snapshotter produces a filtered source snapshot: the subset of the project
// tree that survives the exclusion filter, copied into a destination
// directory with structure and file modes preserved.
type Snapshotter struct {
	walker *Walker
}

// NewSnapshotter creates a new Snapshotter.
func NewSnapshotter(walker *Walker) *Snapshotter {
	return &Snapshotter{walker: walker}
}

// Snapshot copies every included file from root into dest and returns the
// number of files copied. Files are copied concurrently; any single failure
// aborts the snapshot.
func (s *Snapshotter) Snapshot(ctx context.Context, root, dest string, filter *Filter) (int, error) {
	files, err := s.walker.Collect(root, filter)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(dest, 0o750); err != nil {
		return 0, zerr.Wrap(err, "failed to create snapshot destination")
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for _, rel := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return copyFile(filepath.Join(root, filepath.FromSlash(rel)), filepath.Join(dest, filepath.FromSlash(rel)))
		})
	}

	if err := g.Wait(); err != nil {
		return 0, err
	}
	return len(files), nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to stat source file"), "path", src)
	}

	if err := os.MkdirAll(filepath.Dir(dst), 0o750); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create snapshot directory"), "path", filepath.Dir(dst))
	}

	in, err := os.Open(src) //nolint:gosec // path comes from the walked source tree
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to open source file"), "path", src)
	}
	defer in.Close() //nolint:errcheck // Best effort close in defer

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // path derived from dest
	if err != nil {
		return zerr.With(zerr.Wrap(err, "failed to create snapshot file"), "path", dst)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(zerr.Wrap(err, "failed to copy file"), "path", dst)
	}

	if err := out.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, "failed to close snapshot file"), "path", dst)
	}
	return nil
}
