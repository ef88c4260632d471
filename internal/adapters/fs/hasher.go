package fs

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/zerr"
)

// Hasher computes content digests over filtered source trees.
type Hasher struct {
	walker *Walker
}

// NewHasher creates a new Hasher.
func NewHasher(walker *Walker) *Hasher {
	return &Hasher{walker: walker}
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}

	return hasher.Sum64(), nil
}

// SnapshotDigest computes a single deterministic digest over every included
// file of the tree: relative paths in sorted order, each followed by its
// content hash. Two trees with identical included files yield the same
// digest. Returns the digest and the number of files it covers.
func (h *Hasher) SnapshotDigest(root string, filter *Filter) (string, int, error) {
	files, err := h.walker.Collect(root, filter)
	if err != nil {
		return "", 0, err
	}

	digest := xxhash.New()
	for _, rel := range files {
		_, _ = digest.WriteString(rel)
		_, _ = digest.Write([]byte{0}) // Separator

		hash, err := h.ComputeFileHash(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return "", 0, err
		}
		if err := binary.Write(digest, binary.LittleEndian, hash); err != nil {
			return "", 0, zerr.Wrap(err, "failed to write hash to digest")
		}
	}

	return fmt.Sprintf("%016x", digest.Sum64()), len(files), nil
}
