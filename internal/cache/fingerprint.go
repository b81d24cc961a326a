package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/crewkit-dev/crewkit/internal/fileutil"
)

// fingerprintManifests are content-hashed: editing any of them changes the
// fingerprint. The list order is fixed, so combining per-file hashes in
// list order is deterministic.
var fingerprintManifests = []string{
	"package.json",
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"bun.lockb",
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
	"requirements.txt",
	"Gemfile",
}

// fingerprintRoots are listed by path only: adding or removing a file under
// them changes the fingerprint, editing file content does not.
var fingerprintRoots = []string{"src", "app"}

var listingExclusions = map[string]bool{
	"node_modules": true,
	"vendor":       true,
	"dist":         true,
	"build":        true,
	"target":       true,
	"coverage":     true,
	"__pycache__":  true,
}

// ComputeFingerprint hashes the project's declared dependencies and
// directory shape: manifest/lockfile contents plus a sorted path listing
// of the conventional source roots. Hashing structure rather than content
// keeps the fingerprint stable across trivial edits while still
// invalidating when dependencies or file topology change.
//
// Manifest reads are issued concurrently; an absent file resolves to an
// empty hash input, never an error.
func ComputeFingerprint(ctx context.Context, projectRoot string) (string, error) {
	if strings.TrimSpace(projectRoot) == "" {
		return "", fmt.Errorf("project root must not be empty")
	}
	if !filepath.IsAbs(projectRoot) {
		return "", fmt.Errorf("project root %q must be an absolute path", projectRoot)
	}

	manifestHashes := make([]string, len(fingerprintManifests))
	g, _ := errgroup.WithContext(ctx)
	for i, name := range fingerprintManifests {
		i, name := i, name
		g.Go(func() error {
			hash, err := fileutil.HashFile(filepath.Join(projectRoot, name))
			if err != nil {
				// Absent or unreadable manifests contribute nothing.
				return nil
			}
			manifestHashes[i] = hash
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}

	final := sha256.New()
	for i, name := range fingerprintManifests {
		if manifestHashes[i] == "" {
			continue
		}
		fmt.Fprintf(final, "%s:%s\n", name, manifestHashes[i])
	}

	for _, root := range fingerprintRoots {
		paths, err := fileutil.ListFilePaths(filepath.Join(projectRoot, root), excludeFromListing)
		if err != nil {
			return "", fmt.Errorf("failed to list %s: %w", root, err)
		}
		if len(paths) == 0 {
			continue
		}
		listingHash := fileutil.HashBytes([]byte(strings.Join(paths, "\n")))
		fmt.Fprintf(final, "%s/:%s\n", root, listingHash)
	}

	return hex.EncodeToString(final.Sum(nil))[:32], nil
}

// excludeFromListing drops hidden entries plus build-output and
// dependency-vendor directories from the structural listing.
func excludeFromListing(relPath string, isDir bool) bool {
	base := relPath
	if idx := strings.LastIndex(relPath, "/"); idx >= 0 {
		base = relPath[idx+1:]
	}
	if strings.HasPrefix(base, ".") {
		return true
	}
	return isDir && listingExclusions[base]
}
