package driver

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// CatalogSource names a git repository holding translation catalogs. Rev is
// any revision go-git resolves (a branch, tag or commit); empty means HEAD.
// Dir is the catalog directory inside the checkout.
type CatalogSource struct {
	URL string
	Rev string
	Dir string
}

// ParseCatalogSource reads "url[#rev][::dir]", where dir follows the
// "::" separator, as in "https://host/po.git#v2::catalogs".
func ParseCatalogSource(raw string) (CatalogSource, error) {
	raw = strings.TrimSpace(raw)
	var src CatalogSource
	if base, dir, ok := strings.Cut(raw, "::"); ok {
		raw, src.Dir = base, strings.Trim(dir, "/")
	}
	src.URL, src.Rev, _ = strings.Cut(raw, "#")
	if src.URL == "" {
		return CatalogSource{}, fmt.Errorf("driver: catalog source %q without url", raw)
	}
	return src, nil
}

// CheckoutCatalogs clones src into cacheDir, checks out its revision and
// returns the catalog directory. Checkouts are keyed by commit and reused.
func CheckoutCatalogs(cacheDir string, src CatalogSource) (string, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("driver: catalog cache: %w", err)
	}
	rev := plumbing.Revision("HEAD")
	if r := strings.TrimSpace(src.Rev); r != "" {
		rev = plumbing.Revision(r)
	}

	tmpDir, err := os.MkdirTemp(cacheDir, "clone-*")
	if err != nil {
		return "", fmt.Errorf("driver: catalog cache: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	repo, err := git.PlainClone(tmpDir, false, &git.CloneOptions{URL: src.URL})
	if err != nil {
		return "", fmt.Errorf("driver: git clone %s: %w", src.URL, err)
	}
	hash, err := repo.ResolveRevision(rev)
	if err != nil {
		return "", fmt.Errorf("driver: resolve revision %s: %w", rev, err)
	}
	target := filepath.Join(cacheDir, hash.String())
	if _, err := os.Stat(target); err == nil {
		return filepath.Join(target, src.Dir), nil
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("driver: %w", err)
	}
	if err := worktree.Checkout(&git.CheckoutOptions{Hash: *hash, Force: true}); err != nil {
		return "", fmt.Errorf("driver: git checkout %s: %w", rev, err)
	}
	if err := os.Rename(tmpDir, target); err != nil {
		return "", fmt.Errorf("driver: catalog cache: %w", err)
	}
	return filepath.Join(target, src.Dir), nil
}
