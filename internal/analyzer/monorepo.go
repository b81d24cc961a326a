package analyzer

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/crewkit-dev/crewkit/internal/manifest"
)

// detectMonorepo checks workspace declarations: a dedicated workspace
// config file first, then package.json workspaces. Member package names
// are read from each member's own manifest; members without a readable
// manifest fall back to their directory name.
func detectMonorepo(root string, pkg *manifest.PackageJSON) *Monorepo {
	if ws, err := manifest.LoadPnpmWorkspace(root); err == nil && ws != nil && len(ws.Packages) > 0 {
		return &Monorepo{
			IsMonorepo: true,
			Tool:       "pnpm",
			Packages:   memberNames(root, ws.Packages),
		}
	}

	globs := pkg.WorkspaceGlobs()
	if len(globs) == 0 {
		return nil
	}

	tool := "npm-workspaces"
	switch {
	case manifest.Exists(root, "turbo.json"):
		tool = "turborepo"
	case manifest.Exists(root, "lerna.json"):
		tool = "lerna"
	case manifest.Exists(root, "yarn.lock"):
		tool = "yarn-workspaces"
	}

	return &Monorepo{
		IsMonorepo: true,
		Tool:       tool,
		Packages:   memberNames(root, globs),
	}
}

func memberNames(root string, globs []string) []string {
	seen := make(map[string]bool)
	names := make([]string, 0)

	for _, glob := range globs {
		matches, err := filepath.Glob(filepath.Join(root, filepath.FromSlash(glob)))
		if err != nil {
			continue
		}
		for _, dir := range matches {
			name := packageName(dir)
			if name == "" || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	sort.Strings(names)
	return names
}

func packageName(dir string) string {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return ""
	}
	pkg, err := manifest.LoadPackageJSON(dir)
	if err != nil || pkg == nil || pkg.Name == "" {
		return filepath.Base(dir)
	}
	return pkg.Name
}
