//go:build integration
// +build integration

package integration

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const solverPkgPath = "github.com/fifthchair/tricklens/internal/solver"

// TestSolverIsOnlyImportedByAnalysis keeps the solver an internal
// capability of the analysis package. Everything else works with cost
// records and results, never with solver positions directly.
func TestSolverIsOnlyImportedByAnalysis(t *testing.T) {
	config := &packages.Config{
		Mode:  packages.NeedName | packages.NeedImports,
		Tests: false,
		Dir:   integrationRepoRoot(t),
	}
	pkgs, err := packages.Load(config, "./...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		t.Fatal("package load errors")
	}
	if len(pkgs) == 0 {
		t.Fatal("no packages loaded")
	}

	var violations []string
	for _, pkg := range pkgs {
		if _, ok := pkg.Imports[solverPkgPath]; !ok {
			continue
		}
		if isSolverImportAllowed(pkg.PkgPath) {
			continue
		}
		violations = append(violations, pkg.PkgPath)
	}
	sort.Strings(violations)

	if len(violations) > 0 {
		t.Fatalf("packages must reach the solver through internal/analysis:\n- %s",
			strings.Join(violations, "\n- "))
	}
}

func TestSolverImportAllowlist(t *testing.T) {
	if !isSolverImportAllowed("github.com/fifthchair/tricklens/internal/analysis") {
		t.Fatal("expected the analysis package to be allowed")
	}
	for _, pkgPath := range []string{
		"github.com/fifthchair/tricklens/internal/batch",
		"github.com/fifthchair/tricklens/internal/mcp/domain",
		"github.com/fifthchair/tricklens/internal/report",
	} {
		if isSolverImportAllowed(pkgPath) {
			t.Fatalf("expected %s to be scanned", pkgPath)
		}
	}
}

func isSolverImportAllowed(pkgPath string) bool {
	path := filepath.ToSlash(strings.TrimSpace(pkgPath))
	return path == "github.com/fifthchair/tricklens/internal/analysis" ||
		path == solverPkgPath ||
		strings.HasPrefix(path, solverPkgPath+"/")
}

func integrationRepoRoot(t *testing.T) string {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("get working dir: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(wd, "go.mod")); err == nil {
			return wd
		}
		parent := filepath.Dir(wd)
		if parent == wd {
			t.Fatal("go.mod not found")
		}
		wd = parent
	}
}
