package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"

	"github.com/FourteenBrush/grumm-bootstrap/pkg/gitmodules"
)

// Dependency identifies the package that counts as the build system.
type Dependency struct {
	URL string
	Dir string
}

// Grumm is the build system every build file depends on.
var Grumm = Dependency{
	URL: "https://github.com/FourteenBrush/grumm.git",
	Dir: "grumm",
}

// Path returns the directory the dependency is installed to.
func (d Dependency) Path(installPath string) string {
	return filepath.Join(installPath, d.Dir)
}

// InstallState describes how the dependency has to be acquired.
type InstallState int

const (
	// Present means the dependency directory already exists.
	Present InstallState = iota
	// AbsentWithSubmoduleLink means the directory is missing but .gitmodules references the dependency.
	AbsentWithSubmoduleLink
	// AbsentNoLink means the dependency has to be cloned.
	AbsentNoLink
)

func (s InstallState) String() string {
	switch s {
	case Present:
		return "present"
	case AbsentWithSubmoduleLink:
		return "absent, linked as submodule"
	case AbsentNoLink:
		return "absent"
	default:
		return fmt.Sprintf("InstallState(%d)", int(s))
	}
}

// Probe classifies the installation of dep below installPath. Relative paths are resolved against
// workDir which is also where .gitmodules is looked up.
//
// An existing directory is taken as is, its contents are not checked.
func Probe(ctx context.Context, workDir, installPath string, dep Dependency) (InstallState, error) {
	depPath := resolvePath(workDir, dep.Path(installPath))
	_, err := os.Stat(depPath)
	if err == nil {
		log(ctx).Debug().Str("path", depPath).Msgf("Found build system in %s", depPath)
		return Present, nil
	}

	if !eris.Is(err, os.ErrNotExist) {
		return 0, eris.Wrapf(err, "Failed to check %s", depPath)
	}

	metaPath := resolvePath(workDir, gitmodules.FileName)
	records, err := gitmodules.Read(metaPath)
	if err != nil {
		return 0, MetadataReadError{Path: metaPath, Err: err}
	}

	if gitmodules.Contains(records, dep.URL) {
		log(ctx).Debug().Msgf("%s is registered as submodule", dep.URL)
		return AbsentWithSubmoduleLink, nil
	}

	log(ctx).Debug().Msgf("Build system is missing and not registered in %s (%d submodules)", gitmodules.FileName, len(records))
	return AbsentNoLink, nil
}

func resolvePath(workDir, path string) string {
	if filepath.IsAbs(path) || workDir == "" {
		return path
	}

	return filepath.Join(workDir, path)
}
