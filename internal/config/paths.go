package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths contains all the application paths
// This is the single source of truth for file locations in the application
type Paths struct {
	ExecutableDir string
	DataDir       string
	OutputDir     string
	LogsDir       string

	// FixtureFile is the offline sample payload used when --live is not set
	FixtureFile string
}

// GetPaths returns the application paths relative to the executable location.
// All paths are relative to the executable directory, never the current
// working directory, so the tool behaves the same wherever it is invoked from.
func GetPaths() (*Paths, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("failed to get executable path: %v", err)
	}

	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve executable symlinks: %v", err)
	}

	return PathsAt(filepath.Dir(exe)), nil
}

// PathsAt builds the path layout rooted at baseDir.
//
// baseDir/
//   ├── data/        (bundled fixture payloads)
//   ├── output/      (generated parquet/csv/xlsx artifacts)
//   └── logs/        (application logs)
func PathsAt(baseDir string) *Paths {
	dataDir := filepath.Join(baseDir, "data")

	return &Paths{
		ExecutableDir: baseDir,
		DataDir:       dataDir,
		OutputDir:     filepath.Join(baseDir, "output"),
		LogsDir:       filepath.Join(baseDir, "logs"),
		FixtureFile:   filepath.Join(dataDir, FixtureFileName),
	}
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	directories := []string{
		p.DataDir,
		p.OutputDir,
		p.LogsDir,
	}

	for _, dir := range directories {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %v", dir, err)
		}
	}

	return nil
}

// GetOutputPath returns the full path for an output artifact
func (p *Paths) GetOutputPath(filename string) string {
	return filepath.Join(p.OutputDir, filename)
}

// GetLogPath returns the full path for a log file
func (p *Paths) GetLogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}
