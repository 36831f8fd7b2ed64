package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/XavierPelle/sprintly/internal/shared/logger"
)

var (
	versionedFilePattern = regexp.MustCompile(`^(\d+)_.+\.(up|down)\.sql$`)
	migrationNamePattern = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)
)

// Generator creates golang-migrate style up/down file pairs.
type Generator struct {
	scriptsPath string
	logger      logger.Interface
}

// NewGenerator creates a new migration generator
func NewGenerator(scriptsPath string, log logger.Interface) *Generator {
	return &Generator{
		scriptsPath: scriptsPath,
		logger:      log.With("component", "migration.generator"),
	}
}

// CreateMigration writes the next numbered up/down pair and returns both paths.
func (g *Generator) CreateMigration(name string) (string, string, error) {
	if !migrationNamePattern.MatchString(name) {
		return "", "", fmt.Errorf("migration name must be snake_case: %q", name)
	}

	if err := os.MkdirAll(g.scriptsPath, 0o755); err != nil {
		return "", "", fmt.Errorf("failed to create scripts directory: %w", err)
	}

	next, err := g.nextVersion()
	if err != nil {
		return "", "", err
	}

	prefix := fmt.Sprintf("%06d_%s", next, name)
	upPath := filepath.Join(g.scriptsPath, prefix+".up.sql")
	downPath := filepath.Join(g.scriptsPath, prefix+".down.sql")
	created := time.Now().Format("2006-01-02 15:04:05")

	upContent := fmt.Sprintf("-- Migration: %s\n-- Created: %s\n\n", name, created)
	if err := os.WriteFile(upPath, []byte(upContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create up migration file: %w", err)
	}

	downContent := fmt.Sprintf("-- Rollback Migration: %s\n-- Created: %s\n\n", name, created)
	if err := os.WriteFile(downPath, []byte(downContent), 0o644); err != nil {
		return "", "", fmt.Errorf("failed to create down migration file: %w", err)
	}

	g.logger.Infow("migration files created successfully",
		"up_file", upPath,
		"down_file", downPath)

	return upPath, downPath, nil
}

func (g *Generator) nextVersion() (int, error) {
	entries, err := os.ReadDir(g.scriptsPath)
	if err != nil {
		return 0, fmt.Errorf("failed to read scripts directory: %w", err)
	}

	highest := 0
	for _, e := range entries {
		m := versionedFilePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		if v, err := strconv.Atoi(m[1]); err == nil && v > highest {
			highest = v
		}
	}
	return highest + 1, nil
}
