package migration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MigrationFile describes an up/down SQL pair on disk.
type MigrationFile struct {
	Version     string
	Name        string
	Description string
	Timestamp   string
	UpPath      string
	DownPath    string
}

// CreateMigration writes an empty up/down SQL pair into dir, versioned by
// the current timestamp so files sort in creation order.
func CreateMigration(dir, name, description string) (*MigrationFile, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create migrations directory: %w", err)
	}

	now := time.Now()
	mf := &MigrationFile{
		Version:     now.Format("20060102150405"),
		Name:        name,
		Description: description,
		Timestamp:   now.Format(time.RFC3339),
	}

	base := mf.Version + "_" + sanitizeName(name)
	mf.UpPath = filepath.Join(dir, base+".up.sql")
	mf.DownPath = filepath.Join(dir, base+".down.sql")

	up := fmt.Sprintf("-- %s\n-- %s\n-- Generated %s\n\n-- Forward migration\n\n",
		mf.Name, mf.Description, mf.Timestamp)
	if err := writeStub(mf.UpPath, up); err != nil {
		return nil, fmt.Errorf("write up migration: %w", err)
	}

	down := fmt.Sprintf("-- %s (revert)\n-- Reverts: %s\n-- Generated %s\n\n-- Reverse migration\n\n",
		mf.Name, mf.Description, mf.Timestamp)
	if err := writeStub(mf.DownPath, down); err != nil {
		_ = os.Remove(mf.UpPath)
		return nil, fmt.Errorf("write down migration: %w", err)
	}

	return mf, nil
}

// writeStub refuses to overwrite an existing file so two migrations created
// within the same second cannot clobber each other.
func writeStub(path, content string) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(content)
	return err
}

// sanitizeName lowercases a migration name and collapses runs of spaces,
// hyphens and underscores into single underscores. Anything outside
// [a-z0-9] is dropped.
func sanitizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_':
			if b.Len() > 0 && !strings.HasSuffix(b.String(), "_") {
				b.WriteByte('_')
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}

// ListMigrations returns the base names of every up/down pair in dir,
// sorted by version. A missing directory is treated as empty.
func ListMigrations(dir string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("scan migrations directory: %w", err)
	}

	names := make([]string, 0, len(matches))
	for _, match := range matches {
		info, err := os.Stat(match)
		if err != nil || info.IsDir() {
			continue
		}
		names = append(names, strings.TrimSuffix(filepath.Base(match), ".up.sql"))
	}
	return names, nil
}
