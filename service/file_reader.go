package service

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ludo-technologies/simscan/domain"
)

// FileReaderImpl implements the FileReader interface
type FileReaderImpl struct{}

// NewFileReader creates a new file reader service
func NewFileReader() *FileReaderImpl {
	return &FileReaderImpl{}
}

// CollectFiles finds the regular files under paths that pass the include and
// exclude patterns. The result is sorted and free of duplicates, so object
// ids assigned by position are stable between runs.
func (f *FileReaderImpl) CollectFiles(paths []string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, domain.NewFileNotFoundError(path, err)
		}

		if info.IsDir() {
			dirFiles, err := f.collectFromDirectory(path, recursive, includePatterns, excludePatterns)
			if err != nil {
				return nil, err
			}
			for _, file := range dirFiles {
				add(file)
			}
		} else if f.shouldIncludeFile(filepath.Base(path), path, includePatterns, excludePatterns) {
			add(path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// ReadFile reads the content of a file
func (f *FileReaderImpl) ReadFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewFileNotFoundError(path, err)
	}
	return content, nil
}

// FileExists checks if a file exists
func (f *FileReaderImpl) FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return !info.IsDir(), nil
}

func (f *FileReaderImpl) collectFromDirectory(dirPath string, recursive bool, includePatterns, excludePatterns []string) ([]string, error) {
	var files []string

	walkFunc := func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable entries are skipped
			return nil
		}
		if path == dirPath {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if !recursive || f.shouldSkipDirectory(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		rel, relErr := filepath.Rel(dirPath, path)
		if relErr != nil {
			rel = path
		}
		if f.shouldIncludeFile(rel, path, includePatterns, excludePatterns) {
			files = append(files, path)
		}
		return nil
	}

	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dirPath, err)
	}

	return files, nil
}

// shouldIncludeFile matches patterns against the path relative to the walk
// root, the full path and the base name.
func (f *FileReaderImpl) shouldIncludeFile(rel, path string, includePatterns, excludePatterns []string) bool {
	candidates := []string{
		filepath.ToSlash(rel),
		filepath.ToSlash(path),
		filepath.Base(path),
	}

	matches := func(pattern string) bool {
		for _, c := range candidates {
			if matched, _ := doublestar.Match(pattern, c); matched {
				return true
			}
		}
		return false
	}

	for _, pattern := range excludePatterns {
		if matches(pattern) {
			return false
		}
	}

	if len(includePatterns) == 0 {
		return true
	}
	for _, pattern := range includePatterns {
		if matches(pattern) {
			return true
		}
	}
	return false
}

func (f *FileReaderImpl) shouldSkipDirectory(dirName string) bool {
	switch dirName {
	case "node_modules", "vendor", "__pycache__":
		return true
	}
	return false
}
