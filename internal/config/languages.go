package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// languagesByExtension maps file extensions to language tags. The tag
// is assigned once when a buffer is created and never re-detected.
var languagesByExtension = map[string]string{
	".go":    "go",
	".rs":    "rust",
	".py":    "python",
	".js":    "javascript",
	".jsx":   "javascript",
	".ts":    "typescript",
	".tsx":   "typescript",
	".c":     "c",
	".h":     "c",
	".cc":    "cpp",
	".cpp":   "cpp",
	".hpp":   "cpp",
	".java":  "java",
	".rb":    "ruby",
	".sh":    "shell",
	".bash":  "shell",
	".zsh":   "shell",
	".html":  "html",
	".css":   "css",
	".json":  "json",
	".yaml":  "yaml",
	".yml":   "yaml",
	".toml":  "toml",
	".md":    "markdown",
	".sql":   "sql",
	".lua":   "lua",
	".zig":   "zig",
	".proto": "protobuf",
}

// languagesByFilename covers files identified by name, not extension.
var languagesByFilename = map[string]string{
	"Makefile":   "make",
	"makefile":   "make",
	"Dockerfile": "dockerfile",
	"go.mod":     "gomod",
	"go.sum":     "gosum",
}

// LanguageOverrides are user-defined language mappings from
// languages.toml, consulted before the built-in tables.
type LanguageOverrides struct {
	Extensions map[string]string `toml:"extensions"`
	Filenames  map[string]string `toml:"filenames"`
}

var overrides LanguageOverrides

// LoadLanguageOverrides reads languages.toml from the config directory.
// A missing file leaves the built-in tables as-is.
func LoadLanguageOverrides() error {
	path := filepath.Join(ConfigDir(), "languages.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read languages %s: %w", path, err)
	}
	var o LanguageOverrides
	if err := toml.Unmarshal(data, &o); err != nil {
		return fmt.Errorf("parse languages %s: %w", path, err)
	}
	overrides = o
	return nil
}

// LanguageForPath returns the language tag for a file path. The second
// result is false when the path matches nothing; such buffers carry an
// empty tag.
func LanguageForPath(path string) (string, bool) {
	base := filepath.Base(path)
	if lang, ok := overrides.Filenames[base]; ok {
		return lang, true
	}
	if lang, ok := languagesByFilename[base]; ok {
		return lang, true
	}
	ext := strings.ToLower(filepath.Ext(base))
	if lang, ok := overrides.Extensions[ext]; ok {
		return lang, true
	}
	if lang, ok := languagesByExtension[ext]; ok {
		return lang, true
	}
	return "", false
}
