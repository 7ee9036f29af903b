package source

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Loader reads additional source definitions from YAML files, one source
// per file, named after the file.
type Loader struct {
	sourcesDir string
	search     Search
	logger     *zap.Logger
}

func NewLoader(sourcesDir string, search Search, logger *zap.Logger) *Loader {
	return &Loader{
		sourcesDir: sourcesDir,
		search:     search,
		logger:     logger,
	}
}

// Merge layers the YAML definitions on top of base. A file named after an
// existing source replaces it in place; other files are appended in
// filename order.
func (l *Loader) Merge(base []Definition) ([]Definition, error) {
	merged := make([]Definition, len(base))
	copy(merged, base)

	if l.sourcesDir == "" {
		return merged, nil
	}

	if _, err := os.Stat(l.sourcesDir); errors.Is(err, fs.ErrNotExist) {
		l.logger.Debug("Sources directory not found, using built-in sources", zap.String("dir", l.sourcesDir))
		return merged, nil
	}

	files, err := l.files()
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		def, err := l.LoadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error loading %s: %w", file, err)
		}

		replaced := false
		for i := range merged {
			if merged[i].Name == def.Name {
				merged[i] = *def
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, *def)
		}

		l.logger.Debug("Source definition loaded",
			zap.String("source", def.Name),
			zap.Bool("enabled", def.IsEnabled()),
			zap.Bool("replaced_builtin", replaced))
	}

	return merged, nil
}

func (l *Loader) files() ([]string, error) {
	yml, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YML files: %w", err)
	}
	yamlFiles, err := filepath.Glob(filepath.Join(l.sourcesDir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("failed to find YAML files: %w", err)
	}

	files := append(yml, yamlFiles...)
	sort.Strings(files)
	return files, nil
}

// LoadFile parses a single definition file.
func (l *Loader) LoadFile(path string) (*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	base := filepath.Base(path)
	def.Name = strings.TrimSuffix(base, filepath.Ext(base))
	def.Endpoint = l.expand(def.Endpoint)

	if def.Format == "" {
		def.Format = FormatMarkup
	}

	return &def, nil
}

func (l *Loader) expand(endpoint string) string {
	return os.Expand(endpoint, func(key string) string {
		switch key {
		case "PRICE_MIN":
			return strconv.Itoa(l.search.PriceMin)
		case "PRICE_MAX":
			return strconv.Itoa(l.search.PriceMax)
		case "QUERY":
			return url.QueryEscape(l.search.Query)
		case "RADIUS":
			return url.QueryEscape(l.search.Radius)
		default:
			return "${" + key + "}"
		}
	})
}
