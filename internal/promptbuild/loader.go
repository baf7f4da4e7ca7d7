package promptbuild

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/vandre-sales/mlv-combo-nodes/internal/config"
	"github.com/vandre-sales/mlv-combo-nodes/internal/logger"
)

var (
	errDirectoryMissing = errors.New("attribute directory not found")
	errMissingFields    = errors.New("missing attribute_name or list_value")
)

var numericPrefix = regexp.MustCompile(`^(\d+)_`)

// Loader reads a directory of TOML attribute files into an AttributeSet.
type Loader struct {
	ext string

	// filesystem access, replaceable in tests
	stat     func(string) (os.FileInfo, error)
	readDir  func(string) ([]os.DirEntry, error)
	readFile func(string) ([]byte, error)
}

// NewLoader creates a Loader matching files by cfg.FileExtension.
func NewLoader(cfg config.PromptBuildConfig) *Loader {
	return &Loader{
		ext:      cfg.WithDefaults().FileExtension,
		stat:     os.Stat,
		readDir:  os.ReadDir,
		readFile: os.ReadFile,
	}
}

// Load returns the attributes defined in dir. It never fails: a missing or
// unlistable directory yields an empty set and bad files are skipped.
func (l *Loader) Load(dir string) AttributeSet {
	set, err := l.load(dir)
	if err != nil {
		return AttributeSet{}
	}
	return set
}

// load reports directory-level failures so the cache can avoid storing them.
func (l *Loader) load(dir string) (AttributeSet, error) {
	info, err := l.stat(dir)
	if err != nil || !info.IsDir() {
		logger.Warn("Attribute directory not found: %s", dir)
		return AttributeSet{}, errDirectoryMissing
	}

	entries, err := l.readDir(dir)
	if err != nil {
		logger.Error("Failed to list attribute files in %s: %v", dir, err)
		return AttributeSet{}, fmt.Errorf("list %s: %w", dir, err)
	}

	files := l.sortedFiles(entries)
	subdir := filepath.Base(dir)
	seen := make(map[string]struct{}, len(files))
	attrs := make([]AttributeConfig, 0, len(files))

	for _, name := range files {
		attr, err := l.loadFile(filepath.Join(dir, name))
		if err != nil {
			if errors.Is(err, errMissingFields) {
				logger.Warn("Attribute file %s in %s skipped: %v", name, subdir, err)
			} else {
				logger.Error("Failed to process attribute file %s in %s, skipping: %v", name, subdir, err)
			}
			continue
		}
		if _, dup := seen[attr.Name]; dup {
			logger.Warn("Attribute file %s in %s skipped: duplicate attribute_name %q", name, subdir, attr.Name)
			continue
		}
		seen[attr.Name] = struct{}{}
		attrs = append(attrs, attr)
	}

	logger.Debug("Loaded %d of %d attribute files from %s", len(attrs), len(files), dir)
	return AttributeSet{attrs: attrs}, nil
}

// sortedFiles keeps files with the loader's extension, ordered by numeric prefix.
func (l *Loader) sortedFiles(entries []os.DirEntry) []string {
	type candidate struct {
		name string
		key  orderKey
	}
	var files []candidate
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), l.ext) {
			continue
		}
		files = append(files, candidate{name: entry.Name(), key: orderKeyFor(entry.Name())})
	}

	sort.SliceStable(files, func(i, j int) bool {
		return files[i].key.less(files[j].key)
	})

	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, f.name)
	}
	return names
}

// orderKey is the numeric filename prefix. Files without one sort last.
type orderKey struct {
	digits   string
	numbered bool
}

func orderKeyFor(filename string) orderKey {
	m := numericPrefix.FindStringSubmatch(filename)
	if m == nil {
		return orderKey{}
	}
	return orderKey{digits: strings.TrimLeft(m[1], "0"), numbered: true}
}

// less compares prefixes numerically without parsing, so long digit runs cannot overflow.
func (k orderKey) less(o orderKey) bool {
	if k.numbered != o.numbered {
		return k.numbered
	}
	if !k.numbered {
		return false
	}
	if len(k.digits) != len(o.digits) {
		return len(k.digits) < len(o.digits)
	}
	return k.digits < o.digits
}

func (l *Loader) loadFile(path string) (AttributeConfig, error) {
	data, err := l.readFile(path)
	if err != nil {
		return AttributeConfig{}, fmt.Errorf("read: %w", err)
	}
	return parseAttributeFile(data)
}

func parseAttributeFile(data []byte) (AttributeConfig, error) {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return AttributeConfig{}, fmt.Errorf("parse toml: %w", err)
	}

	nameRaw, hasName := raw["attribute_name"]
	valuesRaw, hasValues := raw["list_value"]
	if !hasName || !hasValues {
		return AttributeConfig{}, errMissingFields
	}

	name, ok := nameRaw.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return AttributeConfig{}, fmt.Errorf("attribute_name must be a non-empty string")
	}
	items, ok := valuesRaw.([]any)
	if !ok {
		return AttributeConfig{}, fmt.Errorf("list_value must be an array, got %T", valuesRaw)
	}

	values := make([]string, 0, len(items))
	for _, item := range items {
		values = append(values, stringify(item))
	}

	return AttributeConfig{
		Name:      name,
		Values:    values,
		Prefix:    optionalString(raw, "before_value", ""),
		Suffix:    optionalString(raw, "after_value", ""),
		Separator: optionalString(raw, "separator", " "),
	}, nil
}

func optionalString(raw map[string]any, key, def string) string {
	v, ok := raw[key]
	if !ok {
		return def
	}
	return stringify(v)
}

// stringify renders a decoded TOML value as prompt text. Booleans are
// capitalized and datetimes use a space between date and clock.
func stringify(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return formatFloat(t)
	case bool:
		if t {
			return "True"
		}
		return "False"
	case time.Time:
		return formatDateTime(t)
	case toml.LocalDate:
		return t.String()
	case toml.LocalTime:
		return formatClock(t.Hour, t.Minute, t.Second, t.Nanosecond)
	case toml.LocalDateTime:
		return t.LocalDate.String() + " " + formatClock(t.Hour, t.Minute, t.Second, t.Nanosecond)
	default:
		return fmt.Sprint(t)
	}
}

// formatFloat uses the shortest round-trip digits, positional between 1e-4 and 1e16.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	if abs := math.Abs(f); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// formatClock prints HH:MM:SS with a six-digit fraction only when microseconds are set.
func formatClock(hour, minute, second, nanosecond int) string {
	s := fmt.Sprintf("%02d:%02d:%02d", hour, minute, second)
	if us := nanosecond / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

func formatDateTime(t time.Time) string {
	return t.Format("2006-01-02") + " " +
		formatClock(t.Hour(), t.Minute(), t.Second(), t.Nanosecond()) +
		t.Format("-07:00")
}
