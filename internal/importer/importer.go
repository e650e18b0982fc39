package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/tally-dev/tally/internal/model"
)

// Parser converts a CSV file into expense creation requests.
type Parser interface {
	Parse(r io.Reader) ([]model.NewExpense, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Formats lists the registered format names in sorted order.
func (r *Registry) Formats() []string {
	out := make([]string, 0, len(r.parsers))
	for k := range r.parsers {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&TallyParser{})
	r.Register(&ChaseParser{})
	return r
}

// ParseFile opens path and runs p over it.
func ParseFile(p Parser, path string) ([]model.NewExpense, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	out, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s as %s: %w", filepath.Base(path), p.Format(), err)
	}
	return out, nil
}

// Import directories, relative to the project directory.
var (
	importDir    = "import"
	processedDir = filepath.Join("import", "processed")
)

// Scan lists the CSV files waiting in <projectDir>/import/, sorted by name.
// A missing import directory yields no files.
func Scan(projectDir string) ([]FileInfo, error) {
	dir := filepath.Join(projectDir, importDir)
	entries, err := os.ReadDir(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	files := make([]FileInfo, 0, len(entries))
	for _, e := range entries {
		if !e.Type().IsRegular() || !strings.EqualFold(filepath.Ext(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves fileName from import/ to import/processed/. When a file
// of that name was processed before, the new one gets a numeric suffix
// instead of replacing it.
func MarkProcessed(projectDir, fileName string) error {
	dstDir := filepath.Join(projectDir, processedDir)
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst, err := freeName(dstDir, fileName)
	if err != nil {
		return err
	}
	if err := os.Rename(filepath.Join(projectDir, importDir, fileName), dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

func freeName(dir, fileName string) (string, error) {
	ext := filepath.Ext(fileName)
	base := strings.TrimSuffix(fileName, ext)
	candidate := filepath.Join(dir, fileName)
	for n := 1; ; n++ {
		_, err := os.Stat(candidate)
		if errors.Is(err, fs.ErrNotExist) {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking %s: %w", candidate, err)
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, n, ext))
	}
}
