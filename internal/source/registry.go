package source

import (
	"fmt"
	"os"
	"sort"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// Reader opens documents of one format.
type Reader interface {
	// Format returns the format handled by this reader.
	Format() Format

	// Open prepares a document for extraction.
	Open(path string, opts Options) (Extractor, error)
}

// Registry manages source readers by format.
type Registry struct {
	mu      sync.RWMutex
	readers map[Format]Reader
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		readers: make(map[Format]Reader),
	}
}

// Register adds a reader to the registry.
func (r *Registry) Register(rd Reader) error {
	if rd == nil {
		return fmt.Errorf("cannot register nil reader")
	}
	f := rd.Format()
	if f == FormatUnknown {
		return fmt.Errorf("reader format cannot be unknown")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.readers[f]; exists {
		return fmt.Errorf("reader already registered: %s", f)
	}

	r.readers[f] = rd
	return nil
}

// Get returns the reader for a format.
func (r *Registry) Get(f Format) (Reader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rd, ok := r.readers[f]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return rd, nil
}

// List returns all registered formats in declaration order.
func (r *Registry) List() []Format {
	r.mu.RLock()
	defer r.mu.RUnlock()

	formats := make([]Format, 0, len(r.readers))
	for f := range r.readers {
		formats = append(formats, f)
	}
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	return formats
}

// Has checks if a format has a reader.
func (r *Registry) Has(f Format) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.readers[f]
	return ok
}

// Count returns the number of registered readers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.readers)
}

// Unregister removes the reader for a format.
func (r *Registry) Unregister(f Format) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.readers[f]; !ok {
		return fmt.Errorf("reader not found: %s", f)
	}
	delete(r.readers, f)
	return nil
}

// Detect returns the format of the file at path, using the extension first
// and falling back to the file signature.
func (r *Registry) Detect(path string) (Format, error) {
	if f := DetectFormat(path); f != FormatUnknown {
		return f, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return DetectFormatFromReader(file)
}

// Extract reads the document at path and returns its paragraphs.
func (r *Registry) Extract(path string, opts Options) ([]Paragraph, error) {
	f, err := r.Detect(path)
	if err != nil {
		return nil, err
	}
	rd, err := r.Get(f)
	if err != nil {
		return nil, err
	}

	ex, err := rd.Open(path, opts)
	if err != nil {
		return nil, err
	}
	defer ex.Close()

	return ex.Extract()
}

// ExtractText reads the document at path and returns its flat text in
// Unicode normalization form C.
func (r *Registry) ExtractText(path string, opts Options) (string, error) {
	paras, err := r.Extract(path, opts)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(Render(paras, opts)), nil
}
