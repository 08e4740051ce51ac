package samplefs

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

// maxLine bounds a single JSONL record.
const maxLine = 16 << 20

type Loader struct {
	samplesDir string
}

type Option func(*Loader)

func WithSamplesDir(dir string) Option {
	return func(l *Loader) { l.samplesDir = dir }
}

func NewLoader(opts ...Option) *Loader {
	l := &Loader{samplesDir: "samples"}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

var _ ports.SampleLoader = (*Loader)(nil)

// Supported reports whether the file extension is a known sample format.
func Supported(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json", ".jsonl", ".ndjson", ".yaml", ".yml":
		return true
	}
	return false
}

// LoadSamples reads a sample file, or every supported file directly inside a directory.
func (l *Loader) LoadSamples(ctx context.Context, path string) ([]domain.Sample, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "samplefs.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	if !info.IsDir() {
		return loadFile(path)
	}

	files, err := listDir(path)
	if err != nil {
		return nil, err
	}

	var out []domain.Sample
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s, err := loadFile(f)
		if err != nil {
			return nil, err
		}
		out = append(out, s...)
	}
	return out, nil
}

// ListSamples lists sample files in the workspace samples dir.
func (l *Loader) ListSamples(root string) ([]string, error) {
	return listDir(filepath.Join(root, l.samplesDir))
}

func listDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "samplefs.list",
			Kind: domain.KindNotFound,
			Path: dir,
			Err:  err,
		}
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !Supported(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

func loadFile(path string) ([]domain.Sample, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "samplefs.read",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl", ".ndjson":
		return splitLines(path, b)
	case ".yaml", ".yml":
		return yamlDocuments(path, b)
	default:
		return []domain.Sample{{Source: path, Data: b}}, nil
	}
}

func splitLines(path string, b []byte) ([]domain.Sample, error) {
	sc := bufio.NewScanner(bytes.NewReader(b))
	sc.Buffer(make([]byte, 0, 64*1024), maxLine)

	var out []domain.Sample
	line := 0
	for sc.Scan() {
		line++
		text := bytes.TrimSpace(sc.Bytes())
		if len(text) == 0 {
			continue
		}
		data := make([]byte, len(text))
		copy(data, text)
		out = append(out, domain.Sample{
			Source: fmt.Sprintf("%s:%d", path, line),
			Data:   data,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, &domain.OpError{
			Op:   "samplefs.jsonl",
			Kind: domain.KindInvalidInput,
			Path: path,
			Err:  err,
		}
	}
	return out, nil
}

// yamlDocuments converts each YAML document of a stream into a JSON sample.
func yamlDocuments(path string, b []byte) ([]domain.Sample, error) {
	dec := yaml.NewDecoder(bytes.NewReader(b))

	var out []domain.Sample
	for i := 0; ; i++ {
		var doc yaml.Node
		err := dec.Decode(&doc)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &domain.OpError{
				Op:   "samplefs.yaml",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  err,
			}
		}

		data, err := yamlToJSON(&doc)
		if err != nil {
			return nil, &domain.OpError{
				Op:   "samplefs.yaml",
				Kind: domain.KindInvalidInput,
				Path: path,
				Err:  fmt.Errorf("document %d: %w", i, err),
			}
		}
		out = append(out, domain.Sample{
			Source: fmt.Sprintf("%s#%d", path, i),
			Data:   data,
		})
	}
	return out, nil
}

func yamlToJSON(doc *yaml.Node) ([]byte, error) {
	v, err := nodeValue(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(v)
}
