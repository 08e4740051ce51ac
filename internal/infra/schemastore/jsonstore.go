package schemastore

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

const defaultSchemasDir = "schemas"
const indexFile = "index.jsonl"

// JSONStore keeps inferred schemas as pretty JSON files under <root>/<schemas_dir>.
type JSONStore struct {
	rootDir        string
	schemasDirName string
	writeIndex     bool
	now            func() time.Time
	newID          func() string
}

type Option func(*JSONStore)

// WithIndex enables a JSONL index: schemas/index.jsonl
func WithIndex(enabled bool) Option {
	return func(s *JSONStore) { s.writeIndex = enabled }
}

// WithNow is useful for tests.
func WithNow(now func() time.Time) Option {
	return func(s *JSONStore) { s.now = now }
}

// WithIDGenerator overrides index entry ids (useful for tests).
func WithIDGenerator(gen func() string) Option {
	return func(s *JSONStore) { s.newID = gen }
}

func NewJSONStore(root string, cfg domain.Config, opts ...Option) *JSONStore {
	dir := cfg.Paths.SchemasDir
	if strings.TrimSpace(dir) == "" {
		dir = defaultSchemasDir
	}

	s := &JSONStore{
		rootDir:        root,
		schemasDirName: dir,
		writeIndex:     cfg.Store.Index,
		now:            time.Now,
		newID:          func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ ports.SchemaStore = (*JSONStore)(nil)

// IndexEntry is one line of schemas/index.jsonl.
type IndexEntry struct {
	UUID        string    `json:"uuid"`
	ID          string    `json:"id"`
	File        string    `json:"file"`
	Name        string    `json:"name"`
	SampleCount int       `json:"sample_count"`
	CreatedAt   time.Time `json:"created_at"`
}

func (s *JSONStore) dir() string {
	return filepath.Join(s.rootDir, s.schemasDirName)
}

// reserve claims <base>.json, or <base>_2.json, <base>_3.json and so on when
// an earlier save in the same second already holds the name.
func reserve(dir, base string) (id, path string, err error) {
	for n := 1; ; n++ {
		id = base
		if n > 1 {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		path = filepath.Join(dir, id+".json")

		f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if err == nil {
			return id, path, f.Close()
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", "", err
		}
	}
}

func (s *JSONStore) SaveSchema(a domain.SchemaArtifact) (string, error) {
	dir := s.dir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &domain.OpError{
			Op:   "schemastore.mkdir",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	if !json.Valid([]byte(a.Schema)) {
		return "", &domain.OpError{
			Op:   "schemastore.save",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("schema %q is not valid JSON", a.Name),
		}
	}

	ts := a.CreatedAt
	if ts.IsZero() {
		ts = s.now()
	}
	ts = ts.UTC()

	slug := slugify(a.Name)
	if slug == "" {
		slug = "schema"
	}

	id, path, err := reserve(dir, ts.Format("20060102T150405Z")+"_"+slug)
	if err != nil {
		return "", &domain.OpError{
			Op:   "schemastore.reserve",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	// Atomic-ish write: tmp then rename over the reserved file.
	tmp := path + ".tmp"
	body := a.Schema
	if !strings.HasSuffix(body, "\n") {
		body += "\n"
	}
	if err := os.WriteFile(tmp, []byte(body), 0o644); err != nil {
		_ = os.Remove(path)
		return "", &domain.OpError{
			Op:   "schemastore.write",
			Kind: domain.KindExecution,
			Path: tmp,
			Err:  err,
		}
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		_ = os.Remove(path)
		return "", &domain.OpError{
			Op:   "schemastore.rename",
			Kind: domain.KindExecution,
			Path: path,
			Err:  err,
		}
	}

	if s.writeIndex {
		if err := s.appendIndex(dir, IndexEntry{
			UUID:        s.newID(),
			ID:          id,
			File:        filepath.Base(path),
			Name:        a.Name,
			SampleCount: a.SampleCount,
			CreatedAt:   ts,
		}); err != nil {
			return id, &domain.OpError{
				Op:   "schemastore.index",
				Kind: domain.KindExecution,
				Path: filepath.Join(dir, indexFile),
				Err:  err,
			}
		}
	}

	return id, nil
}

// LoadSchema accepts a store id, a file name inside the store, or a filesystem path.
func (s *JSONStore) LoadSchema(ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	candidates := []string{
		filepath.Join(s.dir(), ref+".json"),
		filepath.Join(s.dir(), ref),
		ref,
	}

	for _, p := range candidates {
		info, err := os.Stat(p)
		if err != nil || info.IsDir() {
			continue
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return "", &domain.OpError{
				Op:   "schemastore.load",
				Kind: domain.KindExecution,
				Path: p,
				Err:  err,
			}
		}
		return string(b), nil
	}

	return "", &domain.OpError{
		Op:   "schemastore.load",
		Kind: domain.KindNotFound,
		Path: ref,
		Err:  domain.ErrNotFound,
	}
}

// ListSchemas lists stored schemas sorted by id (oldest first).
func (s *JSONStore) ListSchemas() ([]domain.SchemaRef, error) {
	dir := s.dir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []domain.SchemaRef{}, nil
		}
		return nil, &domain.OpError{
			Op:   "schemastore.list",
			Kind: domain.KindExecution,
			Path: dir,
			Err:  err,
		}
	}

	names := map[string]string{}
	if idx, err := s.ReadIndex(); err == nil {
		for _, e := range idx {
			names[e.ID] = e.Name
		}
	}

	refs := []domain.SchemaRef{}
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		id := strings.TrimSuffix(e.Name(), ".json")
		name, ok := names[id]
		if !ok {
			name = nameFromID(id)
		}
		refs = append(refs, domain.SchemaRef{ID: id, Name: name, Path: filepath.Join(dir, e.Name())})
	}

	sort.Slice(refs, func(i, j int) bool { return refs[i].ID < refs[j].ID })
	return refs, nil
}

// ReadIndex returns all index entries in write order.
func (s *JSONStore) ReadIndex() ([]IndexEntry, error) {
	f, err := os.Open(filepath.Join(s.dir(), indexFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []IndexEntry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e IndexEntry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, sc.Err()
}

func (s *JSONStore) appendIndex(dir string, e IndexEntry) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(filepath.Join(dir, indexFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.Write(append(line, '\n'))
	return err
}

// nameFromID drops the timestamp and any collision suffix; slugs never contain '_'.
func nameFromID(id string) string {
	parts := strings.Split(id, "_")
	if len(parts) < 2 {
		return id
	}
	return parts[1]
}

// slugify produces a safe filename component.
func slugify(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(s))

	lastDash := false
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}

	return strings.Trim(b.String(), "-")
}
