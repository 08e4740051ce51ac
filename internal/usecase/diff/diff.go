package diff

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/usecase/infer"
)

const defaultCacheSize = 256

// Engine compares schemas and caches the path sets of schemas it has seen.
type Engine struct {
	cache *lru.Cache[[sha256.Size]byte, []string]
}

// NewEngine creates an engine holding at most size path sets (defaults when size <= 0).
func NewEngine(size int) *Engine {
	if size <= 0 {
		size = defaultCacheSize
	}
	c, err := lru.New[[sha256.Size]byte, []string](size)
	if err != nil {
		// Only returned for a non-positive size, which is excluded above.
		panic(err)
	}
	return &Engine{cache: c}
}

// DefaultEngine is shared by Diff.
var DefaultEngine = NewEngine(defaultCacheSize)

// Diff parses two JSON Schema documents and returns the pretty JSON diff of their paths.
func Diff(a, b string) (string, error) {
	res, err := DefaultEngine.Compare(a, b)
	if err != nil {
		return "", err
	}
	return Render(res)
}

// Compare computes added (in b only), removed (in a only), and common paths.
func (e *Engine) Compare(a, b string) (domain.DiffResult, error) {
	pa, err := e.paths(a, "A")
	if err != nil {
		return domain.DiffResult{}, err
	}
	pb, err := e.paths(b, "B")
	if err != nil {
		return domain.DiffResult{}, err
	}
	return ComparePaths(pa, pb), nil
}

// ComparePaths is Compare over already collected path lists.
func ComparePaths(a, b []string) domain.DiffResult {
	inA := toSet(a)
	inB := toSet(b)

	added := map[string]struct{}{}
	removed := map[string]struct{}{}
	common := map[string]struct{}{}

	for p := range inB {
		if _, ok := inA[p]; !ok {
			added[p] = struct{}{}
		}
	}
	for p := range inA {
		if _, ok := inB[p]; ok {
			common[p] = struct{}{}
		} else {
			removed[p] = struct{}{}
		}
	}

	return domain.DiffResult{
		Added:   sortedKeys(added),
		Removed: sortedKeys(removed),
		Common:  sortedKeys(common),
	}
}

// Len reports how many path sets are cached.
func (e *Engine) Len() int { return e.cache.Len() }

func (e *Engine) paths(schema, label string) ([]string, error) {
	key := sha256.Sum256([]byte(schema))
	if p, ok := e.cache.Get(key); ok {
		return p, nil
	}

	var v any
	if err := json.Unmarshal([]byte(schema), &v); err != nil {
		return nil, &domain.OpError{
			Op:   "diff.parse",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("schema %s parse error: %w", label, err),
		}
	}

	p := CollectPaths(v)
	e.cache.Add(key, p)
	return p, nil
}

// Render encodes a diff result as pretty JSON.
func Render(res domain.DiffResult) (string, error) {
	res = normalize(res)
	b, err := infer.MarshalPretty(res)
	if err != nil {
		return "", &domain.OpError{
			Op:   "diff.render",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("Serialize error: %w", err),
		}
	}
	return string(b), nil
}

// Summary is a one-line count of the diff.
func Summary(res domain.DiffResult) string {
	return fmt.Sprintf("%d added, %d removed, %d common", len(res.Added), len(res.Removed), len(res.Common))
}

func normalize(res domain.DiffResult) domain.DiffResult {
	if res.Added == nil {
		res.Added = []string{}
	}
	if res.Removed == nil {
		res.Removed = []string{}
	}
	if res.Common == nil {
		res.Common = []string{}
	}
	return res
}

func toSet(in []string) map[string]struct{} {
	out := make(map[string]struct{}, len(in))
	for _, p := range in {
		out[p] = struct{}{}
	}
	return out
}
