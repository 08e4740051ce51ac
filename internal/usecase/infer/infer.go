package infer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"golang.org/x/sync/errgroup"

	"github.com/Absolentia/aif-core/internal/domain"
)

// ParseSample decodes one JSON document, keeping numbers as json.Number so that
// integers and floats can be told apart. Trailing data after the document is rejected.
func ParseSample(s string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(s))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, invalidJSON(err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("trailing characters after JSON value")
		}
		return nil, invalidJSON(err)
	}
	return v, nil
}

// Infer builds a JSON Schema document from raw JSON samples.
// Any invalid sample fails the whole call.
func Infer(samples []string) (string, error) {
	root := NewNode()
	for _, s := range samples {
		v, err := ParseSample(s)
		if err != nil {
			return "", err
		}
		root.Observe(v)
	}
	return Render(root)
}

// InferDocuments is Infer for already decoded documents.
func InferDocuments(docs []any) (string, error) {
	root := NewNode()
	for _, d := range docs {
		root.Observe(d)
	}
	return Render(root)
}

// InferParallel parses and observes samples across workers and merges the partial trees.
// The output is identical to Infer, including which error is reported when several
// samples are invalid (the first by index).
func InferParallel(ctx context.Context, samples []string, workers int) (string, error) {
	root, err := ObserveParallel(ctx, samples, "", workers)
	if err != nil {
		return "", err
	}
	return Render(root)
}

// ObserveParallel is the tree-building half of InferParallel. rootExpr optionally selects
// the sub-documents to observe (see SelectRoot).
func ObserveParallel(ctx context.Context, samples []string, rootExpr string, workers int) (*Node, error) {
	if workers < 1 {
		workers = 1
	}
	if workers > len(samples) {
		workers = len(samples)
	}
	if workers == 0 {
		return NewNode(), nil
	}

	chunk := (len(samples) + workers - 1) / workers
	nodes := make([]*Node, workers)
	errs := make([]error, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := min(lo+chunk, len(samples))
		nodes[w] = NewNode()
		if lo >= hi {
			continue
		}

		g.Go(func() error {
			for _, s := range samples[lo:hi] {
				if err := gctx.Err(); err != nil {
					return err
				}
				doc, err := ParseSample(s)
				if err != nil {
					errs[w] = err
					return nil
				}
				docs, err := SelectRoot(doc, rootExpr)
				if err != nil {
					errs[w] = err
					return nil
				}
				for _, d := range docs {
					nodes[w].Observe(d)
				}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	root := NewNode()
	for _, n := range nodes {
		root.Merge(n)
	}
	return root, nil
}

// SelectRoot applies a JSONPath expression to doc and returns the documents to observe.
// An empty expression selects doc itself; an expression yielding an array contributes
// each element separately.
func SelectRoot(doc any, expr string) ([]any, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return []any{doc}, nil
	}

	val, err := jsonpath.Get(expr, doc)
	if err != nil {
		return nil, &domain.OpError{
			Op:   "infer.select_root",
			Kind: domain.KindInvalidInput,
			Err:  fmt.Errorf("jsonpath %q: %w", expr, err),
		}
	}

	if arr, ok := val.([]any); ok {
		return arr, nil
	}
	return []any{val}, nil
}

// Render wraps the root properties into a draft 2020-12 document.
// The document root is always reported as an object.
func Render(root *Node) (string, error) {
	schema := root.ToJSONSchema()

	props, ok := schema["properties"]
	if !ok {
		props = map[string]any{}
	}

	doc := map[string]any{
		"$schema":    domain.SchemaDraft,
		"type":       "object",
		"properties": props,
	}

	b, err := MarshalPretty(doc)
	if err != nil {
		return "", &domain.OpError{
			Op:   "infer.render",
			Kind: domain.KindExecution,
			Err:  fmt.Errorf("Serialize error: %w", err),
		}
	}
	return string(b), nil
}

// MarshalPretty encodes v with two-space indentation and without HTML escaping.
func MarshalPretty(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func invalidJSON(err error) error {
	return &domain.OpError{
		Op:   "infer.parse",
		Kind: domain.KindInvalidInput,
		Err:  fmt.Errorf("Invalid JSON: %w", err),
	}
}
