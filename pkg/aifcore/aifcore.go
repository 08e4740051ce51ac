// Package aifcore is the stable public surface of aif-core.
//
// The function signatures and output formats in this package are the
// compatibility contract: InferSchema returns a pretty-printed draft 2020-12
// JSON Schema, DiffSchemas returns a pretty-printed {"added","common","removed"}
// object. Errors carry plain messages such as "Invalid JSON: ..." or
// "schema A parse error: ...".
package aifcore

import (
	"errors"
	"fmt"

	"github.com/Absolentia/aif-core/internal/buildinfo"
	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/usecase/diff"
	"github.com/Absolentia/aif-core/internal/usecase/infer"
)

// ImportOK is what ImportCheck returns when the library works end to end.
const ImportOK = "import-ok"

// InferSchema infers a JSON Schema document from raw JSON samples.
func InferSchema(samples []string) (string, error) {
	out, err := infer.Infer(samples)
	if err != nil {
		return "", plain(err)
	}
	return out, nil
}

// DiffSchemas compares two JSON Schema documents by property path.
func DiffSchemas(a, b string) (string, error) {
	out, err := diff.Diff(a, b)
	if err != nil {
		return "", plain(err)
	}
	return out, nil
}

// ImportCheck runs a small infer then diff round trip and returns ImportOK.
func ImportCheck() (string, error) {
	a, err := InferSchema([]string{`{"id": 1, "tags": ["x"]}`})
	if err != nil {
		return "", fmt.Errorf("self-check infer: %w", err)
	}
	b, err := InferSchema([]string{`{"id": 2, "name": "n"}`})
	if err != nil {
		return "", fmt.Errorf("self-check infer: %w", err)
	}

	res, err := diff.DefaultEngine.Compare(a, b)
	if err != nil {
		return "", fmt.Errorf("self-check diff: %w", plain(err))
	}
	if len(res.Common) != 1 || res.Common[0] != "id" || len(res.Added) != 1 || len(res.Removed) != 2 {
		return "", fmt.Errorf("self-check diff: unexpected result %s", diff.Summary(res))
	}
	return ImportOK, nil
}

// Version reports the build version string.
func Version() string {
	return buildinfo.String()
}

func plain(err error) error {
	return errors.New(domain.Cause(err))
}
