package policyfile

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
)

type Loader struct{}

func NewLoader() *Loader { return &Loader{} }

var _ ports.PolicyLoader = (*Loader)(nil)

func (l *Loader) LoadPolicy(path string) (domain.Policy, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return domain.Policy{}, &domain.OpError{
			Op:   "policyfile.load",
			Kind: domain.KindNotFound,
			Path: path,
			Err:  err,
		}
	}

	var dto YAMLPolicy
	if err := yaml.Unmarshal(b, &dto); err != nil {
		return domain.Policy{}, &domain.OpError{
			Op:   "policyfile.load",
			Kind: domain.KindInvalidConfig,
			Path: path,
			Err:  err,
		}
	}

	return MapPolicy(path, dto)
}
