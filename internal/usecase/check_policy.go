package usecase

import (
	"fmt"

	"github.com/Absolentia/aif-core/internal/domain"
	"github.com/Absolentia/aif-core/internal/ports"
	"github.com/Absolentia/aif-core/internal/usecase/policy"
)

type CheckPolicy struct {
	policies ports.PolicyLoader
	deps     ports.DependencySource
}

func NewCheckPolicy(pl ports.PolicyLoader, ds ports.DependencySource) *CheckPolicy {
	return &CheckPolicy{policies: pl, deps: ds}
}

func (uc *CheckPolicy) Execute(policyPath string) (domain.PolicyReport, error) {
	p, err := uc.policies.LoadPolicy(policyPath)
	if err != nil {
		return domain.PolicyReport{}, err
	}
	deps, err := uc.deps.Dependencies()
	if err != nil {
		return domain.PolicyReport{}, err
	}

	report := policy.Evaluate(p, deps)
	if report.Passed() {
		return report, nil
	}
	return report, &domain.OpError{
		Op:   "usecase.policy",
		Kind: domain.KindPolicyViolation,
		Path: policyPath,
		Err:  fmt.Errorf("%d violation(s) in %d dependencies: %w", len(report.Violations), report.Checked, domain.ErrPolicyViolation),
	}
}
