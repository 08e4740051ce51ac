package policy

import (
	"fmt"
	"sort"

	"golang.org/x/mod/semver"

	"github.com/Absolentia/aif-core/internal/domain"
)

// Evaluate checks every dependency against the license rules and advisories.
// Violations are ordered by module, then kind, then detail.
func Evaluate(p domain.Policy, deps []domain.Dependency) domain.PolicyReport {
	report := domain.PolicyReport{
		Checked:    len(deps),
		Violations: []domain.Violation{},
	}

	ignored := map[string]struct{}{}
	for _, id := range p.Ignore {
		ignored[id] = struct{}{}
	}

	for _, d := range deps {
		if v, ok := checkLicense(p, d); !ok {
			report.Violations = append(report.Violations, v)
		}

		for _, a := range p.Advisories {
			if _, skip := ignored[a.ID]; skip {
				continue
			}
			if a.Module != d.Module || !Affected(a, d.Version) {
				continue
			}
			report.Violations = append(report.Violations, domain.Violation{
				Module:  d.Module,
				Version: d.Version,
				Kind:    domain.ViolationAdvisory,
				Detail:  advisoryDetail(a),
			})
		}
	}

	sort.SliceStable(report.Violations, func(i, j int) bool {
		a, b := report.Violations[i], report.Violations[j]
		if a.Module != b.Module {
			return a.Module < b.Module
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Detail < b.Detail
	})
	return report
}

// Affected reports whether version falls inside [Introduced, Fixed).
func Affected(a domain.Advisory, version string) bool {
	if !semver.IsValid(version) {
		return false
	}
	if a.Introduced != "" && semver.Compare(version, a.Introduced) < 0 {
		return false
	}
	if a.Fixed != "" && semver.Compare(version, a.Fixed) >= 0 {
		return false
	}
	return true
}

func checkLicense(p domain.Policy, d domain.Dependency) (domain.Violation, bool) {
	expr, known := p.Inventory[d.Module]
	if !known {
		if p.Unknown == domain.UnknownAllow {
			return domain.Violation{}, true
		}
		return domain.Violation{
			Module:  d.Module,
			Version: d.Version,
			Kind:    domain.ViolationUnknownLicense,
			Detail:  "license not listed in inventory",
		}, false
	}

	parsed, err := ParseExpression(expr)
	if err != nil {
		return domain.Violation{
			Module:  d.Module,
			Version: d.Version,
			Kind:    domain.ViolationLicense,
			Detail:  fmt.Sprintf("invalid license expression %q: %v", expr, err),
		}, false
	}
	if parsed.Satisfied(licensePass(p.Allow, p.Deny)) {
		return domain.Violation{}, true
	}
	return domain.Violation{
		Module:  d.Module,
		Version: d.Version,
		Kind:    domain.ViolationLicense,
		Detail:  fmt.Sprintf("license %q is not allowed", expr),
	}, false
}

func advisoryDetail(a domain.Advisory) string {
	switch {
	case a.Fixed != "":
		return fmt.Sprintf("%s (fixed in %s)", a.ID, a.Fixed)
	default:
		return fmt.Sprintf("%s (no fix available)", a.ID)
	}
}
