package policyfile

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/Absolentia/aif-core/internal/domain"
)

func MapPolicy(path string, yp YAMLPolicy) (domain.Policy, error) {
	p := domain.Policy{
		Allow:     trimAll(yp.Licenses.Allow),
		Deny:      trimAll(yp.Licenses.Deny),
		Unknown:   domain.UnknownDeny,
		Inventory: map[string]string{},
		Ignore:    trimAll(yp.AdvisoriesIgnore),
	}

	switch strings.ToLower(strings.TrimSpace(yp.Licenses.Unknown)) {
	case "", "deny":
	case "allow":
		p.Unknown = domain.UnknownAllow
	default:
		return domain.Policy{}, invalidField(path, "licenses.unknown", "must be deny or allow")
	}

	for mod, expr := range yp.Licenses.Inventory {
		mod = strings.TrimSpace(mod)
		if strings.TrimSpace(expr) == "" {
			return domain.Policy{}, invalidField(path, "licenses.inventory."+mod, "license expression is required")
		}
		p.Inventory[mod] = strings.TrimSpace(expr)
	}

	p.Advisories = make([]domain.Advisory, 0, len(yp.Advisories))
	for i, a := range yp.Advisories {
		prefix := fmt.Sprintf("advisories[%d]", i)
		if strings.TrimSpace(a.ID) == "" {
			return domain.Policy{}, invalidField(path, prefix+".id", "id is required")
		}
		if strings.TrimSpace(a.Module) == "" {
			return domain.Policy{}, invalidField(path, prefix+".module", "module is required")
		}
		if a.Introduced != "" && !semver.IsValid(a.Introduced) {
			return domain.Policy{}, invalidField(path, prefix+".introduced", "not a semantic version")
		}
		if a.Fixed != "" && !semver.IsValid(a.Fixed) {
			return domain.Policy{}, invalidField(path, prefix+".fixed", "not a semantic version")
		}
		p.Advisories = append(p.Advisories, domain.Advisory{
			ID:         strings.TrimSpace(a.ID),
			Module:     strings.TrimSpace(a.Module),
			Introduced: a.Introduced,
			Fixed:      a.Fixed,
		})
	}

	return p, nil
}

func trimAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func invalidField(path, field, msg string) error {
	return &domain.OpError{
		Op:   "policyfile.map",
		Kind: domain.KindInvalidConfig,
		Path: path,
		Err:  fmt.Errorf("field %s: %s: %w", field, msg, domain.ErrInvalidConfig),
	}
}
