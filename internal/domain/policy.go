package domain

// Dependency is a module the project depends on.
type Dependency struct {
	Module   string
	Version  string
	Indirect bool

	// Replaces is the required module path when a replace directive swapped in Module.
	Replaces string
}

// UnknownLicensePolicy decides what happens to dependencies missing from the inventory.
type UnknownLicensePolicy string

const (
	UnknownDeny  UnknownLicensePolicy = "deny"
	UnknownAllow UnknownLicensePolicy = "allow"
)

// Advisory is a known vulnerability affecting a version range of a module.
// Introduced is inclusive and Fixed exclusive; empty means unbounded.
type Advisory struct {
	ID         string
	Module     string
	Introduced string
	Fixed      string
}

// Policy is the allow/deny rule set evaluated against the dependency graph.
type Policy struct {
	Allow     []string
	Deny      []string
	Unknown   UnknownLicensePolicy
	Inventory map[string]string // module -> SPDX expression

	Advisories []Advisory
	Ignore     []string // advisory IDs
}

// ViolationKind classifies a policy violation.
type ViolationKind string

const (
	ViolationLicense        ViolationKind = "license"
	ViolationUnknownLicense ViolationKind = "unknown-license"
	ViolationAdvisory       ViolationKind = "advisory"
)

// Violation is a single failed policy rule.
type Violation struct {
	Module  string        `json:"module"`
	Version string        `json:"version"`
	Kind    ViolationKind `json:"kind"`
	Detail  string        `json:"detail"`
}

// PolicyReport is the outcome of evaluating a policy.
type PolicyReport struct {
	Checked    int         `json:"checked"`
	Violations []Violation `json:"violations"`
}

// Passed reports whether the evaluation found no violations.
func (r PolicyReport) Passed() bool { return len(r.Violations) == 0 }
