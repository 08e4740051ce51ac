package policyfile

type YAMLPolicy struct {
	Licenses         YAMLLicenses   `yaml:"licenses"`
	Advisories       []YAMLAdvisory `yaml:"advisories"`
	AdvisoriesIgnore []string       `yaml:"advisories_ignore"`
}

type YAMLLicenses struct {
	Allow     []string          `yaml:"allow"`
	Deny      []string          `yaml:"deny"`
	Unknown   string            `yaml:"unknown"`
	Inventory map[string]string `yaml:"inventory"`
}

type YAMLAdvisory struct {
	ID         string `yaml:"id"`
	Module     string `yaml:"module"`
	Introduced string `yaml:"introduced"`
	Fixed      string `yaml:"fixed"`
}
