package domain

// Commit is the subset of commit metadata needed for sign-off checks.
type Commit struct {
	Hash    string
	Author  string
	Email   string
	Message string
}

// SignoffResult records whether a commit carries a valid Signed-off-by trailer.
type SignoffResult struct {
	Hash     string   `json:"hash"`
	Subject  string   `json:"subject"`
	Signers  []string `json:"signers"`
	Conforms bool     `json:"conforms"`
}
