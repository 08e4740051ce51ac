package signoff

import (
	"regexp"
	"strings"

	"github.com/Absolentia/aif-core/internal/domain"
)

var (
	signedOffRe = regexp.MustCompile(`^Signed-off-by: ([^<>]*\S)\s*<([^<>\s]+@[^<>\s]+)>\s*$`)
	trailerRe   = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9-]*: `)
)

const (
	commentPrefix = "#"
	scissorsLine  = "# ------------------------ >8 ------------------------"
	cherryPicked  = "(cherry picked from commit "
)

// Signers returns the "Name <email>" values of every Signed-off-by line found
// in the trailer block (the last paragraph) of msg.
func Signers(msg string) []string {
	lines := trailerBlock(msg)
	out := []string{}
	for _, l := range lines {
		m := signedOffRe.FindStringSubmatch(l)
		if m == nil {
			continue
		}
		out = append(out, strings.TrimSpace(m[1])+" <"+m[2]+">")
	}
	return out
}

// Check evaluates one commit.
func Check(c domain.Commit) domain.SignoffResult {
	signers := Signers(c.Message)
	return domain.SignoffResult{
		Hash:     c.Hash,
		Subject:  Subject(c.Message),
		Signers:  signers,
		Conforms: len(signers) > 0,
	}
}

// CheckAll evaluates commits in order.
func CheckAll(commits []domain.Commit) []domain.SignoffResult {
	out := make([]domain.SignoffResult, 0, len(commits))
	for _, c := range commits {
		out = append(out, Check(c))
	}
	return out
}

// Subject is the first line of msg.
func Subject(msg string) string {
	msg = strings.TrimLeft(strings.Join(cleanLines(msg), "\n"), "\n")
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	return strings.TrimSpace(msg)
}

// cleanLines strips what git strips before storing an edited message:
// everything from the scissors line on, then comment lines.
func cleanLines(msg string) []string {
	msg = strings.ReplaceAll(msg, "\r\n", "\n")
	var out []string
	for _, l := range strings.Split(msg, "\n") {
		if strings.TrimRight(l, " \t") == scissorsLine {
			break
		}
		if strings.HasPrefix(l, commentPrefix) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// trailerBlock returns the last paragraph of msg when every line in it is a
// git trailer, a folded continuation or a cherry-pick note. The subject line
// never counts as a trailer block.
func trailerBlock(msg string) []string {
	lines := cleanLines(msg)
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}

	start := len(lines)
	for start > 0 && strings.TrimSpace(lines[start-1]) != "" {
		start--
	}
	if start == 0 {
		return nil
	}

	block := lines[start:]
	for _, l := range block {
		if !trailerRe.MatchString(l) && !strings.HasPrefix(l, " ") && !strings.HasPrefix(l, cherryPicked) {
			return nil
		}
	}
	return block
}
