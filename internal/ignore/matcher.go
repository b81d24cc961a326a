package ignore

import (
	"path/filepath"
	"regexp"
	"strings"
)

type rule struct {
	pattern  string
	re       *regexp.Regexp
	negated  bool
	dirOnly  bool
	anchored bool
}

// Matcher applies gitignore-like rules with "last rule wins" behavior.
type Matcher struct {
	rules []rule
}

// DefaultRules are always excluded from analysis unless a user rule
// negates them. They cover VCS metadata, tool output, and vendored deps.
var DefaultRules = []string{
	".git/",
	".crewkit/",
	".claude/",
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	".next/",
	"target/",
	"__pycache__/",
	"coverage/",
}

// NewMatcher builds a matcher from user-provided .crewkitignore lines.
// Default excludes are prepended and can be overridden by user negation rules.
func NewMatcher(userRules []string) *Matcher {
	all := make([]string, 0, len(DefaultRules)+len(userRules))
	all = append(all, DefaultRules...)
	all = append(all, userRules...)

	rules := make([]rule, 0, len(all))
	for _, line := range all {
		if parsed, ok := parseRule(line); ok {
			rules = append(rules, parsed)
		}
	}

	return &Matcher{rules: rules}
}

// ShouldIgnore returns true when relPath should be excluded.
func (m *Matcher) ShouldIgnore(relPath string, isDir bool) bool {
	relPath = normalizePath(relPath)
	ignored := false
	for _, rule := range m.rules {
		if rule.matches(relPath, isDir) {
			ignored = !rule.negated
		}
	}
	return ignored
}

func parseRule(line string) (rule, bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return rule{}, false
	}

	parsed := rule{}
	if strings.HasPrefix(line, "!") {
		parsed.negated = true
		line = strings.TrimPrefix(line, "!")
	}
	if strings.HasPrefix(line, "/") {
		parsed.anchored = true
		line = strings.TrimPrefix(line, "/")
	}
	if strings.HasSuffix(line, "/") {
		parsed.dirOnly = true
		line = strings.TrimSuffix(line, "/")
	}

	line = normalizePath(line)
	if line == "" {
		return rule{}, false
	}
	parsed.pattern = line

	re, err := regexp.Compile("^" + globToRegex(line) + "$")
	if err != nil {
		return rule{}, false
	}
	parsed.re = re
	return parsed, true
}

func (r rule) matches(relPath string, isDir bool) bool {
	if r.dirOnly {
		if r.matchesDirectory(relPath) {
			return true
		}
		return isDir && r.re.MatchString(filepath.Base(relPath))
	}

	if r.anchored {
		return r.re.MatchString(relPath)
	}

	if strings.Contains(r.pattern, "/") {
		if r.re.MatchString(relPath) {
			return true
		}
		parts := strings.Split(relPath, "/")
		for i := 1; i < len(parts); i++ {
			if r.re.MatchString(strings.Join(parts[i:], "/")) {
				return true
			}
		}
		return false
	}

	if r.re.MatchString(filepath.Base(relPath)) {
		return true
	}
	for _, segment := range strings.Split(relPath, "/") {
		if r.re.MatchString(segment) {
			return true
		}
	}
	return false
}

func (r rule) matchesDirectory(relPath string) bool {
	if relPath == r.pattern || strings.HasPrefix(relPath, r.pattern+"/") {
		return true
	}
	if r.anchored {
		return false
	}

	parts := strings.Split(relPath, "/")
	for i := range parts {
		if strings.Join(parts[:i+1], "/") == r.pattern {
			return true
		}
	}
	return false
}

func globToRegex(pattern string) string {
	var b strings.Builder
	for i := 0; i < len(pattern); i++ {
		ch := pattern[i]

		if ch == '*' {
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				b.WriteString(".*")
				i++
				continue
			}
			b.WriteString("[^/]*")
			continue
		}

		if ch == '?' {
			b.WriteString("[^/]")
			continue
		}

		if strings.ContainsRune(`.+()|[]{}^$\\`, rune(ch)) {
			b.WriteByte('\\')
		}
		b.WriteByte(ch)
	}
	return b.String()
}

func normalizePath(path string) string {
	path = filepath.ToSlash(path)
	path = strings.TrimPrefix(path, "./")
	path = strings.TrimPrefix(path, "/")
	return path
}
