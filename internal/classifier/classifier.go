// Package classifier decides whether a headline reports the tracked subject
// acting, as opposed to being acted upon or merely mentioned.
//
// Classification is an ordered scan over normalized text: reject rules run
// before accept rules and the first match decides. Text that matches no
// rule is rejected, so unrelated headlines stay out by default.
package classifier

import (
	"fmt"
	"regexp"

	"golang.org/x/text/unicode/norm"

	"ouinon/internal/model"
)

// Classifier evaluates an ordered rule list over headline text.
type Classifier struct {
	rules []compiled
}

type compiled struct {
	re      *regexp.Regexp
	verdict model.Verdict
}

// New compiles the rules in order. Patterns are applied case insensitively.
func New(rules []model.Rule) (*Classifier, error) {
	c := &Classifier{rules: make([]compiled, 0, len(rules))}
	for _, r := range rules {
		re, err := regexp.Compile("(?i)" + r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("compile rule %q: %w", r.Pattern, err)
		}
		c.rules = append(c.rules, compiled{re: re, verdict: r.Verdict})
	}
	return c, nil
}

// Match reports whether text describes the subject as the agent of the
// action. Text is NFC-normalized first so decomposed accents, which some
// feeds emit, compare equal to the composed forms used in the patterns.
func (c *Classifier) Match(text string) bool {
	t := norm.NFC.String(text)
	for _, r := range c.rules {
		if r.re.MatchString(t) {
			return r.verdict == model.VerdictAccept
		}
	}
	return false
}
