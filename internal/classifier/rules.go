package classifier

import (
	"fmt"
	"regexp"
	"strings"

	"ouinon/internal/model"
)

// Verbs that mark the subject as the actor when they directly follow the
// subject's name. French only: the watched feeds are francophone press.
// These must be followed by further text, which keeps the one-letter "a"
// from matching inverted questions like "a-t-il".
var agentVerbs = []string{
	"a", "va", "veut", "menace", "annonce", "signe", "ordonne", "décide",
	"affirme", "déclare", "accuse", "réclame", "impose", "retire",
	"supprime", "abroge", "lance", "propose", "prévoit", "promet", "exige",
	"qualifie", "insulte", "attaque", "dénonce", "rejette", "refuse",
	"suspend", "interdit", "bloque", "critique", "revendique", "envisage",
	"souhaite",
}

// Short common verbs that also count at a plain word boundary, so a
// headline may end on them.
var bareAgentVerbs = []string{"dit", "fait", "prend", "met", "abrogera"}

// Constructions where the subject is the target of someone else's action
// or a mere qualifier. The %s placeholder receives the subject pattern.
var objectPatterns = []string{
	`(?:vote|voté|réagi|répondu|condamné|critiqué|poursuivi|accusé|manifesté|protesté|dénoncé)\s.*(?:contre|envers)\s.*%s`,
	`(?:face à|en réponse à|contre)\s+(?:\pL+\s+)?%s`,
	`anti[- ]?%s`,
	`opposition\s+à\s+%s`,
}

// Rules builds the ordered rule list for a subject. Reject rules come
// first: the first matching rule decides, and a headline where the subject
// is on the receiving end must not be rescued by an agent verb later in
// the sentence.
func Rules(subject string) []model.Rule {
	subj := subjectPattern(subject)
	rules := make([]model.Rule, 0, len(objectPatterns)+2)
	for _, p := range objectPatterns {
		rules = append(rules, model.Rule{
			Pattern: fmt.Sprintf(p, subj),
			Verdict: model.VerdictReject,
		})
	}
	rules = append(rules,
		model.Rule{
			Pattern: fmt.Sprintf(`%s\s+(?:%s)\s`, subj, strings.Join(agentVerbs, "|")),
			Verdict: model.VerdictAccept,
		},
		model.Rule{
			Pattern: fmt.Sprintf(`%s\s+(?:%s)\b`, subj, strings.Join(bareAgentVerbs, "|")),
			Verdict: model.VerdictAccept,
		},
	)
	return rules
}

// subjectPattern turns a display name into a pattern fragment: each word
// is quoted literally and words may be separated by any whitespace.
func subjectPattern(subject string) string {
	fields := strings.Fields(subject)
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = regexp.QuoteMeta(f)
	}
	return strings.Join(quoted, `\s+`)
}
