package classifier

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ouinon/internal/model"
)

func newTrumpClassifier(t *testing.T) *Classifier {
	t.Helper()
	c, err := New(Rules("Trump"))
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}
	return c
}

func TestMatch(t *testing.T) {
	c := newTrumpClassifier(t)

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{
			name:  "subject with agent verb",
			title: "Trump signe un décret sur les droits de douane",
			want:  true,
		},
		{
			name:  "subject announcing tariffs",
			title: "Trump annonce de nouveaux tarifs douaniers",
			want:  true,
		},
		{
			name:  "subject criticized by someone else",
			title: "Le Congrès critique Trump",
			want:  false,
		},
		{
			name:  "full name with agent verb",
			title: "Donald Trump annonce de nouvelles sanctions contre l'Iran",
			want:  true,
		},
		{
			name:  "auxiliary verb",
			title: "Trump a promis de quitter l'accord de Paris",
			want:  true,
		},
		{
			name:  "uppercase headline",
			title: "TRUMP MENACE L'EUROPE DE NOUVEAUX TARIFS",
			want:  true,
		},
		{
			name:  "short verb at end of clause",
			title: "Sur l'Ukraine, Trump dit non",
			want:  true,
		},
		{
			name:  "decomposed accents",
			title: "Trump décide de bloquer les fonds fédéraux",
			want:  true,
		},
		{
			name:  "accented verb",
			title: "Trump dénonce un complot des démocrates",
			want:  true,
		},
		{
			name:  "protest against subject",
			title: "Des milliers de manifestants défilent contre Trump",
			want:  false,
		},
		{
			name:  "vote against subject",
			title: "Le Sénat a voté contre Trump",
			want:  false,
		},
		{
			name:  "reaction to subject",
			title: "En réponse à Trump, le Canada impose ses propres tarifs",
			want:  false,
		},
		{
			name:  "anti prefix",
			title: "Manifestation anti-Trump à New York",
			want:  false,
		},
		{
			name:  "organized opposition",
			title: "L'opposition à Trump s'organise au Congrès",
			want:  false,
		},
		{
			name:  "reject wins over later agent verb",
			title: "Après avoir protesté contre Trump, ils attendent que Trump annonce sa décision",
			want:  false,
		},
		{
			name:  "mention without action",
			title: "Un livre sur Trump paraît cette semaine",
			want:  false,
		},
		{
			name:  "subject absent",
			title: "Le Canada impose des tarifs sur l'acier",
			want:  false,
		},
		{
			name:  "inverted question does not count as action",
			title: "Trump a-t-il perdu le contrôle de son parti ?",
			want:  false,
		},
		{
			name:  "empty text",
			title: "",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Match(tt.title)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.title, diff)
			}
		})
	}
}

func TestMatchCustomSubject(t *testing.T) {
	c, err := New(Rules("Elon Musk"))
	if err != nil {
		t.Fatalf("new classifier: %v", err)
	}

	tests := []struct {
		name  string
		title string
		want  bool
	}{
		{
			name:  "full name acting",
			title: "Elon Musk annonce une nouvelle usine en Europe",
			want:  true,
		},
		{
			name:  "protest against full name",
			title: "Des salariés ont manifesté hier contre Elon Musk",
			want:  false,
		},
		{
			name:  "other subject ignored",
			title: "Trump signe un décret sur l'immigration",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Match(tt.title)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tt.title, diff)
			}
		})
	}
}

func TestNewRejectsInvalidPattern(t *testing.T) {
	_, err := New([]model.Rule{{Pattern: "[invalid", Verdict: model.VerdictReject}})
	if err == nil {
		t.Fatal("expected error")
	}
}
