package grading

import (
	"errors"
	"regexp"
	"strings"
)

// ErrMissingOptions reports a multiple choice problem whose options cannot be
// resolved from any source. Such a problem is an authoring bug and can never
// be graded; the importer must reject it instead of storing a guessed letter.
var ErrMissingOptions = errors.New("multiple choice question must have options")

// Problem is the subset of an imported problem the normalizer reads.
type Problem struct {
	AnswerType    string
	CorrectAnswer string
	Options       []string
	QuestionText  string
}

// Normalized holds the canonical single-letter answer and the options it was
// validated against. Options is nil when none were resolved (non multiple
// choice pass-through only).
type Normalized struct {
	CorrectAnswer string
	Options       []string
}

var (
	optionMarkerRe = regexp.MustCompile(`(?:^|\s)([A-Da-d])[):]\s*`)
	optionPrefixRe = regexp.MustCompile(`^\s*([A-Da-d])\s*[):.]\s*(.*)$`)
)

// ExtractOptionsFromQuestionText scans question text for inline markers of
// the shape "A) text" or "A: text", letters A through D. Each option's text
// runs until the next marker or end of string. A single detected marker is
// not a believable option set, so fewer than two finds yields nil.
func ExtractOptionsFromQuestionText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	locs := optionMarkerRe.FindAllStringSubmatchIndex(text, -1)
	seen := make(map[string]bool, 4)
	var opts []string
	for i, loc := range locs {
		letter := strings.ToUpper(text[loc[2]:loc[3]])
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		body := strings.TrimSpace(text[loc[1]:end])
		if body == "" || seen[letter] {
			continue
		}
		seen[letter] = true
		opts = append(opts, letter+": "+body)
	}
	if len(opts) < 2 {
		return nil
	}
	return opts
}

// option is one resolved choice: its letter and its bare text.
type option struct {
	letter string
	text   string
}

// parseOptionList reads the "X: text" shape off each stored option. An option
// without a letter prefix gets one from its position in the list.
func parseOptionList(raw []string) []option {
	opts := make([]option, 0, len(raw))
	for i, entry := range raw {
		if m := optionPrefixRe.FindStringSubmatch(entry); m != nil {
			opts = append(opts, option{letter: strings.ToUpper(m[1]), text: strings.TrimSpace(m[2])})
			continue
		}
		opts = append(opts, option{letter: string(rune('A' + i)), text: strings.TrimSpace(entry)})
	}
	return opts
}

// The normalizer is an ordered cascade of named strategies. Each one either
// produces a canonical letter or defers to the next; there is no backtracking
// once a letter is accepted. Keeping the order in one slice makes the
// "never accept a letter without a matching option" rule a single guard in
// each strategy instead of conditionals scattered through the caller.
type letterStrategy struct {
	name  string
	match func(answer string, opts []option) (string, bool)
}

var letterStrategies = []letterStrategy{
	{"exact-letter", matchExactLetter},
	{"prefix-letter", matchPrefixLetter},
	{"content", matchContent},
}

// NormalizeMultipleChoiceProblem converts a messy correct answer (a bare
// letter, "A: some echoed text", or the full text of one option) into a
// canonical uppercase letter validated against the resolved option list.
// Problems of any other answer type pass through untouched.
func NormalizeMultipleChoiceProblem(p Problem) (Normalized, error) {
	if p.AnswerType != "multiple_choice" {
		return Normalized{CorrectAnswer: p.CorrectAnswer, Options: p.Options}, nil
	}

	raw := p.Options
	if len(raw) == 0 {
		raw = ExtractOptionsFromQuestionText(p.QuestionText)
	}
	opts := parseOptionList(raw)

	answer := strings.TrimSpace(p.CorrectAnswer)
	for _, s := range letterStrategies {
		if letter, ok := s.match(answer, opts); ok {
			return Normalized{CorrectAnswer: letter, Options: raw}, nil
		}
	}

	if len(opts) == 0 {
		return Normalized{}, ErrMissingOptions
	}

	// Options exist but nothing identified the answer. Fall back to the
	// first option's letter; unlike a blind first-character guess this is
	// always gradable.
	return Normalized{CorrectAnswer: opts[0].letter, Options: raw}, nil
}

// answerLetter reads a leading A-D off the answer, case-insensitively.
func answerLetter(answer string) (string, bool) {
	if answer == "" {
		return "", false
	}
	letter := strings.ToUpper(answer[:1])
	if letter < "A" || letter > "D" {
		return "", false
	}
	return letter, true
}

func hasOptionLetter(opts []option, letter string) bool {
	for _, o := range opts {
		if o.letter == letter {
			return true
		}
	}
	return false
}

// matchExactLetter accepts an answer that is exactly one letter with a
// corresponding option.
func matchExactLetter(answer string, opts []option) (string, bool) {
	if len(answer) != 1 {
		return "", false
	}
	letter, ok := answerLetter(answer)
	if !ok || !hasOptionLetter(opts, letter) {
		return "", false
	}
	return letter, true
}

// matchPrefixLetter accepts answers like "A: Framför Toad" where the leading
// character names an existing option. A leading letter with no matching
// option (say the C in "cirka 30") is not accepted here; content matching
// gets its chance first.
func matchPrefixLetter(answer string, opts []option) (string, bool) {
	letter, ok := answerLetter(answer)
	if !ok || !hasOptionLetter(opts, letter) {
		return "", false
	}
	return letter, true
}

// matchContent resolves the answer by comparing its text against each
// option's text: equal, or either contains the other.
func matchContent(answer string, opts []option) (string, bool) {
	want := strings.ToLower(strings.TrimSpace(answer))
	if want == "" {
		return "", false
	}
	for _, o := range opts {
		have := strings.ToLower(o.text)
		if have == "" {
			continue
		}
		if have == want || strings.Contains(have, want) || strings.Contains(want, have) {
			return o.letter, true
		}
	}
	return "", false
}
