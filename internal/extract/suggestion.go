package extract

import "strings"

// NoAlternativeJustification is used when the model did not name a framework
const NoAlternativeJustification = "No alternative suggestion found."

// Suggestion is a framework recommendation parsed from labelled lines
type Suggestion struct {
	Framework     *string `json:"framework"`
	Justification string  `json:"justification"`
}

// FrameworkSuggestion reads "Framework:" and "Justification:" lines.
// Labels match case-insensitively and the first occurrence of each wins.
func FrameworkSuggestion(text string) Suggestion {
	var s Suggestion
	var haveJustification bool

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)

		switch {
		case s.Framework == nil && strings.HasPrefix(lower, "framework:"):
			v := labelValue(line)
			s.Framework = &v
		case !haveJustification && strings.HasPrefix(lower, "justification:"):
			s.Justification = labelValue(line)
			haveJustification = true
		}
	}
	return s
}

func labelValue(line string) string {
	_, v, _ := strings.Cut(line, ":")
	return strings.TrimSpace(v)
}

// Resolve falls back to the user's own choice when no framework was suggested
func (s Suggestion) Resolve(userChoice string) (framework, justification string) {
	if s.Framework == nil || *s.Framework == "" {
		return userChoice, NoAlternativeJustification
	}
	return *s.Framework, s.Justification
}
