package cards

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// ValidationError maps form field names to a user-facing message.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "invalid card text: " + strings.Join(parts, "; ")
}

type field struct {
	name  string
	label string
	value string
	limit int
}

func (f FormData) fields(limits Limits) []field {
	return []field{
		{"title", "Title", f.Title, limits.Title},
		{"tagline", "Tagline", f.Tagline, limits.Tagline},
		{"funFact", "Fun fact", f.FunFact, limits.FunFact},
		{"proTip", "Pro tip", f.ProTip, limits.ProTip},
	}
}

// ValidateForm checks the title is present, every field is within its
// limit and no field holds a blocked word. blocked may be nil.
func ValidateForm(f FormData, limits Limits, blocked *WordList) error {
	bad := map[string]string{}
	for _, fd := range f.fields(limits) {
		n := utf8.RuneCountInString(fd.value)
		switch {
		case fd.name == "title" && strings.TrimSpace(fd.value) == "":
			bad[fd.name] = "Title is required."
		case fd.limit > 0 && n > fd.limit:
			bad[fd.name] = fmt.Sprintf("%s is too long (%d/%d characters).", fd.label, n, fd.limit)
		case blocked.Contains(fd.value):
			bad[fd.name] = "Please keep it friendly."
		}
	}
	if len(bad) > 0 {
		return &ValidationError{Fields: bad}
	}
	return nil
}
