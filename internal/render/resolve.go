package render

import (
	"errors"
	"regexp"
	"strings"
)

// ErrEmptyTemplate the template body is absent. Missing placeholder values
// never error; an absent template is the one resolver-level failure and the
// caller must surface it as a configuration problem.
var ErrEmptyTemplate = errors.New("template content is empty")

// tokenRe matches {{key}} with optional whitespace inside the braces.
// Keys are case sensitive.
var tokenRe = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_]+)\s*\}\}`)

// Resolve substitutes every known {{key}} token in the template with its
// value. Unknown keys are left verbatim so layout tokens and typos survive
// untouched instead of being swallowed.
func Resolve(template string, values map[string]string) (string, error) {
	if strings.TrimSpace(template) == "" {
		return "", ErrEmptyTemplate
	}
	out := tokenRe.ReplaceAllStringFunc(template, func(m string) string {
		key := tokenRe.FindStringSubmatch(m)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return m
	})
	return out, nil
}

// ResolveInput is the one-call form: build the value map from the record
// bag, then substitute.
func ResolveInput(template string, in Input) (string, error) {
	return Resolve(template, BuildValues(in))
}
