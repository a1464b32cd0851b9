package templates

import (
	"fmt"
	"regexp"
	"strings"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

var (
	placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z0-9_]+)\s*\}\}`)
	spaceRun           = regexp.MustCompile(`[ \t]{2,}`)
)

// Rendered is a template filled with concrete values.
type Rendered struct {
	Title    string
	Message  string
	Priority vo.Priority
	Category vo.Category
}

// Render fills the type's title and message with vars. A placeholder with no
// matching variable renders as an empty string. The only error is an unknown
// type.
func Render(t vo.NotificationType, vars map[string]any) (Rendered, error) {
	tpl, ok := Lookup(t)
	if !ok {
		return Rendered{}, fmt.Errorf("no template for notification type: %s", t)
	}

	return Rendered{
		Title:    Interpolate(tpl.Title, vars),
		Message:  Interpolate(tpl.Message, vars),
		Priority: tpl.Priority,
		Category: tpl.Category,
	}, nil
}

// Interpolate replaces every {{name}} in pattern with the formatted value of
// vars[name] and tidies the whitespace left by empty substitutions.
func Interpolate(pattern string, vars map[string]any) string {
	out := placeholderPattern.ReplaceAllStringFunc(pattern, func(match string) string {
		name := placeholderPattern.FindStringSubmatch(match)[1]
		value, ok := vars[name]
		if !ok {
			return ""
		}
		return FormatValue(value)
	})
	return strings.TrimSpace(spaceRun.ReplaceAllString(out, " "))
}
