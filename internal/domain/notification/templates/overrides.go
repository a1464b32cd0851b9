package templates

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

// Override replaces parts of a catalog entry.
type Override struct {
	Title    string `yaml:"title"`
	Message  string `yaml:"message"`
	Priority string `yaml:"priority"`
}

func (o Override) apply(tpl Template) Template {
	if o.Title != "" {
		tpl.Title = o.Title
	}
	if o.Message != "" {
		tpl.Message = o.Message
	}
	if o.Priority != "" {
		tpl.Priority = vo.Priority(o.Priority)
	}
	return tpl
}

var (
	overridesMu sync.RWMutex
	overrides   = map[vo.NotificationType]Override{}
)

// LoadOverrides reads a YAML file keyed by notification type and replaces the
// active overrides. Each entry may set title, message and priority; category
// membership is fixed. An empty path clears the overrides.
//
//	NEW_BOOKING:
//	  title: "Réservation reçue"
//	  priority: HIGH
func LoadOverrides(path string) (int, error) {
	if path == "" {
		SetOverrides(nil)
		return 0, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, fmt.Errorf("failed to read template overrides: %w", err)
	}

	parsed, err := ParseOverrides(raw)
	if err != nil {
		return 0, err
	}

	SetOverrides(parsed)
	return len(parsed), nil
}

// ParseOverrides validates a YAML override document without activating it.
func ParseOverrides(raw []byte) (map[vo.NotificationType]Override, error) {
	var doc map[string]Override
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse template overrides: %w", err)
	}

	parsed := make(map[vo.NotificationType]Override, len(doc))
	for key, o := range doc {
		t, err := vo.NewNotificationType(key)
		if err != nil {
			return nil, fmt.Errorf("template Override: %w", err)
		}
		if o.Priority != "" {
			if _, err := vo.NewPriority(o.Priority); err != nil {
				return nil, fmt.Errorf("template Override %s: %w", key, err)
			}
		}
		parsed[t] = o
	}
	return parsed, nil
}

// SetOverrides replaces the active overrides; nil clears them.
func SetOverrides(o map[vo.NotificationType]Override) {
	overridesMu.Lock()
	defer overridesMu.Unlock()

	if o == nil {
		o = map[vo.NotificationType]Override{}
	}
	overrides = o
}
