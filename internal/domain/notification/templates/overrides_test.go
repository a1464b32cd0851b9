package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

func TestLoadOverrides(t *testing.T) {
	t.Cleanup(func() { SetOverrides(nil) })

	path := filepath.Join(t.TempDir(), "overrides.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
NEW_BOOKING:
  title: "Réservation reçue"
  priority: HIGH
`), 0o600))

	n, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	tpl, ok := Lookup(vo.NotificationTypeNewBooking)
	require.True(t, ok)
	assert.Equal(t, "Réservation reçue", tpl.Title)
	assert.Equal(t, vo.PriorityHigh, tpl.Priority)
	assert.Equal(t, vo.CategoryBooking, tpl.Category)
	assert.Contains(t, tpl.Message, "{{participant_name}}", "message untouched")

	_, err = LoadOverrides("")
	require.NoError(t, err)
	tpl, _ = Lookup(vo.NotificationTypeNewBooking)
	assert.Equal(t, "Nouvelle réservation", tpl.Title)
}

func TestParseOverrides_Rejects(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"unknown type", "NOT_A_TYPE:\n  title: x\n"},
		{"bad priority", "NEW_BOOKING:\n  priority: CRITICAL\n"},
		{"malformed", "NEW_BOOKING: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseOverrides([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}
