package templates

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/edofi/fiwe/internal/domain/notification/valueobjects"
)

func TestCatalog_CoversEveryType(t *testing.T) {
	require.Len(t, catalog, len(vo.AllNotificationTypes))

	for _, nt := range vo.AllNotificationTypes {
		tpl, ok := Lookup(nt)
		require.True(t, ok, "missing template for %s", nt)
		assert.True(t, tpl.Category.IsValid(), "%s has invalid category", nt)
		assert.True(t, tpl.Priority.IsValid(), "%s has invalid priority", nt)
		assert.NotEmpty(t, tpl.Title, "%s has empty title", nt)
		assert.NotEmpty(t, tpl.Message, "%s has empty message", nt)
	}
}

func TestCategories(t *testing.T) {
	wantSizes := map[vo.Category]int{
		vo.CategoryPlanning:     12,
		vo.CategoryBooking:      13,
		vo.CategorySocial:       11,
		vo.CategoryPerformance:  8,
		vo.CategorySystem:       9,
		vo.CategoryCommercial:   6,
		vo.CategoryPersonalized: 6,
		vo.CategoryUrgent:       7,
	}

	groups := Categories()
	require.Len(t, groups, 8)

	total := 0
	for _, g := range groups {
		assert.Len(t, g.Types, wantSizes[g.ID], "category %s", g.ID)
		total += len(g.Types)
	}
	assert.Equal(t, 72, total)

	assert.Equal(t, vo.NotificationTypeNewBooking, groups[1].Types[0])
}

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		nt   vo.NotificationType
		want vo.Category
	}{
		{vo.NotificationTypeNewBooking, vo.CategoryBooking},
		{vo.NotificationTypeEventReminder1h, vo.CategoryPlanning},
		{vo.NotificationTypeNewsletter, vo.CategoryCommercial},
		{vo.NotificationTypeSafetyAlert, vo.CategoryUrgent},
	}
	for _, tt := range tests {
		t.Run(string(tt.nt), func(t *testing.T) {
			got, ok := CategoryOf(tt.nt)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := CategoryOf("NOT_A_TYPE")
	assert.False(t, ok)
}

func TestUrgentTypesHaveUrgentPriority(t *testing.T) {
	for _, nt := range vo.AllNotificationTypes {
		tpl, _ := Lookup(nt)
		if tpl.Category.IsUrgent() {
			assert.Equal(t, vo.PriorityUrgent, tpl.Priority, nt)
		}
	}
	assert.Equal(t, vo.PriorityMedium, DefaultPriority("NOT_A_TYPE"))
}
