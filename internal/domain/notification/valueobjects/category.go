package valueobjects

import "fmt"

type Category string

const (
	CategoryPlanning     Category = "planning"
	CategoryBooking      Category = "booking"
	CategorySocial       Category = "social"
	CategoryPerformance  Category = "performance"
	CategorySystem       Category = "system"
	CategoryCommercial   Category = "commercial"
	CategoryPersonalized Category = "personalized"
	CategoryUrgent       Category = "urgent"
)

// CategoryInfo is the static display entry for a category.
type CategoryInfo struct {
	ID          Category
	Name        string
	Icon        string
	Description string
}

var categoryInfos = []CategoryInfo{
	{CategoryPlanning, "Planification", "calendar", "Création, modification et rappels de vos événements"},
	{CategoryBooking, "Réservations", "ticket", "Réservations, paiements et billets"},
	{CategorySocial, "Social", "users", "Abonnés, commentaires, avis et invitations"},
	{CategoryPerformance, "Performance", "chart", "Statistiques, rapports et paliers atteints"},
	{CategorySystem, "Système", "settings", "Compte, sécurité et annonces de la plateforme"},
	{CategoryCommercial, "Offres", "tag", "Promotions, codes de réduction et newsletters"},
	{CategoryPersonalized, "Pour vous", "star", "Recommandations basées sur vos centres d'intérêt"},
	{CategoryUrgent, "Urgent", "alert", "Alertes critiques qui ne peuvent pas être désactivées"},
}

var validCategories = func() map[Category]bool {
	m := make(map[Category]bool, len(categoryInfos))
	for _, info := range categoryInfos {
		m[info.ID] = true
	}
	return m
}()

// CategoryInfos returns every category in display order.
func CategoryInfos() []CategoryInfo {
	out := make([]CategoryInfo, len(categoryInfos))
	copy(out, categoryInfos)
	return out
}

func (c Category) String() string {
	return string(c)
}

func (c Category) IsValid() bool {
	return validCategories[c]
}

func (c Category) IsUrgent() bool {
	return c == CategoryUrgent
}

// PreferenceKey is the preference field gating this category, e.g. "booking_enabled".
func (c Category) PreferenceKey() string {
	return string(c) + "_enabled"
}

func NewCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid category: %s", s)
	}
	return c, nil
}
