package prompt

import (
	"strings"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// PreferencesHeader opens every preference context block.
const PreferencesHeader = "Preferências do usuário:"

// BuildPreferenceContext renders a preference record as a labeled block, one
// line per non-empty field in a fixed order. An empty record yields only the
// header.
func BuildPreferenceContext(p domain.Preferences) string {
	lines := []string{PreferencesHeader}

	if len(p.DietaryRestrictions) > 0 {
		lines = append(lines, "- Restrições alimentares: "+strings.Join(p.DietaryRestrictions, ", "))
	}
	if len(p.Allergies) > 0 {
		lines = append(lines, "- Alergias: "+strings.Join(p.Allergies, ", "))
	}
	if len(p.FavoriteCuisines) > 0 {
		lines = append(lines, "- Culinárias favoritas: "+strings.Join(p.FavoriteCuisines, ", "))
	}
	if p.SpiceLevel != "" {
		lines = append(lines, "- Nível de pimenta: "+string(p.SpiceLevel))
	}
	if p.BudgetRange != "" {
		lines = append(lines, "- Faixa de preço: "+string(p.BudgetRange))
	}

	return strings.Join(lines, "\n")
}
