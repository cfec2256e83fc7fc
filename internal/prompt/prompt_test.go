package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

func TestBuildPreferenceContextEmpty(t *testing.T) {
	got := BuildPreferenceContext(domain.Preferences{})
	assert.Equal(t, PreferencesHeader, got)
}

func TestBuildPreferenceContextDietAndSpice(t *testing.T) {
	got := BuildPreferenceContext(domain.Preferences{
		DietaryRestrictions: []string{"vegan"},
		SpiceLevel:          domain.SpiceLevelHot,
	})

	lines := strings.Split(got, "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, PreferencesHeader, lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "- "))
	assert.Contains(t, lines[1], "vegan")
	assert.True(t, strings.HasPrefix(lines[2], "- "))
	assert.Contains(t, lines[2], "hot")
}

func TestBuildPreferenceContextFieldOrder(t *testing.T) {
	got := BuildPreferenceContext(domain.Preferences{
		BudgetRange:         domain.BudgetRangePremium,
		SpiceLevel:          "extra-hot",
		FavoriteCuisines:    []string{"japonesa", "italiana"},
		Allergies:           []string{"amendoim"},
		DietaryRestrictions: []string{"vegetariano", "sem glúten"},
	})

	want := strings.Join([]string{
		PreferencesHeader,
		"- Restrições alimentares: vegetariano, sem glúten",
		"- Alergias: amendoim",
		"- Culinárias favoritas: japonesa, italiana",
		"- Nível de pimenta: extra-hot",
		"- Faixa de preço: premium",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestAssembleOrdersParts(t *testing.T) {
	a := NewAssembler("")
	history := []domain.Turn{{Role: domain.RoleUser, Content: "Oi"}}

	got := a.Assemble(history, nil, "quero pizza")

	personaAt := strings.Index(got, Persona)
	priorAt := strings.Index(got, "Usuário: Oi")
	newAt := strings.Index(got, "Usuário: quero pizza")
	require.Equal(t, 0, personaAt)
	require.Greater(t, priorAt, personaAt)
	require.Greater(t, newAt, priorAt)
	assert.True(t, strings.HasSuffix(got, "Usuário: quero pizza\n\nFoodAI:"))
	assert.NotContains(t, got, PreferencesHeader)
}

func TestAssembleWithPreferencesAndMixedRoles(t *testing.T) {
	a := NewAssembler("persona")
	history := []domain.Turn{
		{Role: domain.RoleUser, Content: "a"},
		{Role: domain.RoleUser, Content: "b"},
		{Role: domain.RoleAssistant, Content: "c"},
	}
	prefs := &domain.Preferences{Allergies: []string{"camarão"}}

	got := a.Assemble(history, prefs, "d")

	want := strings.Join([]string{
		"persona",
		PreferencesHeader + "\n- Alergias: camarão",
		"Usuário: a",
		"Usuário: b",
		"FoodAI: c",
		"Usuário: d",
		"FoodAI:",
	}, "\n\n")
	assert.Equal(t, want, got)
}

func TestAssembleImage(t *testing.T) {
	a := NewAssembler("persona")

	got := a.AssembleImage(&domain.Preferences{SpiceLevel: domain.SpiceLevelMild}, "o que é isso?")

	assert.True(t, strings.HasPrefix(got, "persona\n\nAnalise esta imagem"))
	assert.Contains(t, got, "mensagem do usuário: o que é isso?")
	assert.Contains(t, got, "1. Identifique o prato")
	assert.Contains(t, got, "4. Forneça informações nutricionais")
	assert.True(t, strings.HasSuffix(got, PreferencesHeader+"\n- Nível de pimenta: mild"))
	assert.NotContains(t, got, "FoodAI:")
}

func TestAssembleImageWithoutPreferences(t *testing.T) {
	got := NewAssembler("persona").AssembleImage(nil, "prato")
	assert.NotContains(t, got, PreferencesHeader)
}
