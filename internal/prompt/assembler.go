// Package prompt builds the text sent to the completion model from the
// persona, the user's preferences and the session history.
package prompt

import (
	"fmt"
	"strings"

	"github.com/xiaot623/gogo/foodai/internal/domain"
)

// Display names used when rendering turns.
const (
	UserLabel      = "Usuário"
	AssistantLabel = "FoodAI"
)

// ImageTurnPrefix marks user turns that carried an image.
const ImageTurnPrefix = "[Imagem enviada] "

const partSeparator = "\n\n"

// Persona is the fixed system description of the assistant.
const Persona = `Você é o FoodAI, um assistente virtual inteligente e amigável inspirado no iFood.
Sua missão é ajudar os usuários a descobrir comidas deliciosas, fazer pedidos e gerenciar suas preferências alimentares.

Características da sua personalidade:
- Entusiasta e apaixonado por comida
- Prestativo e atencioso com preferências do usuário
- Conhecedor de diversas culinárias e pratos
- Sugere opções baseadas no histórico e preferências
- Usa emojis ocasionalmente para tornar a conversa mais amigável 🍕🍔🍜

Quando o usuário pedir sugestões (texto):
- Sugira pratos específicos e deliciosos baseados no pedido
- Descreva os pratos de forma apetitosa
- Pergunte se o usuário gostaria de ver opções de restaurantes ou fazer um pedido

Quando o usuário enviar uma imagem de comida:
- Identifique o prato com precisão
- Descreva os ingredientes visíveis
- Sugira pratos similares
- Ofereça informações nutricionais aproximadas`

const imageTemplate = `Analise esta imagem de comida e responda à seguinte mensagem do usuário: %s

Por favor:
1. Identifique o prato ou alimento na imagem
2. Descreva os ingredientes visíveis
3. Sugira pratos similares que o usuário possa gostar
4. Forneça informações nutricionais aproximadas se relevante`

// Assembler composes completion prompts around a fixed persona.
type Assembler struct {
	persona string
}

// NewAssembler creates an assembler. An empty persona falls back to Persona.
func NewAssembler(persona string) *Assembler {
	if persona == "" {
		persona = Persona
	}
	return &Assembler{persona: persona}
}

// Assemble renders a text-only prompt: persona, optional preference context,
// every prior turn, the new message and a trailing assistant cue.
func (a *Assembler) Assemble(history []domain.Turn, prefs *domain.Preferences, message string) string {
	parts := make([]string, 0, len(history)+4)
	parts = append(parts, a.persona)

	if prefs != nil {
		parts = append(parts, BuildPreferenceContext(*prefs))
	}

	for _, turn := range history {
		parts = append(parts, renderTurn(turn.Role, turn.Content))
	}

	parts = append(parts, renderTurn(domain.RoleUser, message))
	parts = append(parts, AssistantLabel+":")

	return strings.Join(parts, partSeparator)
}

// AssembleImage renders the text half of a multimodal prompt. The message is
// embedded in the image analysis template; history is not included.
func (a *Assembler) AssembleImage(prefs *domain.Preferences, message string) string {
	text := a.persona + partSeparator + fmt.Sprintf(imageTemplate, message)
	if prefs != nil {
		text += partSeparator + BuildPreferenceContext(*prefs)
	}
	return text
}

// DisplayName maps a role to the label shown to the model.
func DisplayName(role domain.Role) string {
	if role == domain.RoleUser {
		return UserLabel
	}
	return AssistantLabel
}

func renderTurn(role domain.Role, content string) string {
	return DisplayName(role) + ": " + content
}
