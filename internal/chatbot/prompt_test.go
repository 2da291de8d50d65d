package chatbot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kitnetia/internal/domain/entity"
)

func sampleProperty() *entity.Property {
	return &entity.Property{
		ID:           "prop-1",
		Title:        "Kitnet Studio Centro",
		Address:      "Rua Augusta, 123 - Centro, São Paulo - SP",
		PropertyType: "Kitnet",
		Rent:         1200,
		Bedrooms:     1,
		Bathrooms:    1,
		AreaSqm:      35,
		Description:  "Linda kitnet mobiliada.",
		Amenities:    []string{"Ar condicionado", "Internet Wi-Fi", "Mobiliado"},
		Rules:        []string{"Não é permitido fumar"},
		IsActive:     true,
	}
}

func TestCompose_EmbedsListing(t *testing.T) {
	composer, err := NewPromptComposer(PromptOptions{})
	require.NoError(t, err)

	prompt := composer.Compose(sampleProperty())

	assert.Contains(t, prompt, "Você é Sofia")
	assert.Contains(t, prompt, "- Título: Kitnet Studio Centro")
	assert.Contains(t, prompt, "- Preço: R$ 1200/mês")
	assert.Contains(t, prompt, "- Área: 35m²")
	assert.Contains(t, prompt, "- Características: Ar condicionado, Internet Wi-Fi, Mobiliado")
	assert.Contains(t, prompt, "- Regras: Não é permitido fumar")
	assert.Contains(t, prompt, "[LEAD_QUALIFICADO: Nome, Telefone, Email, Renda, Urgência, Interesse_Visita]")
}

func TestCompose_MissingOptionalFields(t *testing.T) {
	composer, err := NewPromptComposer(PromptOptions{})
	require.NoError(t, err)

	prompt := composer.Compose(&entity.Property{Title: "Studio", Rent: 950.5})

	assert.Contains(t, prompt, "- Bairro: "+NotSpecified)
	assert.Contains(t, prompt, "- Descrição: "+NotSpecified)
	assert.Contains(t, prompt, "- Área: "+NotSpecified)
	assert.Contains(t, prompt, "- Proximidades: "+NotSpecified)
	assert.Contains(t, prompt, "- Características: Não especificadas")
	assert.Contains(t, prompt, "R$ 950.5/mês")
	assert.NotContains(t, prompt, "{{")
}

func TestCompose_ReasonVariant(t *testing.T) {
	composer, err := NewPromptComposer(PromptOptions{Persona: "Clara", IncludeReason: true})
	require.NoError(t, err)

	prompt := composer.Compose(sampleProperty())
	assert.Contains(t, prompt, "Você é Clara")
	assert.Contains(t, prompt, "motivo da mudança")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(prompt), "Interesse_Visita, Motivo]"))
}

func TestCompose_CustomTemplate(t *testing.T) {
	composer, err := NewPromptComposer(PromptOptions{Template: "{{persona}} fala de {{title}} por R$ {{rent}}"})
	require.NoError(t, err)
	assert.Equal(t, "Sofia fala de Kitnet Studio Centro por R$ 1200", composer.Compose(sampleProperty()))

	_, err = NewPromptComposer(PromptOptions{Template: "{{persona"})
	assert.Error(t, err)
}

func TestWelcomeMessage(t *testing.T) {
	msg := WelcomeMessage("", "", "Kitnet Studio Centro")
	assert.True(t, strings.HasPrefix(msg, `Olá! 😊 Eu sou a Sofia, assistente virtual do imóvel "Kitnet Studio Centro".`))

	assert.Equal(t, "Oi, sou Clara (Studio)", WelcomeMessage("Oi, sou {{persona}} ({{title}})", "Clara", "Studio"))
	assert.Contains(t, WelcomeMessage("{{broken", "Clara", "Studio"), "Eu sou a Clara")
}
