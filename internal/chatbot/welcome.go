package chatbot

import (
	"github.com/valyala/fasttemplate"
)

const DefaultWelcomeTemplate = `Olá! 😊 Eu sou a {{persona}}, assistente virtual do imóvel "{{title}}". 

Estou aqui para responder suas dúvidas sobre este imóvel e ajudar você a agendar uma visita!

Pode me perguntar sobre localização, preço, características ou qualquer outra informação que precise. Como posso ajudar você hoje?`

// DefaultFallbackMessage replaces the assistant turn whenever a completion fails.
const DefaultFallbackMessage = "Desculpe, estou com dificuldades técnicas no momento. Que tal tentar entrar em contato diretamente pelo WhatsApp? 😊"

// WelcomeMessage renders the first assistant turn shown when a chat panel opens.
// An empty or malformed template selects DefaultWelcomeTemplate.
func WelcomeMessage(template, persona, title string) string {
	if template == "" {
		template = DefaultWelcomeTemplate
	}
	if persona == "" {
		persona = DefaultPersona
	}
	tmpl, err := fasttemplate.NewTemplate(template, "{{", "}}")
	if err != nil {
		tmpl = fasttemplate.New(DefaultWelcomeTemplate, "{{", "}}")
	}
	return tmpl.ExecuteString(map[string]interface{}{
		"persona": persona,
		"title":   title,
	})
}
