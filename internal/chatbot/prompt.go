package chatbot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/valyala/fasttemplate"

	"kitnetia/internal/domain/entity"
)

const (
	DefaultPersona = "Sofia"

	// NotSpecified is rendered for any optional listing attribute that is missing.
	NotSpecified = "Não especificado"

	markerFields       = "Nome, Telefone, Email, Renda, Urgência, Interesse_Visita"
	markerFieldsReason = "Nome, Telefone, Email, Renda, Urgência, Interesse_Visita, Motivo"
)

// DefaultPromptTemplate is rendered with fasttemplate using {{tag}} placeholders.
const DefaultPromptTemplate = `
Você é {{persona}}, uma assistente virtual especializada em imóveis. Você está atendendo interessados no seguinte imóvel:

**INFORMAÇÕES DO IMÓVEL:**
- Título: {{title}}
- Endereço: {{address}}
- Bairro: {{neighborhood}}
- Preço: R$ {{rent}}/mês
- Tipo: {{property_type}}
- Quartos: {{bedrooms}}
- Banheiros: {{bathrooms}}
- Área: {{area}}
- Descrição: {{description}}
- Características: {{amenities}}
- Regras: {{rules}}
- Proximidades: {{nearby}}

**SEU PAPEL:**
1. Seja amigável, profissional e prestativa
2. Responda perguntas sobre o imóvel de forma detalhada
3. Colete informações do interessado: {{collect}}
4. Qualifique o lead verificando se a renda é compatível (mínimo 3x o valor do aluguel)
5. Ofereça agendamento de visita para leads qualificados
6. Seja natural e humanizada na conversa

**DIRETRIZES:**
- Sempre se apresente como {{persona}} na primeira mensagem se ainda não o fez
- Seja educada e use linguagem profissional mas amigável
- Se perguntarem sobre outros imóveis, diga que você atende especificamente este
- Para agendamento, pergunte preferência de horário (manhã, tarde, fim de semana)
- Se o interessado não tem renda suficiente, seja diplomática e sugira que ele procure imóveis na sua faixa de preço

**IMPORTANTE:** Seja conversacional e natural. Não seja repetitiva ou robótica.

**FORMATO DE RESPOSTA:**
Responda de forma natural e conversacional. Se conseguir todas as informações necessárias do lead ({{collect}}), termine sua resposta com:
[{{marker}}: {{marker_fields}}]
`

type PromptOptions struct {
	Persona string
	// Template overrides DefaultPromptTemplate when non-empty.
	Template string
	// IncludeReason adds "motivo" (reason for moving) to the collected fields.
	IncludeReason bool
}

// PromptComposer renders the system instruction for one listing. It holds no
// per-request state and is safe for concurrent use.
type PromptComposer struct {
	persona       string
	template      *fasttemplate.Template
	includeReason bool
}

func NewPromptComposer(opts PromptOptions) (*PromptComposer, error) {
	persona := opts.Persona
	if persona == "" {
		persona = DefaultPersona
	}

	source := opts.Template
	if source == "" {
		source = DefaultPromptTemplate
	}

	tmpl, err := fasttemplate.NewTemplate(source, "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("parse prompt template: %w", err)
	}

	return &PromptComposer{
		persona:       persona,
		template:      tmpl,
		includeReason: opts.IncludeReason,
	}, nil
}

func (p *PromptComposer) Persona() string {
	return p.persona
}

// MarkerFields is the field order the model is asked to emit inside the marker.
func (p *PromptComposer) MarkerFields() string {
	if p.includeReason {
		return markerFieldsReason
	}
	return markerFields
}

func (p *PromptComposer) Compose(property *entity.Property) string {
	collect := "nome, telefone, email, renda mensal, urgência"
	if p.includeReason {
		collect += ", motivo da mudança"
	}

	return p.template.ExecuteString(map[string]interface{}{
		"persona":       p.persona,
		"title":         orNotSpecified(property.Title),
		"address":       orNotSpecified(property.Address),
		"neighborhood":  orNotSpecified(property.Neighborhood),
		"rent":          formatNumber(property.Rent),
		"property_type": orNotSpecified(property.PropertyType),
		"bedrooms":      strconv.Itoa(property.Bedrooms),
		"bathrooms":     strconv.Itoa(property.Bathrooms),
		"area":          formatArea(property.AreaSqm),
		"description":   orNotSpecified(property.Description),
		"amenities":     joinList(property.Amenities, "Não especificadas"),
		"rules":         joinList(property.Rules, NotSpecified),
		"nearby":        joinList(property.Nearby, NotSpecified),
		"collect":       collect,
		"marker":        MarkerTag,
		"marker_fields": p.MarkerFields(),
	})
}

func orNotSpecified(v string) string {
	if strings.TrimSpace(v) == "" {
		return NotSpecified
	}
	return v
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatArea(v float64) string {
	if v <= 0 {
		return NotSpecified
	}
	return formatNumber(v) + "m²"
}

func joinList(items []string, placeholder string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if s := strings.TrimSpace(item); s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) == 0 {
		return placeholder
	}
	return strings.Join(kept, ", ")
}
