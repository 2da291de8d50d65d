// Package chatpanel is the client side of the property chatbot: one panel per
// listing, holding the session transcript and allowing a single request in
// flight at a time.
package chatpanel

import (
	"context"
	"errors"
	"strings"
	"sync"

	"kitnetia/internal/chatbot"
	"kitnetia/internal/domain/entity"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingResponse
)

func (s State) String() string {
	if s == StateAwaitingResponse {
		return "awaiting_response"
	}
	return "idle"
}

var (
	ErrEmptyMessage    = errors.New("message is empty")
	ErrRequestInFlight = errors.New("a message is already being answered")
	ErrNotAwaiting     = errors.New("no request in flight")
)

const genericWelcome = "Olá! 😊 Como posso ajudar você com este imóvel?"

type Request struct {
	PropertyID string
	Message    string
	// History holds every turn before Message, welcome included.
	History []entity.Turn
}

type Reply struct {
	Response      string `json:"response"`
	LeadQualified bool   `json:"lead_qualified"`
	Degraded      bool   `json:"degraded"`
	Error         string `json:"error,omitempty"`
}

// Transport reaches the chatbot API.
type Transport interface {
	Welcome(ctx context.Context, propertyID string) (string, error)
	Send(ctx context.Context, req Request) (*Reply, error)
}

type NotificationKind int

const (
	NotifyInfo NotificationKind = iota
	NotifySuccess
	NotifyError
)

type Notification struct {
	Kind NotificationKind
	Text string
}

type Options struct {
	FallbackMessage string
	// Notify receives non-blocking toasts. It is called without the panel lock held.
	Notify func(Notification)
}

type Panel struct {
	propertyID string
	transport  Transport
	fallback   string
	notify     func(Notification)

	mu       sync.Mutex
	open     bool
	welcomed bool
	state    State
	turns    []entity.Turn
}

func New(propertyID string, transport Transport, opts Options) *Panel {
	fallback := opts.FallbackMessage
	if fallback == "" {
		fallback = chatbot.DefaultFallbackMessage
	}
	return &Panel{
		propertyID: propertyID,
		transport:  transport,
		fallback:   fallback,
		notify:     opts.Notify,
	}
}

// Open shows the panel. The first open seeds the transcript with the welcome turn.
func (p *Panel) Open(ctx context.Context) {
	p.mu.Lock()
	p.open = true
	needWelcome := !p.welcomed
	p.welcomed = true
	p.mu.Unlock()

	if !needWelcome {
		return
	}

	text, err := p.transport.Welcome(ctx, p.propertyID)
	if err != nil || strings.TrimSpace(text) == "" {
		text = genericWelcome
	}

	p.mu.Lock()
	welcome := entity.Turn{Role: entity.RoleAssistant, Content: text}
	p.turns = append([]entity.Turn{welcome}, p.turns...)
	p.mu.Unlock()
}

// Close hides the panel. The transcript survives for the session.
func (p *Panel) Close() {
	p.mu.Lock()
	p.open = false
	p.mu.Unlock()
}

func (p *Panel) Toggle(ctx context.Context) {
	if p.IsOpen() {
		p.Close()
		return
	}
	p.Open(ctx)
}

func (p *Panel) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Panel) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Turns returns a copy of the transcript, oldest first.
func (p *Panel) Turns() []entity.Turn {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]entity.Turn, len(p.turns))
	copy(out, p.turns)
	return out
}

// Begin appends the user turn and moves the panel to awaiting. The returned
// request must be answered with Finish.
func (p *Panel) Begin(message string) (Request, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return Request{}, ErrEmptyMessage
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == StateAwaitingResponse {
		return Request{}, ErrRequestInFlight
	}

	history := make([]entity.Turn, len(p.turns))
	copy(history, p.turns)

	p.turns = append(p.turns, entity.Turn{Role: entity.RoleUser, Content: text})
	p.state = StateAwaitingResponse

	return Request{PropertyID: p.propertyID, Message: text, History: history}, nil
}

// Finish appends the assistant turn for the outstanding request. A transport
// error or a degraded reply still yields an assistant turn, never a dangling user turn.
func (p *Panel) Finish(reply *Reply, err error) (entity.Turn, error) {
	p.mu.Lock()
	if p.state != StateAwaitingResponse {
		p.mu.Unlock()
		return entity.Turn{}, ErrNotAwaiting
	}

	var note *Notification
	text := p.fallback
	switch {
	case err != nil || reply == nil:
		note = &Notification{Kind: NotifyError, Text: "Não foi possível falar com a assistente. Tente novamente."}
	case reply.Degraded:
		if reply.Response != "" {
			text = reply.Response
		}
		note = &Notification{Kind: NotifyError, Text: "A assistente está instável no momento."}
	default:
		text = reply.Response
		if reply.LeadQualified {
			note = &Notification{Kind: NotifySuccess, Text: "Seus dados foram enviados ao proprietário!"}
		}
	}

	turn := entity.Turn{Role: entity.RoleAssistant, Content: text}
	p.turns = append(p.turns, turn)
	p.state = StateIdle
	p.mu.Unlock()

	if note != nil && p.notify != nil {
		p.notify(*note)
	}
	return turn, nil
}

// Send runs one full exchange synchronously.
func (p *Panel) Send(ctx context.Context, message string) (entity.Turn, error) {
	req, err := p.Begin(message)
	if err != nil {
		return entity.Turn{}, err
	}
	reply, err := p.transport.Send(ctx, req)
	return p.Finish(reply, err)
}
