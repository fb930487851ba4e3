// Package chat runs one conversational turn: relay the user prompt to the
// agent, record both sides in the session history, and decide whether the
// agent's reply should be fed through line-item extraction.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/construinmuniza/cotizador/internal/agent"
	"github.com/construinmuniza/cotizador/internal/extract"
	"github.com/construinmuniza/cotizador/internal/quote"
	"github.com/construinmuniza/cotizador/internal/session"
)

// Agent is the minimal subset of the conversational client the service uses.
type Agent interface {
	Query(ctx context.Context, prompt string, history []agent.Message) (string, error)
}

// quotationKeywords gate extraction on the USER prompt, not the reply: the
// agent answers all sorts of questions, and only turns where the user asked
// about pricing should produce a line item.
var quotationKeywords = []string{
	"cotiza",
	"cotíza",
	"cotización",
	"cotizacion",
	"precio",
	"cuesta",
	"cuánto",
	"cuanto",
	"vale",
	"costo",
}

// ShouldExtract reports whether the user prompt asks for pricing.
func ShouldExtract(prompt string) bool {
	lower := strings.ToLower(prompt)
	for _, kw := range quotationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// TurnResult is the outcome of one conversational turn.
type TurnResult struct {
	Reply string `json:"reply"`
	// Extracted is true when the turn attempted line-item extraction.
	Extracted bool `json:"extracted"`
	// Item is the resolved line item, when extraction succeeded.
	Item *quote.LineItem `json:"item,omitempty"`
	// NeedsManualEntry is true when extraction ran but found no price;
	// the caller must fall back to manual entry.
	NeedsManualEntry bool `json:"needs_manual_entry"`
}

// Service orchestrates conversational turns.
type Service struct {
	logger    *slog.Logger
	agent     Agent
	extractor *extract.Extractor
}

// NewService constructs the chat service.
func NewService(logger *slog.Logger, ag Agent, extractor *extract.Extractor) *Service {
	return &Service{logger: logger, agent: ag, extractor: extractor}
}

// Turn sends the prompt to the agent on behalf of the session, records both
// utterances, and runs extraction over the reply when the prompt asks for
// pricing. Extraction finding no price is not a failed turn.
func (s *Service) Turn(ctx context.Context, sess *session.Session, prompt string) (TurnResult, error) {
	history := toAgentHistory(sess.History())

	reply, err := s.agent.Query(ctx, prompt, history)
	if err != nil {
		return TurnResult{}, fmt.Errorf("query agent: %w", err)
	}

	sess.Append(session.Utterance{Producer: session.ProducerUser, Text: prompt})
	sess.Append(session.Utterance{Producer: session.ProducerAgent, Text: reply})

	result := TurnResult{Reply: reply}
	if !ShouldExtract(prompt) {
		return result, nil
	}

	result.Extracted = true
	item, err := s.extractor.Resolve(reply)
	switch {
	case errors.Is(err, extract.ErrNoPriceFound):
		result.NeedsManualEntry = true
		s.logger.Info("no price in agent reply, manual entry required",
			slog.String("session", sess.ID.String()))
	case err != nil:
		return TurnResult{}, fmt.Errorf("resolve reply: %w", err)
	default:
		result.Item = item
		sess.AddItem(*item)
		s.logger.Info("line item extracted",
			slog.String("session", sess.ID.String()),
			slog.String("reference", item.Reference),
			slog.Int64("unit_price", item.UnitPrice),
			slog.Int64("quantity", item.Quantity))
	}
	return result, nil
}

func toAgentHistory(history []session.Utterance) []agent.Message {
	out := make([]agent.Message, 0, len(history))
	for _, u := range history {
		role := agent.RoleUser
		if u.Producer == session.ProducerAgent {
			role = agent.RoleAssistant
		}
		out = append(out, agent.Message{Role: role, Content: u.Text})
	}
	return out
}
