package chat

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construinmuniza/cotizador/internal/agent"
	"github.com/construinmuniza/cotizador/internal/extract"
	"github.com/construinmuniza/cotizador/internal/session"
)

type stubAgent struct {
	reply   string
	err     error
	prompts []string
	history [][]agent.Message
}

func (s *stubAgent) Query(_ context.Context, prompt string, history []agent.Message) (string, error) {
	s.prompts = append(s.prompts, prompt)
	s.history = append(s.history, history)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func newTestService(ag Agent) *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(logger, ag, extract.New(extract.DefaultConfig()))
}

func TestShouldExtract(t *testing.T) {
	cases := []struct {
		prompt string
		want   bool
	}{
		{"Cotízame 5 alfardas de 12x300", true},
		{"¿cuánto cuesta un estacón inmunizado?", true},
		{"necesito el precio de las tablas", true},
		{"cuanto vale la mesa picnic", true},
		{"¿qué madera recomiendas para exteriores?", false},
		{"hola, buenos días", false},
		{"", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ShouldExtract(tc.prompt), "prompt: %q", tc.prompt)
	}
}

func TestTurnWithoutPricingIntent(t *testing.T) {
	ag := &stubAgent{reply: "La madera inmunizada resiste la intemperie."}
	svc := newTestService(ag)
	sess := session.NewManager().Open()

	result, err := svc.Turn(context.Background(), sess, "¿qué madera recomiendas?")
	require.NoError(t, err)

	assert.Equal(t, ag.reply, result.Reply)
	assert.False(t, result.Extracted)
	assert.Nil(t, result.Item)
	assert.False(t, result.NeedsManualEntry)

	history := sess.History()
	require.Len(t, history, 2)
	assert.Equal(t, session.ProducerUser, history[0].Producer)
	assert.Equal(t, "¿qué madera recomiendas?", history[0].Text)
	assert.Equal(t, session.ProducerAgent, history[1].Producer)
	assert.Empty(t, sess.Items())
}

func TestTurnExtractsLineItem(t *testing.T) {
	ag := &stubAgent{reply: "Claro, la alfarda 12x300 tiene un precio de 42.378 COP para 5 unidades."}
	svc := newTestService(ag)
	sess := session.NewManager().Open()

	result, err := svc.Turn(context.Background(), sess, "cotízame 5 alfardas de 12x300")
	require.NoError(t, err)

	assert.True(t, result.Extracted)
	assert.False(t, result.NeedsManualEntry)
	require.NotNil(t, result.Item)
	assert.Equal(t, "ALF-12X300", result.Item.Reference)
	assert.Equal(t, int64(42378), result.Item.UnitPrice)
	assert.Equal(t, int64(5), result.Item.Quantity)
	assert.Equal(t, int64(211890), result.Item.LineTotal)

	items := sess.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "ALF-12X300", items[0].Reference)
}

func TestTurnFallsBackToManualEntry(t *testing.T) {
	ag := &stubAgent{reply: "Con gusto te ayudo, ¿qué medidas necesitas?"}
	svc := newTestService(ag)
	sess := session.NewManager().Open()

	result, err := svc.Turn(context.Background(), sess, "dame el precio de una alfarda")
	require.NoError(t, err)

	assert.True(t, result.Extracted)
	assert.True(t, result.NeedsManualEntry)
	assert.Nil(t, result.Item)
	assert.Empty(t, sess.Items())
	// The turn itself still happened; history keeps both utterances.
	assert.Len(t, sess.History(), 2)
}

func TestTurnAgentFailure(t *testing.T) {
	ag := &stubAgent{err: errors.New("upstream timeout")}
	svc := newTestService(ag)
	sess := session.NewManager().Open()

	_, err := svc.Turn(context.Background(), sess, "cotízame una mesa")
	require.Error(t, err)
	assert.Empty(t, sess.History())
}

func TestTurnSendsPriorHistory(t *testing.T) {
	ag := &stubAgent{reply: "ok"}
	svc := newTestService(ag)
	sess := session.NewManager().Open()
	sess.Append(session.Utterance{Producer: session.ProducerUser, Text: "hola"})
	sess.Append(session.Utterance{Producer: session.ProducerAgent, Text: "buenos días"})

	_, err := svc.Turn(context.Background(), sess, "gracias")
	require.NoError(t, err)

	require.Len(t, ag.history, 1)
	sent := ag.history[0]
	require.Len(t, sent, 2)
	assert.Equal(t, agent.RoleUser, sent[0].Role)
	assert.Equal(t, "hola", sent[0].Content)
	assert.Equal(t, agent.RoleAssistant, sent[1].Role)
	assert.Equal(t, "buenos días", sent[1].Content)
}
