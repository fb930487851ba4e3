package session

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/construinmuniza/cotizador/internal/quote"
	"github.com/construinmuniza/cotizador/report"
)

func TestManagerLifecycle(t *testing.T) {
	m := NewManager()

	sess := m.Open()
	require.NotNil(t, sess)
	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.False(t, sess.CreatedAt.IsZero())

	got, err := m.Get(sess.ID)
	require.NoError(t, err)
	assert.Same(t, sess, got)

	m.Close(sess.ID)
	_, err = m.Get(sess.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestManagerGetUnknown(t *testing.T) {
	m := NewManager()
	_, err := m.Get(uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewManager()
	a := m.Open()
	b := m.Open()

	a.AddItem(quote.LineItem{Reference: "ALF-12X300", Quantity: 2, UnitPrice: 42378})
	a.Append(Utterance{Producer: ProducerUser, Text: "hola"})

	assert.Len(t, a.Items(), 1)
	assert.Empty(t, b.Items())
	assert.Len(t, a.History(), 1)
	assert.Empty(t, b.History())
	assert.NotSame(t, a.Catalog(), b.Catalog())
}

func TestDraftItems(t *testing.T) {
	sess := NewManager().Open()

	sess.AddItem(quote.LineItem{Reference: "A", Quantity: 1, UnitPrice: 1000})
	sess.AddItem(quote.LineItem{Reference: "B", Quantity: 2, UnitPrice: 2000})
	sess.AddItem(quote.LineItem{Reference: "C", Quantity: 3, UnitPrice: 3000})

	require.NoError(t, sess.RemoveItem(1))
	items := sess.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "A", items[0].Reference)
	assert.Equal(t, "C", items[1].Reference)

	assert.Error(t, sess.RemoveItem(-1))
	assert.Error(t, sess.RemoveItem(2))

	sess.ClearItems()
	assert.Empty(t, sess.Items())
}

func TestItemsReturnsCopy(t *testing.T) {
	sess := NewManager().Open()
	sess.AddItem(quote.LineItem{Reference: "A", Quantity: 1, UnitPrice: 1000})

	items := sess.Items()
	items[0].Reference = "mutated"
	assert.Equal(t, "A", sess.Items()[0].Reference)
}

func TestCurrentQuotation(t *testing.T) {
	sess := NewManager().Open()

	_, ok := sess.Quotation()
	assert.False(t, ok)

	sess.SetQuotation(quote.Quotation{Number: "COT-MAD-202503-123456"})
	q, ok := sess.Quotation()
	require.True(t, ok)
	assert.Equal(t, "COT-MAD-202503-123456", q.Number)
}

func TestLetterheadDefaultsAndOverride(t *testing.T) {
	sess := NewManager().Open()
	assert.Equal(t, report.DefaultLetterhead(), sess.Letterhead())

	sess.SetLetterhead(report.Letterhead{Name: "Maderas del Norte"})
	assert.Equal(t, "Maderas del Norte", sess.Letterhead().Name)
}
