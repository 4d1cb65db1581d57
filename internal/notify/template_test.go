package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRenderFillsPlaceholders(t *testing.T) {
	body := Render(Message{
		Event: EventRequestApproved,
		Data: map[string]string{
			"Date": "2026-03-12",
			"Time": "10:00",
		},
	})

	assert.Equal(t, "Confirmado! Seu horário em 2026-03-12 às 10:00 foi aprovado.", body)
}

func TestRenderUnknownEventFallback(t *testing.T) {
	body := Render(Message{
		Event: Event("something_new"),
		Data: map[string]string{
			"Date": "2026-03-12",
			"Time": "10:00",
		},
	})

	assert.Equal(t, "Atualização do seu horário: 2026-03-12 às 10:00.", body)
}

func TestRenderKeepsUnmatchedPlaceholders(t *testing.T) {
	body := Render(Message{Event: EventReminder, Data: map[string]string{"Date": "2026-03-12"}})
	assert.Contains(t, body, "[Time]")
}
