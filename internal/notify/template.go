package notify

import "strings"

var templates = map[Event]string{
	EventRequestCreated:      "Olá [Name]! Recebemos seu pedido de horário para [Date] às [Time]. Você receberá uma confirmação em breve.",
	EventAdminNewRequest:     "Novo pedido de horário: [Name] ([Phone]) em [Date] às [Time].",
	EventRequestApproved:     "Confirmado! Seu horário em [Date] às [Time] foi aprovado.",
	EventRequestRejected:     "Infelizmente não foi possível confirmar seu horário de [Date] às [Time]. Tente outro horário.",
	EventAdminBooked:         "Olá [Name]! Seu horário foi marcado para [Date] às [Time].",
	EventCancelledByCustomer: "Seu horário de [Date] às [Time] foi cancelado conforme solicitado.",
	EventCancelledByAdmin:    "Seu horário de [Date] às [Time] foi cancelado pela barbearia. Entre em contato para remarcar.",
	EventCancelledBySystem:   "Seu horário de [Date] às [Time] foi cancelado por alteração na agenda da barbearia. Pedimos desculpas.",
	EventSlotAvailable:       "Boa notícia! Abriu um horário em [Date] às [Time]. Corra para garantir o seu.",
	EventReminder:            "Lembrete: você tem horário amanhã, [Date] às [Time].",
}

// Render fills the event template with the message data. Unknown events fall
// back to a generic line so a missing template never drops a notification.
func Render(msg Message) string {
	text, ok := templates[msg.Event]
	if !ok {
		text = "Atualização do seu horário: [Date] às [Time]."
	}

	for key, value := range msg.Data {
		text = strings.ReplaceAll(text, "["+key+"]", value)
	}

	return text
}
