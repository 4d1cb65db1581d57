package notify

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// TwilioSender delivers messages over SMS, or WhatsApp when the destination
// is in E.164 format.
type TwilioSender struct {
	client       *twilio.RestClient
	from         string
	whatsappFrom string
	log          zerolog.Logger
}

func NewTwilioSender(accountSID, authToken, from, whatsappFrom string, log zerolog.Logger) *TwilioSender {
	return &TwilioSender{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		from:         from,
		whatsappFrom: whatsappFrom,
		log:          log,
	}
}

func (s *TwilioSender) Send(ctx context.Context, msg Message) error {
	if msg.To == "" {
		return nil
	}

	to := msg.To
	from := s.from
	if s.whatsappFrom != "" && to[0] == '+' {
		to = "whatsapp:" + to
		from = "whatsapp:" + s.whatsappFrom
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(from)
	params.SetBody(Render(msg))

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return err
	}

	if resp.Sid != nil {
		s.log.Debug().
			Str("event", string(msg.Event)).
			Str("sid", *resp.Sid).
			Msg("notification sent")
	}

	return nil
}
