package outreach

import (
	"context"
	"errors"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"edufair/internal/domain"
)

// ErrNoCredentials is returned when a sender is built without credentials.
var ErrNoCredentials = errors.New("missing credentials")

type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

// TwilioSender sends SMS through the Twilio REST API.
type TwilioSender struct {
	api  messageCreator
	from string
}

// NewTwilio returns a sender for the given account.
func NewTwilio(accountSID, authToken, from string) (*TwilioSender, error) {
	if accountSID == "" || authToken == "" || from == "" {
		return nil, ErrNoCredentials
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &TwilioSender{api: client.Api, from: from}, nil
}

// SendSMS implements domain.SMSSender. The Twilio client has no context
// support, so ctx is only checked before the call.
func (s *TwilioSender) SendSMS(ctx context.Context, to, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)
	_, err := s.api.CreateMessage(params)
	return err
}

var _ domain.SMSSender = (*TwilioSender)(nil)
