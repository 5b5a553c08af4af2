package notifications

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type TemplatesSuite struct {
	suite.Suite
}

func TestTemplatesSuite(t *testing.T) {
	suite.Run(t, new(TemplatesSuite))
}

func (s *TemplatesSuite) TestRender() {
	s.Run("renders every known kind", func() {
		data := map[string]string{
			"team_name":       "Lions",
			"registration_id": "reg-1",
			"amount":          "150.00",
			"currency":        "usd",
			"transaction_id":  "pi_123",
		}
		for _, kind := range []Kind{KindRegistrationReceived, KindPaymentConfirmed, KindTeamApproved, KindTeamRejected} {
			rendered, err := Render(Notification{Kind: kind, Recipient: "a@b.c", Data: data})
			s.Require().NoError(err, "kind %s", kind)
			s.NotEmpty(rendered.Subject)
			s.Contains(rendered.HTML, "Lions")
		}
	})

	s.Run("escapes HTML in data values", func() {
		rendered, err := Render(Notification{
			Kind: KindTeamApproved,
			Data: map[string]string{"team_name": "<script>alert(1)</script>"},
		})
		s.Require().NoError(err)
		s.False(strings.Contains(rendered.HTML, "<script>"))
	})

	s.Run("fails on an unknown kind", func() {
		_, err := Render(Notification{Kind: Kind("carrier_pigeon")})
		s.Require().Error(err)
	})
}
