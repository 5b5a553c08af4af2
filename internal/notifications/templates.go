package notifications

import (
	"bytes"
	"fmt"
	"html/template"
)

// Rendered is a notification expanded into a deliverable email.
type Rendered struct {
	Subject string
	HTML    string
}

type emailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[Kind]emailTemplate{
	KindRegistrationReceived: {
		subject: "Team Registration Confirmation",
		body: template.Must(template.New("registration_received").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Team Registration Confirmation</h2>
  <p>Dear Team Manager,</p>
  <p>Thank you for registering your team <strong>{{.team_name}}</strong>!</p>
  <p><strong>Registration ID:</strong> {{.registration_id}}</p>
  <h3>Next steps:</h3>
  <ol>
    <li>Complete your team's player roster</li>
    <li>Complete the registration payment</li>
    <li>Wait for admin approval</li>
  </ol>
  <p>You will receive another email once your payment is processed and your team is approved.</p>
  <p>Best regards,<br>The Tournament Team</p>
</div>`)),
	},
	KindPaymentConfirmed: {
		subject: "Payment Confirmation",
		body: template.Must(template.New("payment_confirmed").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Payment Successful</h2>
  <p>Dear Team Manager,</p>
  <p>We have received your payment for <strong>{{.team_name}}</strong>.</p>
  <p><strong>Amount:</strong> {{.currency}} {{.amount}}</p>
  <p><strong>Transaction ID:</strong> {{.transaction_id}}</p>
  <p>Your registration is now complete and pending admin approval.</p>
  <p>Best regards,<br>The Tournament Team</p>
</div>`)),
	},
	KindTeamApproved: {
		subject: "Team Approved",
		body: template.Must(template.New("team_approved").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Congratulations!</h2>
  <p>Dear Team Manager,</p>
  <p>Your team <strong>{{.team_name}}</strong> has been approved.</p>
  <p>Your team is now officially registered and will appear in the tournament listings. Match schedules will be announced soon.</p>
  <p>Best regards,<br>The Tournament Team</p>
</div>`)),
	},
	KindTeamRejected: {
		subject: "Team Registration Update",
		body: template.Must(template.New("team_rejected").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2>Registration Update</h2>
  <p>Dear Team Manager,</p>
  <p>We regret to inform you that the registration of <strong>{{.team_name}}</strong> was not approved.</p>
  <p>For any questions, please contact our support team.</p>
  <p>Best regards,<br>The Tournament Team</p>
</div>`)),
	},
}

// Render expands the notification's template with its data.
func Render(n Notification) (*Rendered, error) {
	tpl, ok := templates[n.Kind]
	if !ok {
		return nil, fmt.Errorf("no template for notification kind %q", n.Kind)
	}

	var buf bytes.Buffer
	if err := tpl.body.Execute(&buf, n.Data); err != nil {
		return nil, fmt.Errorf("render %q template: %w", n.Kind, err)
	}
	return &Rendered{Subject: tpl.subject, HTML: buf.String()}, nil
}
