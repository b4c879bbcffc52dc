package contact

import (
	"fmt"
	"html"
	"log/slog"

	"github.com/microcosm-cc/bluemonday"
)

// Deliverer receives a message once the simulated send completes. It cannot
// fail.
type Deliverer interface {
	Deliver(v Values)
}

// DelivererFunc adapts a function to Deliverer.
type DelivererFunc func(v Values)

func (f DelivererFunc) Deliver(v Values) { f(v) }

// Message is a composed contact email.
type Message struct {
	To      string
	ReplyTo string
	Subject string
	Body    string
}

var strict = bluemonday.StrictPolicy()

// plain strips markup. The policy escapes its output for HTML, so it is
// unescaped back into the plain text the mail body uses.
func plain(s string) string {
	return html.UnescapeString(strict.Sanitize(s))
}

// Compose builds the message that would be mailed to the site owner. Visitor
// input is stripped of markup.
func Compose(to string, v Values) Message {
	name := plain(v.Name)
	return Message{
		To:      to,
		ReplyTo: plain(v.Email),
		Subject: fmt.Sprintf("Portfolio Contact: %s", name),
		Body: fmt.Sprintf(`
New contact form submission from your portfolio:

Name: %s
Email: %s
Message:
%s

---
Sent from your portfolio contact form
`, name, plain(v.Email), plain(v.Message)),
	}
}

// LogDeliverer logs composed messages instead of mailing them.
type LogDeliverer struct {
	log *slog.Logger
	to  string
}

func NewLogDeliverer(log *slog.Logger, to string) *LogDeliverer {
	return &LogDeliverer{log: log, to: to}
}

func (d *LogDeliverer) Deliver(v Values) {
	msg := Compose(d.to, v)
	d.log.Info("Contact message accepted",
		"to", msg.To,
		"reply_to", msg.ReplyTo,
		"subject", msg.Subject,
		"body_length", len(msg.Body),
	)
	d.log.Debug("Contact message body", "body", msg.Body)
}
