package mail

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

var contactHTML = template.Must(template.New("contact").Parse(`<h3>New contact form message</h3>
<p><strong>Name:</strong> {{.Name}}</p>
<p><strong>Email:</strong> {{.Email}}</p>
<p><strong>Received:</strong> {{.ReceivedAt.Format "2006-01-02 15:04 MST"}}</p>
<p><strong>Message:</strong></p>
{{range .Paragraphs}}<p>{{.}}</p>
{{end}}`))

type contactData struct {
	Name       string
	Email      string
	ReceivedAt time.Time
	Paragraphs []string
}

// ContactNotification renders a contact form submission. Submitted text is
// escaped in the HTML part.
func ContactNotification(name, email, message string, receivedAt time.Time) (Message, error) {
	data := contactData{
		Name:       name,
		Email:      email,
		ReceivedAt: receivedAt.UTC(),
		Paragraphs: strings.Split(message, "\n\n"),
	}

	var html bytes.Buffer
	if err := contactHTML.Execute(&html, data); err != nil {
		return Message{}, fmt.Errorf("render contact mail: %w", err)
	}

	text := fmt.Sprintf("Name: %s\nEmail: %s\n\n%s", name, email, message)

	return Message{
		Subject: fmt.Sprintf("Portfolio contact form - %s", name),
		ReplyTo: email,
		Text:    text,
		HTML:    html.String(),
	}, nil
}
