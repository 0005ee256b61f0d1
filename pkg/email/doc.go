// Package email sends the transactional mail of the account service.
//
// Sender is implemented by a Postmark-backed client for production and by
// DevSender, which writes each message to disk as an HTML file plus a JSON
// metadata file. Message bodies are rendered with templ components from the
// templates subpackage.
//
//	sender, err := email.NewSender(cfg)
//	html, err := templates.Render(ctx, templates.Activation(data))
//	err = sender.Send(ctx, email.Message{To: addr, Subject: "Activate", HTML: html})
package email
