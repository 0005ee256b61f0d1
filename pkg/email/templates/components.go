// Package templates holds the HTML bodies of the account service emails.
package templates

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// ActionEmail is the data behind a single call-to-action email.
type ActionEmail struct {
	Name        string // greeting name, may be empty
	ActionURL   string
	ExpiresIn   string // human readable, e.g. "15 minutes"
	SupportMail string
}

// Activation renders the account activation email.
func Activation(data ActionEmail) templ.Component {
	return layout("Activate your account", actionBody(data,
		"Thanks for signing up. Confirm your email address to activate your account.",
		"Activate account",
		"If you did not create an account, you can ignore this message.",
	))
}

// PasswordReset renders the password reset email.
func PasswordReset(data ActionEmail) templ.Component {
	return layout("Reset your password", actionBody(data,
		"We received a request to reset your password.",
		"Reset password",
		"If you did not request a reset, your password stays unchanged.",
	))
}

func layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<!DOCTYPE html><html><head><meta charset="utf-8"><title>`+
			templ.EscapeString(title)+
			`</title></head><body style="font-family:Arial,sans-serif;color:#1f2937;background:#f9fafb;padding:24px">`+
			`<div style="max-width:560px;margin:0 auto;background:#ffffff;border-radius:8px;padding:32px">`+
			`<h1 style="font-size:20px;margin:0 0 16px">`+templ.EscapeString(title)+`</h1>`); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</div></body></html>`)
		return err
	})
}

func actionBody(data ActionEmail, intro, button, outro string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		greeting := "Hello,"
		if data.Name != "" {
			greeting = "Hello " + data.Name + ","
		}

		html := `<p>` + templ.EscapeString(greeting) + `</p>` +
			`<p>` + templ.EscapeString(intro) + `</p>` +
			`<p style="margin:24px 0"><a href="` + templ.EscapeString(data.ActionURL) + `" ` +
			`style="background:#2563eb;color:#ffffff;padding:12px 20px;border-radius:6px;text-decoration:none">` +
			templ.EscapeString(button) + `</a></p>`
		if data.ExpiresIn != "" {
			html += `<p style="font-size:13px;color:#6b7280">This link expires in ` + templ.EscapeString(data.ExpiresIn) + `.</p>`
		}
		html += `<p style="font-size:13px;color:#6b7280">` + templ.EscapeString(outro) + `</p>`
		if data.SupportMail != "" {
			html += `<p style="font-size:13px;color:#6b7280">Questions? Write to ` + templ.EscapeString(data.SupportMail) + `.</p>`
		}

		_, err := io.WriteString(w, html)
		return err
	})
}
