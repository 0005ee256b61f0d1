package account

import (
	"context"
	"fmt"
	"time"

	"github.com/a-h/templ"

	"github.com/campusnet/accounts/pkg/email"
	"github.com/campusnet/accounts/pkg/email/templates"
	"github.com/campusnet/accounts/svc/auth"
)

const (
	ActivationPath = "/user/activate/"
	ResetPath      = "/user/reset/"

	activationSubject = "Activate your account"
	resetSubject      = "Reset your password"
)

func (s *Service) sendActivation(ctx context.Context, a *Account, token string) error {
	return s.sendAction(ctx, a, activationSubject, "activation", templates.Activation, templates.ActionEmail{
		Name:      a.Profile.Name,
		ActionURL: s.cfg.ClientURL + ActivationPath + token,
		ExpiresIn: humanize(s.tokens.TTL(auth.KindActivation)),
	})
}

func (s *Service) sendReset(ctx context.Context, a *Account, token string) error {
	return s.sendAction(ctx, a, resetSubject, "password-reset", templates.PasswordReset, templates.ActionEmail{
		Name:      a.Profile.Name,
		ActionURL: s.cfg.ClientURL + ResetPath + token,
		ExpiresIn: humanize(s.tokens.TTL(auth.KindReset)),
	})
}

func (s *Service) sendAction(ctx context.Context, a *Account, subject, tag string, tpl func(templates.ActionEmail) templ.Component, data templates.ActionEmail) error {
	data.SupportMail = s.supportEmail
	body, err := templates.Render(ctx, tpl(data))
	if err != nil {
		return fmt.Errorf("account: render %s email: %w", tag, err)
	}
	return s.mailer.Send(ctx, email.Message{
		To:      a.Email,
		Subject: subject,
		HTML:    body,
		Tag:     tag,
	})
}

func humanize(d time.Duration) string {
	switch {
	case d >= time.Hour && d%time.Hour == 0:
		return plural(int(d/time.Hour), "hour")
	case d >= time.Minute && d%time.Minute == 0:
		return plural(int(d/time.Minute), "minute")
	}
	return d.String()
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
