package account

import (
	"context"

	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/pkg/sanitizer"
	"github.com/campusnet/accounts/pkg/validator"
)

// ProfileInput is a partial profile update; nil fields keep their value
// and an empty string clears an optional field. A non-empty Password (or
// ConfirmPassword) replaces the password.
type ProfileInput struct {
	Name      *string
	Program   *string
	Address   *string
	Phone     *string
	Bio       *string
	Avatar    *string
	Youtube   *string
	Instagram *string
	Facebook  *string
	Twitter   *string
	Github    *string
	Website   *string

	Password        string
	ConfirmPassword string
}

type linkField struct {
	name string
	in   *string
	dst  *string
}

func (s *Service) UpdateProfile(ctx context.Context, accountID string, in ProfileInput) (*Account, error) {
	a, err := s.store.ByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	p := a.Profile

	var rules []validator.Rule
	if in.Name != nil {
		p.Name = sanitizer.SingleLine(*in.Name)
		rules = append(rules, validator.Required("name", p.Name), validator.MaxLen("name", p.Name, 100))
	}
	if in.Program != nil {
		p.Program = sanitizer.SingleLine(*in.Program)
		rules = append(rules, validator.Required("program", p.Program), validator.MaxLen("program", p.Program, 100))
	}
	if in.Address != nil {
		p.Address = sanitizer.SingleLine(*in.Address)
		rules = append(rules, validator.MaxLen("address", p.Address, 200))
	}
	if in.Phone != nil {
		p.Phone = sanitizer.SingleLine(*in.Phone)
		rules = append(rules, validator.MaxLen("phone", p.Phone, 32))
	}
	if in.Bio != nil {
		p.Bio = sanitizer.MultiLine(*in.Bio)
		rules = append(rules, validator.MaxLen("bio", p.Bio, 1000))
	}

	links := []linkField{
		{"avatar", in.Avatar, &p.Avatar},
		{"youtube", in.Youtube, &p.Youtube},
		{"instagram", in.Instagram, &p.Instagram},
		{"facebook", in.Facebook, &p.Facebook},
		{"twitter", in.Twitter, &p.Twitter},
		{"github", in.Github, &p.Github},
		{"website", in.Website, &p.Website},
	}
	for _, l := range links {
		if l.in == nil {
			continue
		}
		*l.dst = sanitizer.Trim(*l.in)
		rules = append(rules, validator.When(*l.dst != "",
			validator.ValidURL(l.name, *l.dst),
			validator.MaxLen(l.name, *l.dst, 500),
		)...)
	}

	changePassword := in.Password != "" || in.ConfirmPassword != ""
	if changePassword {
		rules = append(rules, passwordRules(in.Password)...)
	}
	if err := validator.Apply(rules...); err != nil {
		return nil, err
	}
	if changePassword && in.Password != in.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	var hash string
	if changePassword {
		if hash, err = s.hashPassword(in.Password); err != nil {
			return nil, err
		}
	}
	updated, err := s.store.UpdateProfile(ctx, accountID, p, hash, s.timestamp())
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "profile updated", logger.AccountID(accountID), logger.Event("update_profile"))
	return updated, nil
}
