package account

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/campusnet/accounts/svc/auth"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive, StatusInactive:
		return true
	}
	return false
}

// Profile holds the self-editable fields of an account.
type Profile struct {
	Name      string `bson:"name" json:"name"`
	Program   string `bson:"program" json:"program"`
	Address   string `bson:"address,omitempty" json:"address,omitempty"`
	Phone     string `bson:"phone,omitempty" json:"phone,omitempty"`
	Bio       string `bson:"bio,omitempty" json:"bio,omitempty"`
	Avatar    string `bson:"avatar,omitempty" json:"avatar,omitempty"`
	Youtube   string `bson:"youtube,omitempty" json:"youtube,omitempty"`
	Instagram string `bson:"instagram,omitempty" json:"instagram,omitempty"`
	Facebook  string `bson:"facebook,omitempty" json:"facebook,omitempty"`
	Twitter   string `bson:"twitter,omitempty" json:"twitter,omitempty"`
	Github    string `bson:"github,omitempty" json:"github,omitempty"`
	Website   string `bson:"website,omitempty" json:"website,omitempty"`
}

type Account struct {
	ID              bson.ObjectID `bson:"_id"`
	InstitutionalID string        `bson:"institutional_id"`
	Email           string        `bson:"email"`
	PasswordHash    string        `bson:"password_hash" json:"-"`
	Roles           auth.RoleSet  `bson:"roles"`
	Status          Status        `bson:"status"`
	Profile         Profile       `bson:"profile"`
	CreatedAt       time.Time     `bson:"created_at"`
	UpdatedAt       time.Time     `bson:"updated_at"`
	ActivatedAt     *time.Time    `bson:"activated_at,omitempty"`
}

// View is the public projection of an account. It never carries the
// password hash.
type View struct {
	ID              string       `json:"id"`
	InstitutionalID string       `json:"institutional_id"`
	Email           string       `json:"email"`
	Roles           auth.RoleSet `json:"role"`
	Status          Status       `json:"status"`
	Profile
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	ActivatedAt *time.Time `json:"activated_at,omitempty"`
}

func (a *Account) View() View {
	return View{
		ID:              a.ID.Hex(),
		InstitutionalID: a.InstitutionalID,
		Email:           a.Email,
		Roles:           a.Roles,
		Status:          a.Status,
		Profile:         a.Profile,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
		ActivatedAt:     a.ActivatedAt,
	}
}

func Views(accounts []*Account) []View {
	views := make([]View, 0, len(accounts))
	for _, a := range accounts {
		views = append(views, a.View())
	}
	return views
}

func (a *Account) clone() *Account {
	c := *a
	c.Roles = append(auth.RoleSet(nil), a.Roles...)
	if a.ActivatedAt != nil {
		t := *a.ActivatedAt
		c.ActivatedAt = &t
	}
	return &c
}
