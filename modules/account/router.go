package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Mountable interface {
	Handle() http.Handler
}

type Config struct {
	// Prefix is the mount path of the account endpoints. Refresh and
	// role-selection cookies are scoped to it.
	Prefix string `env:"API_PREFIX" envDefault:"/api/user"`
}

// RouterOptions configures what the account module mounts.
type RouterOptions struct {
	Prefix   string
	Accounts Mountable
}

// Router mounts the account endpoints under opts.Prefix.
//
// Example:
//
//	h := account.NewHandlers(svc, tokens, cookies, account.Config{Prefix: "/api/user"})
//
//	r := chi.NewRouter()
//	r.Mount("/", account.Router(account.RouterOptions{
//	    Prefix:   "/api/user",
//	    Accounts: h,
//	}))
func Router(opts RouterOptions) chi.Router {
	r := chi.NewRouter()
	if opts.Accounts != nil {
		prefix := opts.Prefix
		if prefix == "" {
			prefix = "/"
		}
		r.Mount(prefix, opts.Accounts.Handle())
	}
	return r
}
