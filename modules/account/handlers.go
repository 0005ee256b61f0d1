package account

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/campusnet/accounts/handler"
	"github.com/campusnet/accounts/pkg/binder"
	"github.com/campusnet/accounts/pkg/cookie"
	"github.com/campusnet/accounts/pkg/logger"
	"github.com/campusnet/accounts/svc/account"
	"github.com/campusnet/accounts/svc/auth"
)

const (
	RefreshCookie   = "refresh_token"
	SelectionCookie = "role_selection"
)

// Handlers serves the account endpoints over JSON.
type Handlers struct {
	svc          *account.Service
	tokens       *auth.TokenService
	cookies      *cookie.Manager
	cfg          Config
	log          *slog.Logger
	errorHandler handler.ErrorHandler
	rateLimit    func(http.Handler) http.Handler
}

type HandlersOption func(*Handlers)

func WithLogger(l *slog.Logger) HandlersOption {
	return func(h *Handlers) {
		h.log = l
	}
}

// WithRateLimit guards the unauthenticated credential endpoints.
func WithRateLimit(mw func(http.Handler) http.Handler) HandlersOption {
	return func(h *Handlers) {
		h.rateLimit = mw
	}
}

func NewHandlers(svc *account.Service, tokens *auth.TokenService, cookies *cookie.Manager, cfg Config, opts ...HandlersOption) *Handlers {
	if cfg.Prefix == "" {
		cfg.Prefix = "/"
	}
	h := &Handlers{
		svc:     svc,
		tokens:  tokens,
		cookies: cookies,
		cfg:     cfg,
		log:     logger.Discard(),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.errorHandler = handler.NewErrorHandler(h.log)
	return h
}

func wrap[R any](h *Handlers, fn handler.HandlerFunc[R], binders ...handler.Bind) http.HandlerFunc {
	return handler.Wrap(fn,
		handler.WithBinders[R](binders...),
		handler.WithErrorHandler[R](h.errorHandler),
	)
}

func (h *Handlers) Handle() http.Handler {
	r := chi.NewRouter()

	jsonBody := binder.JSON()
	pathID := binder.Path(chi.URLParam)

	r.Group(func(r chi.Router) {
		if h.rateLimit != nil {
			r.Use(h.rateLimit)
		}

		r.Post("/signup", wrap(h, h.signUp, jsonBody))
		r.Post("/activation", wrap(h, h.activate, jsonBody))
		r.Post("/signin", wrap(h, h.signIn, jsonBody))
		r.Post("/select-role", wrap(h, h.selectRole, jsonBody))
		r.Post("/forgot", wrap(h, h.forgotPassword, jsonBody))

		r.With(auth.Authenticate(h.tokens, auth.KindAccess, auth.KindReset)).
			Post("/reset", wrap(h, h.resetPassword, jsonBody))
	})

	r.Post("/refresh_token", wrap(h, h.refreshToken))
	r.Get("/logout", wrap(h, h.logout))

	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(h.tokens))

		r.Get("/user_infor", wrap(h, h.me))
		r.Patch("/update_user", wrap(h, h.updateUser, jsonBody))

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin())

			r.Get("/users/{id}", wrap(h, h.getAccount, pathID))
			r.Get("/all_infor", wrap(h, h.listAccounts, binder.Query()))
			r.Patch("/update_role/{id}", wrap(h, h.updateRole, jsonBody, pathID))
			r.Patch("/update_user_status/{id}", wrap(h, h.updateStatus, jsonBody, pathID))
		})
	})

	return r
}

func (h *Handlers) signUp(ctx handler.Context, req SignUpRequest) handler.Response {
	_, err := h.svc.SignUp(ctx, account.SignUpInput{
		InstitutionalID: req.InstitutionalID,
		Name:            req.Name,
		Email:           req.Email,
		Program:         req.Program,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return fail(err)
	}
	return handler.JSON(messageResponse{Message: "Registration successful. Check your email to activate your account."})
}

func (h *Handlers) activate(ctx handler.Context, req ActivationRequest) handler.Response {
	if _, err := h.svc.Activate(ctx, req.ActivationToken); err != nil {
		return failToken(err, errBadActivation)
	}
	return handler.JSON(messageResponse{Message: "Account has been activated."})
}

func (h *Handlers) signIn(ctx handler.Context, req SignInRequest) handler.Response {
	res, err := h.svc.SignIn(ctx, req.Email, req.Password)
	if err != nil {
		return fail(err)
	}

	w := ctx.ResponseWriter()
	if res.RequiresRoleSelection() {
		h.cookies.Set(w, SelectionCookie, res.SelectionToken, h.scoped(auth.KindSelection)...)
		return handler.JSON(roleSelectionResponse{
			RequireRoleSelection: true,
			UserID:               res.Account.ID.Hex(),
			Roles:                res.Account.Roles,
		})
	}

	h.setSessionCookies(w, res.Tokens)
	return handler.JSON(sessionResponse{
		User:            res.Account.View(),
		ActiveRole:      res.Tokens.Role,
		AccessExpiresAt: res.Tokens.AccessExpiresAt.Unix(),
	})
}

func (h *Handlers) selectRole(ctx handler.Context, req SelectRoleRequest) handler.Response {
	selection, err := h.cookies.Get(ctx.Request(), SelectionCookie)
	if err != nil {
		return failure{err: errMissingSelection}
	}

	a, pair, err := h.svc.SelectRole(ctx, selection, req.UserID, req.SelectedRole)
	if err != nil {
		return failToken(err, errBadSelection)
	}

	w := ctx.ResponseWriter()
	h.cookies.Delete(w, SelectionCookie, cookie.WithPath(h.cfg.Prefix))
	h.setSessionCookies(w, pair)
	return handler.JSON(sessionResponse{
		User:            a.View(),
		ActiveRole:      pair.Role,
		AccessExpiresAt: pair.AccessExpiresAt.Unix(),
	})
}

func (h *Handlers) refreshToken(ctx handler.Context, _ emptyRequest) handler.Response {
	refresh, err := h.cookies.Get(ctx.Request(), RefreshCookie)
	if err != nil {
		return failure{err: errMissingRefresh}
	}

	access, err := h.svc.RefreshAccessToken(ctx, refresh)
	if err != nil {
		return failToken(err, errBadRefresh)
	}

	h.cookies.Set(ctx.ResponseWriter(), auth.AccessCookie, access.Token,
		cookie.WithTTL(h.tokens.TTL(auth.KindAccess)))
	return handler.JSON(accessTokenResponse{
		AccessToken: access.Token,
		ExpiresAt:   access.ExpiresAt.Unix(),
	})
}

func (h *Handlers) forgotPassword(ctx handler.Context, req ForgotPasswordRequest) handler.Response {
	if err := h.svc.ForgotPassword(ctx, req.Email); err != nil {
		return fail(err)
	}
	return handler.JSON(messageResponse{Message: "If the address is registered, a reset link is on its way."})
}

func (h *Handlers) resetPassword(ctx handler.Context, req ResetPasswordRequest) handler.Response {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return failure{err: handler.ErrUnauthorized}
	}
	if err := h.svc.ResetPassword(ctx, id.AccountID, req.Password, req.ConfirmPassword); err != nil {
		return fail(err)
	}
	h.clearSessionCookies(ctx.ResponseWriter())
	return handler.JSON(messageResponse{Message: "Password has been changed. Please sign in again."})
}

func (h *Handlers) logout(ctx handler.Context, _ emptyRequest) handler.Response {
	refresh, err := h.cookies.Get(ctx.Request(), RefreshCookie)
	if err == nil {
		if err := h.svc.Logout(ctx, refresh); err != nil {
			return fail(err)
		}
	}
	w := ctx.ResponseWriter()
	h.clearSessionCookies(w)
	h.cookies.Delete(w, SelectionCookie, cookie.WithPath(h.cfg.Prefix))
	return handler.JSON(messageResponse{Message: "Logged out."})
}

func (h *Handlers) me(ctx handler.Context, _ emptyRequest) handler.Response {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return failure{err: handler.ErrUnauthorized}
	}
	a, err := h.svc.GetAccount(ctx, id.AccountID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(a.View())
}

func (h *Handlers) updateUser(ctx handler.Context, req UpdateUserRequest) handler.Response {
	id, ok := auth.IdentityFromContext(ctx)
	if !ok {
		return failure{err: handler.ErrUnauthorized}
	}
	a, err := h.svc.UpdateProfile(ctx, id.AccountID, req.input())
	if err != nil {
		return fail(err)
	}
	return handler.JSON(a.View())
}

func (h *Handlers) getAccount(ctx handler.Context, req AccountIDRequest) handler.Response {
	a, err := h.svc.GetAccount(ctx, req.ID)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(a.View())
}

func (h *Handlers) listAccounts(ctx handler.Context, req ListAccountsRequest) handler.Response {
	accounts, err := h.svc.ListAccounts(ctx, account.ListFilter{
		Role:   req.Role,
		Status: account.Status(req.Status),
		Limit:  req.Limit,
		Offset: req.Offset,
	})
	if err != nil {
		return fail(err)
	}
	return handler.JSON(account.Views(accounts))
}

func (h *Handlers) updateRole(ctx handler.Context, req UpdateRoleRequest) handler.Response {
	a, err := h.svc.UpdateRoles(ctx, req.ID, req.Roles...)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(a.View())
}

func (h *Handlers) updateStatus(ctx handler.Context, req UpdateStatusRequest) handler.Response {
	a, err := h.svc.UpdateStatus(ctx, req.ID, req.Status)
	if err != nil {
		return fail(err)
	}
	return handler.JSON(a.View())
}

// scoped returns cookie options for a token kind that only the account
// endpoints read.
func (h *Handlers) scoped(k auth.Kind) []cookie.Option {
	return []cookie.Option{cookie.WithPath(h.cfg.Prefix), cookie.WithTTL(h.tokens.TTL(k))}
}

func (h *Handlers) setSessionCookies(w http.ResponseWriter, pair *account.TokenPair) {
	h.cookies.Set(w, auth.AccessCookie, pair.AccessToken, cookie.WithTTL(h.tokens.TTL(auth.KindAccess)))
	h.cookies.Set(w, RefreshCookie, pair.RefreshToken, h.scoped(auth.KindRefresh)...)
}

func (h *Handlers) clearSessionCookies(w http.ResponseWriter) {
	h.cookies.Delete(w, auth.AccessCookie)
	h.cookies.Delete(w, RefreshCookie, cookie.WithPath(h.cfg.Prefix))
}

var _ Mountable = (*Handlers)(nil)
