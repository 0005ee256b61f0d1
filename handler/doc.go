// Package handler turns typed request handlers into http.HandlerFunc values.
//
// A HandlerFunc receives a Context and a request value that binders populate
// from the HTTP request, and returns a Response that renders itself. Every
// response uses the JSON envelope
//
//	{"data": ...}
//	{"error": {"code": "...", "message": "...", "details": {...}}}
//
// Errors returned by binders or rendered through JSONError are classified
// by HTTPError and ValidationError; anything else is a 500 whose message is
// never exposed to the client.
//
//	func signin(ctx handler.Context, req SigninRequest) handler.Response {
//		acc, err := svc.SignIn(ctx, req.Email, req.Password)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.JSON(acc)
//	}
//
//	r.Post("/signin", handler.Wrap(signin, handler.WithBinders[SigninRequest](binder.JSON())))
package handler
