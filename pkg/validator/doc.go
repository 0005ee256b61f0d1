// Package validator provides rule-based validation of request values.
//
// Rules are built from the value under test and evaluated together by Apply,
// which collects every failure into ValidationErrors:
//
//	err := validator.Apply(
//		validator.Required("email", req.Email),
//		validator.ValidEmail("email", req.Email),
//		validator.MinLen("password", req.Password, 8),
//		validator.Equal("confirm_password", req.ConfirmPassword, req.Password),
//	)
//
// Optional fields are wrapped with When so they are only checked when set.
package validator
