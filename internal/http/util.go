package httpx

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-playground/validator/v10"
)

func asValidationErrors(err error, target *validator.ValidationErrors) bool {
	return errors.As(err, target)
}

// loginRedirectURL builds the login URL carrying the current path so a
// successful login can bounce back.
func loginRedirectURL(r *http.Request) string {
	return "/login?redirect_uri=" + url.QueryEscape(r.URL.RequestURI())
}
