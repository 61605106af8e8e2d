package handlers

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/sbilibin2017/finance-planner/internal/services"
)

// urlParam returns the decoded value of a route parameter.
// chi captures escaped segments (e.g. %2F) verbatim when the request has a RawPath.
func urlParam(r *http.Request, key string) (string, error) {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value, nil
	}
	return url.PathUnescape(value)
}

// profileParam returns the decoded profile name, or an ErrInvalidProfileName error.
func profileParam(r *http.Request) (string, error) {
	profile, err := urlParam(r, "profile")
	if err != nil {
		return "", fmt.Errorf("%w: %v", services.ErrInvalidProfileName, err)
	}
	return profile, nil
}
