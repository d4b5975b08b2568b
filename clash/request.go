package clash

import (
	"net/url"
	"sort"
	"strings"

	"github.com/briangreenhill/clashclient/cache"
)

// Request describes a single API call. Endpoint returns a path template such as
// "clans/{tag}" whose placeholders are filled from PathParameters.
type Request interface {
	Endpoint() string
	PathParameters() map[string]string
	QueryParametersToInclude() map[string]any
}

// Validator is implemented by requests that can check their own arguments before
// any network activity.
type Validator interface {
	Validate() error
}

// APIRequest is a general Request built from literal values.
type APIRequest struct {
	Path   string
	Params map[string]string
	Query  map[string]any
}

func (r APIRequest) Endpoint() string                         { return r.Path }
func (r APIRequest) PathParameters() map[string]string        { return r.Params }
func (r APIRequest) QueryParametersToInclude() map[string]any { return r.Query }

// URLPath renders the request's endpoint with its path parameters substituted and
// path-escaped. Duplicate separators are collapsed.
func URLPath(req Request) string {
	p := req.Endpoint()
	for name, value := range req.PathParameters() {
		p = strings.ReplaceAll(p, "{"+name+"}", url.PathEscape(value))
	}
	return collapseSlashes(p)
}

// QueryString renders the included query parameters sorted by name, prefixed with
// "?" when there is at least one.
func QueryString(req Request, f QueryStringFormatter) (string, error) {
	params := req.QueryParametersToInclude()
	if len(params) == 0 {
		return "", nil
	}

	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		n, v, err := f.Format(name, params[name])
		if err != nil {
			return "", err
		}
		parts = append(parts, n+"="+v)
	}
	return "?" + strings.Join(parts, "&"), nil
}

// CacheName derives the cache key for req. Two requests with the same endpoint,
// path parameters and query parameters always share a name.
func CacheName(req Request, f QueryStringFormatter) (string, error) {
	q, err := QueryString(req, f)
	if err != nil {
		return "", err
	}
	return cache.NormalizeKey(URLPath(req) + q), nil
}

// requestURL joins the base URL, version and rendered path. The scheme separator
// is kept while any other doubled separators collapse.
func requestURL(cfg endpointConfig, path, query string) string {
	raw := strings.TrimRight(cfg.baseURL, "/") + "/" + strings.Trim(cfg.version, "/") + "/" + strings.TrimLeft(path, "/")
	scheme, rest, found := strings.Cut(raw, "://")
	if !found {
		return collapseSlashes(raw) + query
	}
	return scheme + "://" + collapseSlashes(rest) + query
}

func collapseSlashes(p string) string {
	for strings.Contains(p, "//") {
		p = strings.ReplaceAll(p, "//", "/")
	}
	return p
}
