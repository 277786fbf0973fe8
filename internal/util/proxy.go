package util

import (
	"net/http"
	"net/url"
)

// NewProxyFunc returns the proxy selector for outbound document
// fetches and NER provider calls. Explicitly configured proxy URLs win
// per scheme; with none configured the standard HTTP_PROXY/HTTPS_PROXY
// environment variables apply.
func NewProxyFunc(httpProxy, httpsProxy, noProxy string) func(*http.Request) (*url.URL, error) {
	if httpProxy == "" && httpsProxy == "" {
		return http.ProxyFromEnvironment
	}

	return func(req *http.Request) (*url.URL, error) {
		if req.URL.Scheme == "https" && httpsProxy != "" {
			return url.Parse(httpsProxy)
		}
		if httpProxy != "" {
			return url.Parse(httpProxy)
		}
		return http.ProxyFromEnvironment(req)
	}
}
