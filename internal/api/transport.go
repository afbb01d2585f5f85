package api

import "net/http"

// UARoundTripper stamps a User-Agent on every outgoing request.
type UARoundTripper struct {
	RT        http.RoundTripper
	UserAgent string
}

func (t *UARoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	rt := t.RT
	if rt == nil {
		rt = http.DefaultTransport
	}
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.UserAgent)
	return rt.RoundTrip(req)
}
