package web

import (
	"net/url"
	"strings"
)

// Links builds the outbound links shown in the admin list. Nothing here is
// fetched.
type Links struct {
	PublicSiteURL string
	AdminEditURL  string
}

func (l Links) PublicURL(slug string) string {
	return strings.TrimRight(l.PublicSiteURL, "/") + "/illustrations/" + url.PathEscape(slug)
}

func (l Links) EditURL(id string) string {
	return strings.TrimRight(l.AdminEditURL, "/") + "/illustrations/" + url.PathEscape(id)
}

// IllustrationPath is the local detail route for slug.
func IllustrationPath(slug string) string {
	return "/illustrations/" + url.PathEscape(slug)
}
