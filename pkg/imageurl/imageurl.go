// Package imageurl builds displayable asset URLs from image identifiers.
//
// Identifiers come in two shapes. Short ids (4 to 6 characters) address
// pre-rendered assets on the dedicated CDN and ignore transform options.
// Everything else is a full id served by the image delivery service, which
// takes transform options as query parameters.
package imageurl

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf16"
)

const (
	DefaultCDNHost      = "https://img.unbelong.xyz"
	DefaultDeliveryHost = "https://imagedelivery.net"
	DefaultAccountHash  = "wdR9enbrkaPsEgUtgFORrw"

	shortMinLen = 4
	shortMaxLen = 6
)

// Kind tells which host an identifier is addressed against.
type Kind int

const (
	KindFull Kind = iota
	KindShort
)

func (k Kind) String() string {
	if k == KindShort {
		return "short"
	}
	return "full"
}

// Ref is an image identifier classified once, when it enters the program.
type Ref struct {
	id   string
	kind Kind
}

// Parse classifies id by its length in UTF-16 code units. It never fails:
// an empty id is a full-form ref.
func Parse(id string) Ref {
	n := utf16Len(id)
	if n >= shortMinLen && n <= shortMaxLen {
		return Ref{id: id, kind: KindShort}
	}
	return Ref{id: id, kind: KindFull}
}

func utf16Len(s string) int {
	return len(utf16.Encode([]rune(s)))
}

func (r Ref) ID() string     { return r.id }
func (r Ref) Kind() Kind     { return r.kind }
func (r Ref) IsZero() bool   { return r.id == "" }
func (r Ref) String() string { return r.id }

func (r Ref) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.id)
}

func (r *Ref) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*r = Ref{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("image id: %w", err)
	}
	*r = Parse(s)
	return nil
}

type Fit string

const (
	FitScaleDown Fit = "scale-down"
	FitContain   Fit = "contain"
	FitCover     Fit = "cover"
	FitCrop      Fit = "crop"
	FitPad       Fit = "pad"
)

func (f Fit) Valid() bool {
	switch f {
	case FitScaleDown, FitContain, FitCover, FitCrop, FitPad:
		return true
	}
	return false
}

type Format string

const (
	FormatAuto Format = "auto"
	FormatWebP Format = "webp"
	FormatAVIF Format = "avif"
	FormatJSON Format = "json"
)

func (f Format) Valid() bool {
	switch f {
	case FormatAuto, FormatWebP, FormatAVIF, FormatJSON:
		return true
	}
	return false
}

// Options are display hints. Zero values mean "not set".
type Options struct {
	Width   int
	Height  int
	Fit     Fit
	Quality int
	Format  Format
}

// Resolver holds the hosts URLs are rooted at.
type Resolver struct {
	CDNHost      string
	DeliveryHost string
	AccountHash  string
}

// Default returns the resolver for the production hosts.
func Default() Resolver {
	return Resolver{
		CDNHost:      DefaultCDNHost,
		DeliveryHost: DefaultDeliveryHost,
		AccountHash:  DefaultAccountHash,
	}
}

// URL is Default().Resolve(id, opts).
func URL(id string, opts Options) string {
	return Default().Resolve(id, opts)
}

// Resolve classifies id and builds its URL.
func (r Resolver) Resolve(id string, opts Options) string {
	return r.URL(Parse(id), opts)
}

// URL builds the asset URL for ref. Short refs only honour Format (avif or
// webp); full refs carry every set option as a query parameter in the order
// width, height, fit, quality, format.
func (r Resolver) URL(ref Ref, opts Options) string {
	if ref.kind == KindShort {
		ext := "webp"
		if opts.Format == FormatAVIF {
			ext = "avif"
		}
		return strings.TrimRight(r.CDNHost, "/") + "/" + ref.id + "." + ext
	}

	var b strings.Builder
	b.WriteString(strings.TrimRight(r.DeliveryHost, "/"))
	b.WriteByte('/')
	b.WriteString(r.AccountHash)
	b.WriteByte('/')
	b.WriteString(ref.id)
	b.WriteString("/public")

	sep := byte('?')
	add := func(key, value string) {
		b.WriteByte(sep)
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(value))
		sep = '&'
	}
	if opts.Width != 0 {
		add("width", strconv.Itoa(opts.Width))
	}
	if opts.Height != 0 {
		add("height", strconv.Itoa(opts.Height))
	}
	if opts.Fit != "" {
		add("fit", string(opts.Fit))
	}
	if opts.Quality != 0 {
		add("quality", strconv.Itoa(opts.Quality))
	}
	if opts.Format != "" {
		add("format", string(opts.Format))
	}
	return b.String()
}
