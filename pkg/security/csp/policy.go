// Package csp builds Content-Security-Policy header values.
package csp

import "strings"

// Header names.
const (
	HeaderEnforce    = "Content-Security-Policy"
	HeaderReportOnly = "Content-Security-Policy-Report-Only"
)

// directiveOrder fixes the serialization order so header values are stable.
var directiveOrder = []string{
	"default-src",
	"script-src",
	"style-src",
	"img-src",
	"font-src",
	"connect-src",
	"frame-ancestors",
	"form-action",
	"base-uri",
	"object-src",
}

// Policy is an immutable set of CSP directives. Every With* call returns a
// copy, so predefined policies can be shared between handlers.
type Policy struct {
	directives map[string][]string
	reportOnly bool
}

// New returns an empty policy.
func New() Policy {
	return Policy{}
}

// With returns a copy of p with directive set to sources. Only directives
// listed in directiveOrder are serialized.
func (p Policy) With(directive string, sources ...string) Policy {
	next := make(map[string][]string, len(p.directives)+1)
	for k, v := range p.directives {
		next[k] = v
	}
	next[directive] = append([]string(nil), sources...)
	return Policy{directives: next, reportOnly: p.reportOnly}
}

func (p Policy) DefaultSrc(s ...string) Policy     { return p.With("default-src", s...) }
func (p Policy) ScriptSrc(s ...string) Policy      { return p.With("script-src", s...) }
func (p Policy) StyleSrc(s ...string) Policy       { return p.With("style-src", s...) }
func (p Policy) ImgSrc(s ...string) Policy         { return p.With("img-src", s...) }
func (p Policy) FontSrc(s ...string) Policy        { return p.With("font-src", s...) }
func (p Policy) ConnectSrc(s ...string) Policy     { return p.With("connect-src", s...) }
func (p Policy) FrameAncestors(s ...string) Policy { return p.With("frame-ancestors", s...) }
func (p Policy) FormAction(s ...string) Policy     { return p.With("form-action", s...) }
func (p Policy) BaseURI(s ...string) Policy        { return p.With("base-uri", s...) }
func (p Policy) ObjectSrc(s ...string) Policy      { return p.With("object-src", s...) }

// ReportOnly returns a copy of p that is sent with the report-only header.
func (p Policy) ReportOnly(on bool) Policy {
	p.reportOnly = on
	return p
}

// HeaderName returns the header p should be sent under.
func (p Policy) HeaderName() string {
	if p.reportOnly {
		return HeaderReportOnly
	}
	return HeaderEnforce
}

// String serializes p, e.g. "default-src 'none'; frame-ancestors 'none'".
// Directives with no sources are omitted.
func (p Policy) String() string {
	parts := make([]string, 0, len(p.directives))
	for _, name := range directiveOrder {
		if sources := p.directives[name]; len(sources) > 0 {
			parts = append(parts, name+" "+strings.Join(sources, " "))
		}
	}
	return strings.Join(parts, "; ")
}

// IsEmpty reports whether p serializes to nothing.
func (p Policy) IsEmpty() bool {
	return p.String() == ""
}

// Strict suits JSON endpoints: nothing may be loaded or framed.
func Strict() Policy {
	return New().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		BaseURI("'none'").
		FormAction("'none'")
}

// SwaggerUI allows what the bundled Swagger UI needs: inline bootstrap
// script and styles, data: images and same-origin fetches of doc.json.
func SwaggerUI() Policy {
	return New().
		DefaultSrc("'self'").
		ScriptSrc("'self'", "'unsafe-inline'").
		StyleSrc("'self'", "'unsafe-inline'").
		ImgSrc("'self'", "data:").
		FontSrc("'self'", "data:").
		ConnectSrc("'self'").
		FrameAncestors("'none'").
		BaseURI("'self'").
		FormAction("'self'").
		ObjectSrc("'none'")
}
