// Package router implements the path-pattern dispatcher described in
// spec §4.5: an ordered list of (pattern, handler) pairs, matched by
// anchored whole-path regular expressions, first match wins.
package router

import (
	"fmt"
	"regexp"

	"github.com/AleutianAI/aleutian-infer-core/pkg/apierr"
	"github.com/AleutianAI/aleutian-infer-core/services/httpcodec"
)

// Handler serves one request. It must be safe for concurrent use: the
// same Handler value is invoked from every worker goroutine.
type Handler func(req *httpcodec.Request, rw *httpcodec.ResponseWriter) error

type route struct {
	pattern *regexp.Regexp
	handler Handler
}

// Router accumulates routes in insertion order via Handle and
// dispatches requests to the first one whose pattern matches the
// whole path.
type Router struct {
	routes []route
}

// New returns an empty Router.
func New() *Router {
	return &Router{}
}

// Handle registers handler for paths fully matching pattern. pattern
// is compiled as an anchored whole-match regular expression: callers
// do not need to add ^/$ themselves.
func (rt *Router) Handle(pattern string, handler Handler) *Router {
	re := regexp.MustCompile("^(?:" + pattern + ")$")
	rt.routes = append(rt.routes, route{pattern: re, handler: handler})
	return rt
}

// Dispatch finds the first registered route whose pattern matches
// req.Path and invokes its handler. If no route matches, it writes a
// 404 and returns nil — an unmatched path is not itself an error.
func (rt *Router) Dispatch(req *httpcodec.Request, rw *httpcodec.ResponseWriter) error {
	for _, r := range rt.routes {
		if r.pattern.MatchString(req.Path) {
			return r.handler(req, rw)
		}
	}
	return writeNotFound(rw, req.Path)
}

func writeNotFound(rw *httpcodec.ResponseWriter, path string) error {
	if err := rw.WriteStatus(404); err != nil {
		return err
	}
	_, err := rw.Write([]byte(fmt.Sprintf("no route matches %q", path)))
	return err
}

// MethodGuard wraps a Handler so it only runs for the given method;
// any other method produces the 404 a disallowed method yields per
// spec §4.8 (a matched-pattern-wrong-method request is treated the
// same as an unmatched route).
func MethodGuard(method httpcodec.Method, handler Handler) Handler {
	return func(req *httpcodec.Request, rw *httpcodec.ResponseWriter) error {
		if req.Method != method {
			return writeNotFound(rw, req.Path)
		}
		return handler(req, rw)
	}
}

// NotFoundError is returned by handlers that want the server's
// top-level catch to record a 404 without writing to rw themselves
// (the handler may not have touched rw yet). For a method mismatch,
// MethodGuard writes the 404 itself; this exists for ad-hoc handler
// logic.
func NotFoundError(format string, args ...any) error {
	return apierr.NotFound(format, args...)
}
