package messaging

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// pattern is a compiled "scheme://host/path" URL pattern.
type pattern struct {
	scheme glob.Glob
	host   glob.Glob
	// bareHost matches the domain itself for "*.domain" hosts.
	bareHost string
	path     glob.Glob
}

func compilePattern(raw string) (*pattern, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok || scheme == "" {
		return nil, fmt.Errorf("%w: %q has no scheme", ErrInvalidPattern, raw)
	}
	host, path, _ := strings.Cut(rest, "/")
	if host == "" {
		return nil, fmt.Errorf("%w: %q has no host", ErrInvalidPattern, raw)
	}
	path = "/" + path

	p := &pattern{}
	var err error
	if p.scheme, err = glob.Compile(strings.ToLower(scheme)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if p.host, err = glob.Compile(strings.ToLower(host)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	if bare, found := strings.CutPrefix(strings.ToLower(host), "*."); found {
		p.bareHost = bare
	}
	if p.path, err = glob.Compile(path); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return p, nil
}

func (p *pattern) match(u *url.URL) bool {
	if !p.scheme.Match(strings.ToLower(u.Scheme)) {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if !p.host.Match(host) && host != p.bareHost {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return p.path.Match(path)
}
