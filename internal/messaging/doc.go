// Package messaging is the host messaging platform of favsync: it keeps track
// of the pages that are currently open, finds them by URL pattern and
// delivers messages to them.
//
// A page is registered together with an [Endpoint] that answers its
// messages. Pages disappear when they are unregistered; sending to a page
// that is gone fails with [ErrUnreachableTarget].
//
// URL patterns follow the match-pattern shape "scheme://host/path" where the
// host may start with "*." to cover a domain and its subdomains and "*" in
// any component matches any run of characters.
package messaging
