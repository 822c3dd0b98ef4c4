// Package netclient builds the HTTP client used to download the puzzle page
// and its script bundle.
//
// Connections are direct unless a socks5://host:port proxy is configured, in
// which case every request is dialed through golang.org/x/net/proxy. Proxy
// settings from the environment are deliberately not consulted; the only
// proxy is the one in the configuration.
package netclient
