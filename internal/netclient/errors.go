package netclient

import "errors"

// ErrInvalidProxyURL is returned when the proxy is not a socks5://host:port URL.
var ErrInvalidProxyURL = errors.New("invalid proxy URL: expected socks5://host:port")
