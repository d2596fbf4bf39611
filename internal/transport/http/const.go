package http

import (
	"time"

	"github.com/oshokin/ncm-player/internal/constants"
)

const (
	// DefaultTimeout is the default timeout duration for HTTP requests.
	DefaultTimeout = 30 * time.Second

	// DefaultUserAgent is the User-Agent the remote service expects from the desktop client.
	DefaultUserAgent = constants.DesktopUserAgent

	// DefaultOrigin is the Origin header value of the desktop client.
	DefaultOrigin = constants.DesktopOrigin

	// DefaultMaxLogLength is the default maximum size (in bytes) of a logged dump.
	DefaultMaxLogLength = 64 * 1024
)

// Header names set by HeaderInjector.
const (
	cookieHeader    = "Cookie"
	originHeader    = "Origin"
	userAgentHeader = "User-Agent"
)
