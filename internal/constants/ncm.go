package constants

// Values the remote service checks to honor a desktop-client session.
const (
	// DesktopOrigin is the custom Origin header sent by the desktop client.
	DesktopOrigin = "orpheus://orpheus"

	// DesktopUserAgent is the user-agent of the official desktop client.
	DesktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; WOW64) AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Safari/537.36 Chrome/91.0.4472.164 NeteaseMusicDesktop/2.10.7.200791"

	// IdentityStorageKey is the key under which the cookie set is persisted.
	IdentityStorageKey = "ncm-cookie"
)
