package utils

import (
	ua "github.com/mileusna/useragent"
)

// Client platforms reported in request metrics
const (
	PlatformIOS     = "ios"
	PlatformAndroid = "android"
	PlatformWeb     = "web"
	PlatformUnknown = "unknown"
)

// ClientPlatform classifies the app shell sending a request from its User-Agent
func ClientPlatform(userAgent string) string {
	if userAgent == "" {
		return PlatformUnknown
	}

	parsed := ua.Parse(userAgent)
	switch {
	case parsed.IsIOS():
		return PlatformIOS
	case parsed.IsAndroid():
		return PlatformAndroid
	case parsed.Name != "" && !parsed.Bot:
		return PlatformWeb
	}
	return PlatformUnknown
}
