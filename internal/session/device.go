package session

import "strings"

// DeviceName derives a human-readable device label from a user-agent
// string through ordered substring tests. Display only; never used for
// any security decision.
func DeviceName(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "iPhone"),
		strings.Contains(userAgent, "iPad"),
		strings.Contains(userAgent, "iPod"):
		return "iOS Device"
	case strings.Contains(userAgent, "Android"):
		return "Android Device"
	case strings.Contains(userAgent, "Windows"):
		return "Windows PC"
	case strings.Contains(userAgent, "Mac"):
		return "Mac"
	case strings.Contains(userAgent, "Linux"):
		return "Linux PC"
	default:
		return "Unknown Device"
	}
}
