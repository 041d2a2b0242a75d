package keys

import (
	"strings"
)

const (
	// PfxHealthCheck is used for prefixing health check redis keys
	PfxHealthCheck = "healthcheck"
	// PfxBidSnapshot is used for prefixing cached bid snapshots
	PfxBidSnapshot = "bidSnapshot"
	// PfxListing is used for prefixing cached listing configs
	PfxListing = "listing"
	// PfxAdmissionLock is used for prefixing per-auction admission leases
	PfxAdmissionLock = "admissionLock"
)

// CustomKey joins key components with the specified delimiter
func CustomKey(delimiter string, components ...string) string {
	return strings.Join(components, delimiter)
}

// RedisKey joins redis key components
func RedisKey(components ...string) string {
	return CustomKey(":", components...)
}

// GetPrefix returns the first component of a redis key
func GetPrefix(key string) string {
	if idx := strings.Index(key, ":"); idx >= 0 {
		return key[:idx]
	}
	return key
}
