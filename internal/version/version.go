// ABOUTME: Build and product identity constants
// ABOUTME: Reported in logs and mDNS advertisement
package version

const (
	// Version is the release version of this build.
	Version = "0.3.0"

	// Product is the product name.
	Product = "Soundwire"

	// Manufacturer identifies the project.
	Manufacturer = "Soundwire Project"
)
