package meta

import "sync"

//nolint:gochecknoglobals // process-wide service identity, set once at startup
var (
	serviceName    string
	serviceVersion string
	serviceOnce    sync.Once
)

// SetServiceInfo sets the process-wide service name and version.
// Only the first call has an effect.
func SetServiceInfo(name, version string) {
	serviceOnce.Do(func() {
		serviceName = name
		serviceVersion = version
	})
}

// GetServiceName returns the service name set by SetServiceInfo.
func GetServiceName() string {
	return serviceName
}

// GetServiceVersion returns the service version set by SetServiceInfo.
func GetServiceVersion() string {
	return serviceVersion
}
