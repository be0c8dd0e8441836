package browser

import "fmt"

// ConfigurationError indicates an invalid or missing connection
// configuration value. It is raised before any network I/O.
type ConfigurationError struct {
	// Value is the offending configuration value, included for diagnostics.
	Value string

	// Reason describes why the value was rejected.
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid connection configuration: %s", e.Reason)
	}
	return fmt.Sprintf("invalid connection configuration %q: %s", e.Value, e.Reason)
}

// ConnectionError indicates the remote endpoint refused the connection, the
// handshake failed, or the attempt timed out. It is fatal for the session:
// the caller sees it unmodified, with no retry and no local fallback.
type ConnectionError struct {
	// Endpoint is the URL the connection was attempted against.
	Endpoint string

	// Transport is the transport the attempt used.
	Transport TransportKind

	// Err is the underlying client error.
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s endpoint %q: %v", e.Transport, e.Endpoint, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// MissingAssetError indicates the required page initialization script is
// absent or unreadable. It is a fatal precondition failure, not a
// recoverable condition.
type MissingAssetError struct {
	// Path is the expected location of the asset.
	Path string

	// Err is the underlying filesystem error, if any.
	Err error
}

func (e *MissingAssetError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("required init script %q is not usable: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("required init script %q not found", e.Path)
}

func (e *MissingAssetError) Unwrap() error {
	return e.Err
}
