package favicon

import "fmt"

// Stage names reported by WriteError.
const (
	StageMkdir     = "mkdir"
	StageLogo      = "logo"
	StageFavicon   = "favicon"
	StageResample  = "resample"
	StageContainer = "container"
)

// ConfigError reports an invalid configuration value. It is returned before
// any image is read.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Field, e.Reason)
}

// DecodeError reports that the source image could not be opened or decoded.
// Nothing has been written when it is returned.
type DecodeError struct {
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode source %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// WriteError reports a failed write during export. Files written earlier in
// the same run are left in place.
type WriteError struct {
	Path  string
	Stage string
	Err   error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("failed to write %s (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }
