package config

import "errors"

var (
	// ErrParsingConfig is returned when environment variables cannot be parsed into the config struct
	ErrParsingConfig = errors.New("failed to parse environment variables into config")

	// ErrReadingFile is returned when a config file cannot be read
	ErrReadingFile = errors.New("failed to read config file")

	// ErrDecodingFile is returned when a config file is not valid YAML for the target struct
	ErrDecodingFile = errors.New("failed to decode config file")

	// ErrNilPointer is returned when a nil pointer is provided to a loader
	ErrNilPointer = errors.New("nil pointer provided to config loader")
)
