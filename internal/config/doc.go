// Package config loads and validates bluebook configuration.
//
// A configuration file is TOML or YAML, chosen by extension:
//
//	[engine]
//	backend = "rope"
//	drift = "inside"
//	line_ending = "lf"
//	normalization = "nfc"
//
//	[log]
//	level = "debug"
//
//	[tracing]
//	enabled = true
//	exporter = "stdout"
//
// Keys missing from a file keep their Default values. Unknown keys are
// rejected. The CLI layers flags and BLUEBOOK_* environment variables on
// top of the file through viper, using the same key names.
package config
