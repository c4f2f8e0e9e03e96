// Package configs manages per-user doggo configuration.
//
// Everything lives under ~/.doggo:
//
//	config.toml  - device identity and command defaults
//	keys/        - named encryption keys
//	audit.jsonl  - operation trail
//
// The device UUID in config.toml doubles as the replication actor id: every
// change committed on this device is stamped with it, so it is generated
// once on first run and never regenerated.
//
// Defaults (vault path, key identifier) are fallbacks; command-line
// arguments always win.
package configs
