// Package config provides the configuration system for fractalterm.
//
// # Architecture
//
// Configuration is organized in layers with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← FRACTALTERM_SECTION_KEY
//	├─────────────────────────────┤
//	│  2. Config File             │  ← fractalterm.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Default()
//	└─────────────────────────────┘
//
// File and environment maps are combined with loader.DeepMerge and then
// decoded over Default(), so unset keys keep their defaults and unknown keys
// are rejected.
//
// # Sub-packages
//
//   - loader: TOML and environment variable loading
//   - watcher: fsnotify-based live reload
package config
