// Package config loads runtime settings for the journal CLI.
//
// Sources are applied in order, later ones winning:
//  1. built-in defaults (LoadDefaults)
//  2. an optional JSON or YAML file named by -c/-config
//  3. short command-line flags (-d, -s, -l, -chrome)
//
// Directories left empty are derived from DataDir by Resolve.
package config
