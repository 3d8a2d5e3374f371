// Package config assembles runtime configuration for the server and the
// study client from environment variables, command-line flags, a JSON
// file and built-in defaults, merged in that priority order.
package config
