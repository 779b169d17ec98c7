// Package startup handles configuration loading, the optional YAML settings
// file, build information, and structured startup/shutdown logging.
package startup
