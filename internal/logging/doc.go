// Package logging provides leveled logging on top of the standard library
// logger. The level is resolved once from the DEBUG and LOG_LEVEL
// environment variables.
package logging
