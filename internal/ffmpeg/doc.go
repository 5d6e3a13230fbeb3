// Package ffmpeg builds argument lists for the external media engine and
// executes them with captured-or-streamed stderr.
//
// Builders return the argument slice without the binary name; the Executor
// prepends the binary and the shared preamble (-hide_banner, -nostdin,
// loglevel). A non-zero exit is always terminal and surfaces as an
// *EngineError carrying the captured diagnostic tail.
package ffmpeg
