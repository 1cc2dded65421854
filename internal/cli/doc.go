// Package cli is responsible for parsing command-line arguments, validating
// user input, and handling process-level concerns like exit codes. It
// translates flags and the positional INPUT/OUTPUT paths into an app.Config.
// Usage errors carry exit code 2.
package cli
