// Package app contains the core application logic. It defines the main App
// struct, its configuration, and the lifecycle of one run: obtain a program
// (inline script, script file or recipe), decode the input image, interpret
// the program and encode the result. It is decoupled from any specific
// entrypoint like a CLI.
package app
