// Package commands implements the qrgen command line: an interactive session
// (the default command) and a one-shot generate command.
package commands
