// Package commands defines the arbor CLI.
//
// Commands
//
//   - arbor [file]   Browse a menu file interactively
//   - print [file]   Render the tree to stdout with chosen nodes expanded
//   - check [file]   Report config and menu warnings
//   - init [file]    Write the sample menu and a default config
//
// # Implementation
//
// The root command loads configuration and enables debug logging before
// any subcommand runs. Without a file argument the menu comes from
// menu.file in the config, then from the built-in sample.
package commands
