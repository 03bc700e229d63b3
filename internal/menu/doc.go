// Package menu defines the navigation tree data model for arbor.
//
// A menu is a Forest: an ordered slice of top-level Node trees. Forests
// are read from TOML, JSON or YAML files with Load and written back with
// Save. Both take an advisory file lock so a menu generated by another
// process is never read half-written.
//
// Malformed nodes are not errors. A node without a name loads with an
// empty label and Validate reports it as a warning.
package menu
