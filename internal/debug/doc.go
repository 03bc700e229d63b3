// Package debug provides an opt-in file logger for arbor.
//
// Logging is off until Enable is called (the --debug flag or the
// ARBOR_DEBUG environment variable). Menu loads, tree toggles and
// filter queries are recorded so odd rendering can be traced afterwards.
package debug
