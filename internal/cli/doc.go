// Package cli implements the pulse command-line interface.
//
// The root command runs the dashboard. It loads the configuration (file,
// then PULSE_ environment variables, then flags), checks that stdin and
// stdout are terminals, routes the standard logger away from the screen,
// picks a metrics source and hands control to the bubbletea program in
// internal/monitor.
//
//	pulse                 - Run the dashboard
//	pulse config          - Print the effective configuration as YAML
//	pulse version         - Print version information
//	pulse completion <sh> - Generate shell completions
//
// Errors returned from commands are structured errors from internal/errors;
// Execute prints them and exits with status 1.
package cli
