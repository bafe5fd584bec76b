// Command eyeset turns the MRL eye dataset archive into a labeled
// train/validation directory tree ready for an image classifier.
//
// The root command wires together subcommands for materializing the split,
// recounting an existing tree, browsing run history, checking the
// environment, cleaning scratch space and managing the configuration file.
// Configuration is loaded once per invocation from --config, the user config
// directory or ./eyeset.toml, in that order.
package main
