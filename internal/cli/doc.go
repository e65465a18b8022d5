// Package cli provides command-line interface setup for the phrasedeck
// application. It handles flag parsing, command creation, and merging flag
// values over the loaded configuration using cobra and viper.
package cli
