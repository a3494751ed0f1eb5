// Package ui manages terminal color themes for CLI output.
// The active theme is selected at startup from the --no-color flag, the
// NO_COLOR environment variable and the detected terminal background.
package ui
