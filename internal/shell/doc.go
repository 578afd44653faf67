// Package shell turns session changes into code for the user's interactive
// shell. vew cannot modify its parent process, so each command prints the
// difference it made and a wrapper function evaluates it. The wrappers
// themselves come from HookSnippet (bash, zsh) and the fish variant.
package shell
