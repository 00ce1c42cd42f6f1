// Package cli implements the command-line interface for baraj-doluluk.
//
// The root command scrapes every default city page once and prints the resulting snapshot.
// Output is indented JSON unless --format text is given. The progress notice and structured
// logs go to stderr so stdout carries only the snapshot.
package cli
