// Package cli implements the keeperbackup command line: create, restore,
// inspect and verify.
package cli
