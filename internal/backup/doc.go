// Package backup runs the creation and restoration pipelines of local
// encrypted backups.
//
// Creation exports every table into page files, adds the metadata
// descriptor, zips the result and encrypts the zip into the artifact.
// Restoration decrypts, unzips, validates the descriptor and imports the
// tables in the same fixed order. Both pipelines stop at the first failure
// and leave their scratch directory behind for the caller to inspect or
// remove.
package backup
