// Package archiver moves whole tables between the local database and paged
// JSON files.
//
// A table is read through its storage gateway in (limit, offset) slices. Each
// non-empty slice becomes one page file named <table>_<index>.json holding a
// JSON array of records, so memory use is bounded by the page size. Import
// reads the pages of one table back inside a single transaction: one bad
// record rejects the whole table.
package archiver
