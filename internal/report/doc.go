// Package report writes generation results as files for later use.
//
// Four formats are supported:
//   - text: the numbered, per-category layout shown on the console
//   - markdown: summary and per-category tables, with zxcvbn scores when available
//   - json: machine-readable candidates grouped by category
//   - wordlist: one password per line, strongest category first, for cracking tools
package report
