// Package normalize canonicalizes the identifiers shared by every pipeline stage.
//
// Two rules exist and they are not interchangeable:
//
//   - Expansion lowercases the leading "h" prefix (adding it when absent) and
//     uppercases the two-letter category plus the suffix: "hbp01" -> "hBP01".
//   - CardCode lowercases only the first character and uppercases the rest:
//     "HBP01-001" -> "hBP01-001".
//
// Both are pure and idempotent.
package normalize
