// Package raw provides the value model for snapshot records.
//
// This package contains type definitions and field accessors only. All
// other internal packages import raw; raw imports nothing internal. This
// keeps the value layer foundational with no circular dependencies.
//
// Key design constraints:
//   - Values are a sealed union with a first-class Undefined variant;
//     absent fields and explicit undefined markers are indistinguishable
//     to callers
//   - Accessors never panic and never raise on missing fields - the
//     underlying schema drifts and fields are routinely renamed or dropped
//   - Map iteration must go through SortedKeys for deterministic output
package raw
