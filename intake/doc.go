// Package intake collects a report's fields one question at a time.
//
// A Session walks a fixed sequence: name, location, photo, contact,
// confirmation. The photo step is skippable; every other answer is
// required. Sessions live in memory, keyed by a hash of a caller-supplied
// token, and a confirmed session hands a Report (plus the optional photo)
// to the reports pipeline.
package intake
