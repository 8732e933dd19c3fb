// Package datex recovers calendar dates from free-form text.
//
// Listing sites do not expose publication dates in one fixed format, so the
// extractor tries an ordered list of whole-string layouts first and falls
// back to pulling a date-shaped substring out of longer text. A string with
// no recoverable date is a normal outcome, not an error.
package datex
