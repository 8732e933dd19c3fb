// Package search drives the range-bounded crawl.
//
// One page is fetched, fully parsed, and judged before the next fetch
// begins. A run always ends in exactly one of three terminal states: a
// page with in-range entries was found, the listing moved past the range,
// or pagination ran out. The second rule leans on the listing being in
// non-increasing date order; a site that violates that degrades the run to
// scanning every page until pagination ends, never to a wrong early stop
// and never to an infinite loop.
package search
