// Package paginate walks the page sequence of a listing site.
//
// Three interchangeable strategies implement the same Pager contract: the
// query strategy increments a page number in the URL, the link strategy
// follows the "next" anchor from page to page, and the browser strategy
// drives a headless Chrome tab for listings rendered client-side. All of
// them pause between fetches; hammering the site is a defect even though
// it would not break the search. A missing next control is legitimate
// exhaustion, not an error.
package paginate
