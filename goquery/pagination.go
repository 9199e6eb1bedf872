package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Pagination selectors.
const (
	paginationContainerSelector = "ul#card-search-result-pagination"
	paginationLastSelector      = "li.pagination-item-last a"
	paginationItemSelector      = "li.pagination-item"
	paginationGapClass          = "pagination-item-gap"
	pageLinkSelector            = "li.page-item a.page-link"
	resultsCountSelector        = "div.results-count"
)

// pageCountHeuristic inspects a listing document and reports a page count.
// The bool result is false when the heuristic does not apply to the document.
type pageCountHeuristic func(doc *goquery.Document, perPage int) (int, bool)

// ResolvePageCount determines the total number of result pages from a parsed
// first listing page. Heuristics run in order and the first one that applies
// wins; a page with no recognizable pagination UI is a single page.
func ResolvePageCount(doc *goquery.Document, perPage int) int {
	heuristics := []pageCountHeuristic{
		lastPageIndicator,
		paginationItemMax,
		pageLinkMax,
		resultsCountEstimate,
	}
	for _, h := range heuristics {
		if n, ok := h(doc, perPage); ok && n >= 1 {
			return n
		}
	}
	return 1
}

// lastPageIndicator reads the explicit "last page" entry of the pagination
// control.
func lastPageIndicator(doc *goquery.Document, _ int) (int, bool) {
	label := doc.Find(paginationContainerSelector).Find(paginationLastSelector).First().Text()
	return parsePageLabel(label)
}

// paginationItemMax scans every pagination entry, skipping gap filler, and
// takes the highest numeric label. Only a maximum above 1 is conclusive; a
// lone "1" entry is left for later heuristics to confirm.
func paginationItemMax(doc *goquery.Document, _ int) (int, bool) {
	max := 0
	doc.Find(paginationContainerSelector).Find(paginationItemSelector).Each(func(_ int, sel *goquery.Selection) {
		if sel.HasClass(paginationGapClass) {
			return
		}
		if n, ok := parsePageLabel(sel.Find("a").First().Text()); ok && n > max {
			max = n
		}
	})
	if max > 1 {
		return max, true
	}
	return 0, false
}

// pageLinkMax scans a generic page-link list and takes the highest numeric
// label found.
func pageLinkMax(doc *goquery.Document, _ int) (int, bool) {
	max := 0
	found := false
	doc.Find(pageLinkSelector).Each(func(_ int, sel *goquery.Selection) {
		if n, ok := parsePageLabel(sel.Text()); ok {
			found = true
			if n > max {
				max = n
			}
		}
	})
	if found {
		return max, true
	}
	return 0, false
}

// resultsCountEstimate parses a human-readable result count of the form
// "Showing 1-60 of 157 items" and computes ceil(total/perPage).
func resultsCountEstimate(doc *goquery.Document, perPage int) (int, bool) {
	text := strings.TrimSpace(doc.Find(resultsCountSelector).First().Text())
	if text == "" {
		return 0, false
	}

	_, after, found := strings.Cut(text, " of ")
	if !found {
		return 0, false
	}
	fields := strings.Fields(after)
	if len(fields) == 0 {
		return 0, false
	}
	total, err := strconv.Atoi(fields[0])
	if err != nil || total < 0 {
		return 0, false
	}
	if perPage <= 0 {
		return 0, false
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages, true
}

// parsePageLabel converts a pagination label to a page number.
// Labels that are not plain digits (ellipses, arrows) do not parse.
func parsePageLabel(label string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(label))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
