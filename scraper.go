// Package scraper provides a resilient, paginated extractor for the TCG
// Collector card catalog. It discovers how many result pages a search has,
// walks them in order, harvests per-card detail pages through a chain of
// fallback extraction strategies, and persists results incrementally so a
// long crawl survives partial failure.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package scraper
