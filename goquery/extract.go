package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	scraper "github.com/antaww/tcgcollector-scraper"
)

// Strategy is one candidate method for obtaining a field's value from a
// parsed item document. Strategies are pure functions; an empty result means
// the strategy found nothing and the chain moves on.
type Strategy func(doc *goquery.Document) string

// FieldRule binds a field name to its ordered fallback chain. The chain
// commits the first non-empty result; if every strategy fails the field is
// stored as an empty string. Rules are static configuration, built once and
// never mutated at runtime.
type FieldRule struct {
	Name       string
	Strategies []Strategy
}

// Ensure Extractor implements scraper.Extractor at compile time.
var _ scraper.Extractor = (*Extractor)(nil)

// Extractor runs a field-by-field chain of extraction strategies over item
// documents. Missing fields degrade to empty strings; only a document that
// cannot be parsed at all yields an error.
type Extractor struct {
	rules []FieldRule
}

// NewExtractor creates an Extractor with the given rules.
// With no rules it uses DefaultFieldRules.
func NewExtractor(rules ...FieldRule) *Extractor {
	if len(rules) == 0 {
		rules = DefaultFieldRules()
	}
	return &Extractor{rules: rules}
}

// Extract parses the document and evaluates every field rule.
func (e *Extractor) Extract(html string, url string) (*scraper.Record, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, scraper.Errorf(scraper.EINVALID, "failed to parse item document: %v", err)
	}

	record := scraper.NewRecord(url)
	for _, rule := range e.rules {
		var value string
		for _, strategy := range rule.Strategies {
			if v := strings.TrimSpace(strategy(doc)); v != "" {
				value = v
				break
			}
		}
		record.Set(rule.Name, value)
	}
	return record, nil
}

// Patterns used by the default rules.
var (
	// cardNumberPattern matches fractional collection numbers like "045/150".
	cardNumberPattern = regexp.MustCompile(`\d+/\d+`)

	// pricePattern matches a dollar amount like "$0.53" or "$12".
	pricePattern = regexp.MustCompile(`\$\d+(?:\.\d+)?`)
)

// DefaultFieldRules returns the extraction chains for the card detail page.
// Chains go from the most specific structural selector to broader text
// scans, matching the markup variants the catalog has shipped over time.
func DefaultFieldRules() []FieldRule {
	return []FieldRule{
		{
			Name: "image_url",
			Strategies: []Strategy{
				Attr("#card-image-container img", "src"),
			},
		},
		{
			Name: "name",
			Strategies: []Strategy{
				Text("#card-info-title a"),
			},
		},
		{
			Name: "card_type",
			Strategies: []Strategy{
				Text(".card-type-container"),
			},
		},
		{
			Name: "pokemon_type",
			Strategies: []Strategy{
				Attr(".energy-type-symbol", "title"),
			},
		},
		{
			Name: "set_name",
			Strategies: []Strategy{
				Text("#card-info-footer-item-text-part-expansion-name"),
			},
		},
		{
			Name: "set_code",
			Strategies: []Strategy{
				Text("#card-info-footer-item-text-part-expansion-code"),
			},
		},
		{
			// The footer lists several text parts; the card number is
			// whichever one matches the fractional pattern, not the
			// first part found.
			Name: "card_number",
			Strategies: []Strategy{
				MatchingText(".card-info-footer-item-text-part", cardNumberPattern),
			},
		},
		{
			Name: "rarity",
			Strategies: []Strategy{
				TextWithHrefContaining("a.card-info-footer-item-text-part", "rarities="),
				rarityFromFooterScan,
			},
		},
		{
			Name: "illustrator",
			Strategies: []Strategy{
				illustratorFromFooterItem,
				illustratorFromTitleSibling,
				illustratorFromTextParts,
			},
		},
		{
			Name: "price",
			Strategies: []Strategy{
				CapturedText("button.card-price-details-modal-show-button", pricePattern),
				Text("button.card-price-details-modal-show-button"),
			},
		},
	}
}

// Text returns a strategy reading the text content of the first match.
func Text(selector string) Strategy {
	return func(doc *goquery.Document) string {
		return doc.Find(selector).First().Text()
	}
}

// Attr returns a strategy reading an attribute of the first match.
func Attr(selector, name string) Strategy {
	return func(doc *goquery.Document) string {
		value, _ := doc.Find(selector).First().Attr(name)
		return value
	}
}

// MatchingText returns a strategy that scans every match of selector and
// commits the text of the first one matching the pattern.
func MatchingText(selector string, pattern *regexp.Regexp) Strategy {
	return func(doc *goquery.Document) string {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			text := strings.TrimSpace(sel.Text())
			if pattern.MatchString(text) {
				found = text
				return false
			}
			return true
		})
		return found
	}
}

// CapturedText returns a strategy that extracts the pattern's match from the
// text of the first selector match.
func CapturedText(selector string, pattern *regexp.Regexp) Strategy {
	return func(doc *goquery.Document) string {
		return pattern.FindString(doc.Find(selector).First().Text())
	}
}

// TextWithHrefContaining returns a strategy reading the text of the first
// match whose href attribute contains the given substring.
func TextWithHrefContaining(selector, substr string) Strategy {
	return func(doc *goquery.Document) string {
		sel := doc.Find(selector).FilterFunction(func(_ int, s *goquery.Selection) bool {
			href, _ := s.Attr("href")
			return strings.Contains(href, substr)
		})
		return sel.First().Text()
	}
}

// rarityFromFooterScan falls back to scanning footer text parts for an
// explicit "Rarity:" label when the rarity link variant is absent.
func rarityFromFooterScan(doc *goquery.Document) string {
	var found string
	doc.Find(".card-info-footer-item-text-part").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		if strings.Contains(text, "Rarity") {
			found = strings.TrimSpace(strings.ReplaceAll(text, "Rarity:", ""))
			return false
		}
		return true
	})
	return found
}

// illustratorFromFooterItem looks for the footer item block mentioning
// "Illustrators" and reads its illustrator link.
func illustratorFromFooterItem(doc *goquery.Document) string {
	item := doc.Find("div.card-info-footer-item").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.Contains(s.Text(), "Illustrators")
	})
	return linkWithHrefContaining(item, "illustrator=")
}

// illustratorFromTitleSibling locates the "Illustrators" title element and
// reads the illustrator link from its parent block.
func illustratorFromTitleSibling(doc *goquery.Document) string {
	title := doc.Find("div.card-info-footer-item-title").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return strings.TrimSpace(s.Text()) == "Illustrators"
	})
	return linkWithHrefContaining(title.Parent(), "illustrator=")
}

// illustratorFromTextParts scans generic footer text parts for an "Illus"
// mention with an embedded link.
func illustratorFromTextParts(doc *goquery.Document) string {
	var found string
	doc.Find(".card-info-footer-item-text-part").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if !strings.Contains(sel.Text(), "Illus") {
			return true
		}
		if link := sel.Find("a").First(); link.Length() > 0 {
			found = link.Text()
			return false
		}
		return true
	})
	return found
}

// linkWithHrefContaining returns the text of the first anchor under sel
// whose href contains the given substring.
func linkWithHrefContaining(sel *goquery.Selection, substr string) string {
	link := sel.Find("a").FilterFunction(func(_ int, s *goquery.Selection) bool {
		href, _ := s.Attr("href")
		return strings.Contains(href, substr)
	})
	return link.First().Text()
}
