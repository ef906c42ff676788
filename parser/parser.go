// Package parser normalizes raw extracted strings into canonical
// product fields.
package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const (
	// CurrencyPrefix is the display currency for all registered sites.
	CurrencyPrefix = "PKR"
	// PlaceholderName stands in for products with no usable title.
	PlaceholderName = "Fashion Item"
	// PriceOnRequest stands in for products with no price text at all.
	PriceOnRequest = "Price on request"

	maxNameLength = 80
)

// Storefronts often repeat their own name at the front of a listing
// title; longer names first so the regexp strips the longest match.
var brandPrefixPattern = regexp.MustCompile(
	`(?i)^(Bonanza Satrangi|Zara Shahjahan|Alkaram Studio|Sana Safinaz|Cross Stitch|Nishat Linen|Gul Ahmed|Maria B|Alkaram|Sapphire|Khaadi|Nishat)\s*[-:]?\s*`,
)

var (
	nonPricePattern   = regexp.MustCompile(`[^\d,.]`)
	priceDigitPattern = regexp.MustCompile(`\d+\.?\d*`)
)

// CleanProductName collapses whitespace, strips a leading brand token,
// bounds the length, and title-cases the result. Empty input yields the
// placeholder name.
func CleanProductName(name string) string {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return PlaceholderName
	}

	name = strings.TrimSpace(brandPrefixPattern.ReplaceAllString(name, ""))
	if name == "" {
		return PlaceholderName
	}

	if runes := []rune(name); len(runes) > maxNameLength {
		name = string(runes[:maxNameLength-3]) + "..."
	}

	return titleCase(strings.TrimSpace(name))
}

// ExtractPriceNumeric pulls a numeric price out of arbitrary price text,
// ignoring currency markers and thousands separators. The second return
// value is false when no number was found.
func ExtractPriceNumeric(text string) (float64, bool) {
	cleaned := nonPricePattern.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")

	match := priceDigitPattern.FindString(cleaned)
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// StandardizePrice converts raw price text to the canonical display
// form: a currency-prefixed, thousands-grouped integer when a numeric
// value is present, the trimmed raw text when not, and the fixed
// sentinel when the input is empty. Prices without a currency marker
// are assumed to already be in the site's native currency.
func StandardizePrice(text string) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return PriceOnRequest
	}

	if value, ok := ExtractPriceNumeric(trimmed); ok {
		return CurrencyPrefix + " " + groupThousands(int64(math.Round(value)))
	}
	return trimmed
}

func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		switch {
		case !unicode.IsLetter(r):
			b.WriteRune(r)
			prevLetter = false
		case prevLetter:
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(unicode.ToUpper(r))
			prevLetter = true
		}
	}
	return b.String()
}

func groupThousands(n int64) string {
	s := strconv.FormatInt(n, 10)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
