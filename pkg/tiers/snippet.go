package tiers

import (
	"fmt"
	"strings"

	"gitlab.com/tozd/go/errors"
)

// Handlebars fragments emitted by BuildSnippet. The comparison helper and
// amount path match the letter-template runtime's helpers.
const (
	conditionalFormat = `{{#if (compare Gift.amount.value ">" %s)}}`
	elseMarker        = "{{else}}"
	closeMarker       = "{{/if}}"
)

// thresholdAdjustment converts the inclusive "amount >= min" business rule
// into the strict ">" comparator the template runtime provides. Monetary
// amounts carry at most two decimal digits, so no donation can land in the
// gap this opens.
const thresholdAdjustment = 0.01

// 🏗️ BuildSnippet renders an ordered tier list into a nested handlebars
// conditional chain: the first tier whose threshold the donation amount
// clears contributes its signature block, and the last tier is the
// unconditional fallback.
//
// An empty list yields an empty string. The list must be descending by
// MinGift (ties allowed, first-listed wins); BuildSnippet returns
// ErrInvalidOrder otherwise instead of silently rendering a chain that
// can never reach its later branches.
func BuildSnippet(l List) (string, error) {
	if len(l) == 0 {
		return "", nil
	}
	if err := l.CheckDescending(); err != nil {
		return "", errors.Errorf("building snippet: %w", err)
	}

	var lines []string
	for i, t := range l {
		if i < len(l)-1 {
			lines = append(lines, fmt.Sprintf(conditionalFormat, formatThreshold(t.MinGift)))
			lines = append(lines, blockLines(t)...)
			lines = append(lines, elseMarker)
		} else {
			// Catch-all tier, no guard of its own.
			lines = append(lines, blockLines(t)...)
		}
	}
	for i := 0; i < len(l)-1; i++ {
		lines = append(lines, closeMarker)
	}
	return strings.Join(lines, "\n"), nil
}

// 📐 formatThreshold renders min−0.01 with exactly two decimals, e.g.
// 10000 → "9999.99".
func formatThreshold(minGift float64) string {
	return fmt.Sprintf("%.2f", minGift-thresholdAdjustment)
}

// blockLines renders a tier's signature block, each piece on its own line.
func blockLines(t Tier) []string {
	return []string{"<p>", t.Name, "<br>", t.Title, "</p>"}
}
