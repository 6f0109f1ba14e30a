package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var moneyStripper = strings.NewReplacer("$", "", "%", "", ",", "")

// parseMoney reads spreadsheet-formatted numbers such as "$1,200.50", "12%" and
// accounting negatives like "(350.00)".
func parseMoney(s string) (float64, error) {
	cleaned := strings.TrimSpace(moneyStripper.Replace(s))
	negative := false
	if strings.HasPrefix(cleaned, "(") && strings.HasSuffix(cleaned, ")") {
		negative = true
		cleaned = strings.TrimSpace(cleaned[1 : len(cleaned)-1])
	}
	if cleaned == "" {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	f, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	if negative {
		f = -f
	}
	return f, nil
}
