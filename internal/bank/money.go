package bank

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Money is an amount in cents.
type Money int64

// MaxMoney is the largest representable amount.
const MaxMoney = Money(math.MaxInt64)

// maxDollars keeps dollars*100 + 99 within int64.
const maxDollars = (math.MaxInt64 - 99) / 100

var errMoneyFormat = errors.New("amount must look like 12 or 12.34")

// ParseMoney parses a non-negative decimal amount with at most two fractional digits.
// A leading '$' is accepted.
func ParseMoney(s string) (Money, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "$")
	if s == "" || strings.HasPrefix(s, "-") || strings.HasPrefix(s, "+") {
		return 0, errMoneyFormat
	}

	whole, frac, hasFrac := strings.Cut(s, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (frac == "" || len(frac) > 2 || strings.Trim(frac, "0123456789") != "") {
		return 0, errMoneyFormat
	}

	dollars, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || dollars > maxDollars {
		return 0, errMoneyFormat
	}
	var cents int64
	if hasFrac {
		if len(frac) == 1 {
			frac += "0"
		}
		cents, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return 0, errMoneyFormat
		}
	}
	return Money(dollars*100 + cents), nil
}

func (m Money) String() string {
	sign := ""
	if m < 0 {
		sign = "-"
		m = -m
	}
	return fmt.Sprintf("%s$%d.%02d", sign, int64(m)/100, int64(m)%100)
}
