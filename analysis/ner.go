package analysis

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Regex extraction of payment entities. These run over the full call
// transcript and are intentionally forgiving about formatting.
var (
	amountRe  = regexp.MustCompile(`(?i)(?:rs\.?|rupees)?\s*([0-9][0-9.,]{1,10}|[0-9]{3,10})`)
	ordinalRe = regexp.MustCompile(`(?i)(\d+)(st|nd|rd|th)\b`)
	nonDigit  = regexp.MustCompile(`[^\d]`)

	numericDateRe  = regexp.MustCompile(`\b([0-3]?\d)[/\-]([0-1]?\d)[/\-](\d{2,4})\b`)
	dayMonthRe     = regexp.MustCompile(`(?i)\b([0-3]?\d)(?:st|nd|rd|th)?\s+(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|january|february|march|april|june|july|august|september|october|november|december)\b`)
	relativeDayRe  = regexp.MustCompile(`(?i)\b(next|this)\s+(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	weekdayRe      = regexp.MustCompile(`(?i)\b(monday|tuesday|wednesday|thursday|friday|saturday|sunday)\b`)
	monthNearbyRe  = regexp.MustCompile(`(?i)(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)`)
	dateNearbyRe   = regexp.MustCompile(`\b[0-3]?\d\s*[/\-]\s*[0-1]?\d\s*[/\-]\s*\d{2,4}\b`)
	bareYearLikeRe = regexp.MustCompile(`^\d{2,4}$`)
)

var relativeDayWordsRe = regexp.MustCompile(`(?i)\b(tomorrow|today|yesterday)\b`)

var paymentModes = []string{
	"upi", "bank transfer", "bank", "cheque", "cash",
	"neft", "rtgs", "net banking", "online", "wallet", "card",
}

var modeNames = map[string]string{
	"upi":           "UPI",
	"bank transfer": "Bank Transfer",
	"bank":          "Bank Transfer",
	"neft":          "NEFT",
	"rtgs":          "RTGS",
	"net banking":   "Net Banking",
	"cheque":        "Cheque",
	"cash":          "Cash",
	"card":          "Card",
}

// ExtractEntities runs all regex extractors over the transcript and
// normalizes the results.
func ExtractEntities(text string) Entities {
	return Entities{
		Amounts: ExtractAmounts(text),
		Dates:   ExtractDates(text),
		Modes:   ExtractModes(text),
	}
}

// ExtractAmounts finds monetary amounts. Year-like values, calendar day
// numbers, and numbers in a date context are excluded.
func ExtractAmounts(text string) []string {
	normalized := strings.ReplaceAll(text, ",", "")
	normalized = ordinalRe.ReplaceAllString(normalized, "$1")

	var out []string
	seen := make(map[string]bool)
	for _, m := range amountRe.FindAllStringSubmatchIndex(normalized, -1) {
		numStr := normalized[m[2]:m[3]]
		numClean := nonDigit.ReplaceAllString(numStr, "")
		if numClean == "" {
			continue
		}
		v, err := strconv.Atoi(numClean)
		if err != nil {
			continue
		}
		if v >= 1900 && v <= 2099 {
			continue
		}
		if v <= 31 {
			continue
		}

		// Skip numbers sitting inside a date expression.
		lo, hi := max(0, m[0]-10), min(len(normalized), m[1]+10)
		nearby := normalized[lo:hi]
		if dateNearbyRe.MatchString(nearby) || monthNearbyRe.MatchString(nearby) {
			continue
		}

		s := strconv.Itoa(v)
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// ExtractDates finds absolute and relative date mentions.
func ExtractDates(text string) []string {
	var dates []string
	dates = append(dates, numericDateRe.FindAllString(text, -1)...)
	for _, m := range dayMonthRe.FindAllStringSubmatch(text, -1) {
		dates = append(dates, m[1]+" "+m[2])
	}
	dates = append(dates, relativeDayRe.FindAllString(text, -1)...)
	for _, m := range relativeDayWordsRe.FindAllStringSubmatch(text, -1) {
		dates = append(dates, strings.ToLower(m[1]))
	}
	for _, m := range weekdayRe.FindAllStringSubmatch(text, -1) {
		dates = append(dates, m[1])
	}

	var out []string
	seen := make(map[string]bool)
	for _, d := range dates {
		norm := strings.Join(strings.Fields(d), " ")
		key := strings.ToLower(norm)
		if key == "" || seen[key] || bareYearLikeRe.MatchString(norm) {
			continue
		}
		seen[key] = true
		out = append(out, norm)
	}
	return out
}

// ExtractModes finds payment mode mentions, normalized to display names
// and sorted.
func ExtractModes(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]bool)
	var out []string
	for _, mode := range paymentModes {
		if !strings.Contains(lower, mode) {
			continue
		}
		name, ok := modeNames[mode]
		if !ok {
			name = strings.ToUpper(mode[:1]) + mode[1:]
		}
		if !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
