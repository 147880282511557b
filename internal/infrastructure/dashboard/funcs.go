package dashboard

import (
	"bytes"
	"encoding/json"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/tectle/backend/internal/domain/integration"
)

func (r *Renderer) funcMap() template.FuncMap {
	return template.FuncMap{
		"formatMoney":    formatMoney,
		"formatAmount":   formatAmount,
		"formatDateTime": r.formatDateTime,
		"title":          titleCase,
		"platform":       platformLabel,
		"prettyJSON":     prettyJSON,
		"default":        defaultString,
	}
}

// formatMoney prefixes the grouped amount with its currency code.
// Example: (1234.5, "USD") -> "USD 1,234.50"
func formatMoney(d decimal.Decimal, currency string) string {
	if currency == "" {
		return formatAmount(d)
	}
	return currency + " " + formatAmount(d)
}

// formatAmount formats a decimal with two places and thousand separators.
// Example: 1234.5 -> "1,234.50"
func formatAmount(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	intPart, decPart, _ := strings.Cut(d.StringFixed(2), ".")

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}
	return sign + result.String() + "." + decPart
}

// formatDateTime renders t in the renderer's location, minute precision.
func (r *Renderer) formatDateTime(t time.Time) string {
	return t.In(r.location).Format("2006-01-02 15:04 MST")
}

// titleCase upper-cases the first letter of each word and lower-cases the rest.
func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}

// filterLabel is the header label for an active filter value.
func filterLabel(value string) string {
	if value == "" {
		return "All"
	}
	return titleCase(strings.ReplaceAll(value, "_", " "))
}

// platformLabel names a platform key. Built-in channels use their brand
// spelling and custom keys are title-cased.
func platformLabel(key string) string {
	if code := integration.NormalizePlatform(key); code.IsBuiltin() {
		return code.DisplayName()
	}
	return titleCase(strings.ReplaceAll(key, "_", " "))
}

// prettyJSON indents v with two spaces; nil or empty payloads print "{}".
func prettyJSON(v map[string]any) string {
	if len(v) == 0 {
		return "{}"
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "{}"
	}
	return strings.TrimRight(buf.String(), "\n")
}

func defaultString(def, value string) string {
	if value == "" {
		return def
	}
	return value
}
