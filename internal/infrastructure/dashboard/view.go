package dashboard

import (
	"fmt"
	"net/url"
	"slices"
	"strings"

	"github.com/tectle/backend/internal/domain/order"
)

// Input is what the dashboard shows: every held order, the subset matching
// the active filters, and the filters themselves.
type Input struct {
	Orders   []order.Order
	Filtered []order.Order
	Status   string
	Platform string
}

// FilterLink is one pill in the status or platform filter bar.
type FilterLink struct {
	Label  string
	Href   string
	Active bool
}

// Metric is one summary tile.
type Metric struct {
	Label string
	Value string
}

type page struct {
	Count         int
	StatusLabel   string
	PlatformLabel string
	Metrics       []Metric
	StatusLinks   []FilterLink
	PlatformLinks []FilterLink
	Orders        []order.Order
}

func newPage(in Input) page {
	status := strings.ToLower(in.Status)
	platform := strings.ToLower(in.Platform)
	summary := order.Summarize(in.Filtered)

	return page{
		Count:         len(in.Filtered),
		StatusLabel:   filterLabel(status),
		PlatformLabel: activePlatformLabel(platform),
		Metrics: []Metric{
			{Label: "Total Orders", Value: fmt.Sprint(summary.TotalOrders)},
			{Label: "Open Orders", Value: fmt.Sprint(summary.OpenOrders)},
			{Label: "Total Items", Value: fmt.Sprint(summary.TotalItems)},
			{Label: "Total Revenue", Value: formatAmount(summary.TotalRevenue)},
		},
		StatusLinks:   statusLinks(in.Orders, status, platform),
		PlatformLinks: platformLinks(in.Orders, status, platform),
		Orders:        in.Filtered,
	}
}

// statusLinks lists "All statuses" then every status sorted by its raw value.
func statusLinks(orders []order.Order, active, platform string) []FilterLink {
	grouped := order.GroupByStatus(orders)
	statuses := slices.Clone(grouped.Keys)
	slices.Sort(statuses)

	links := make([]FilterLink, 0, len(statuses)+1)
	links = append(links, FilterLink{
		Label:  fmt.Sprintf("All statuses (%d)", len(orders)),
		Href:   buildQuery("", platform),
		Active: active == "",
	})
	for _, status := range statuses {
		key := strings.ToLower(status)
		links = append(links, FilterLink{
			Label:  fmt.Sprintf("%s (%d)", titleCase(status), len(grouped.Get(status))),
			Href:   buildQuery(key, platform),
			Active: active == key,
		})
	}
	return links
}

// platformLinks lists "All platforms" then every lowercased platform sorted.
func platformLinks(orders []order.Order, status, active string) []FilterLink {
	counts := make(map[string]int)
	for _, o := range orders {
		counts[strings.ToLower(o.Platform)]++
	}
	platforms := make([]string, 0, len(counts))
	for p := range counts {
		platforms = append(platforms, p)
	}
	slices.Sort(platforms)

	links := make([]FilterLink, 0, len(platforms)+1)
	links = append(links, FilterLink{
		Label:  fmt.Sprintf("All platforms (%d)", len(orders)),
		Href:   buildQuery(status, ""),
		Active: active == "",
	})
	for _, p := range platforms {
		links = append(links, FilterLink{
			Label:  fmt.Sprintf("%s (%d)", platformLabel(p), counts[p]),
			Href:   buildQuery(status, p),
			Active: active == p,
		})
	}
	return links
}

func activePlatformLabel(platform string) string {
	if platform == "" {
		return "All"
	}
	return platformLabel(platform)
}

// buildQuery returns "/" or "/?status=..&platform=..", keeping that parameter order.
func buildQuery(status, platform string) string {
	var params []string
	if status != "" {
		params = append(params, "status="+url.QueryEscape(status))
	}
	if platform != "" {
		params = append(params, "platform="+url.QueryEscape(platform))
	}
	if len(params) == 0 {
		return "/"
	}
	return "/?" + strings.Join(params, "&")
}
