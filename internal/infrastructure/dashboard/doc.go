// Package dashboard renders the HTML order dashboard: summary metrics,
// status and platform filter links, the orders table and the Etsy upload form.
package dashboard
