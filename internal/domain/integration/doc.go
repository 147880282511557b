// Package integration defines how orders enter Tectle from outside sales
// channels.
//
// An Importer turns the raw payloads of one channel (Etsy receipts, Shopify
// orders, or a custom feed) into domain orders. Importers are registered
// under a lowercase platform key, and PlatformBatches carries raw payloads
// grouped by that key in input order. The concrete importers live in
// infrastructure/ecommerce.
package integration
