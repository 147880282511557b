// Package order contains the normalized order model shared by every sales channel.
//
// Key concepts:
//   - Order / OrderItem: value objects produced by platform importers
//   - Payload: the raw channel document with fallback-aware accessors
//   - Organizer functions: GroupByStatus, GroupByFulfillment, SortOrders,
//     Summarize and BuildReport, pure aggregations over order slices
package order
