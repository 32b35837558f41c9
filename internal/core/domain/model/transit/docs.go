// Package transit contains the per-courier transit ledger: one record per
// courier per package, anchored at pickup, optionally closed by a dropoff,
// with an append-only movement trail in between. The trail is the source of
// the progress data used for effort credit.
package transit
