// Package pack contains the Package aggregate: the symbolic parcel relayed
// hand-to-hand by volunteer couriers toward a destination.
//
// The aggregate owns the lifecycle state machine (draft, pending, transit,
// delivered), the dropoff eligibility rule (net progress toward the
// destination, delivery inside the actionable radius), and the follower
// registry with its derived counters. All mutation goes through aggregate
// methods; persistence reconstructs instances via RestorePackage.
package pack
