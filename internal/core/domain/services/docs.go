// Package services provides domain services that implement business logic
// spanning multiple aggregates in the relay system.
//
// The package includes:
//   - RewardCalculator: converts the time and distance of a transit leg
//     into the credits a courier earns
//
// Domain services stay pure: they take fully loaded aggregates or plain
// values and return results without touching persistence.
package services
