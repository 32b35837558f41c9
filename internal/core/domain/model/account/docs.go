// Package account contains the user side of the relay economy: the Account
// aggregate with its cached points balance and courier/follow bookkeeping,
// the immutable Activity ledger rows that the balance summarizes, and the
// denormalized FeedEvent entries of the public stream.
package account
