// Package cli implements the interactive command-line front end of
// AffiliatePro: a small REPL over the membership, user and product services.
//
// Guests can register, log in, reset their secret and view tiers. Members
// see their dashboard, browse products, build referral links, request
// upgrades and withdraw. Presenting a valid admin token unlocks the admin
// commands for user, product and settings management.
package cli
