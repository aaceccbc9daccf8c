// Package models defines the records kept in the local affiliate store:
// users, products, membership tiers, settings and withdrawal requests.
package models
