// Package services contains the application services of the AffiliatePro
// client: the membership catalog, user directory, product catalog, session,
// settings, affiliate flows, CSV export and the admin gate.
//
// Every service reads and writes through the documents repository with a
// read-modify-write cycle; no other code touches the raw documents.
package services
