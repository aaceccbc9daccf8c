// Package documents is the document store: the single I/O boundary of the
// affiliate core. It maps a key to one opaque value (usually a JSON document)
// and persists it in the local SQLite database.
//
// There are no cross-key transactions at this level. Callers that must write
// several keys together can hand a *sql.Tx to NewSQLiteRepository through
// dbx.WithTx.
//
// Typical usage:
//
//	repo := documents.NewSQLiteRepository(db)
//	var users []models.User
//	found, err := documents.GetJSON(ctx, repo, documents.KeyUsers, &users)
//	...
//	err = documents.SetJSON(ctx, repo, documents.KeyUsers, users)
package documents

// Keys of the persisted documents.
const (
	KeyUsers              = "users"
	KeyCurrentUser        = "currentUser"
	KeyProducts           = "products"
	KeyMembershipSettings = "membershipSettings"
	KeyWithdrawals        = "withdrawals"

	KeyBankName        = "bankName"
	KeyBankAccount     = "bankAccount"
	KeyAdminName       = "adminName"
	KeyContactURL      = "contactUrl"
	KeyWithdrawEnabled = "withdrawEnabled"
	KeyMinWithdraw     = "minWithdraw"
)
