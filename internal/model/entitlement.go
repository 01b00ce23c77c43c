package model

import "time"

// EntitlementRecord marks a fid as having minted the gallery pass.
// Entitlement is presence-based: holding any record at all is what
// grants write access, regardless of field values. Records are only
// ever written whole; there is no field-level update and no revoke.
type EntitlementRecord struct {
	FID       int64     `json:"fid"`
	GrantedAt time.Time `json:"grantedAt"`
	// TxHash is an opaque reference to the mint transaction, recorded
	// for audit. It is not validated here.
	TxHash string `json:"txHash,omitempty"`
}
