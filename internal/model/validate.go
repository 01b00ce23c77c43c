package model

import "fmt"

// ValidateFID checks that a fid is a usable identity key. Farcaster IDs
// are positive integers; anything else is a programmer error or bad
// input, not a storage condition, so it surfaces as an error rather
// than a soft failure.
func ValidateFID(fid int64) error {
	if fid <= 0 {
		return fmt.Errorf("invalid fid %d: must be a positive integer", fid)
	}
	return nil
}
