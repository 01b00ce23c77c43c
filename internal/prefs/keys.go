package prefs

import "strconv"

// Key namespace prefixes. These two prefixes are the entire stored
// schema surface and must stay stable for compatibility with records
// written by earlier deployments.
const (
	KeyPrefixEntitlement = "entitlement:"
	KeyPrefixPreferences = "preferences:"
)

// EntitlementKey returns the storage key for a fid's mint entitlement.
func EntitlementKey(fid int64) string {
	return KeyPrefixEntitlement + strconv.FormatInt(fid, 10)
}

// PreferencesKey returns the storage key for a fid's preferences.
func PreferencesKey(fid int64) string {
	return KeyPrefixPreferences + strconv.FormatInt(fid, 10)
}
