package models

// incompletePrefix marks board items created from submissions that were
// missing core fields, so they sort together and are easy to spot.
const incompletePrefix = "(Incomplete) "

// VendorItem is the identity the remote board assigns a vendor record.
type VendorItem struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DisplayName returns the item name to write to the board for vendorName,
// prefixed when the submission is incomplete.
func DisplayName(vendorName string, complete bool) string {
	if complete {
		return vendorName
	}
	return incompletePrefix + vendorName
}
