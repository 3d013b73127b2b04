package teams

// TeamFilter narrows a team listing
type TeamFilter struct {
	City string `json:"city,omitempty"`
	// IncludeUnset keeps the placeholder team in the listing.
	IncludeUnset bool `json:"include_unset,omitempty"`
}
