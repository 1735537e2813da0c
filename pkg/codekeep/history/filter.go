package history

import "strings"

// EffectiveQuery is the resolved form of the user's filter state, ready to
// hand to the storage layer.
type EffectiveQuery struct {
	// TagID restricts results to barcodes carrying this tag. Nil means no
	// tag restriction.
	TagID *uint
	// Query is the trimmed text filter. Nil means no text filter.
	Query *string
	// HideTagged excludes barcodes carrying at least one tag. Only honored
	// by storage when TagID is nil and Query is nil.
	HideTagged bool
	// OnlyFavorites is an independent AND-filter on is_favorite.
	OnlyFavorites bool
}

// Compose resolves raw filter state into an EffectiveQuery.
//
// A blank query (after trimming) means no text filter. When searchAcrossAll
// is on and a text filter is active, any selected tag is dropped so the
// search covers the whole history; otherwise the tag selection is respected
// even while a query is typed. HideTagged and OnlyFavorites pass through
// unchanged.
func Compose(selectedTagID *uint, rawQuery string, hideTagged, searchAcrossAll, onlyFavorites bool) EffectiveQuery {
	q := EffectiveQuery{
		HideTagged:    hideTagged,
		OnlyFavorites: onlyFavorites,
	}

	if trimmed := strings.TrimSpace(rawQuery); trimmed != "" {
		q.Query = &trimmed
	}

	if searchAcrossAll && q.Query != nil {
		q.TagID = nil
	} else {
		q.TagID = selectedTagID
	}

	return q
}
