package templates

import (
	"fmt"

	curationi18n "github.com/louisbranch/curation/internal/services/curation/platform/i18n"
)

// Localizer is the printer handed to every component.
type Localizer = curationi18n.Localizer

// T translates key with loc. Without a printer the key itself is shown so
// a missing localizer degrades to readable identifiers.
func T(loc Localizer, key string, args ...any) string {
	if loc == nil {
		if len(args) == 0 {
			return key
		}
		return fmt.Sprintf(key, args...)
	}
	return loc.Sprintf(key, args...)
}
