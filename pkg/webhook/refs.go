package webhook

import (
	"strings"

	gitm "github.com/aymanbagabas/git-module"
)

// NormalizeRef expands a bare branch name into a full ref name. Full
// branch and tag refs pass through unchanged.
func NormalizeRef(ref string) string {
	if strings.HasPrefix(ref, gitm.RefsHeads) || strings.HasPrefix(ref, gitm.RefsTags) {
		return ref
	}

	return gitm.RefsHeads + ref
}
