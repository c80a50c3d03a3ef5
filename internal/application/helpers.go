package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var externalIDPattern = regexp.MustCompile(fmt.Sprintf(`^[0-9A-F]{%d,%d}$`, externalIDMinLength, externalIDMaxLength))

// NormalizeExternalID trims and uppercases raw and reports whether the result
// is a well-formed external identifier.
func NormalizeExternalID(raw string) (string, bool) {
	id := strings.ToUpper(strings.TrimSpace(raw))
	return id, externalIDPattern.MatchString(id)
}

func authorize(ctx context.Context, guard AuthorizationGuard, logger Logger, actorID, operation string) bool {
	if guard == nil || actorID == "" {
		return false
	}
	ok, err := guard.IsAdmin(ctx, actorID)
	if err != nil {
		logger.Warn("authorization check for %s on %s failed: %v", actorID, operation, err)
		return false
	}
	if !ok {
		logger.Info("denied %s for non-admin %s", operation, actorID)
	}
	return ok
}
