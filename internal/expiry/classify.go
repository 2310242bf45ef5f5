package expiry

import (
	"fmt"

	"github.com/dmitrijs2005/lockbox/internal/host"
	"github.com/dmitrijs2005/lockbox/internal/models"
)

// Classify maps the day distance to a token's expiry date onto the
// notification category due for it, if any.
func Classify(daysUntilExpiry int) (models.Category, bool) {
	switch {
	case daysUntilExpiry <= 0:
		return models.CategoryExpired, true
	case daysUntilExpiry == 1:
		return models.CategoryOneDay, true
	case daysUntilExpiry == 7:
		return models.CategorySevenDays, true
	}
	return "", false
}

// Message builds the desktop notification for tok in category c.
func Message(tok models.ExpiringToken, c models.Category) host.Notification {
	date := tok.ExpiryDate.String()
	switch c {
	case models.CategorySevenDays:
		return host.Notification{
			Title:   fmt.Sprintf("%s token expiring soon", tok.ServiceName),
			Body:    fmt.Sprintf("Your '%s' expires in 7 days (%s). Update it now to avoid service disruption.", tok.TokenName, date),
			Urgency: models.UrgencyNormal,
		}
	case models.CategoryOneDay:
		return host.Notification{
			Title:   fmt.Sprintf("%s token expires tomorrow", tok.ServiceName),
			Body:    fmt.Sprintf("Your '%s' expires tomorrow (%s). Update it immediately!", tok.TokenName, date),
			Urgency: models.UrgencyCritical,
		}
	default:
		return host.Notification{
			Title:   fmt.Sprintf("%s token has expired", tok.ServiceName),
			Body:    fmt.Sprintf("Your '%s' expired on %s. Services may be disrupted.", tok.TokenName, date),
			Urgency: models.UrgencyCritical,
		}
	}
}
