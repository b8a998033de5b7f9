package notification

import (
	"lost-found/internal/domain"
	"lost-found/internal/pkg/i18n"
)

const mapAction = "/map"

// statusTemplates lists the statuses with a dedicated message; every other
// status falls back to the generic STATUS_UPDATED template.
var statusTemplates = map[domain.ReportStatus]string{
	domain.StatusDeliveredToClient: "STATUS_DELIVERED_TO_CLIENT",
	domain.StatusReceived:          "STATUS_RECEIVED",
	domain.StatusMatched:           "STATUS_MATCHED",
}

// Composer renders bilingual messages from the catalog. It never fails: absent
// fields interpolate as empty strings and unknown statuses are shown verbatim.
type Composer struct {
	catalog *i18n.Catalog
}

func NewComposer(catalog *i18n.Catalog) *Composer {
	return &Composer{catalog: catalog}
}

func (c *Composer) ReportRegistered(report *domain.Report) []domain.Message {
	vars := map[string]string{"title": report.Title}

	switch report.Type {
	case domain.ReportTypeMissing:
		return []domain.Message{
			c.message(domain.NotifReportRegistered, "REPORT_REGISTERED_MISSING", vars, nil),
		}
	case domain.ReportTypeFound:
		return []domain.Message{
			c.message(domain.NotifReportRegistered, "REPORT_REGISTERED_FOUND", vars, nil),
			c.message(domain.NotifDeliveryInstructions, "DELIVERY_INSTRUCTIONS", nil, action(mapAction)),
		}
	}
	return nil
}

func (c *Composer) StatusChanged(report *domain.Report) domain.Message {
	if key, ok := statusTemplates[report.Status]; ok {
		var act *string
		if report.Status == domain.StatusMatched {
			act = action(mapAction)
		}
		return c.message(domain.NotifStatusChanged, key, nil, act)
	}

	return domain.Message{
		Type: domain.NotifStatusChanged,
		Title: domain.Localized{
			AR: c.catalog.Translate(string(domain.LanguageArabic), "STATUS_UPDATED_TITLE"),
			EN: c.catalog.Translate(string(domain.LanguageEnglish), "STATUS_UPDATED_TITLE"),
		},
		Body: domain.Localized{
			AR: c.statusBody(domain.LanguageArabic, report),
			EN: c.statusBody(domain.LanguageEnglish, report),
		},
	}
}

func (c *Composer) MatchFound(match *domain.Match) domain.Message {
	return c.message(domain.NotifMatchFound, "MATCH_FOUND", map[string]string{"title": match.Title}, nil)
}

func (c *Composer) MatchedWithMissing() domain.Message {
	return c.message(domain.NotifMatchedWithMissing, "MATCHED_WITH_MISSING", nil, nil)
}

func (c *Composer) statusBody(lang domain.Language, report *domain.Report) string {
	label, ok := c.catalog.StatusLabel(string(lang), string(report.Status))
	if !ok {
		label = string(report.Status)
	}
	return c.catalog.Format(string(lang), "STATUS_UPDATED_BODY", map[string]string{
		"title":  report.Title,
		"status": label,
	})
}

func (c *Composer) message(typ domain.NotificationType, key string, vars map[string]string, act *string) domain.Message {
	return domain.Message{
		Type:   typ,
		Title:  c.localized(key+"_TITLE", vars),
		Body:   c.localized(key+"_BODY", vars),
		Action: act,
	}
}

func (c *Composer) localized(key string, vars map[string]string) domain.Localized {
	return domain.Localized{
		AR: c.catalog.Format(string(domain.LanguageArabic), key, vars),
		EN: c.catalog.Format(string(domain.LanguageEnglish), key, vars),
	}
}

func action(path string) *string {
	return &path
}
