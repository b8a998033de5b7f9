package domain

// Localized holds the Arabic and English variants of one text.
type Localized struct {
	AR string
	EN string
}

func (l Localized) In(lang Language) string {
	if lang == LanguageEnglish {
		return l.EN
	}
	return l.AR
}

// Message is a bilingual notification ready for dispatch.
type Message struct {
	Type   NotificationType
	Title  Localized
	Body   Localized
	Action *string
}

// Content is a Message rendered in a single language.
type Content struct {
	Type   NotificationType
	Title  string
	Body   string
	Action *string
}

func (m Message) In(lang Language) Content {
	return Content{
		Type:   m.Type,
		Title:  m.Title.In(lang),
		Body:   m.Body.In(lang),
		Action: m.Action,
	}
}
