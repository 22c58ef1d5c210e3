package models

// Inbound webhook payload as delivered by the WhatsApp Cloud API. Only the
// fields the pipeline reads are mapped; everything else is ignored.

type WebhookPayload struct {
	Object string         `json:"object"`
	Entry  []WebhookEntry `json:"entry"`
}

type WebhookEntry struct {
	ID      string          `json:"id"`
	Changes []WebhookChange `json:"changes"`
}

type WebhookChange struct {
	Field string       `json:"field"`
	Value WebhookValue `json:"value"`
}

type WebhookValue struct {
	Contacts []WebhookContact `json:"contacts"`
	Messages []WebhookMessage `json:"messages"`
}

type WebhookContact struct {
	WaID    string `json:"wa_id"`
	Profile struct {
		Name string `json:"name"`
	} `json:"profile"`
}

type WebhookMessage struct {
	ID   string `json:"id"`
	From string `json:"from"`
	Type string `json:"type"`
	Text *struct {
		Body string `json:"body"`
	} `json:"text"`
	Audio *struct {
		ID       string `json:"id"`
		MimeType string `json:"mime_type"`
	} `json:"audio"`
	Image *struct {
		ID      string `json:"id"`
		Caption string `json:"caption"`
	} `json:"image"`
}

// ProfileName returns the display name of the first contact, if any.
func (v WebhookValue) ProfileName() string {
	if len(v.Contacts) == 0 {
		return ""
	}
	return v.Contacts[0].Profile.Name
}
