package normalize

import (
	"strings"

	"github.com/clearway/teamsdb/internal/model"
	"github.com/clearway/teamsdb/internal/raw"
)

// Content extracts a message body. Current schemas store it directly under
// "content"; older ones nest it under "messageBody". Text and HTML pass
// through unchanged; raw bytes decode as UTF-8 with replacement characters
// on invalid sequences.
func Content(fields raw.Map) string {
	if v, ok := fields.Field("content"); ok {
		if s, ok := raw.Stringify(v); ok && s != "" {
			return s
		}
	}
	if body, ok := fields.MapField("messageBody"); ok {
		if s, ok := body.StringField("content"); ok {
			return s
		}
	}
	return ""
}

// ContentTypeOf classifies a message body as text or HTML from the record's
// message-type marker (for example "RichText/Html").
func ContentTypeOf(fields raw.Map) model.ContentType {
	if s, ok := fields.StringField("messagetype"); ok {
		if strings.Contains(strings.ToLower(s), "html") {
			return model.ContentTypeHTML
		}
	}
	return model.ContentTypeText
}
