package request

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/pushkit/pkg/langcode"
	"github.com/dmitrymomot/pushkit/pkg/target"
)

// Builder assembles the JSON body of a notification create request. It owns
// the envelope only: identity, localized content, audience targeting, and
// delivery scheduling. Rich payload assembly (buttons, attachments, platform
// overrides) is out of its scope.
//
// Like the other builders in this module it is fluent and single-owner, and
// records the first construction error for Err and Body to report.
type Builder struct {
	appID      string
	externalID string
	contents   map[string]string
	headings   map[string]string
	audience   *target.Builder

	sendAfter         time.Time
	delayedOption     DelayedOption
	deliveryTimeOfDay string
	priority          int

	err error
}

// New returns a request builder for the application in cfg. Each builder
// gets a fresh idempotency key so an accidental double submission of the
// same body is deduplicated by the delivery service; override it with
// IdempotencyKey when the caller manages retries itself.
func New(cfg Config) *Builder {
	b := &Builder{
		externalID: uuid.NewString(),
		contents:   make(map[string]string),
		headings:   make(map[string]string),
	}
	if cfg.AppID == "" {
		b.fail(ErrMissingAppID)
		return b
	}
	b.appID = cfg.AppID
	return b
}

func (b *Builder) fail(err error) {
	if b.err == nil {
		b.err = err
	}
}

// IdempotencyKey replaces the generated idempotency key.
func (b *Builder) IdempotencyKey(key string) *Builder {
	b.externalID = key
	return b
}

// Content sets the notification message for one language.
func (b *Builder) Content(lang, message string) *Builder {
	if !langcode.Valid(lang) {
		b.fail(fmt.Errorf("%w: %q", ErrInvalidLanguageCode, lang))
		return b
	}
	b.contents[lang] = message
	return b
}

// Heading sets the notification title for one language.
func (b *Builder) Heading(lang, title string) *Builder {
	if !langcode.Valid(lang) {
		b.fail(fmt.Errorf("%w: %q", ErrInvalidLanguageCode, lang))
		return b
	}
	b.headings[lang] = title
	return b
}

// Target sets the audience for the notification.
func (b *Builder) Target(audience *target.Builder) *Builder {
	b.audience = audience
	return b
}

// SendAfter schedules delivery for a future time instead of immediately.
func (b *Builder) SendAfter(at time.Time) *Builder {
	b.sendAfter = at
	return b
}

// Delayed sets how a scheduled delivery is spread across the audience.
func (b *Builder) Delayed(opt DelayedOption) *Builder {
	b.delayedOption = opt
	return b
}

// DeliveryTimeOfDay sets the local delivery time used with DelayedTimeZone,
// e.g. "9:00AM".
func (b *Builder) DeliveryTimeOfDay(tod string) *Builder {
	b.deliveryTimeOfDay = tod
	return b
}

// Priority sets the delivery priority (10 is the service's "high").
func (b *Builder) Priority(p int) *Builder {
	b.priority = p
	return b
}

// Err returns the first error recorded during construction, or nil.
func (b *Builder) Err() error {
	return b.err
}

// Body assembles the request body for POST /notifications. The targeting
// selectors are flattened into the envelope's top level, the way the
// delivery service expects them. Body validates that targeting is present
// and that content exists for the default language, then produces a
// deterministic JSON object (keys sorted); it does not send anything.
func (b *Builder) Body() ([]byte, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.audience == nil {
		return nil, ErrMissingTarget
	}
	if _, ok := b.contents[langcode.Default]; !ok {
		return nil, ErrMissingDefaultContent
	}

	audience, err := b.audience.MarshalJSON()
	if err != nil {
		return nil, err
	}

	body := map[string]any{
		"app_id":      b.appID,
		"external_id": b.externalID,
		"contents":    b.contents,
	}
	if len(b.headings) > 0 {
		body["headings"] = b.headings
	}
	if !b.sendAfter.IsZero() {
		body["send_after"] = b.sendAfter.Format(time.RFC3339)
	}
	if b.delayedOption != "" {
		body["delayed_option"] = string(b.delayedOption)
	}
	if b.deliveryTimeOfDay != "" {
		body["delivery_time_of_day"] = b.deliveryTimeOfDay
	}
	if b.priority != 0 {
		body["priority"] = b.priority
	}

	var selectors map[string]json.RawMessage
	if err := json.Unmarshal(audience, &selectors); err != nil {
		return nil, err
	}
	for k, v := range selectors {
		body[k] = v
	}

	// Encode without HTML escaping so embedded ">"/"<" relation symbols
	// stay byte-identical to the filter package's wire output.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(body); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
