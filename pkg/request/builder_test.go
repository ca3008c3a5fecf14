package request_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pushkit/pkg/filter"
	"github.com/dmitrymomot/pushkit/pkg/request"
	"github.com/dmitrymomot/pushkit/pkg/target"
)

var testConfig = request.Config{
	AppID:  "app-123",
	APIKey: "key-456",
}

func TestBuilder_Body(t *testing.T) {
	t.Parallel()

	t.Run("full envelope", func(t *testing.T) {
		t.Parallel()

		audience := target.New().Filters(filter.New().
			SessionCount(filter.GreaterThan, 10).
			And().
			SessionTime(filter.LowerThan, 2000))

		body, err := request.New(testConfig).
			IdempotencyKey("req-1").
			Content("en", "Hey there!").
			Content("de", "Hallo!").
			Heading("en", "Greetings").
			Target(audience).
			Body()
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"app_id": "app-123",
			"external_id": "req-1",
			"contents": {"en": "Hey there!", "de": "Hallo!"},
			"headings": {"en": "Greetings"},
			"filters": [
				{"field": "session_count", "relation": ">", "value": 10},
				{"operator": "AND"},
				{"field": "session_time", "relation": "<", "value": 2000}
			]
		}`, string(body))
	})

	t.Run("segment targeting flattens to top level", func(t *testing.T) {
		t.Parallel()

		body, err := request.New(testConfig).
			IdempotencyKey("req-2").
			Content("en", "Hello").
			Target(target.New().Segments("Active Users")).
			Body()
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"app_id": "app-123",
			"external_id": "req-2",
			"contents": {"en": "Hello"},
			"included_segments": ["Active Users"]
		}`, string(body))
	})

	t.Run("scheduling fields", func(t *testing.T) {
		t.Parallel()

		at := time.Date(2026, 9, 9, 10, 0, 0, 0, time.UTC)

		body, err := request.New(testConfig).
			IdempotencyKey("req-3").
			Content("en", "Scheduled").
			Target(target.New().Segments("All")).
			SendAfter(at).
			Delayed(request.DelayedTimeZone).
			DeliveryTimeOfDay("10:00AM").
			Priority(10).
			Body()
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))
		assert.Equal(t, "2026-09-09T10:00:00Z", got["send_after"])
		assert.Equal(t, "timezone", got["delayed_option"])
		assert.Equal(t, "10:00AM", got["delivery_time_of_day"])
		assert.Equal(t, float64(10), got["priority"])
	})

	t.Run("relation symbols stay unescaped in the body", func(t *testing.T) {
		t.Parallel()

		body, err := request.New(testConfig).
			IdempotencyKey("req-5").
			Content("en", "Hi").
			Target(target.New().Filters(filter.New().
				SessionCount(filter.GreaterThan, 10).
				And().
				SessionTime(filter.LowerThan, 2000))).
			Body()
		require.NoError(t, err)

		assert.Contains(t, string(body), `"relation":">"`)
		assert.Contains(t, string(body), `"relation":"<"`)
		assert.NotContains(t, string(body), `\u003e`)
		assert.NotContains(t, string(body), `\u003c`)
	})

	t.Run("generated idempotency key is a uuid", func(t *testing.T) {
		t.Parallel()

		body, err := request.New(testConfig).
			Content("en", "Hi").
			Target(target.New().Segments("All")).
			Body()
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(body, &got))

		id, ok := got["external_id"].(string)
		require.True(t, ok)
		_, err = uuid.Parse(id)
		assert.NoError(t, err)
	})

	t.Run("body is repeatable", func(t *testing.T) {
		t.Parallel()

		b := request.New(testConfig).
			IdempotencyKey("req-4").
			Content("en", "Hi").
			Target(target.New().Segments("All"))

		first, err := b.Body()
		require.NoError(t, err)
		second, err := b.Body()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestBuilder_BodyValidation(t *testing.T) {
	t.Parallel()

	t.Run("missing app id", func(t *testing.T) {
		t.Parallel()

		b := request.New(request.Config{}).
			Content("en", "Hi").
			Target(target.New().Segments("All"))
		assert.ErrorIs(t, b.Err(), request.ErrMissingAppID)

		_, err := b.Body()
		assert.ErrorIs(t, err, request.ErrMissingAppID)
	})

	t.Run("missing target", func(t *testing.T) {
		t.Parallel()

		_, err := request.New(testConfig).Content("en", "Hi").Body()
		assert.ErrorIs(t, err, request.ErrMissingTarget)
	})

	t.Run("missing default language content", func(t *testing.T) {
		t.Parallel()

		_, err := request.New(testConfig).
			Content("de", "Hallo").
			Target(target.New().Segments("All")).
			Body()
		assert.ErrorIs(t, err, request.ErrMissingDefaultContent)
	})

	t.Run("invalid language code", func(t *testing.T) {
		t.Parallel()

		b := request.New(testConfig).Content("not a tag", "Hi")
		assert.ErrorIs(t, b.Err(), request.ErrInvalidLanguageCode)
	})

	t.Run("conflicting target surfaces from body", func(t *testing.T) {
		t.Parallel()

		_, err := request.New(testConfig).
			Content("en", "Hi").
			Target(target.New().PlayerIDs("p1").Segments("All")).
			Body()
		assert.ErrorIs(t, err, target.ErrConflictingTargets)
	})
}
