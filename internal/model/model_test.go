package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/deppfellow/daca-chatbot/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func failedFields(t *testing.T, err error) map[string]string {
	t.Helper()

	var fieldErrors validation.Errors
	require.ErrorAs(t, err, &fieldErrors)

	out := make(map[string]string, len(fieldErrors))
	for _, fe := range fieldErrors {
		out[fe.Field] = fe.Constraint
	}
	return out
}

func validUserWithAddress() map[string]any {
	return map[string]any{
		"id":    1,
		"name":  "Alice",
		"email": "alice@example.com",
		"addresses": []any{
			map[string]any{"street": "123 Main St", "city": "New York", "zip_code": "10001"},
			map[string]any{"street": "456 Oak Ave", "city": "Los Angeles", "zip_code": "90001"},
		},
	}
}

func TestNewUserWithAddress(t *testing.T) {
	user, err := NewUserWithAddress(validUserWithAddress())
	require.NoError(t, err)

	assert.Equal(t, 1, user.ID)
	assert.Equal(t, "Alice", user.Name)
	require.Len(t, user.Addresses, 2)
	assert.Equal(t, Address{Street: "456 Oak Ave", City: "Los Angeles", ZipCode: "90001"}, user.Addresses[1])
}

func TestUserNameLength(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		wantErr bool
	}{
		{"single character", "A", true},
		{"empty", "", true},
		{"two characters", "Al", false},
		{"two multibyte characters", "Żó", false},
		{"long", "Charlie", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validUserWithAddress()
			raw["name"] = tt.value

			_, err := NewUserWithAddress(raw)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			fields := failedFields(t, err)
			assert.Equal(t, "min_length", fields["name"])
		})
	}
}

func TestUserNameErrorMessage(t *testing.T) {
	_, err := NewUser(map[string]any{"id": 3, "name": "A", "email": "charlie@example.com"})

	var fieldErrors validation.Errors
	require.ErrorAs(t, err, &fieldErrors)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "Name must be at least 2 characters long", fieldErrors[0].Error)
	assert.Equal(t, "A", fieldErrors[0].Value)
}

func TestUserEmail(t *testing.T) {
	for _, email := range []string{"not-an-email", "alice@", "@example.com", "alice example.com"} {
		t.Run(email, func(t *testing.T) {
			_, err := NewUser(map[string]any{"id": 1, "name": "Alice", "email": email})
			assert.Equal(t, "email", failedFields(t, err)["email"])
		})
	}

	user, err := NewUser(map[string]any{"id": 1, "name": "Alice", "email": "alice@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.Email)
}

func TestUserOptionalAge(t *testing.T) {
	user, err := NewUser(map[string]any{"id": 1, "name": "Alice", "email": "alice@example.com"})
	require.NoError(t, err)
	assert.Nil(t, user.Age)

	user, err = NewUser(map[string]any{"id": 1, "name": "Alice", "email": "alice@example.com", "age": nil})
	require.NoError(t, err)
	assert.Nil(t, user.Age)

	user, err = NewUser(map[string]any{"id": 1, "name": "Alice", "email": "alice@example.com", "age": 30})
	require.NoError(t, err)
	require.NotNil(t, user.Age)
	assert.Equal(t, 30, *user.Age)
}

func TestUserWithAddressAggregatesFailures(t *testing.T) {
	_, err := NewUserWithAddress(map[string]any{
		"id":    "three",
		"name":  "A",
		"email": "charlie",
		"addresses": []any{
			map[string]any{"street": "789 Pine Rd", "city": "Chicago"},
			"not an address",
		},
	})

	assert.Equal(t, map[string]string{
		"id":                    "type",
		"name":                  "min_length",
		"email":                 "email",
		"addresses[0].zip_code": "required",
		"addresses[1]":          "type",
	}, failedFields(t, err))
}

func TestUserMissingFields(t *testing.T) {
	_, err := NewUser(map[string]any{})

	fields := failedFields(t, err)
	assert.Equal(t, "required", fields["id"])
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "required", fields["email"])
	assert.NotContains(t, fields, "age")
}

func TestNewAddress(t *testing.T) {
	addr, err := NewAddress(map[string]any{"street": "123 Main St", "city": "New York", "zip_code": "10001"})
	require.NoError(t, err)
	assert.Equal(t, "10001", addr.ZipCode)

	_, err = NewAddress(map[string]any{"street": "123 Main St", "city": 42, "zip_code": "10001"})
	assert.Equal(t, map[string]string{"city": "type"}, failedFields(t, err))
}

func TestNewMessageDefaultsMetadata(t *testing.T) {
	before := time.Now().UTC()

	msg, err := NewMessage(map[string]any{
		"user_id":  "u1",
		"text":     "hi",
		"metadata": map[string]any{},
	})
	require.NoError(t, err)

	assert.False(t, msg.Metadata.Timestamp.Before(before))
	assert.NoError(t, uuid.Validate(msg.Metadata.SessionID))
	assert.Nil(t, msg.Tags)
}

func TestNewMessageKeepsProvidedMetadata(t *testing.T) {
	msg, err := NewMessage(map[string]any{
		"user_id": "u1",
		"text":    "hi",
		"metadata": map[string]any{
			"timestamp":  "2025-03-01T10:00:00Z",
			"session_id": "abc",
		},
		"tags": []any{"b", "a"},
	})
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), msg.Metadata.Timestamp)
	assert.Equal(t, "abc", msg.Metadata.SessionID)
	assert.Equal(t, []string{"b", "a"}, msg.Tags)
}

func TestNewMessageTimestampWithoutOffset(t *testing.T) {
	tests := map[string]time.Time{
		"2025-03-01T10:00:00":       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		"2025-03-01T10:00:00.250":   time.Date(2025, 3, 1, 10, 0, 0, 250_000_000, time.UTC),
		"2025-03-01 10:00:00":       time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		"2025-03-01T10:00":          time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		"2025-03-01":                time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		"2025-03-01T12:00:00+02:00": time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			msg, err := NewMessage(map[string]any{
				"user_id":  "u1",
				"text":     "hi",
				"metadata": map[string]any{"timestamp": input},
			})
			require.NoError(t, err)

			assert.True(t, want.Equal(msg.Metadata.Timestamp), "got %s", msg.Metadata.Timestamp)
		})
	}
}

func TestNewMessageRejectsMalformedInput(t *testing.T) {
	_, err := NewMessage(map[string]any{
		"user_id":  7,
		"metadata": map[string]any{"timestamp": "yesterday"},
		"tags":     []any{"ok", 3},
	})

	assert.Equal(t, map[string]string{
		"user_id":            "type",
		"text":               "required",
		"metadata.timestamp": "type",
		"tags[1]":            "type",
	}, failedFields(t, err))
}

func TestNewMessageAcceptsBlankText(t *testing.T) {
	msg, err := NewMessage(map[string]any{"user_id": "u1", "text": "   ", "metadata": map[string]any{}})
	require.NoError(t, err)
	assert.Equal(t, "   ", msg.Text)
}

func TestNewMetadataIsFresh(t *testing.T) {
	a, b := NewMetadata(), NewMetadata()

	assert.NotEqual(t, a.SessionID, b.SessionID)
	assert.Equal(t, time.UTC, a.Timestamp.Location())
}

func TestRoundTrip(t *testing.T) {
	age := 41

	t.Run("user", func(t *testing.T) {
		user := &User{ID: 9, Name: "Bob", Email: "bob@example.com", Age: &age}

		raw, err := validation.ToMap(user)
		require.NoError(t, err)

		decoded, err := NewUser(raw)
		require.NoError(t, err)
		assert.Equal(t, user, decoded)
	})

	t.Run("user with address", func(t *testing.T) {
		user, err := NewUserWithAddress(validUserWithAddress())
		require.NoError(t, err)

		raw, err := validation.ToMap(user)
		require.NoError(t, err)

		decoded, err := NewUserWithAddress(raw)
		require.NoError(t, err)
		assert.Equal(t, user, decoded)
	})

	t.Run("message", func(t *testing.T) {
		msg := &Message{
			UserID: "u1",
			Text:   "hello",
			Metadata: Metadata{
				Timestamp: time.Date(2025, 1, 2, 3, 4, 5, 6, time.UTC),
				SessionID: "session-1",
			},
			Tags: []string{"greeting"},
		}

		raw, err := validation.ToMap(msg)
		require.NoError(t, err)

		decoded, err := NewMessage(raw)
		require.NoError(t, err)
		assert.Equal(t, msg, decoded)
	})
}

func TestResponseJSON(t *testing.T) {
	body, err := json.Marshal(Response{UserID: "u1", Reply: "hey", Metadata: NewMetadata()})
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))
	assert.Equal(t, "u1", decoded["user_id"])
	assert.Contains(t, decoded["metadata"], "session_id")
	assert.Contains(t, decoded["metadata"], "timestamp")
}
