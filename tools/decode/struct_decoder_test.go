package decode

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ChatID  string   `json:"chatId"`
	Members []string `json:"members"`
	Count   int      `json:"count"`
}

func TestDecodeMap(t *testing.T) {
	got, err := DecodeMap[payload](map[string]any{
		"chatId":  "ch1",
		"members": []any{"u1", "u2"},
		"count":   float64(3), // JSON numbers arrive as float64
	})
	require.NoError(t, err)
	assert.Equal(t, "ch1", got.ChatID)
	assert.Equal(t, []string{"u1", "u2"}, got.Members)
	assert.Equal(t, 3, got.Count)
}

func TestDecodeMapMissingFieldsAreZero(t *testing.T) {
	got, err := DecodeMap[payload](map[string]any{"chatId": "ch1"})
	require.NoError(t, err)
	assert.Equal(t, "ch1", got.ChatID)
	assert.Empty(t, got.Members)
	assert.Zero(t, got.Count)
}

func TestDecodeMapNil(t *testing.T) {
	_, err := DecodeMap[payload](nil)
	assert.Error(t, err)
}

func TestDecodeMapRejectsWrongShape(t *testing.T) {
	_, err := DecodeMap[payload](map[string]any{
		"chatId": map[string]any{"nested": true},
	})
	assert.Error(t, err)
}
