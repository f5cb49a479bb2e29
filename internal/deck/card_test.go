package deck

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCards(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "blackjack",
			input: "AsKh",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
			},
		},
		{
			name:  "ten and spaces",
			input: "Td 9c 2s",
			expected: []Card{
				{Rank: Ten, Suit: Diamonds},
				{Rank: Nine, Suit: Clubs},
				{Rank: Two, Suit: Spades},
			},
		},
		{
			name:  "case insensitive",
			input: "aSqD",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: Queen, Suit: Diamonds},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "AsKx", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
		{name: "empty string", input: "", expected: []Card{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseCards(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMustParseCardsPanics(t *testing.T) {
	assert.Panics(t, func() { MustParseCards("invalid") })
}

func TestCardStrings(t *testing.T) {
	assert.Equal(t, "A♠", NewCard(Ace, Spades).String())
	assert.Equal(t, "10♥", NewCard(Ten, Hearts).String())
	assert.Equal(t, "K♣ 7♦", Hand(MustParseCards("Kc7d")).String())
}

func TestCardPoints(t *testing.T) {
	assert.Equal(t, 11, NewCard(Ace, Clubs).Points())
	assert.Equal(t, 10, NewCard(Jack, Clubs).Points())
	assert.Equal(t, 10, NewCard(Ten, Clubs).Points())
	assert.Equal(t, 7, NewCard(Seven, Clubs).Points())
}

func TestCardJSON(t *testing.T) {
	data, err := json.Marshal(NewCard(Ten, Diamonds))
	require.NoError(t, err)
	assert.JSONEq(t, `{"rank":"10","suit":"♦"}`, string(data))

	var c Card
	require.NoError(t, json.Unmarshal([]byte(`{"rank":"Q","suit":"♣"}`), &c))
	assert.Equal(t, NewCard(Queen, Clubs), c)

	assert.Error(t, json.Unmarshal([]byte(`{"rank":"1","suit":"♣"}`), &c))
	assert.Error(t, json.Unmarshal([]byte(`{"rank":"A","suit":"x"}`), &c))
}

func TestNilHandEncodesAsArray(t *testing.T) {
	data, err := json.Marshal(struct {
		Hand Hand `json:"hand"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"hand":[]}`, string(data))
}
