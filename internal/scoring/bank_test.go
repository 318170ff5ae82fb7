package scoring

import (
	"strings"
	"testing"

	"mindshift/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBank(t *testing.T, name string) *Bank {
	t.Helper()
	b, err := BuiltinBank(name)
	require.NoError(t, err)
	return b
}

func TestBuiltinBanks(t *testing.T) {
	assert.Equal(t, []string{"mbti16", "mbti24"}, BuiltinBankNames())

	tests := []struct {
		name  string
		size  int
		poles map[string][]int
	}{
		{
			name: "mbti24",
			size: 24,
			poles: map[string][]int{
				"E": {0, 1, 2}, "I": {3, 4, 5},
				"S": {6, 7, 8}, "N": {9, 10, 11},
				"T": {12, 13, 14}, "F": {15, 16, 17},
				"J": {18, 19, 20}, "P": {21, 22, 23},
			},
		},
		{
			name: "mbti16",
			size: 16,
			poles: map[string][]int{
				"E": {0, 1, 2}, "I": {3},
				"S": {4, 6}, "N": {5, 7},
				"T": {8, 10}, "F": {9, 11},
				"J": {12, 14}, "P": {13, 15},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustBank(t, tt.name)
			assert.Equal(t, tt.name, b.Name())
			assert.Equal(t, tt.size, b.Len())
			for letter, want := range tt.poles {
				axis, pole, ok := model.AxisForLetter(letter[0])
				require.True(t, ok)
				assert.Equal(t, want, b.PoleIndices(axis, pole), "pole %s", letter)
			}
		})
	}
}

func TestBankLookup(t *testing.T) {
	b := mustBank(t, "mbti24")

	q, ok := b.Lookup("You feel refreshed after spending time alone with your thoughts.")
	require.True(t, ok)
	assert.Equal(t, 3, q.Index)
	assert.Equal(t, model.AxisEI, q.Axis)
	assert.Equal(t, "I", q.PoleLetter())

	_, ok = b.Lookup("you feel refreshed after spending time alone with your thoughts.")
	assert.False(t, ok, "lookup is exact, not case-insensitive")

	general := b.General()
	require.Len(t, general, 24)
	assert.Equal(t, "E", general[0].Side)
	assert.Equal(t, model.DefaultLikertScale, general[0].Scale)
}

func TestLoadBankValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name:    "empty",
			yaml:    "name: x\nquestions: []\n",
			wantErr: "no questions",
		},
		{
			name:    "unassigned index",
			yaml:    "name: x\nquestions: [a, b]\npartition:\n  \"E\": [0]\n",
			wantErr: "question 1 has no pole",
		},
		{
			name:    "double assignment",
			yaml:    "name: x\nquestions: [a, b]\npartition:\n  \"E\": [0, 1]\n  \"I\": [1]\n",
			wantErr: "more than one pole",
		},
		{
			name:    "bad letter",
			yaml:    "name: x\nquestions: [a]\npartition:\n  \"X\": [0]\n",
			wantErr: "invalid pole letter",
		},
		{
			name:    "out of range",
			yaml:    "name: x\nquestions: [a]\npartition:\n  \"E\": [0, 4]\n",
			wantErr: "out of range",
		},
		{
			name:    "duplicate text",
			yaml:    "name: x\nquestions: [a, a]\npartition:\n  \"E\": [0]\n  \"I\": [1]\n",
			wantErr: "duplicate question",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBank(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuiltinBankUnknown(t *testing.T) {
	_, err := BuiltinBank("mbti99")
	assert.ErrorIs(t, err, ErrUnknownBank)
}
