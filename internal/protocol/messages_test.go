package protocol

import (
	"encoding/json"
	"testing"

	"github.com/Manuel080806/TombolaNFC/internal/engine"
	"github.com/stretchr/testify/require"
)

func TestNewGameUpdate_CoversFullBoard(t *testing.T) {
	update := NewGameUpdate(engine.State{Active: true, Called: []int{7, 42, 13}})

	require.Equal(t, "gameUpdate", update.Type)
	require.Len(t, update.Data.Numbers, 90)
	require.Equal(t, []int{7, 42, 13}, update.Data.CalledNumbers)

	for i, bn := range update.Data.Numbers {
		require.Equal(t, i+1, bn.Number)
	}
	require.True(t, update.Data.Numbers[6].Called)  // 7
	require.True(t, update.Data.Numbers[41].Called) // 42
	require.True(t, update.Data.Numbers[12].Called) // 13
	require.False(t, update.Data.Numbers[0].Called)
	require.False(t, update.Data.Numbers[89].Called)
}

func TestNewGameUpdate_EmptySessionMarshalsEmptyArray(t *testing.T) {
	update := NewGameUpdate(engine.NewEmptyState())

	payload, err := json.Marshal(update)
	require.NoError(t, err)

	// Clients expect [] rather than null when nothing has been drawn.
	require.Contains(t, string(payload), `"calledNumbers":[]`)
}

func TestParseRole(t *testing.T) {
	role, ok := ParseRole("admin")
	require.True(t, ok)
	require.Equal(t, engine.RoleAdmin, role)

	role, ok = ParseRole("viewer")
	require.True(t, ok)
	require.Equal(t, engine.RoleViewer, role)

	_, ok = ParseRole("superuser")
	require.False(t, ok)
	_, ok = ParseRole("")
	require.False(t, ok)
}
