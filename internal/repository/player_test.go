package repository

import (
	"testing"

	"github.com/rocketscienceinc/gameroom-backend/internal/entity"
	"github.com/rocketscienceinc/gameroom-backend/testing/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayerRepository_CreateOrUpdate(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: a player in a room
	player := &entity.Player{ID: "123", Name: "Alice", RoomID: "room-1"}

	// When: CreateOrUpdate is called twice
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))
	require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))

	// Then: the player is listed in the room once
	players, err := playerRepo.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Player{*player}, players)
}

func TestPlayerRepository_ListByRoom(t *testing.T) {
	ctx, st := suite.New(t)

	playerRepo := NewPlayerRepository(st.Storage)

	// Given: three players join two rooms
	alice := &entity.Player{ID: "a", Name: "Alice", RoomID: "room-1"}
	bob := &entity.Player{ID: "b", Name: "Bob", RoomID: "room-1"}
	carol := &entity.Player{ID: "c", Name: "Carol", RoomID: "room-2"}
	for _, player := range []*entity.Player{alice, bob, carol} {
		require.NoError(t, playerRepo.CreateOrUpdate(ctx, player))
	}

	// When: the rooms are listed
	room1, err := playerRepo.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	empty, err := playerRepo.ListByRoom(ctx, "room-3")
	require.NoError(t, err)

	// Then: each room holds its players in join order
	assert.Equal(t, []entity.Player{*alice, *bob}, room1)
	assert.Empty(t, empty)

	// When: Alice leaves
	require.NoError(t, playerRepo.Delete(ctx, alice))

	// Then: only Bob remains
	room1, err = playerRepo.ListByRoom(ctx, "room-1")
	require.NoError(t, err)
	assert.Equal(t, []entity.Player{*bob}, room1)

	// And: the player record itself is gone
	exists, err := st.Storage.Exists(ctx, playerKey(alice.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}
