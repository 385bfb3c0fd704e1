package chain

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAction_Pack(t *testing.T) {
	t.Parallel()

	t.Run("nominal case", func(t *testing.T) {
		t.Parallel()

		action := transferAction(t)
		got, err := MarshalBinary(action)
		require.NoError(t, err)

		want := "00a6823403ea3055" + "000000572d3ccdcd" +
			"01" + "10420857498d2745" + "00000000a8ed3232" +
			"2a" + testBinArgs
		assert.Equal(t, want, hex.EncodeToString(got))
	})

	t.Run("fails without binargs", func(t *testing.T) {
		t.Parallel()

		action := NewAction("eosio.token", "transfer", nil, NewPermissionLevel("consumer1111", ""))
		_, err := MarshalBinary(action)
		assert.ErrorIs(t, err, ErrMissingBinArgs)
	})

	t.Run("empty binargs are a zero length payload", func(t *testing.T) {
		t.Parallel()

		action := NewAction("eosio", "noop", nil)
		action.Link(nil)
		got, err := MarshalBinary(action)
		require.NoError(t, err)
		assert.Equal(t, "0000000000ea3055"+"000000000050299d"+"00"+"00", hex.EncodeToString(got))
	})

	t.Run("fails on invalid authorization actor", func(t *testing.T) {
		t.Parallel()

		action := NewAction("eosio.token", "transfer", nil, NewPermissionLevel("Consumer", "active"))
		action.Link([]byte{0x01})
		_, err := MarshalBinary(action)
		assert.ErrorIs(t, err, ErrInvalidName)
	})
}

func TestAction_Unpack(t *testing.T) {
	t.Parallel()

	action := transferAction(t)
	data, err := MarshalBinary(action)
	require.NoError(t, err)

	d := NewDecoder(data)
	d.StripDots = true
	var got Action
	require.NoError(t, d.Decode(&got))

	assert.Equal(t, action.Account, got.Account)
	assert.Equal(t, action.Name, got.Name)
	assert.Equal(t, action.Authorization, got.Authorization)
	assert.Equal(t, action.BinArgs, got.BinArgs)
}

func TestAction_JSON(t *testing.T) {
	t.Parallel()

	action := transferAction(t)
	data, err := json.Marshal(action)
	require.NoError(t, err)

	var got Action
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, action.BinArgs, got.BinArgs)
	assert.Equal(t, "consumer2222", got.Data["to"])
	assert.Equal(t, "consumer1111-active", got.Authorization[0].Index())
}
