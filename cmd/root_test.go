package cmd

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey       = "5KQwrPbwdL6PhXujxW37FSSQZ1JiwsST4cqQzDeyXtP79zkvFD3"
	testPublicKey = "EOS6MRyAjQq8ud7hVNYcfnVPJqcVpscN5So8BhtHuGYqET5GDW5CV"
	testDigest    = "5da8487b9e406ab69346bc4d3420ee8c37a02549e31d47a084a9e76dae5909e6"
	testSignature = "SIG_K1_HR9ZM85HzfMeetzwk8XzYBmosneJFH3s9SX2LbtnyikD7q51radL1TgRajyHwneR6iJaGQZYdCw1ziHnJHjf1AAvRcuohS"
	testPacked    = "0066ee5f6400efbeadde000000000100a6823403ea3055000000572d3ccdcd0110420857498d274500000000a8ed32322a10420857498d274520841057498d2745010000000000000004454f530000000009627920656f7361706900"
	testBinArgs   = "10420857498d274520841057498d2745010000000000000004454f530000000009627920656f73617069"
	testChainID   = "2a02a0053e5a8cf73a56ba0fda11e4d92e0238a4a2aa74fccf46d5a910746840"
	testBlockID   = "0000006400000000efbeadde0000000000000000000000000000000000000000"
)

func executeCmd(t *testing.T, args ...string) (map[string]interface{}, error) {
	t.Helper()

	root := NewRootCmd()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)

	err := root.Execute()
	if err != nil {
		return nil, err
	}

	var res map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	return res, nil
}

func fakeNode(t *testing.T) (string, *[]map[string]interface{}) {
	t.Helper()

	var pushed []map[string]interface{}

	e := echo.New()
	e.HideBanner = true
	e.POST("/v1/chain/get_info", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]interface{}{
			"chain_id":                   testChainID,
			"last_irreversible_block_id": testBlockID,
			"head_block_num":             120,
		})
	})
	e.POST("/v1/chain/abi_json_to_bin", func(ctx echo.Context) error {
		return ctx.JSON(http.StatusOK, map[string]string{"binargs": testBinArgs})
	})
	e.POST("/v1/chain/push_transaction", func(ctx echo.Context) error {
		var body map[string]interface{}
		if err := ctx.Bind(&body); err != nil {
			return err
		}
		pushed = append(pushed, body)
		return ctx.JSON(http.StatusAccepted, map[string]interface{}{"transaction_id": "abcd"})
	})

	server := httptest.NewServer(e)
	t.Cleanup(server.Close)

	return server.URL, &pushed
}

func writeFile(t *testing.T, name string, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNameCmd(t *testing.T) {
	t.Run("encode", func(t *testing.T) {
		res, err := executeCmd(t, "name", "encode", "eosio.token")

		require.NoError(t, err)
		assert.Equal(t, "00a6823403ea3055", res["hex"])
		assert.Equal(t, float64(6138663591592764928), res["value"])
	})

	t.Run("decode hex", func(t *testing.T) {
		res, err := executeCmd(t, "name", "decode", "00a6823403ea3055")

		require.NoError(t, err)
		assert.Equal(t, "eosio.token", res["name"])
	})

	t.Run("decode keeps dots", func(t *testing.T) {
		res, err := executeCmd(t, "name", "decode", "--keep-dots", "6138663591592764928")

		require.NoError(t, err)
		assert.Equal(t, "eosio.token..", res["name"])
	})

	t.Run("handles invalid name", func(t *testing.T) {
		_, err := executeCmd(t, "name", "encode", "EOSIO")

		assert.Error(t, err)
	})
}

func TestSignDigestCmd(t *testing.T) {
	res, err := executeCmd(t, "sign-digest", testDigest, "--key", testKey)

	require.NoError(t, err)
	assert.Equal(t, testSignature, res["signature"])
	assert.Equal(t, testPublicKey, res["public_key"])

	_, err = executeCmd(t, "sign-digest", "beef", "--key", testKey)
	assert.Error(t, err)

	_, err = executeCmd(t, "sign-digest", testDigest)
	assert.Error(t, err)

	_, err = executeCmd(t, "sign-digest", testDigest[:63], "--key", testKey)
	assert.ErrorIs(t, err, hex.ErrLength)

	var invalid hex.InvalidByteError
	_, err = executeCmd(t, "sign-digest", "zz"+testDigest[2:], "--key", testKey)
	assert.ErrorAs(t, err, &invalid)
}

func TestKeyCmd(t *testing.T) {
	t.Run("show", func(t *testing.T) {
		res, err := executeCmd(t, "key", "show", testKey)

		require.NoError(t, err)
		assert.Equal(t, testKey, res["private_key"])
		assert.Equal(t, testPublicKey, res["public_key"])
		assert.True(t, strings.HasPrefix(res["private_key_k1"].(string), "PVT_K1_"))
		assert.True(t, strings.HasPrefix(res["public_key_k1"].(string), "PUB_K1_"))
	})

	t.Run("create from seed", func(t *testing.T) {
		seed := strings.Repeat("2a", 32)

		first, err := executeCmd(t, "key", "create", "--seed", seed)
		require.NoError(t, err)
		second, err := executeCmd(t, "key", "create", "--seed", seed)
		require.NoError(t, err)
		assert.Equal(t, first, second)

		shown, err := executeCmd(t, "key", "show", first["private_key"].(string))
		require.NoError(t, err)
		assert.Equal(t, first["public_key"], shown["public_key"])
	})

	t.Run("create random", func(t *testing.T) {
		first, err := executeCmd(t, "key", "create")
		require.NoError(t, err)
		second, err := executeCmd(t, "key", "create")
		require.NoError(t, err)
		assert.NotEqual(t, first["private_key"], second["private_key"])
	})

	t.Run("handles short seed", func(t *testing.T) {
		_, err := executeCmd(t, "key", "create", "--seed", "2a2a")
		assert.Error(t, err)

		_, err = executeCmd(t, "key", "create", "--seed", "zz")
		assert.Error(t, err)
	})
}

func TestDecodeCmd(t *testing.T) {
	res, err := executeCmd(t, "decode", testPacked)

	require.NoError(t, err)
	assert.Equal(t, "2021-01-01T00:00:00", res["expiration"])
	assert.Equal(t, float64(100), res["ref_block_num"])
	actions, ok := res["actions"].([]interface{})
	require.True(t, ok)
	require.Len(t, actions, 1)
	action := actions[0].(map[string]interface{})
	assert.Equal(t, "eosio.token", action["account"])
	assert.Equal(t, "transfer", action["name"])
	assert.Equal(t, testBinArgs, action["hex_data"])

	_, err = executeCmd(t, "decode", testPacked+"00")
	assert.Error(t, err)
}

func TestInfoCmd(t *testing.T) {
	host, _ := fakeNode(t)

	res, err := executeCmd(t, "info", "--rpc-host", host)

	require.NoError(t, err)
	assert.Equal(t, testChainID, res["chain_id"])
	assert.Equal(t, testBlockID, res["last_irreversible_block_id"])
}

func TestPushCmd(t *testing.T) {
	host, pushed := fakeNode(t)
	cfgPath := writeFile(t, "eosapi.yaml", "accounts:\n  - account: consumer1111\n    private_key: "+testKey+"\n")
	trxPath := writeFile(t, "trx.json", `{
  "actions": [{
    "account": "eosio.token",
    "name": "transfer",
    "authorization": [{"actor": "consumer1111", "permission": "active"}],
    "data": {"from": "consumer1111", "to": "consumer2222", "quantity": "0.0001 EOS", "memo": "by eosapi"}
  }]
}`)

	res, err := executeCmd(t, "push", trxPath, "--config", cfgPath, "--rpc-host", host, "--compression", "zlib", "-s", "SIG_K1_extra")

	require.NoError(t, err)
	assert.Equal(t, "abcd", res["transaction_id"])
	require.Len(t, *pushed, 1)
	body := (*pushed)[0]
	assert.Equal(t, "zlib", body["compression"])
	signatures, ok := body["signatures"].([]interface{})
	require.True(t, ok)
	require.Len(t, signatures, 2)
	assert.Equal(t, "SIG_K1_extra", signatures[1])
}

func TestPackCmd(t *testing.T) {
	host, pushed := fakeNode(t)
	trxPath := writeFile(t, "trx.json", `{"actions":[{"account":"eosio.token","name":"transfer","authorization":[{"actor":"consumer1111","permission":"active"}],"data":{}}]}`)

	res, err := executeCmd(t, "pack", trxPath, "--rpc-host", host)

	require.NoError(t, err)
	assert.Empty(t, *pushed)
	assert.Equal(t, "none", res["compression"])
	assert.Empty(t, res["signatures"])
	assert.NotEmpty(t, res["packed_trx"])
}
