package envelope

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusShape(t *testing.T) {
	{
		out, err := json.Marshal(Success(map[string]any{"players": []int{}}))
		if err != nil {
			t.Fatal(err)
		}
		require.JSONEq(t, `{"status":"success","data":{"players":[]}}`, string(out))
	}
	{
		out, err := json.Marshal(Error("upstream unreachable"))
		if err != nil {
			t.Fatal(err)
		}
		require.JSONEq(t, `{"status":"error","message":"upstream unreachable"}`, string(out))
	}
	{
		out, err := json.Marshal(Info("no data requested", nil))
		if err != nil {
			t.Fatal(err)
		}
		require.JSONEq(t, `{"status":"info","message":"no data requested"}`, string(out))
	}
}

func TestEmptyCollectionIsNotOmitted(t *testing.T) {
	out, err := json.Marshal(Success([]string{}))
	if err != nil {
		t.Fatal(err)
	}
	require.JSONEq(t, `{"status":"success","data":[]}`, string(out))
}

func TestErrorCarriesNoData(t *testing.T) {
	env := Error("boom")
	require.Nil(t, env.Data)

	var decoded map[string]any
	err := json.Unmarshal([]byte(env.String()), &decoded)
	if err != nil {
		t.Fatal(err)
	}
	_, hasData := decoded["data"]
	require.False(t, hasData)
}
