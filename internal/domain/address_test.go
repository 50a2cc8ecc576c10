package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/DRSN-tech/product-registry/pkg/e"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseAddress(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lower with prefix", input: "0x00000000000000000000000000000000000000a1", want: "0x00000000000000000000000000000000000000a1"},
		{name: "upper without prefix", input: "ABCDEFABCDEFABCDEFABCDEFABCDEFABCDEFABCD", want: "0xabcdefabcdefabcdefabcdefabcdefabcdefabcd"},
		{name: "upper prefix", input: "0X00000000000000000000000000000000000000a1", want: "0x00000000000000000000000000000000000000a1"},
		{name: "surrounding spaces", input: "  0x00000000000000000000000000000000000000a1 ", want: "0x00000000000000000000000000000000000000a1"},
		{name: "short form", input: "0x0", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "too long", input: "0x" + strings.Repeat("a", 42), wantErr: true},
		{name: "non hex", input: "0x" + strings.Repeat("g", 40), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			addr, err := ParseAddress(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, e.ErrInvalidAddress)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, addr.String())
		})
	}
}

func TestAddress_IsZero(t *testing.T) {
	require.True(t, ZeroAddress.IsZero())
	require.True(t, MustParseAddress("0x0000000000000000000000000000000000000000").IsZero())
	require.False(t, MustParseAddress("0x0000000000000000000000000000000000000001").IsZero())
}

func TestMustParseAddress_Panics(t *testing.T) {
	require.Panics(t, func() { MustParseAddress("nope") })
}

func TestAddress_JSON(t *testing.T) {
	type wrapper struct {
		Owner Address `json:"owner"`
	}

	in := wrapper{Owner: MustParseAddress("0x00000000000000000000000000000000000000a1")}
	data, err := json.Marshal(in)
	require.NoError(t, err)
	require.JSONEq(t, `{"owner":"0x00000000000000000000000000000000000000a1"}`, string(data))

	var out wrapper
	require.NoError(t, json.Unmarshal(data, &out))
	require.Equal(t, in, out)

	err = json.Unmarshal([]byte(`{"owner":"0x0"}`), &out)
	require.ErrorIs(t, err, e.ErrInvalidAddress)
}

func TestAddress_StringRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var addr Address
		copy(addr[:], rapid.SliceOfN(rapid.Byte(), AddressLength, AddressLength).Draw(t, "bytes"))

		parsed, err := ParseAddress(addr.String())
		require.NoError(t, err)
		require.Equal(t, addr, parsed)
	})
}
