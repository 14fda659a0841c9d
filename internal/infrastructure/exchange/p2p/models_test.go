package p2p

import (
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexNumber_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{"string number", `{"v":"1234.56"}`, 1234.56},
		{"plain number", `{"v":0.9987}`, 0.9987},
		{"padded string", `{"v":" 12 "}`, 12},
		{"empty string", `{"v":""}`, 0},
		{"non numeric", `{"v":"n/a"}`, 0},
		{"null", `{"v":null}`, 0},
		{"boolean", `{"v":true}`, 0},
		{"nan string", `{"v":"NaN"}`, 0},
		{"missing", `{}`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out struct {
				V flexNumber `json:"v"`
			}
			require.NoError(t, sonic.Unmarshal([]byte(tt.input), &out))
			assert.InDelta(t, tt.expected, out.V.Float64(), 1e-9)
		})
	}
}

func TestFlexCode(t *testing.T) {
	var out struct {
		A flexCode `json:"a"`
		B flexCode `json:"b"`
		C flexCode `json:"c"`
	}
	require.NoError(t, sonic.Unmarshal([]byte(`{"a":0,"b":"000000","c":10001}`), &out))

	assert.False(t, out.A.isError())
	assert.False(t, out.B.isError("000000"))
	assert.True(t, out.B.isError())
	assert.True(t, out.C.isError())
	assert.Equal(t, flexCode("10001"), out.C)
}

func TestRequestBodies_WireFormat(t *testing.T) {
	descriptors := Descriptors(defaultEndpoints())

	expected := map[string]string{
		"binance": `{"asset":"USDC","fiat":"USD","merchantCheck":false,"page":1,"payTypes":[],"publisherType":null,"rows":20,"tradeType":"BUY"}`,
		"bybit":   `{"tokenId":"USDC","currencyId":"USD","payment":[],"side":"1","size":"20","page":"1","amount":""}`,
		"okx":     `{"quoteCurrency":"USD","baseCurrency":"USDC","side":"buy","paymentMethod":"all","userType":"all"}`,
		"kucoin":  `{"currency":"USDC","legal":"USD","side":"BUY","page":1,"pageSize":20}`,
	}

	for _, d := range descriptors {
		t.Run(string(d.Exchange), func(t *testing.T) {
			body, err := sonic.ConfigFastest.Marshal(d.Body("USDC"))
			require.NoError(t, err)
			assert.JSONEq(t, expected[string(d.Exchange)], string(body))
		})
	}
}

func TestRequestBodies_USDT(t *testing.T) {
	body, err := sonic.ConfigFastest.Marshal(binanceDescriptor(BinanceEndpoint).Body("USDT"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"asset":"USDT"`)

	body, err = sonic.ConfigFastest.Marshal(bybitDescriptor(BybitEndpoint).Body("USDT"))
	require.NoError(t, err)
	assert.Contains(t, string(body), `"tokenId":"USDT"`)
}
