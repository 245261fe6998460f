package common

import (
	"encoding/json"
	"math"
	"net/http"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponse_WithoutBody(t *testing.T) {
	resp := BuildResponse(http.StatusOK, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Nil(t, resp.Body)
	assert.Equal(t, "", resp.BodyString())
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])

	encoded, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(encoded), `"body"`)
}

func TestBuildResponse_WithBody(t *testing.T) {
	resp := BuildResponse(http.StatusNotFound, MessageBody("bookid: 42 not found"))

	require.NotNil(t, resp.Body)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"Message": "bookid: 42 not found"}`, resp.BodyString())
}

func TestBuildResponse_NormalizesStoreNumbers(t *testing.T) {
	body := map[string]interface{}{
		"books": []map[string]interface{}{
			{"bookid": "1", "price": attributevalue.Number("9.99"), "stock": attributevalue.Number("12")},
		},
	}

	resp := BuildResponse(http.StatusOK, body)

	assert.Equal(t, `{"books":[{"bookid":"1","price":9.99,"stock":12}]}`, resp.BodyString())
}

func TestBuildResponse_KeepsAllDigits(t *testing.T) {
	body := map[string]interface{}{
		"isbn13": attributevalue.Number("12345678901234567890"),
		"weight": attributevalue.Number("19.123456789012345678"),
	}

	resp := BuildResponse(http.StatusOK, body)

	assert.Equal(t, `{"isbn13":12345678901234567890,"weight":19.123456789012345678}`, resp.BodyString())
}

func TestBuildResponse_EncodingFailure(t *testing.T) {
	resp := BuildResponse(http.StatusOK, map[string]interface{}{"bad": math.NaN()})

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.JSONEq(t, `{"Message": "Internal Server Error"}`, resp.BodyString())
}

func TestNormalize(t *testing.T) {
	type nested map[string]interface{}

	tests := []struct {
		name  string
		input interface{}
		want  interface{}
	}{
		{"nil", nil, nil},
		{"integral store number", attributevalue.Number("42"), int64(42)},
		{"fractional store number", attributevalue.Number("9.99"), 9.99},
		{"exponent", attributevalue.Number("1e3"), float64(1000)},
		{"out of range", attributevalue.Number("1e400"), "1e400"},
		{"beyond int64", attributevalue.Number("12345678901234567890"), json.Number("12345678901234567890")},
		{"beyond float precision", attributevalue.Number("19.123456789012345678"), json.Number("19.123456789012345678")},
		{"negative exact float", attributevalue.Number("-0.25"), -0.25},
		{"json number", json.Number("7"), int64(7)},
		{"string", "abc", "abc"},
		{"bool", true, true},
		{"bytes", []byte("ab"), []byte("ab")},
		{"number set", []attributevalue.Number{"1", "2.5"}, []interface{}{int64(1), 2.5}},
		{
			"named map",
			nested{"price": attributevalue.Number("3"), "tags": []string{"a"}},
			map[string]interface{}{"price": int64(3), "tags": []interface{}{"a"}},
		},
		{"nil slice", []string(nil), []string(nil)},
		{"non string keys", map[int]string{1: "a"}, map[int]string{1: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestDecodeBody(t *testing.T) {
	var out map[string]interface{}

	require.NoError(t, DecodeBody(`{"bookid":"1","price":9.99}`, &out))
	assert.Equal(t, json.Number("9.99"), out["price"])

	assert.Error(t, DecodeBody("   ", &out))
	assert.Error(t, DecodeBody("{not json", &out))
}

func TestRequest_Query(t *testing.T) {
	req := Request{QueryParameters: map[string]string{"bookid": "1"}}

	value, ok := req.Query("bookid")
	assert.True(t, ok)
	assert.Equal(t, "1", value)

	_, ok = Request{}.Query("bookid")
	assert.False(t, ok)
}
