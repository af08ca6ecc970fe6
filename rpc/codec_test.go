package rpc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONCodecRoundTrip(t *testing.T) {
	c := jsonCodec{}
	req := &WriteRequest{SourceID: "square", NewValue: "42", GuardValue: "40"}

	data, err := c.Marshal(req)
	require.NoError(t, err)

	var got WriteRequest
	require.NoError(t, c.Unmarshal(data, &got))
	assert.Equal(t, *req, got)
}

func TestJSONCodecName(t *testing.T) {
	assert.Equal(t, "proto", jsonCodec{}.Name())
}
