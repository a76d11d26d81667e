package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeList(t *testing.T) {
	assert.Nil(t, EncodeList(nil))

	raw := EncodeList([]string{"penicillin", "aspirin"})
	require.NotNil(t, raw)
	assert.JSONEq(t, `["penicillin","aspirin"]`, *raw)

	empty := EncodeList([]string{})
	require.NotNil(t, empty)
	assert.JSONEq(t, `[]`, *empty)
}

func TestDecodeList(t *testing.T) {
	assert.Nil(t, DecodeList(nil))

	malformed := "{not json"
	assert.Nil(t, DecodeList(&malformed))

	ok := `["mon","tue"]`
	assert.Equal(t, StringList{"mon", "tue"}, DecodeList(&ok))
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	items := []string{"a", "b", "c"}
	assert.Equal(t, StringList(items), DecodeList(EncodeList(items)))
}
