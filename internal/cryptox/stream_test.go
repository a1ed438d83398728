package cryptox

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_SealOpenSequence(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)
	header := bytes.Repeat([]byte{2}, StreamHeaderSize)
	ad := []byte("ad")

	enc, err := newStream(key, header)
	require.NoError(t, err)
	c1, err := enc.seal(TagMessage, []byte("first"), ad)
	require.NoError(t, err)
	c2, err := enc.seal(TagFinal, []byte("second"), ad)
	require.NoError(t, err)
	assert.Len(t, c1, len("first")+StreamOverhead)

	dec, err := newStream(key, header)
	require.NoError(t, err)

	tag, msg, err := dec.open(c1, ad)
	require.NoError(t, err)
	assert.Equal(t, TagMessage, tag)
	assert.Equal(t, []byte("first"), msg)

	tag, msg, err = dec.open(c2, ad)
	require.NoError(t, err)
	assert.Equal(t, TagFinal, tag)
	assert.Equal(t, []byte("second"), msg)
}

func TestStream_ReorderedMessagesFail(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)
	header := bytes.Repeat([]byte{2}, StreamHeaderSize)

	enc, err := newStream(key, header)
	require.NoError(t, err)
	_, err = enc.seal(TagMessage, []byte("first"), nil)
	require.NoError(t, err)
	c2, err := enc.seal(TagFinal, []byte("second"), nil)
	require.NoError(t, err)

	dec, err := newStream(key, header)
	require.NoError(t, err)
	_, _, err = dec.open(c2, nil)
	require.Error(t, err)
}

func TestStream_WrongAssociatedDataFails(t *testing.T) {
	key := bytes.Repeat([]byte{1}, KeySize)
	header := bytes.Repeat([]byte{2}, StreamHeaderSize)

	enc, err := newStream(key, header)
	require.NoError(t, err)
	ct, err := enc.seal(TagFinal, []byte("payload"), []byte("a"))
	require.NoError(t, err)

	dec, err := newStream(key, header)
	require.NoError(t, err)
	_, _, err = dec.open(ct, []byte("b"))
	require.Error(t, err)
}
