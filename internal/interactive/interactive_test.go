package interactive

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedConfirm(t *testing.T) {
	p := &Scripted{Answers: []string{"y", "no", ""}}

	ok, err := p.Confirm("apply fix?", false)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = p.Confirm("apply fix?", true)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = p.Confirm("apply fix?", true)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestScriptedChoose(t *testing.T) {
	p := &Scripted{Answers: []string{"2", "zero"}}

	idx, err := p.Choose("pick:", []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, 1, idx)

	_, err = p.Choose("pick:", []string{"a", "b"})
	assert.Error(t, err)
}

func TestScriptedExhaustedStops(t *testing.T) {
	p := &Scripted{}

	_, err := p.Line("name?", "")
	assert.ErrorIs(t, err, ErrStop)
	_, err = p.Confirm("sure?", false)
	assert.ErrorIs(t, err, ErrStop)
}
