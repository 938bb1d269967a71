package cmdutil

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c9s/bbands/pkg/indicator"
	"github.com/c9s/bbands/pkg/types"
)

func defaultParams() indicator.BOLLParams {
	return indicator.BOLLParams{
		Length: 20,
		K:      2,
		Source: types.SourceClose,
		MAType: indicator.MATypeSMA,
	}
}

func newFlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BOLLFlags(flags)
	return flags
}

func TestApplyBOLLFlags(t *testing.T) {
	flags := newFlagSet()
	require.NoError(t, flags.Parse([]string{"--length", "10", "--offset=-3", "--source", "HL2"}))

	params, err := ApplyBOLLFlags(flags, defaultParams())
	require.NoError(t, err)
	assert.Equal(t, 10, params.Length)
	assert.Equal(t, 2.0, params.K)
	assert.Equal(t, -3, params.Offset)
	assert.Equal(t, types.SourceHL2, params.Source)
}

func TestApplyBOLLFlags_KeepsDefaults(t *testing.T) {
	flags := newFlagSet()
	require.NoError(t, flags.Parse(nil))

	params, err := ApplyBOLLFlags(flags, indicator.BOLLParams{Length: 5, K: 1.5})
	require.NoError(t, err)
	assert.Equal(t, 5, params.Length)
	assert.Equal(t, 1.5, params.K)
}

func TestApplyBOLLFlags_Invalid(t *testing.T) {
	t.Run("fractional length is a parse error", func(t *testing.T) {
		flags := newFlagSet()
		assert.Error(t, flags.Parse([]string{"--length", "2.5"}))
	})

	t.Run("zero length", func(t *testing.T) {
		flags := newFlagSet()
		require.NoError(t, flags.Parse([]string{"--length", "0"}))

		_, err := ApplyBOLLFlags(flags, defaultParams())
		assert.True(t, errors.Is(err, indicator.ErrInvalidParameter))
	})

	t.Run("unknown source", func(t *testing.T) {
		flags := newFlagSet()
		require.NoError(t, flags.Parse([]string{"--source", "volume"}))

		_, err := ApplyBOLLFlags(flags, defaultParams())
		assert.True(t, errors.Is(err, types.ErrInvalidSourceType))
	})
}
