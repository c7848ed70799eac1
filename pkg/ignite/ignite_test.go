package ignite

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ignitedb/ignite/pkg/errors"
	"github.com/ignitedb/ignite/pkg/options"
)

func TestInstanceSetGetRemove(t *testing.T) {
	ctx := context.Background()
	inst, err := NewInstance(ctx, "ignite-test", options.WithDataDir(t.TempDir()))
	require.NoError(t, err)
	defer inst.Close()

	require.NoError(t, inst.Set(ctx, "k", "v"))

	v, ok, err := inst.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)

	require.NoError(t, inst.Remove(ctx, "k"))

	_, ok, err = inst.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	err = inst.Remove(ctx, "k")
	require.True(t, errors.IsKeyNotFound(err))
}
