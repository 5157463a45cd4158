//go:build unit

package lock_test

import (
	"context"
	"testing"
	"time"

	"parking-booking/internal/infra/lock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalLocker(t *testing.T) {
	var l lock.Locker = lock.LocalLocker{}

	for range 3 {
		release, ok, err := l.TryAcquire(context.Background(), "sweep", time.Second)
		require.NoError(t, err)
		assert.True(t, ok)
		require.NotNil(t, release)
		release()
	}
}
