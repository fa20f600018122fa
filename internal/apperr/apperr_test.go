package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecoverable(t *testing.T) {
	require.True(t, Recoverable(fmt.Errorf("GetUserByID: %w", ErrNotFound)))
	require.True(t, Recoverable(ErrAuthorizationDenied))
	require.True(t, Recoverable(fmt.Errorf("CreateUser: %w", ErrUniquenessViolation)))
	require.True(t, Recoverable(ErrInvalidTransition))
	require.False(t, Recoverable(ErrNotificationDelivery))
	require.False(t, Recoverable(errors.New("connection reset")))
	require.False(t, Recoverable(nil))
}
