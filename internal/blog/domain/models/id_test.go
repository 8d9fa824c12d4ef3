package models_test

import (
	"testing"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/models"
	"github.com/stretchr/testify/require"
)

func TestIsID(t *testing.T) {
	require.True(t, models.IsID("507f1f77bcf86cd799439011"))
	require.True(t, models.IsID("507F1F77BCF86CD799439011"))
	require.False(t, models.IsID("my-title"))
	require.False(t, models.IsID("507f1f77bcf86cd79943901"))
	require.False(t, models.IsID("507f1f77bcf86cd7994390111"))
	require.False(t, models.IsID("507f1f77bcf86cd79943901z"))
	require.False(t, models.IsID(""))
}
