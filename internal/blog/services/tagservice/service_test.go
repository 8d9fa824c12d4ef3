package tagservice_test

import (
	"context"
	"testing"

	"github.com/Leopold1975/blog_platform/internal/blog/domain/apperr"
	"github.com/Leopold1975/blog_platform/internal/blog/repository/inmemory"
	"github.com/Leopold1975/blog_platform/internal/blog/services/tagservice"
	"github.com/stretchr/testify/require"
)

const missingID = "507f1f77bcf86cd799439011"

func TestTagCRUD(t *testing.T) {
	ctx := context.Background()
	ts := tagservice.New(inmemory.New())

	goTag, err := ts.Create(ctx, "go")
	require.NoError(t, err)
	require.Equal(t, "go", goTag.Name)
	require.NotEmpty(t, goTag.ID)

	_, err = ts.Create(ctx, " rust ")
	require.NoError(t, err)

	names, err := ts.FindAll(ctx)
	require.NoError(t, err)
	require.Equal(t, []string{"go", "rust"}, names)

	got, err := ts.FindOne(ctx, goTag.ID)
	require.NoError(t, err)
	require.Equal(t, goTag, got)

	updated, err := ts.Update(ctx, goTag.ID, "golang")
	require.NoError(t, err)
	require.Equal(t, "golang", updated.Name)

	require.NoError(t, ts.Remove(ctx, goTag.ID))

	_, err = ts.FindOne(ctx, goTag.ID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestTagErrors(t *testing.T) {
	ctx := context.Background()
	ts := tagservice.New(inmemory.New())

	_, err := ts.Create(ctx, "go")
	require.NoError(t, err)

	rust, err := ts.Create(ctx, "rust")
	require.NoError(t, err)

	_, err = ts.Create(ctx, "go")
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = ts.Create(ctx, "   ")
	require.ErrorIs(t, err, apperr.ErrValidation)

	_, err = ts.Update(ctx, rust.ID, "go")
	require.ErrorIs(t, err, apperr.ErrConflict)

	_, err = ts.FindOne(ctx, missingID)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = ts.Update(ctx, missingID, "x")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	err = ts.Remove(ctx, missingID)
	require.ErrorIs(t, err, apperr.ErrNotFound)
}
