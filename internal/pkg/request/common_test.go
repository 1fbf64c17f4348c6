package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pavalka/shareit/internal/pkg/page"
)

func TestListParamsToPage(t *testing.T) {
	p, err := ListParams{}.ToPage(10, page.Sort{})
	require.NoError(t, err)
	assert.Equal(t, 0, p.Offset())
	assert.Equal(t, 10, p.Size())

	size := 3
	p, err = ListParams{From: 6, Size: &size}.ToPage(10, page.Sort{})
	require.NoError(t, err)
	assert.Equal(t, 6, p.Offset())
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, 2, p.Number())

	zero := 0
	_, err = ListParams{Size: &zero}.ToPage(10, page.Sort{})
	assert.ErrorIs(t, err, page.ErrInvalidPageRequest)

	_, err = ListParams{From: -1}.ToPage(10, page.Sort{})
	assert.ErrorIs(t, err, page.ErrInvalidPageRequest)
}
