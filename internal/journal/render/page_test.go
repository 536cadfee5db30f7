package render

import (
	"strings"
	"testing"

	"github.com/dmitrijs2005/photojournal/internal/journal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageHTML_Entry(t *testing.T) {
	e := &models.Entry{ID: 1, Date: "1 Jan 2024", Text: "dear diary <3", Image: "data:image/jpeg;base64,AAAA"}

	html, err := PageHTML(e, 400)
	require.NoError(t, err)

	assert.Contains(t, html, `id="page"`)
	assert.Contains(t, html, "width: 400px;")
	assert.Contains(t, html, "height: 566px;")
	assert.Contains(t, html, "1 Jan 2024")
	assert.Contains(t, html, "dear diary &lt;3")
	assert.Contains(t, html, `src="data:image/jpeg;base64,AAAA"`)
	assert.Equal(t, ringCount, strings.Count(html, `class="ring-container"`))
}

func TestPageHTML_NoImageNoPolaroid(t *testing.T) {
	html, err := PageHTML(&models.Entry{ID: 1, Date: "1 Jan 2024", Text: "only words"}, 0)
	require.NoError(t, err)

	assert.NotContains(t, html, `class="polaroid"`)
	assert.Contains(t, html, "width: 420px;")
}

func TestPageHTML_NilIsBlank(t *testing.T) {
	html, err := PageHTML(nil, 400)
	require.NoError(t, err)
	assert.NotContains(t, html, `id="page"`)
}

func TestPageHTML_RejectsNonImageURL(t *testing.T) {
	html, err := PageHTML(&models.Entry{ID: 1, Date: "d", Image: "javascript:alert(1)"}, 400)
	require.NoError(t, err)
	assert.NotContains(t, html, "javascript:")
}

func TestPageHeight(t *testing.T) {
	assert.Equal(t, 566, PageHeight(400))
	assert.Equal(t, 594, PageHeight(420))
	assert.Equal(t, 1414, PageHeight(1000))
}
