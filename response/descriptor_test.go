package response

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalvas/uniresp/openapi"
)

func TestDescriptorOpenAPI(t *testing.T) {
	d := Descriptor{
		Status:      http.StatusCreated,
		Description: "Item created",
		Content: []MediaType{
			{ContentType: "application/json", Schema: openapi.Ref("Item")},
		},
		Headers: []Header{
			{
				Name:        "LOCATION",
				Description: "URL of the item",
				Required:    true,
				Schema:      openapi.Inline(&openapi.Schema{Type: openapi.TypeString("string")}),
			},
		},
	}

	resp := d.OpenAPI()
	assert.Equal(t, "Item created", resp.Description)

	require.Contains(t, resp.Content, "application/json")
	assert.Equal(t, "#/components/schemas/Item", resp.Content["application/json"].Schema.Ref)

	require.Contains(t, resp.Headers, "LOCATION")
	h := resp.Headers["LOCATION"]
	assert.True(t, h.Required)
	assert.Equal(t, "URL of the item", h.Description)
	assert.Equal(t, []string{"string"}, h.Schema.Type.Values())

	t.Run("bodiless", func(t *testing.T) {
		resp := Descriptor{Status: http.StatusNoContent, Description: "Deleted"}.OpenAPI()
		assert.Nil(t, resp.Content)
		assert.Nil(t, resp.Headers)
	})
}

func TestToOpenAPI(t *testing.T) {
	responses := ToOpenAPI([]Descriptor{
		{Status: http.StatusOK, Description: "Ok"},
		{Description: "absent"},
		{Status: http.StatusNotFound, Description: "Missing"},
	})

	assert.Len(t, responses, 2)
	assert.Equal(t, "Ok", responses["200"].Description)
	assert.Equal(t, "Missing", responses["404"].Description)
}

func TestSortByStatus(t *testing.T) {
	descs := []Descriptor{
		{Status: 500, Description: "a"},
		{Status: 200, Description: "b"},
		{Status: 500, Description: "c"},
	}

	SortByStatus(descs)

	assert.Equal(t, []int{200, 500, 500}, Statuses(descs))
	assert.Equal(t, "a", descs[1].Description)
	assert.Equal(t, "c", descs[2].Description)
}

func TestEmpty(t *testing.T) {
	var e Empty

	assert.Empty(t, e.Meta())
	assert.NoError(t, Validate(e))

	reg := openapi.NewRegistry()
	e.Register(reg)
	assert.Equal(t, 0, reg.Len())

	rec := httptest.NewRecorder()
	require.NoError(t, e.Render().Write(rec))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestWireWrite(t *testing.T) {
	t.Run("zero status writes 200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		require.NoError(t, (&Wire{}).Write(rec))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("wire header replaces existing", func(t *testing.T) {
		rec := httptest.NewRecorder()
		rec.Header().Set("Content-Type", "text/html")

		w := NewWire(http.StatusTeapot)
		w.Header.Set("Content-Type", "text/plain")
		w.Body = []byte("short and stout")

		require.NoError(t, w.Write(rec))
		assert.Equal(t, http.StatusTeapot, rec.Code)
		assert.Equal(t, "text/plain", rec.Header().Get("Content-Type"))
		assert.Equal(t, "short and stout", rec.Body.String())
	})
}
