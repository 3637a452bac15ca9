package convert

import (
	"bytes"
	"testing"

	"github.com/ValentinKolb/redmine/cmd/util"
	"github.com/ValentinKolb/redmine/lib/types"
	"github.com/ValentinKolb/redmine/rpc/serializer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/jsonc"
)

func TestConvert(t *testing.T) {
	h, err := util.LookupEntity("issue")
	require.NoError(t, err)

	t.Run("JSONToXML", func(t *testing.T) {
		var out bytes.Buffer
		err := Convert(&out, h, []byte(`{"issue":{"id":380,"subject":"Crash on save","done_ratio":30}}`), Options{From: "json", To: "xml"})
		require.NoError(t, err)

		issue, err := serializer.Deserialize[types.Issue](serializer.NewXMLSerializer(), out.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 380, issue.ID)
		assert.Equal(t, "Crash on save", issue.Subject)
		require.NotNil(t, issue.DoneRatio)
		assert.Equal(t, 30, *issue.DoneRatio)
	})

	t.Run("CommentedJSON", func(t *testing.T) {
		doc := jsonc.ToJSON([]byte(`{"issue": {"id": 1, /* id */ "subject": "x", }, // done
}`))
		var out bytes.Buffer
		require.NoError(t, Convert(&out, h, doc, Options{From: "json", To: "json"}))
		assert.Contains(t, out.String(), `"subject"`)
	})

	t.Run("PagedXMLToYAML", func(t *testing.T) {
		doc := `<issues total_count="12" offset="10" limit="2" type="array"><issue><id>1</id><subject>a</subject></issue><issue><id>2</id><subject>b</subject></issue></issues>`
		var out bytes.Buffer
		require.NoError(t, Convert(&out, h, []byte(doc), Options{From: "xml", To: "json", Paged: true, YAML: true}))
		assert.Contains(t, out.String(), "totalitems: 12")
		assert.Contains(t, out.String(), "subject: b")
	})

	t.Run("PagedXMLToJSON", func(t *testing.T) {
		doc := `<issues total_count="12" offset="10" limit="2" type="array"><issue><id>1</id></issue><issue><id>2</id></issue></issues>`
		var out bytes.Buffer
		require.NoError(t, Convert(&out, h, []byte(doc), Options{From: "xml", To: "json", Paged: true}))

		page, err := serializer.DeserializeToPagedResults[types.Issue](serializer.NewJSONSerializer(), out.Bytes())
		require.NoError(t, err)
		assert.Equal(t, 12, page.TotalItems)
		assert.Equal(t, 10, page.Offset)
		assert.Len(t, page.Items, 2)
	})

	t.Run("EmptyInput", func(t *testing.T) {
		var out bytes.Buffer
		err := Convert(&out, h, []byte("  "), Options{From: "json", To: "xml"})
		assert.ErrorContains(t, err, "no Issue in input")
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		var out bytes.Buffer
		assert.Error(t, Convert(&out, h, []byte(`{}`), Options{From: "csv", To: "xml"}))
	})

	t.Run("MalformedInput", func(t *testing.T) {
		var out bytes.Buffer
		var de *serializer.DeserializationError
		err := Convert(&out, h, []byte(`{"issue":{"id":`), Options{From: "json", To: "xml"})
		assert.ErrorAs(t, err, &de)
	})
}
