package templates

import (
	"bytes"
	"html/template"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_AllPagesParse(t *testing.T) {
	tmpl, err := Load(nil)
	require.NoError(t, err)
	for _, name := range []string{
		"index.html", "group_list.html", "profile.html", "post_detail.html", "follow.html",
		"create_post.html", "login.html", "signup.html", "logged_out.html",
		"author.html", "tech.html", "404.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}
}

func TestStatic(t *testing.T) {
	b, err := fs.ReadFile(Static(), "style.css")
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}

func TestTruncateWords(t *testing.T) {
	assert.Equal(t, "one two", TruncateWords("one two", 3))
	assert.Equal(t, "one two …", TruncateWords("one two three", 2))
	assert.Equal(t, "", TruncateWords("", 2))
}

func TestTextFunc_TruncatesBeforeEscaping(t *testing.T) {
	tmpl := template.Must(template.New("card").Funcs(Funcs()).Parse(`{{text (truncatewords . 2)}}`))
	var buf bytes.Buffer
	require.NoError(t, tmpl.Execute(&buf, `<a href="x">link</a> & more words`))

	out := buf.String()
	assert.NotContains(t, out, "<a")
	assert.Contains(t, out, "&lt;a href=")
	assert.True(t, bytes.HasSuffix(buf.Bytes(), []byte(" …")), out)
}
