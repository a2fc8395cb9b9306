package sanitize

import (
	"strings"
	"sync"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, fragment string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	require.NoError(t, err)
	return doc
}

/* ───────── 1. script / event handlers ───────── */

func TestSanitize_RemovesScript(t *testing.T) {
	out := String("<p>Hello</p><script>alert(1)</script>")

	assert.Contains(t, out, "<p>Hello</p>")
	assert.NotContains(t, out, "<script")
	// bluemonday drops the body of raw-text elements along with the tags.
	assert.NotContains(t, out, "alert")
}

func TestSanitize_RemovesEventHandler(t *testing.T) {
	out := String(`<p onclick="x">Click</p>`)

	assert.NotContains(t, out, "onclick")
	assert.Equal(t, "<p>Click</p>", out)
}

func TestSanitize_UnclosedScript(t *testing.T) {
	out := String("<p>ok</p><script>alert(1)")

	assert.Contains(t, out, "<p>ok</p>")
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "alert")
}

func TestSanitize_RawTextElementsDropContent(t *testing.T) {
	for _, in := range []string{
		"<style>p{color:red}</style>",
		"<iframe>inner</iframe>",
		"<noscript>inner</noscript>",
	} {
		t.Run(in, func(t *testing.T) {
			out := String(in + "<p>kept</p>")
			assert.Equal(t, "<p>kept</p>", out)
		})
	}
}

/* ───────── 2. disallowed tags keep their text ───────── */

func TestSanitize_DisallowedTagsKeepText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: `<div class="box">inside</div>`, want: "inside"},
		{in: `<span style="color:red">red</span>`, want: "red"},
		{in: `<h5>small heading</h5>`, want: "small heading"},
		{in: `<form action="/x"><input name="a">text</form>`, want: "text"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, String(tt.in))
		})
	}
}

func TestSanitize_DropsDangerousVoidElements(t *testing.T) {
	out := String(`<p>a<img src="x" onerror="alert(1)">b</p>`)

	assert.Equal(t, "<p>ab</p>", out)
}

/* ───────── 3. allow-list ───────── */

func TestSanitize_KeepsAllowedElements(t *testing.T) {
	in := "<h1>a</h1><h2>b</h2><h3>c</h3><h4>d</h4>" +
		"<p><strong>s</strong><em>e</em><u>u</u><br>x</p>" +
		"<ul><li>1</li></ul><ol><li>2</li></ol>" +
		"<blockquote>q</blockquote><pre><code>c()</code></pre>"

	doc := parse(t, String(in))
	for _, sel := range []string{"h1", "h2", "h3", "h4", "p", "strong", "em", "u", "br", "ul", "ol", "li", "blockquote", "pre", "code"} {
		assert.Greater(t, doc.Find(sel).Length(), 0, "element %s should survive", sel)
	}
}

func TestSanitize_StripsAttributesOutsideLinks(t *testing.T) {
	out := String(`<p class="lead" id="x" style="color:red">t</p><code class="go">c</code>`)

	assert.Equal(t, "<p>t</p><code>c</code>", out)
}

func TestSanitize_LinkAttributes(t *testing.T) {
	out := String(`<a href="https://example.com/news" title="News" target="_blank" onclick="steal()" class="btn">read</a>`)

	doc := parse(t, out)
	a := doc.Find("a")
	require.Equal(t, 1, a.Length())

	href, ok := a.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://example.com/news", href)
	title, ok := a.Attr("title")
	assert.True(t, ok)
	assert.Equal(t, "News", title)

	for _, attr := range []string{"target", "onclick", "class", "rel"} {
		_, present := a.Attr(attr)
		assert.False(t, present, "attribute %s should be stripped", attr)
	}
	assert.Equal(t, "read", a.Text())
}

func TestSanitize_RejectsScriptURLs(t *testing.T) {
	for _, in := range []string{
		`<a href="javascript:alert(1)">x</a>`,
		`<a href="JaVaScRiPt:alert(1)">x</a>`,
		`<a href="data:text/html;base64,PHNjcmlwdD4=">x</a>`,
		`<a href="vbscript:msgbox(1)">x</a>`,
	} {
		t.Run(in, func(t *testing.T) {
			out := String(in)
			assert.NotContains(t, strings.ToLower(out), "script:")
			assert.NotContains(t, out, "data:")
			assert.Contains(t, out, "x")
		})
	}
}

func TestSanitize_AllowsRelativeAndMailtoLinks(t *testing.T) {
	for _, href := range []string{"/news/1", "mailto:desk@example.com", "http://example.com"} {
		t.Run(href, func(t *testing.T) {
			doc := parse(t, String(`<a href="`+href+`">x</a>`))
			got, ok := doc.Find("a").Attr("href")
			assert.True(t, ok)
			assert.Equal(t, href, got)
		})
	}
}

/* ───────── 4. totality / idempotence ───────── */

func TestSanitize_Empty(t *testing.T) {
	assert.Equal(t, "", String(""))
}

func TestSanitize_Idempotent(t *testing.T) {
	inputs := []string{
		"<p>Hello</p><script>alert(1)</script>",
		`<p onclick="x">Click</p>`,
		`<a href="https://example.com?a=1&b=2" title="q&quot;t">l</a>`,
		`plain "quoted" text & <b>bold</b>`,
		"<ul><li>one<li>two</ul>",
		"<<<>>>",
		"<p>unterminated",
		"<br><br/>",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			once := String(in)
			assert.Equal(t, once, String(once))
		})
	}
}

func TestHTML_ConcurrentUse(t *testing.T) {
	h := NewHTML()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "<p>x</p>", h.Sanitize(`<p style="a">x</p><script>y</script>`))
		}()
	}
	wg.Wait()
}
