package goquery_test

import (
	"errors"
	"strings"
	"testing"

	gq "github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/clanko"
	"github.com/fwojciec/clanko/goquery"
	"github.com/fwojciec/clanko/htmltomarkdown"
	"github.com/fwojciec/clanko/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var trendRules = map[string]clanko.RenderRule{
	"h2":         clanko.RuleHeading,
	"h3":         clanko.RuleHeading,
	"figcaption": clanko.RuleSkip,
	"small":      clanko.RuleSkip,
	"dt":         clanko.RuleLine,
}

var trendExclude = []string{"related-articles", "paywall-unlock", "article-author"}

// renderBody parses html and renders the first element matching selector.
func renderBody(t *testing.T, r *goquery.Renderer, html, selector string) string {
	t.Helper()

	doc, err := gq.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	out, err := r.Render(doc.Find(selector).First())
	require.NoError(t, err)
	return out
}

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("concatenates paragraph text in document order", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body"><p>One</p><p>Two</p><p>Three</p></div>`

		assert.Equal(t, "OneTwoThree", renderBody(t, r, html, "#body"))
	})

	t.Run("wraps heading text", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body"><p>Hello</p><h2>  Next  </h2></div>`

		assert.Equal(t, "Hello\n\n## Next\n", renderBody(t, r, html, "#body"))
	})

	t.Run("drops caption text", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body"><figure><img src="x.jpg"><figcaption>Photo: TASR</figcaption></figure><p>Text</p></div>`

		out := renderBody(t, r, html, "#body")

		assert.Equal(t, "Text", out)
		assert.NotContains(t, out, "TASR")
	})

	t.Run("puts definition terms on their own line", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body"><dl><dt>EBITDA</dt><dd>earnings</dd></dl></div>`

		assert.Equal(t, "\nEBITDA\nearnings", renderBody(t, r, html, "#body"))
	})

	t.Run("prunes excluded subtree at any depth", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body">
			<p>Before</p>
			<div class="box related-articles">
				<h2>Related</h2>
				<div><div><p>Deep <b>nested</b> text</p></div></div>
			</div>
			<section><div class="paywall-unlock"><span>Unlock</span></div></section>
			<p>After</p>
		</div>`

		out := renderBody(t, r, html, "#body")

		assert.Equal(t, "BeforeAfter", out)
		assert.NotContains(t, out, "Related")
		assert.NotContains(t, out, "nested")
		assert.NotContains(t, out, "Unlock")
	})

	t.Run("uses nearest enclosing tag as context", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body"><h2>Title <a href="#">link</a></h2></div>`

		assert.Equal(t, "\n\n## Title\nlink", renderBody(t, r, html, "#body"))
	})

	t.Run("ignores whitespace-only text nodes", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := "<div id=\"body\">\n  <h2>\n</h2>\n  <p>A</p>\n</div>"

		assert.Equal(t, "A", renderBody(t, r, html, "#body"))
	})

	t.Run("ignores comments", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(nil, nil, nil)
		html := `<div id="body"><!-- ad slot --><p>A</p></div>`

		assert.Equal(t, "A", renderBody(t, r, html, "#body"))
	})

	t.Run("uses root tag as context for direct text", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(nil, map[string]clanko.RenderRule{"h2": clanko.RuleHeading}, nil)
		html := `<h2 id="body">Direct</h2>`

		assert.Equal(t, "\n\n## Direct\n", renderBody(t, r, html, "#body"))
	})

	t.Run("returns empty string for empty selection", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(nil, nil, nil)

		assert.Empty(t, renderBody(t, r, `<p>x</p>`, "#missing"))
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(trendExclude, trendRules, nil)
		html := `<div id="body"><p>A</p><h3>B</h3><div class="article-author">X</div><dt>C</dt></div>`

		first := renderBody(t, r, html, "#body")
		second := renderBody(t, r, html, "#body")

		assert.Equal(t, first, second)
	})
}

func TestRenderer_Markdown(t *testing.T) {
	t.Parallel()

	rules := map[string]clanko.RenderRule{"table": clanko.RuleMarkdown}

	t.Run("converts bound element with converter", func(t *testing.T) {
		t.Parallel()

		var got string
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "| a |\n| - |\n| 1 |\n", nil
			},
		}
		r := goquery.NewRenderer(nil, rules, conv)
		html := `<div id="body"><p>Intro</p><table><tr><td>1</td></tr></table><p>Outro</p></div>`

		out := renderBody(t, r, html, "#body")

		assert.Equal(t, "Intro\n\n| a |\n| - |\n| 1 |\nOutro", out)
		assert.Contains(t, got, "<table>")
	})

	t.Run("walks bound element without converter", func(t *testing.T) {
		t.Parallel()

		r := goquery.NewRenderer(nil, rules, nil)
		html := `<div id="body"><table><tr><td>1</td><td>2</td></tr></table></div>`

		assert.Equal(t, "12", renderBody(t, r, html, "#body"))
	})

	t.Run("does not convert excluded element", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				t.Fatal("converter must not be called for excluded element")
				return "", nil
			},
		}
		r := goquery.NewRenderer([]string{"ad"}, rules, conv)
		html := `<div id="body"><table class="ad"><tr><td>1</td></tr></table></div>`

		assert.Empty(t, renderBody(t, r, html, "#body"))
	})

	t.Run("drops excluded and skipped content inside converted element", func(t *testing.T) {
		t.Parallel()

		var got string
		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				got = html
				return "x", nil
			},
		}
		r := goquery.NewRenderer([]string{"banner"}, map[string]clanko.RenderRule{
			"ul":    clanko.RuleMarkdown,
			"small": clanko.RuleSkip,
		}, conv)
		html := `<div id="body"><ul><li>Point</li><li class="banner">BUY NOW</li><li>Two <small>caption <b>bold</b></small></li></ul></div>`

		renderBody(t, r, html, "#body")

		assert.Contains(t, got, "Point")
		assert.Contains(t, got, "bold")
		assert.NotContains(t, got, "BUY NOW")
		assert.NotContains(t, got, "caption")
	})

	t.Run("leaves source document untouched", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(string) (string, error) { return "x", nil },
		}
		r := goquery.NewRenderer([]string{"banner"}, rules, conv)

		doc, err := gq.NewDocumentFromReader(strings.NewReader(`<div id="body"><table><tr><td class="banner">AD</td></tr></table></div>`))
		require.NoError(t, err)

		_, err = r.Render(doc.Find("#body"))

		require.NoError(t, err)
		assert.Equal(t, 1, doc.Find("td.banner").Length())
	})

	t.Run("propagates converter error", func(t *testing.T) {
		t.Parallel()

		conv := &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return "", errors.New("conversion failed")
			},
		}
		r := goquery.NewRenderer(nil, rules, conv)

		doc, err := gq.NewDocumentFromReader(strings.NewReader(`<div id="body"><table></table></div>`))
		require.NoError(t, err)

		_, err = r.Render(doc.Find("#body"))

		require.Error(t, err)
		assert.Contains(t, err.Error(), "conversion failed")
	})
}

func TestRenderer_MarkdownWithConverter(t *testing.T) {
	t.Parallel()

	r := goquery.NewRenderer(
		[]string{"banner", "ad-wrapper"},
		map[string]clanko.RenderRule{
			"ul":    clanko.RuleMarkdown,
			"table": clanko.RuleMarkdown,
			"small": clanko.RuleSkip,
		},
		htmltomarkdown.NewConverter(),
	)
	html := `<div id="body"><p>Hello</p>` +
		`<ul><li>Point</li><li class="banner">BUY NOW</li><li>Two <small>caption-ish</small></li></ul>` +
		`<table><tr><th>Item</th><th>Value</th></tr><tr><td class="ad-wrapper">AD CELL</td><td>data</td></tr></table>` +
		`</div>`

	out := renderBody(t, r, html, "#body")

	assert.Contains(t, out, "- Point")
	assert.Contains(t, out, "- Two")
	assert.Contains(t, out, "data")
	assert.NotContains(t, out, "BUY NOW")
	assert.NotContains(t, out, "AD CELL")
	assert.NotContains(t, out, "caption-ish")
}
