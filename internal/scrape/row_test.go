package scrape

import (
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
)

func docFromString(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parsing HTML: %v", err)
	}
	return doc
}

func firstRow(t *testing.T, html, selector string) *goquery.Selection {
	t.Helper()
	row := docFromString(t, html).Find(selector).First()
	if row.Length() == 0 {
		t.Fatalf("no node for selector %q", selector)
	}
	return row
}

func TestExtractRowStructured(t *testing.T) {
	html := `<table><tbody><tr>
		<td class="date">2021-05-20</td>
		<td class="description"><a href="/r/1">Naxxramas speed run</a></td>
		<td>58:03</td>
	</tr></tbody></table>`

	entry, ok := extractRow(firstRow(t, html, "tr"))
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Title != "Naxxramas speed run" {
		t.Errorf("title = %q, expected %q", entry.Title, "Naxxramas speed run")
	}
	if want := time.Date(2021, time.May, 20, 0, 0, 0, 0, time.UTC); !entry.Date.Equal(want) {
		t.Errorf("date = %v, expected %v", entry.Date, want)
	}
}

func TestExtractRowStructuredPositional(t *testing.T) {
	// No date/description classes; the positional pair has to carry it.
	html := `<table><tbody><tr>
		<td>05/20/2021</td>
		<td>Molten Core clear</td>
	</tr></tbody></table>`

	entry, ok := extractRow(firstRow(t, html, "tr"))
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Title != "Molten Core clear" {
		t.Errorf("title = %q, expected %q", entry.Title, "Molten Core clear")
	}
}

func TestExtractRowUnstructuredFallback(t *testing.T) {
	// Not a table row at all; date is buried in the flattened text.
	html := `<ul><li class="log-entry">
		uploaded 2021-05-20 <a href="/r/9">Onyxia pug night</a> 12:44
	</li></ul>`

	entry, ok := extractRow(firstRow(t, html, "li"))
	if !ok {
		t.Fatal("expected an entry")
	}
	if entry.Title != "Onyxia pug night" {
		t.Errorf("title = %q, expected %q", entry.Title, "Onyxia pug night")
	}
	if want := time.Date(2021, time.May, 20, 0, 0, 0, 0, time.UTC); !entry.Date.Equal(want) {
		t.Errorf("date = %v, expected %v", entry.Date, want)
	}
}

func TestExtractRowUnknownTitle(t *testing.T) {
	tests := []struct {
		name string
		html string
		sel  string
	}{
		{"no anchor in list item", `<ul><li>2021-05-20 anonymous upload</li></ul>`, "li"},
		{"single dated cell", `<table><tbody><tr><td>2021-05-20</td></tr></tbody></table>`, "tr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, ok := extractRow(firstRow(t, tt.html, tt.sel))
			if !ok {
				t.Fatal("expected an entry")
			}
			if entry.Title != UnknownTitle {
				t.Errorf("title = %q, expected %q", entry.Title, UnknownTitle)
			}
		})
	}
}

func TestExtractRowNoDate(t *testing.T) {
	html := `<table><tbody><tr>
		<td>pending</td>
		<td><a href="/r/2">Row with no date anywhere</a></td>
	</tr></tbody></table>`

	if entry, ok := extractRow(firstRow(t, html, "tr")); ok {
		t.Errorf("expected no entry, got %+v", entry)
	}
}

func TestFlatten(t *testing.T) {
	got := flatten("  Naxxramas\n\t speed   run ")
	if got != "Naxxramas speed run" {
		t.Errorf("flatten = %q", got)
	}
}
