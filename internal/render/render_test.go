package render

import (
	"bytes"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/ShowBrowser/internal/models"
)

func strPtr(s string) *string { return &s }

func parseDoc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("Failed to parse rendered HTML: %v", err)
	}
	return doc
}

func TestRenderer_ShowsList(t *testing.T) {
	r := MustNew()
	shows := []models.Show{
		{ID: 139, Name: "Girls", Summary: strPtr("<p>Four <b>friends</b> in New York.</p>"), Image: "https://img/139.jpg"},
		{ID: 23542, Name: "Good Girls", Summary: nil, Image: "https://tinyurl.com/missing-tv"},
	}

	var buf bytes.Buffer
	if err := r.ShowsList(&buf, ShowsView{Query: "girls", Shows: shows}); err != nil {
		t.Fatalf("ShowsList failed: %v", err)
	}
	doc := parseDoc(t, buf.String())

	cards := doc.Find("#showsList .Show")
	if cards.Length() != 2 {
		t.Fatalf("Expected 2 cards, got %d", cards.Length())
	}

	first := cards.Eq(0)
	if id, _ := first.Attr("data-show-id"); id != "139" {
		t.Errorf("Expected data-show-id 139, got %q", id)
	}
	if src, _ := first.Find("img").Attr("src"); src != "https://img/139.jpg" {
		t.Errorf("Expected image src, got %q", src)
	}
	if name := first.Find("h5").Text(); name != "Girls" {
		t.Errorf("Expected name Girls, got %q", name)
	}
	if first.Find(".Show-summary b").Length() != 1 {
		t.Error("Expected summary markup to be preserved")
	}

	second := cards.Eq(1)
	if got := strings.TrimSpace(second.Find(".Show-summary").Text()); got != "Summary not available." {
		t.Errorf("Expected placeholder summary, got %q", got)
	}
	if src, _ := second.Find("img").Attr("src"); src != "https://tinyurl.com/missing-tv" {
		t.Errorf("Expected placeholder image, got %q", src)
	}

	// Every Episodes control targets its own card's show.
	cards.Each(func(i int, card *goquery.Selection) {
		cardID, _ := card.Attr("data-show-id")
		control := card.Find(".Show-getEpisodes")
		controlID, _ := control.Attr("data-show-id")
		href, _ := control.Attr("href")
		if controlID != cardID {
			t.Errorf("Card %d: control show id %q does not match card %q", i, controlID, cardID)
		}
		if href != "/search?q=girls&show="+cardID {
			t.Errorf("Card %d: unexpected episodes link %q", i, href)
		}
	})
}

func TestRenderer_ShowsList_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := MustNew().ShowsList(&buf, ShowsView{Query: "zzzz"}); err != nil {
		t.Fatalf("ShowsList failed: %v", err)
	}
	doc := parseDoc(t, buf.String())

	if doc.Find("#showsList").Length() != 1 {
		t.Fatal("Expected the shows container to be rendered")
	}
	if n := doc.Find("#showsList").Children().Length(); n != 0 {
		t.Errorf("Expected an empty container, got %d children", n)
	}
}

func TestRenderer_ShowsList_SanitisesSummary(t *testing.T) {
	shows := []models.Show{{ID: 1, Name: "X", Summary: strPtr(`<p onclick="steal()">Hi<script>alert(1)</script></p>`), Image: "https://img/1.jpg"}}

	var buf bytes.Buffer
	if err := MustNew().ShowsList(&buf, ShowsView{Shows: shows}); err != nil {
		t.Fatalf("ShowsList failed: %v", err)
	}
	out := buf.String()
	if strings.Contains(out, "<script") || strings.Contains(out, "onclick") {
		t.Errorf("Expected summary to be sanitised, got %s", out)
	}
	if !strings.Contains(out, "Hi") {
		t.Errorf("Expected summary text to survive sanitising, got %s", out)
	}
}

func TestRenderer_ShowsList_EscapesName(t *testing.T) {
	shows := []models.Show{{ID: 1, Name: "<i>Tom & Jerry</i>", Image: "https://img/1.jpg"}}

	var buf bytes.Buffer
	if err := MustNew().ShowsList(&buf, ShowsView{Shows: shows}); err != nil {
		t.Fatalf("ShowsList failed: %v", err)
	}
	doc := parseDoc(t, buf.String())
	if got := doc.Find(".Show h5").Text(); got != "<i>Tom & Jerry</i>" {
		t.Errorf("Expected literal name text, got %q", got)
	}
	if doc.Find(".Show h5 i").Length() != 0 {
		t.Error("Expected show name not to be interpreted as markup")
	}
}

func TestRenderer_EpisodesModal(t *testing.T) {
	episodes := []models.Episode{
		{ID: 1, Name: "Pilot", Season: 1, Number: 1},
		{ID: 2, Name: "The Second", Season: 1, Number: 2},
		{ID: 3, Name: "Return", Season: 2, Number: 1},
	}

	var buf bytes.Buffer
	if err := MustNew().EpisodesModal(&buf, NewEpisodesView("girls", 139, "Girls", episodes)); err != nil {
		t.Fatalf("EpisodesModal failed: %v", err)
	}
	doc := parseDoc(t, buf.String())

	items := doc.Find("#episodesList li")
	if items.Length() != len(episodes) {
		t.Fatalf("Expected %d items, got %d", len(episodes), items.Length())
	}
	want := []string{
		"Pilot (season 1, episode 1)",
		"The Second (season 1, episode 2)",
		"Return (season 2, episode 1)",
	}
	items.Each(func(i int, li *goquery.Selection) {
		if got := strings.TrimSpace(li.Text()); got != want[i] {
			t.Errorf("Item %d: expected %q, got %q", i, want[i], got)
		}
	})

	if doc.Find("#episodesEmpty p").Length() != 0 {
		t.Error("Expected no empty notice when episodes exist")
	}
	if style, _ := doc.Find("#episodesArea").Attr("style"); !strings.Contains(style, "display: block") {
		t.Errorf("Expected visible modal, got style %q", style)
	}
	if title := doc.Find(".modal-title").Text(); title != "Girls" {
		t.Errorf("Expected modal title Girls, got %q", title)
	}
	if href, _ := doc.Find(".btn-close").Attr("href"); href != "/search?q=girls" {
		t.Errorf("Expected close control to link back to the search, got %q", href)
	}
}

func TestRenderer_EpisodesModal_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := MustNew().EpisodesModal(&buf, NewEpisodesView("", 5, "", nil)); err != nil {
		t.Fatalf("EpisodesModal failed: %v", err)
	}
	doc := parseDoc(t, buf.String())

	notices := doc.Find("#episodesEmpty p")
	if notices.Length() != 1 {
		t.Fatalf("Expected exactly one notice, got %d", notices.Length())
	}
	if got := notices.Text(); got != "No episodes available." {
		t.Errorf("Unexpected notice %q", got)
	}
	if n := doc.Find("#episodesList li").Length(); n != 0 {
		t.Errorf("Expected no list items, got %d", n)
	}
	if n := doc.Find("#episodesList").Children().Length(); n != 0 {
		t.Errorf("Expected the list to hold no children, got %d", n)
	}
	if title := doc.Find(".modal-title").Text(); title != DefaultEpisodesTitle {
		t.Errorf("Expected default title, got %q", title)
	}
}

func TestRenderer_Page(t *testing.T) {
	shows := []models.Show{{ID: 82, Name: "Game of Thrones", Image: "https://img/82.jpg"}}

	tests := []struct {
		name        string
		data        PageData
		wantVisible bool
		wantBanner  bool
	}{
		{
			name: "search results hide the modal",
			data: PageData{
				Query:        "thrones",
				ShowsView:    ShowsView{Query: "thrones", Shows: shows},
				EpisodesView: HiddenEpisodesView("thrones"),
			},
		},
		{
			name: "selected show opens the modal",
			data: PageData{
				Query:        "thrones",
				ShowsView:    ShowsView{Query: "thrones", Shows: shows},
				EpisodesView: NewEpisodesView("thrones", 82, "Game of Thrones", []models.Episode{{ID: 1, Name: "Winter is Coming", Season: 1, Number: 1}}),
			},
			wantVisible: true,
		},
		{
			name: "error banner",
			data: PageData{
				Query:        "thrones",
				Error:        "Could not reach TVmaze. Please try again.",
				EpisodesView: HiddenEpisodesView("thrones"),
			},
			wantBanner: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := MustNew().Page(&buf, tt.data); err != nil {
				t.Fatalf("Page failed: %v", err)
			}
			doc := parseDoc(t, buf.String())

			if val, _ := doc.Find("#searchForm-term").Attr("value"); val != tt.data.Query {
				t.Errorf("Expected search term %q to be kept, got %q", tt.data.Query, val)
			}
			if doc.Find("#showsList").Length() != 1 || doc.Find("#episodesArea").Length() != 1 {
				t.Fatal("Expected page to contain the shows container and the episodes modal")
			}

			style, _ := doc.Find("#episodesArea").Attr("style")
			if visible := strings.Contains(style, "display: block"); visible != tt.wantVisible {
				t.Errorf("Expected modal visible=%v, got style %q", tt.wantVisible, style)
			}
			if !tt.wantVisible && doc.Find("#episodesEmpty").Length() != 0 {
				t.Error("Expected no empty notice while the modal is hidden")
			}
			if banner := doc.Find("#errorBanner").Length() == 1; banner != tt.wantBanner {
				t.Errorf("Expected banner=%v", tt.wantBanner)
			}
			if tt.wantBanner && doc.Find("#errorBanner").Text() != tt.data.Error {
				t.Errorf("Unexpected banner text %q", doc.Find("#errorBanner").Text())
			}
		})
	}
}

func TestURLs(t *testing.T) {
	if got := SearchURL(""); got != "/search" {
		t.Errorf("SearchURL(\"\") = %q", got)
	}
	if got := SearchURL("law & order"); got != "/search?q=law+%26+order" {
		t.Errorf("SearchURL = %q", got)
	}
	if got := EpisodesURL("girls", 139); got != "/search?q=girls&show=139" {
		t.Errorf("EpisodesURL = %q", got)
	}
}

func TestRenderer_Banner(t *testing.T) {
	var buf bytes.Buffer
	if err := MustNew().Banner(&buf, "Could not reach <TVmaze>."); err != nil {
		t.Fatalf("Banner failed: %v", err)
	}
	doc := parseDoc(t, buf.String())
	if got := doc.Find("#errorBanner").Text(); got != "Could not reach <TVmaze>." {
		t.Errorf("Unexpected banner text %q", got)
	}
}

func TestRenderer_UnknownView(t *testing.T) {
	var buf bytes.Buffer
	if err := MustNew().Render(&buf, "missing", nil); err == nil {
		t.Fatal("Expected error for unknown view")
	}
	if buf.Len() != 0 {
		t.Errorf("Expected no partial output, got %q", buf.String())
	}
}
