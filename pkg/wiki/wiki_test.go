package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// newTestClient wires every adapter base at a single httptest server with a
// path-switched handler.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{
		APIBase:        srv.URL + "/w/api.php",
		RESTBase:       srv.URL + "/api/rest_v1",
		SimpleAPIBase:  srv.URL + "/simple/w/api.php",
		SimpleRESTBase: srv.URL + "/simple/api/rest_v1",
		RelatedBase:    srv.URL + "/related",
		UserAgent:      "curio-test",
	}), srv
}

func TestSummaryBySearch(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.Contains(r.URL.Path, "api.php"):
			// opensearch positional array
			json.NewEncoder(w).Encode([]interface{}{
				"black hole", []string{"Black hole"}, []string{""}, []string{""},
			})
		case strings.Contains(r.URL.Path, "/page/summary/"):
			fmt.Fprint(w, `{"title":"Black hole","extract":"A region of spacetime.","content_urls":{"desktop":{"page":"https://en.wikipedia.org/wiki/Black_hole"}},"thumbnail":{"source":"https://img/thumb.jpg"}}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	got := client.SummaryBySearch(context.Background(), SourceCanonical, "black hole")
	if got == nil {
		t.Fatal("expected summary, got nil")
	}
	if got.Text != "A region of spacetime." {
		t.Errorf("Text = %q", got.Text)
	}
	if got.Title != "Black hole" {
		t.Errorf("Title = %q", got.Title)
	}
	if got.URL != "https://en.wikipedia.org/wiki/Black_hole" {
		t.Errorf("URL = %q", got.URL)
	}
}

func TestSummaryBySearchAbsent(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			"no search hit",
			func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode([]interface{}{"x", []string{}, []string{}, []string{}})
			},
		},
		{
			"summary fetch fails",
			func(w http.ResponseWriter, r *http.Request) {
				if strings.Contains(r.URL.Path, "api.php") {
					json.NewEncoder(w).Encode([]interface{}{"x", []string{"X"}, []string{}, []string{}})
					return
				}
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			"empty extract",
			func(w http.ResponseWriter, r *http.Request) {
				if strings.Contains(r.URL.Path, "api.php") {
					json.NewEncoder(w).Encode([]interface{}{"x", []string{"X"}, []string{}, []string{}})
					return
				}
				fmt.Fprint(w, `{"title":"X","extract":"   "}`)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)
			if got := client.SummaryBySearch(context.Background(), SourceCanonical, "x"); got != nil {
				t.Errorf("expected nil, got %+v", got)
			}
		})
	}
}

func TestRelatedQuestions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"RelatedTopics":[
			{"Text":"Event horizon — the boundary","FirstURL":"https://en.wikipedia.org/wiki/Event_horizon"},
			{"Topics":[
				{"Text":"Singularity - a point of infinite density","FirstURL":"https://example.com/sing"},
				{"Text":"EVENT HORIZON — duplicate","FirstURL":""}
			]},
			{"Text":"Hawking radiation: emission","FirstURL":"https://en.wikipedia.org/wiki/Hawking_radiation"},
			{"Text":"","FirstURL":"https://example.com/empty"}
		]}`)
	})

	got := client.RelatedQuestions(context.Background(), "black hole", 20)
	if len(got) != 3 {
		t.Fatalf("got %d questions, want 3: %+v", len(got), got)
	}
	if got[0].Question != "What is Event horizon?" {
		t.Errorf("Question[0] = %q", got[0].Question)
	}
	if got[0].TitleGuess != "Event horizon" {
		t.Errorf("TitleGuess[0] = %q (want wiki URL segment)", got[0].TitleGuess)
	}
	// Non-encyclopedia URL falls back to the parsed title.
	if got[1].TitleGuess != "Singularity" {
		t.Errorf("TitleGuess[1] = %q", got[1].TitleGuess)
	}
	for _, q := range got {
		if q.Answer != "" {
			t.Errorf("answer should be unset at discovery time, got %q", q.Answer)
		}
	}
}

func TestRelatedQuestionsCap(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var topics []map[string]string
		for i := 0; i < 40; i++ {
			topics = append(topics, map[string]string{
				"Text":     fmt.Sprintf("Topic %02d — detail", i),
				"FirstURL": "",
			})
		}
		json.NewEncoder(w).Encode(map[string]interface{}{"RelatedTopics": topics})
	})

	if got := client.RelatedQuestions(context.Background(), "t", 20); len(got) != 20 {
		t.Errorf("got %d questions, want cap 20", len(got))
	}
}

func TestTitleSuggestions(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("action") == "opensearch" {
			json.NewEncoder(w).Encode([]interface{}{
				"mar", []string{"Mars", "Marsupial"}, []string{}, []string{},
			})
			return
		}
		fmt.Fprint(w, `{"query":{"search":[{"title":"mars"},{"title":"Maritime history"}]}}`)
	})

	got := client.TitleSuggestions(context.Background(), "mar", 10)
	want := []string{"Mars", "Marsupial", "Maritime history"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	// Prefix matches keep precedence; the duplicate full-text "mars" is dropped.
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("suggestion[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestMediaClassification(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("prop") == "images" {
			fmt.Fprint(w, `{"query":{"pages":{"1":{"images":[
				{"title":"File:A.jpg"},{"title":"File:B.webm"},{"title":"File:C.png"},{"title":"File:D.ogv"}
			]}}}}`)
			return
		}
		fmt.Fprint(w, `{"query":{"pages":{
			"10":{"title":"File:A.jpg","imageinfo":[{"url":"https://img/a.jpg","thumburl":"https://img/a_t.jpg","mime":"image/jpeg"}]},
			"11":{"title":"File:B.webm","imageinfo":[{"url":"https://img/b.webm","thumburl":"https://img/b_t.jpg","mime":"video/webm"}]},
			"12":{"title":"File:C.png","imageinfo":[{"url":"https://img/c.png","thumburl":"","mime":""}]},
			"13":{"title":"File:D.ogv","imageinfo":[{"url":"https://img/d.ogv","thumburl":"","mime":""}]}
		}}}`)
	})

	set := client.Media(context.Background(), "Black hole", 12)
	if len(set.Images) != 2 {
		t.Errorf("images = %d, want 2 (jpeg by MIME, png by extension)", len(set.Images))
	}
	if len(set.Videos) != 2 {
		t.Errorf("videos = %d, want 2 (webm by MIME, ogv by extension)", len(set.Videos))
	}
	for _, v := range set.Videos {
		if v.Thumb != "" {
			t.Errorf("video should carry Poster, not Thumb: %+v", v)
		}
	}
}

func TestMediaListLimit(t *testing.T) {
	var imlimit string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("prop") == "images" {
			imlimit = r.URL.Query().Get("imlimit")
			fmt.Fprint(w, `{"query":{"pages":{"1":{"images":[{"title":"File:A.jpg"}]}}}}`)
			return
		}
		fmt.Fprint(w, `{"query":{"pages":{"10":{"title":"File:A.jpg","imageinfo":[{"url":"https://img/a.jpg","thumburl":"","mime":"image/jpeg"}]}}}}`)
	})

	client.Media(context.Background(), "Black hole", 12)
	if imlimit != "12" {
		t.Errorf("imlimit = %q, want exactly the media cap", imlimit)
	}
}

func TestMediaAbsent(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	set := client.Media(context.Background(), "Anything", 12)
	if set == nil || len(set.Images) != 0 || len(set.Videos) != 0 {
		t.Errorf("expected empty set on transport failure, got %+v", set)
	}
}
