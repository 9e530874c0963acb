// Package tools discovers the standalone HTML teaching tools shipped next to
// the server. Discovery is best-effort by design: a missing directory or an
// unreadable file must never fail the request.
package tools

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

const (
	htmlSuffix  = ".html"
	defaultIcon = "🔧"
)

// Tool describes one launchable HTML asset.
type Tool struct {
	File string `json:"file"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var titleRe = regexp.MustCompile(`(?i)<title[^>]*>(.*?)</title>`)

// iconRules is evaluated in order, first match wins. The keywords are what
// the tool pages actually contain (mostly Greek), so matching is raw
// substring search, not word-boundary aware.
var iconRules = []struct {
	keywords []string
	icon     string
}{
	{[]string{"κριτήριο", "Κριτήριο"}, "📝"},
	{[]string{"κουίζ", "quiz", "Quiz"}, "🎯"},
	{[]string{"ανάλυση", "Ανάλυση", "analyzer"}, "🔍"},
	{[]string{"άσκηση", "Άσκηση", "exercise"}, "✏️"},
	{[]string{"λεξικό", "dictionary"}, "📖"},
	{[]string{"χάρτης", "map"}, "🗺️"},
	{[]string{"παιχνίδι", "game"}, "🎮"},
	{[]string{"εφηβεία", "Εφηβεία"}, "📚"},
}

// Discover scans dir for HTML tools. The result is sorted by display name
// using Greek collation; it is empty (never nil) when the directory is
// missing or holds nothing usable.
func Discover(dir string) []Tool {
	out := []Tool{}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return out
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), htmlSuffix) {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), htmlSuffix)
		title := name
		icon := defaultIcon

		// Unreadable files keep the filename-derived defaults.
		if content, err := os.ReadFile(filepath.Join(dir, entry.Name())); err == nil {
			text := string(content)
			if m := titleRe.FindStringSubmatch(text); m != nil {
				title = m[1]
			}
			icon = classify(text)
		}

		out = append(out, Tool{File: entry.Name(), Name: title, Icon: icon})
	}

	c := collate.New(language.Greek)
	sort.SliceStable(out, func(i, j int) bool {
		return c.CompareString(out[i].Name, out[j].Name) < 0
	})
	return out
}

func classify(content string) string {
	for _, rule := range iconRules {
		for _, kw := range rule.keywords {
			if strings.Contains(content, kw) {
				return rule.icon
			}
		}
	}
	return defaultIcon
}
