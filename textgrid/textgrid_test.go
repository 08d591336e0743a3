package textgrid

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

const longFixture = `File type = "ooTextFile"
Object class = "TextGrid"

xmin = 0
xmax = 0.09
tiers? <exists>
size = 2
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 0.09
        intervals: size = 2
        intervals [1]:
            xmin = 0
            xmax = 0.01
            text = "sil"
        intervals [2]:
            xmin = 0.01
            xmax = 0.09
            text = "cat"
    item [2]:
        class = "IntervalTier"
        name = "phones"
        xmin = 0
        xmax = 0.09
        intervals: size = 3
        intervals [1]:
            xmin = 0
            xmax = 0.01
            text = "sil"
        intervals [2]:
            xmin = 0.01
            xmax = 0.05
            text = "k"
        intervals [3]:
            xmin = 0.05
            xmax = 0.09
            text = "ae"
`

const shortFixture = `File type = "ooTextFile"
Object class = "TextGrid"

0
0.09
<exists>
2
"IntervalTier"
"words"
0
0.09
2
0
0.01
"sil"
0.01
0.09
"cat"
"IntervalTier"
"phones"
0
0.09
3
0
0.01
"sil"
0.01
0.05
"k"
0.05
0.09
"ae"
`

func TestParseLongFormat(t *testing.T) {
	tg, err := Parse(longFixture, "test.TextGrid")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	checkFixture(t, tg)
}

func TestParseShortFormat(t *testing.T) {
	tg, err := Parse(shortFixture, "test.TextGrid")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	checkFixture(t, tg)
}

func checkFixture(t *testing.T, tg *TextGrid) {
	t.Helper()
	if tg.Min != 0 || tg.Max != 0.09 {
		t.Fatalf("unexpected bounds: %g..%g", tg.Min, tg.Max)
	}
	if len(tg.Tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(tg.Tiers))
	}
	words := tg.Tiers[0]
	if words.Name != "words" || words.Class != "IntervalTier" {
		t.Fatalf("unexpected first tier: %+v", words)
	}
	if len(words.Intervals) != 2 {
		t.Fatalf("expected 2 word intervals, got %d", len(words.Intervals))
	}
	if words.Intervals[1].Mark != "cat" {
		t.Fatalf("unexpected mark: %q", words.Intervals[1].Mark)
	}
	if d := words.Intervals[1].Duration(); d < 0.0799 || d > 0.0801 {
		t.Fatalf("unexpected duration: %g", d)
	}
	phones := tg.Tiers[1]
	if len(phones.Intervals) != 3 {
		t.Fatalf("expected 3 phone intervals, got %d", len(phones.Intervals))
	}
	if phones.Intervals[1].Mark != "k" || phones.Intervals[2].Mark != "ae" {
		t.Fatalf("unexpected phone marks: %+v", phones.Intervals)
	}
}

func TestLongAndShortFormatsAgree(t *testing.T) {
	long, err := Parse(longFixture, "long")
	if err != nil {
		t.Fatalf("parse long: %v", err)
	}
	short, err := Parse(shortFixture, "short")
	if err != nil {
		t.Fatalf("parse short: %v", err)
	}
	if len(long.Tiers) != len(short.Tiers) {
		t.Fatalf("tier counts differ: %d vs %d", len(long.Tiers), len(short.Tiers))
	}
	for i := range long.Tiers {
		lt, st := long.Tiers[i], short.Tiers[i]
		if lt.Name != st.Name || len(lt.Intervals) != len(st.Intervals) {
			t.Fatalf("tier %d differs: %+v vs %+v", i, lt, st)
		}
		for j := range lt.Intervals {
			if lt.Intervals[j] != st.Intervals[j] {
				t.Fatalf("interval %d/%d differs: %+v vs %+v", i, j, lt.Intervals[j], st.Intervals[j])
			}
		}
	}
}

func TestParseEmptyTier(t *testing.T) {
	content := `File type = "ooTextFile"
Object class = "TextGrid"
xmin = 0
xmax = 1.5
tiers? <exists>
size = 1
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 1.5
        intervals: size = 0
`
	tg, err := Parse(content, "empty")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tg.Tiers) != 1 {
		t.Fatalf("expected 1 tier, got %d", len(tg.Tiers))
	}
	if len(tg.Tiers[0].Intervals) != 0 {
		t.Fatalf("expected no intervals, got %d", len(tg.Tiers[0].Intervals))
	}
}

func TestParseNoTiers(t *testing.T) {
	content := `File type = "ooTextFile"
Object class = "TextGrid"
xmin = 0
xmax = 1
tiers? <absent>
`
	tg, err := Parse(content, "notiers")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if len(tg.Tiers) != 0 {
		t.Fatalf("expected no tiers, got %d", len(tg.Tiers))
	}
}

func TestParsePointTier(t *testing.T) {
	content := `File type = "ooTextFile"
Object class = "TextGrid"
xmin = 0
xmax = 2
tiers? <exists>
size = 1
item []:
    item [1]:
        class = "TextTier"
        name = "clicks"
        xmin = 0
        xmax = 2
        points: size = 2
        points [1]:
            number = 0.5
            mark = "click"
        points [2]:
            number = 1.5
            mark = "click"
`
	tg, err := Parse(content, "points")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if tg.Tiers[0].Class != "TextTier" {
		t.Fatalf("unexpected class: %q", tg.Tiers[0].Class)
	}
	if len(tg.Tiers[0].Intervals) != 0 {
		t.Fatalf("point tier should carry no intervals, got %d", len(tg.Tiers[0].Intervals))
	}
}

func TestParseEscapedQuotes(t *testing.T) {
	content := `File type = "ooTextFile"
Object class = "TextGrid"
xmin = 0
xmax = 1
tiers? <exists>
size = 1
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 1
        intervals: size = 1
        intervals [1]:
            xmin = 0
            xmax = 1
            text = "say ""hi"""
`
	tg, err := Parse(content, "quotes")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := tg.Tiers[0].Intervals[0].Mark; got != `say "hi"` {
		t.Fatalf("unexpected mark: %q", got)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wrong file type", "File type = \"Praat chronological TextGrid\"\n"},
		{"wrong object class", "File type = \"ooTextFile\"\nObject class = \"Pitch\"\n"},
		{"truncated", "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\nxmin = 0\n"},
		{"non numeric", "File type = \"ooTextFile\"\nObject class = \"TextGrid\"\nxmin = abc\n"},
		{"garbage", "not a textgrid at all\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.content, tc.name); err == nil {
				t.Fatalf("expected parse error")
			}
		})
	}
}

func TestParseRejectsBackwardsInterval(t *testing.T) {
	content := `File type = "ooTextFile"
Object class = "TextGrid"
xmin = 0
xmax = 1
tiers? <exists>
size = 1
item []:
    item [1]:
        class = "IntervalTier"
        name = "words"
        xmin = 0
        xmax = 1
        intervals: size = 1
        intervals [1]:
            xmin = 0.8
            xmax = 0.2
            text = "oops"
`
	_, err := Parse(content, "backwards")
	var perr *ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.TextGrid")
	if err := os.WriteFile(path, []byte(longFixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	tg, err := ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	checkFixture(t, tg)

	if _, err := ReadFile(filepath.Join(dir, "missing.TextGrid")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
