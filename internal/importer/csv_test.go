package importer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestParseCSVBasic(t *testing.T) {
	text := `Title,Author,ISBN,Category
The Go Programming Language,Alan Donovan,9780134190440,Programming
Clean Code,Robert Martin,9780132350884,Software`

	rows := ParseCSV(text)
	require.Len(t, rows, 2)
	assert.Equal(t, "The Go Programming Language", rows[0].Title)
	assert.Equal(t, "Alan Donovan", rows[0].Author)
	assert.Equal(t, "9780134190440", rows[0].ISBN)
	assert.Equal(t, "Programming", rows[0].Category)
	assert.Equal(t, "Clean Code", rows[1].Title)
}

func TestParseCSVHeaderSynonyms(t *testing.T) {
	cases := []struct {
		name   string
		header string
		value  string
		get    func(Row) string
	}{
		{name: "publish_year", header: "publish_year", value: "1999", get: func(r Row) string { return r.PublishYear }},
		{name: "year", header: "Year", value: "1999", get: func(r Row) string { return r.PublishYear }},
		{name: "copies", header: "Copies", value: "4", get: func(r Row) string { return r.TotalCopies }},
		{name: "total_copies", header: "total_copies", value: "4", get: func(r Row) string { return r.TotalCopies }},
		{name: "dewey", header: "Dewey", value: "813.54", get: func(r Row) string { return r.DeweyClassification }},
		{name: "dewey_classification", header: "dewey_classification", value: "813.54", get: func(r Row) string { return r.DeweyClassification }},
		{name: "tags", header: "Tags", value: "fiction", get: func(r Row) string { return r.Keywords }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text := fmt.Sprintf("Title,Author,ISBN,%s\nDune,Frank Herbert,9780441013593,%s", tc.header, tc.value)
			rows := ParseCSV(text)
			require.Len(t, rows, 1)
			assert.Equal(t, tc.value, tc.get(rows[0]))
		})
	}
}

func TestParseCSVHeadersCaseInsensitiveAnyOrder(t *testing.T) {
	text := `ISBN,TITLE,author
9780441013593,Dune,Frank Herbert`

	rows := ParseCSV(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0].Title)
	assert.Equal(t, "Frank Herbert", rows[0].Author)
	assert.Equal(t, "9780441013593", rows[0].ISBN)
}

func TestParseCSVQuotedCommas(t *testing.T) {
	text := `Title,Author,ISBN
"Crime, and Punishment","Dostoevsky, Fyodor",9780140449136`

	rows := ParseCSV(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "Crime, and Punishment", rows[0].Title)
	assert.Equal(t, "Dostoevsky, Fyodor", rows[0].Author)
}

func TestParseCSVDoubledQuotes(t *testing.T) {
	text := `Title,Author,ISBN
"The ""Great"" Gatsby",Fitzgerald,9780743273565`

	rows := ParseCSV(text)
	require.Len(t, rows, 1)
	assert.Equal(t, `The "Great" Gatsby`, rows[0].Title)
}

func TestParseCSVUnbalancedQuoteTolerated(t *testing.T) {
	text := `Title,Author,ISBN
"Unclosed title,Author Name,9780000000000`

	rows := ParseCSV(text)
	// the open quote swallows the rest of the line into one field, so the
	// row lacks author and ISBN and is dropped
	assert.Empty(t, rows)
}

func TestParseCSVDropsRowsMissingRequiredFields(t *testing.T) {
	text := `Title,Author,ISBN
Dune,Frank Herbert,9780441013593
,Frank Herbert,9780441013594
Children of Dune,,9780441013595
Dune Messiah,Frank Herbert,`

	rows := ParseCSV(text)
	require.Len(t, rows, 1)
	assert.Equal(t, "Dune", rows[0].Title)
}

func TestParseCSVSkipsBlankLines(t *testing.T) {
	text := "Title,Author,ISBN\n\nDune,Frank Herbert,9780441013593\n   \n"
	rows := ParseCSV(text)
	assert.Len(t, rows, 1)
}

func TestParseCSVEmptyInput(t *testing.T) {
	assert.Nil(t, ParseCSV(""))
	assert.Nil(t, ParseCSV("\n\n"))
}

func TestParseLineRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 6).Draw(t, "fields")
		fields := make([]string, n)
		for i := range fields {
			fields[i] = rapid.StringMatching(`[a-zA-Z0-9 ,"]{0,20}`).Draw(t, fmt.Sprintf("field%d", i))
		}

		parts := make([]string, n)
		for i, f := range fields {
			parts[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
		}

		got := parseLine(strings.Join(parts, ","))
		require.Len(t, got, n)
		for i, f := range fields {
			assert.Equal(t, f, got[i])
		}
	})
}

func TestNormalizeISBN(t *testing.T) {
	assert.Equal(t, "9780441013593", normalizeISBN("978-0-441-01359-3"))
	assert.Equal(t, "0441013597", normalizeISBN(" 0 441 01359 7 "))
}
