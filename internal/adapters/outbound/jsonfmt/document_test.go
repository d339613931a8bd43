package jsonfmt_test

import (
	"testing"

	"github.com/monolint/monolint/internal/adapters/outbound/jsonfmt"
	"github.com/monolint/monolint/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectStyle(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want jsonfmt.Style
	}{
		{"two spaces", "{\n  \"a\": 1\n}\n", jsonfmt.Style{Indent: "  ", Newline: "\n", FinalNewline: true}},
		{"four spaces", "{\n    \"a\": {\n        \"b\": 1\n    }\n}", jsonfmt.Style{Indent: "    ", Newline: "\n"}},
		{"tabs crlf", "{\r\n\t\"a\": 1\r\n}\r\n", jsonfmt.Style{Indent: "\t", Newline: "\r\n", FinalNewline: true}},
		{"single line", `{"a":1}`, jsonfmt.Style{Newline: "\n"}},
		{"unindented lines", "{\n\"a\": 1\n}\n", jsonfmt.Style{Indent: "  ", Newline: "\n", FinalNewline: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, jsonfmt.DetectStyle([]byte(tt.src)))
		})
	}
}

func TestDocument_RoundTripKeepsLayout(t *testing.T) {
	srcs := []string{
		"{\n  \"name\": \"web\",\n  \"dependencies\": {\n    \"react\": \"^18.2.0\"\n  }\n}\n",
		"{\r\n\t\"name\": \"web\",\r\n\t\"private\": true\r\n}",
		"{\n    \"workspaces\": [\n        \"apps/*\"\n    ]\n}\n",
		`{"name":"compact"}`,
	}
	for _, src := range srcs {
		doc, err := jsonfmt.Parse([]byte(src))
		require.NoError(t, err)
		out, err := doc.Bytes()
		require.NoError(t, err)
		assert.Equal(t, src, string(out))
	}
}

func TestDocument_SetBoolAppendsField(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte("{\n    \"name\": \"root\"\n}\n"))
	require.NoError(t, err)

	require.NoError(t, doc.SetBool(true, "private"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"name\": \"root\",\n    \"private\": true\n}\n", string(out))
}

func TestDocument_SetStringReplacesInPlace(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte(`{"dependencies":{"a":"1.0.0","react":"1.2.3","z":"2.0.0"}}`))
	require.NoError(t, err)

	require.NoError(t, doc.SetString(">=4.5.6 <5", "dependencies", "react"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"dependencies":{"a":"1.0.0","react":">=4.5.6 <5","z":"2.0.0"}}`, string(out))
}

func TestDocument_SetStringCreatesParent(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte(`{"name":"x"}`))
	require.NoError(t, err)

	require.NoError(t, doc.SetString("^20.0.0", "devDependencies", "@types/node"))

	v, ok := doc.GetString("devDependencies", "@types/node")
	assert.True(t, ok)
	assert.Equal(t, "^20.0.0", v)
	assert.True(t, doc.IsObject("devDependencies"))
}

func TestDocument_SetThroughNonObjectFails(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte(`{"dependencies":"oops"}`))
	require.NoError(t, err)

	err = doc.SetString("1.0.0", "dependencies", "react")
	assert.ErrorIs(t, err, jsonfmt.ErrNotObject)
}

func TestDocument_DeleteLastAndOnlyMembers(t *testing.T) {
	src := "{\n  \"name\": \"pkg\",\n  \"dependencies\": {}\n}\n"
	doc, err := jsonfmt.Parse([]byte(src))
	require.NoError(t, err)

	doc.Delete("dependencies")
	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"name\": \"pkg\"\n}\n", string(out))

	doc.Delete("missing", "key")
	assert.False(t, doc.Has("dependencies"))
}

func TestDocument_DeleteNested(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte(`{"dependencies":{"@types/node":"1","react":"2"}}`))
	require.NoError(t, err)

	doc.Delete("dependencies", "@types/node")
	assert.Equal(t, 1, doc.Len("dependencies"))
	assert.False(t, doc.Has("dependencies", "@types/node"))
	assert.True(t, doc.Has("dependencies", "react"))
}

func TestDocument_EntriesAndStrings(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte(`{
		"workspaces": ["apps/*", 3, "packages/*"],
		"dependencies": {"zod": "3.0.0", "nested": {"x": 1}, "a\"b": "1"}
	}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"apps/*", "packages/*"}, doc.Strings("workspaces"))
	assert.Equal(t, 3, doc.Len("workspaces"))
	assert.Equal(t, []domain.Entry{{Key: "zod", Value: "3.0.0"}, {Key: `a"b`, Value: "1"}}, doc.Entries("dependencies"))
	assert.Equal(t, 3, doc.Len("dependencies"))
	assert.Nil(t, doc.Strings("dependencies"))
}

func TestDocument_SetEntriesReordersBlock(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte("{\n  \"dependencies\": {\n    \"b\": \"2\",\n    \"a\": \"1\"\n  },\n  \"name\": \"x\"\n}\n"))
	require.NoError(t, err)

	require.NoError(t, doc.SetEntries([]domain.Entry{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}, "dependencies"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"dependencies\": {\n    \"a\": \"1\",\n    \"b\": \"2\"\n  },\n  \"name\": \"x\"\n}\n", string(out))
}

func TestDocument_SetStringsWritesArray(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte("{\n  \"workspaces\": [\n    \"apps/*\",\n    \"docs\"\n  ]\n}\n"))
	require.NoError(t, err)

	require.NoError(t, doc.SetStrings([]string{"apps/*"}, "workspaces"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"workspaces\": [\n    \"apps/*\"\n  ]\n}\n", string(out))
}

func TestParse_RejectsInvalidInput(t *testing.T) {
	_, err := jsonfmt.Parse([]byte(`{"name": `))
	assert.Error(t, err)

	_, err = jsonfmt.Parse([]byte(`["not", "an", "object"]`))
	assert.ErrorIs(t, err, jsonfmt.ErrNotObject)
}

func TestDocument_EscapedKeysSurviveEdits(t *testing.T) {
	doc, err := jsonfmt.Parse([]byte(`{"a\\b":1,"caf\u00e9":"x","q\"k":{"n":2},"private":false}`))
	require.NoError(t, err)

	require.NoError(t, doc.SetBool(true, "private"))
	require.NoError(t, doc.SetString("y", "café"))
	require.NoError(t, doc.SetBool(true, `q"k`, "m"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, `{"a\\b":1,"caf\u00e9":"y","q\"k":{"n":2,"m":true},"private":true}`, string(out))
	v, ok := doc.GetString("café")
	assert.True(t, ok)
	assert.Equal(t, "y", v)
}

func TestDocument_UntouchedMembersKeepLayout(t *testing.T) {
	src := "{\r\n  \"name\": \"root\",\r\n  \"workspaces\": [\"apps/*\", \"packages/*\"],\r\n  \"private\": false\r\n}\r\n"
	doc, err := jsonfmt.Parse([]byte(src))
	require.NoError(t, err)

	require.NoError(t, doc.SetBool(true, "private"))
	require.NoError(t, doc.SetString("2.0.0", "devDependencies", "turbo"))

	out, err := doc.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "{\r\n"+
		"  \"name\": \"root\",\r\n"+
		"  \"workspaces\": [\"apps/*\", \"packages/*\"],\r\n"+
		"  \"private\": true,\r\n"+
		"  \"devDependencies\": {\r\n"+
		"    \"turbo\": \"2.0.0\"\r\n"+
		"  }\r\n"+
		"}\r\n", string(out))
}
