package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

func TestCode_RoundtripFullFile(t *testing.T) {
	body := &CodeBody{
		Lang:    format.LangRust,
		Path:    "src/main.rs",
		Content: []byte("fn main() {}"),
	}

	decoded, err := DecodeCode(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestCode_RoundtripWithLineRange(t *testing.T) {
	body := &CodeBody{
		Lang:      format.LangTypeScript,
		Path:      "src/index.ts",
		Content:   []byte("console.log('hello');"),
		LineRange: &LineRange{Start: 10, End: 25},
	}

	decoded, err := DecodeCode(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestCode_UnrecognizedLanguagePreserved(t *testing.T) {
	// 0x42 is not in the defined language set; the raw byte must
	// survive a roundtrip rather than failing decode.
	body := &CodeBody{
		Lang:    format.Lang(0x42),
		Path:    "script.xyz",
		Content: []byte("custom code"),
	}

	decoded, err := DecodeCode(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, format.Lang(0x42), decoded.Lang)
	require.False(t, decoded.Lang.Known())
}

func TestCode_MissingContentField(t *testing.T) {
	buf := wire.AppendVarintField(nil, 1, uint64(format.LangRust))
	buf = wire.AppendBytesField(buf, 2, []byte("test.rs"))

	_, err := DecodeCode(buf)
	require.ErrorIs(t, err, errs.ErrMissingRequiredField)
	require.ErrorContains(t, err, "Code.content")
}

func TestCode_UnknownFieldsSkipped(t *testing.T) {
	body := &CodeBody{
		Lang:    format.LangGo,
		Path:    "main.go",
		Content: []byte("package main"),
	}

	// Splice unknown fields of every wire type into the body; decode
	// output must equal what it would be with those fields absent.
	buf := wire.AppendVarintField(nil, 99, 12345)
	buf = append(buf, body.EncodeBody()...)
	buf = wire.AppendBytesField(buf, 100, []byte("future data"))
	buf = wire.AppendNestedField(buf, 101, wire.AppendVarintField(nil, 1, 7))

	decoded, err := DecodeCode(buf)
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestConversation_Roundtrip(t *testing.T) {
	body := &ConversationBody{
		Role:    format.RoleAssistant,
		Content: []byte("The bug is in the loop bound."),
	}

	decoded, err := DecodeConversation(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestConversation_RoundtripToolCallID(t *testing.T) {
	body := &ConversationBody{
		Role:       format.RoleTool,
		Content:    []byte(`{"matches": 3}`),
		ToolCallID: "call_01",
	}

	decoded, err := DecodeConversation(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, "call_01", decoded.ToolCallID)
}

func TestConversation_RejectsUnknownRole(t *testing.T) {
	buf := wire.AppendVarintField(nil, 1, 0x7F)
	buf = wire.AppendBytesField(buf, 2, []byte("hi"))

	_, err := DecodeConversation(buf)
	require.ErrorIs(t, err, errs.ErrInvalidEnumValue)
}

func TestFileTree_RoundtripNested(t *testing.T) {
	body := &FileTreeBody{
		RootPath: "src",
		Entries: []FileEntry{
			{
				Name: "codec",
				Kind: FileEntryDirectory,
				Children: []FileEntry{
					{Name: "varint.go", Kind: FileEntryFile, Size: 1420},
					{Name: "frame.go", Kind: FileEntryFile, Size: 2210},
				},
			},
			{Name: "main.go", Kind: FileEntryFile, Size: 96},
		},
	}

	decoded, err := DecodeFileTree(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestFileTree_TreeText(t *testing.T) {
	body := &FileTreeBody{
		RootPath: "src",
		Entries: []FileEntry{
			{
				Name: "pkg",
				Kind: FileEntryDirectory,
				Children: []FileEntry{
					{Name: "a.go", Kind: FileEntryFile, Size: 10},
				},
			},
		},
	}

	require.Equal(t, "pkg/\n  a.go (10 bytes)\n", body.TreeText())
}

func TestToolResult_Roundtrip(t *testing.T) {
	body := &ToolResultBody{
		ToolName:   "ripgrep",
		Status:     format.StatusOk,
		Content:    []byte("3 matches"),
		SchemaHint: "text/plain",
	}

	decoded, err := DecodeToolResult(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestDocument_Roundtrip(t *testing.T) {
	body := &DocumentBody{
		Title:      "README",
		Content:    []byte("# Overview\n"),
		FormatHint: format.FormatMarkdown,
	}

	decoded, err := DecodeDocument(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestStructuredData_Roundtrip(t *testing.T) {
	body := &StructuredDataBody{
		Format:  format.DataJson,
		Schema:  "https://example.com/schema.json",
		Content: []byte(`{"k":"v"}`),
	}

	decoded, err := DecodeStructuredData(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestDiff_RoundtripHunks(t *testing.T) {
	body := &DiffBody{
		Path: "src/lib.rs",
		Hunks: []DiffHunk{
			{OldStart: 10, NewStart: 10, Lines: []byte("-old line\n+new line\n")},
			{OldStart: 40, NewStart: 41, Lines: []byte("+added\n")},
		},
	}

	decoded, err := DecodeDiff(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestAnnotation_Roundtrip(t *testing.T) {
	body := &AnnotationBody{
		TargetBlock: 3,
		Kind:        format.AnnotationPriority,
		Value:       []byte{uint8(format.PriorityHigh)},
	}

	decoded, err := DecodeAnnotation(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)

	priority, ok := decoded.Priority()
	require.True(t, ok)
	require.Equal(t, format.PriorityHigh, priority)
}

func TestAnnotation_PriorityHelperRejectsOtherKinds(t *testing.T) {
	body := &AnnotationBody{
		TargetBlock: 0,
		Kind:        format.AnnotationTag,
		Value:       []byte("hot-path"),
	}

	_, ok := body.Priority()
	require.False(t, ok)
}

func TestEmbeddingRef_Roundtrip(t *testing.T) {
	body := &EmbeddingRefBody{
		VectorID:   []byte{0x01, 0x02},
		SourceHash: make([]byte, 32),
		Model:      "text-embed-small",
	}

	decoded, err := DecodeEmbeddingRef(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestImage_Roundtrip(t *testing.T) {
	body := &ImageBody{
		MediaType: format.MediaPng,
		AltText:   "architecture diagram",
		Data:      []byte{0x89, 0x50, 0x4E, 0x47},
	}

	decoded, err := DecodeImage(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestExtension_Roundtrip(t *testing.T) {
	body := &ExtensionBody{
		Namespace: "acme",
		TypeName:  "trace-span",
		Content:   []byte(`{"span_id":"abc"}`),
	}

	decoded, err := DecodeExtension(body.EncodeBody())
	require.NoError(t, err)
	require.Equal(t, body, decoded)
}

func TestDecodeBody_UnknownTypePreserved(t *testing.T) {
	raw := []byte{0xDE, 0xAD, 0xBE, 0xEF}

	body, err := DecodeBody(format.BlockType(0x42), raw)
	require.NoError(t, err)

	unknown, ok := body.(UnknownBody)
	require.True(t, ok)
	require.Equal(t, format.BlockType(0x42), unknown.TypeID)
	require.Equal(t, raw, unknown.Raw)
	require.Equal(t, raw, unknown.EncodeBody())
}

func TestDecodeBody_End(t *testing.T) {
	body, err := DecodeBody(format.BlockEnd, nil)
	require.NoError(t, err)
	require.IsType(t, EndBody{}, body)
	require.Empty(t, body.EncodeBody())
}

func TestSummary_Roundtrip(t *testing.T) {
	buf := AppendSummary(nil, "This block contains the main entry point.")
	buf = append(buf, []byte("remaining TLV data")...)

	text, consumed, err := ParseSummary(buf)
	require.NoError(t, err)
	require.Equal(t, "This block contains the main entry point.", text)
	require.Equal(t, []byte("remaining TLV data"), buf[consumed:])
}

func TestSummary_Empty(t *testing.T) {
	buf := AppendSummary(nil, "")

	text, consumed, err := ParseSummary(buf)
	require.NoError(t, err)
	require.Empty(t, text)
	require.Equal(t, len(buf), consumed)
}

func TestSummary_InvalidUTF8IsLossy(t *testing.T) {
	buf := wire.AppendUvarint(nil, 3)
	buf = append(buf, 0xFF, 0xFE, 0x41)

	text, _, err := ParseSummary(buf)
	require.NoError(t, err, "invalid UTF-8 must not fail summary decode")
	require.Contains(t, text, "A")
}

func TestSummary_Truncated(t *testing.T) {
	buf := wire.AppendUvarint(nil, 10)
	buf = append(buf, 'h', 'i')

	_, _, err := ParseSummary(buf)
	require.ErrorIs(t, err, errs.ErrUnexpectedEof)
}

func TestBlock_PlainTextAndDescription(t *testing.T) {
	code := &Block{Type: format.BlockCode, Body: &CodeBody{
		Lang: format.LangGo, Path: "main.go", Content: []byte("package main"),
	}}
	require.Equal(t, "package main", code.PlainText())
	require.Equal(t, "main.go", code.Description())

	conv := &Block{Type: format.BlockConversation, Body: &ConversationBody{
		Role: format.RoleUser, Content: []byte("hi"),
	}}
	require.Equal(t, "user turn", conv.Description())

	// Non-UTF-8 content masks to a proportional 'x' run.
	img := &Block{Type: format.BlockImage, Body: &ImageBody{
		MediaType: format.MediaPng, AltText: "logo", Data: []byte{0xFF, 0xFE, 0x00},
	}}
	require.Equal(t, "xxx", img.PlainText())

	end := &Block{Type: format.BlockEnd, Body: EndBody{}}
	require.Empty(t, end.PlainText())
	require.Empty(t, end.Description())
}
