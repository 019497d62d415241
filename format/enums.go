package format

import (
	"fmt"

	"github.com/nicholasgalante1997/bcp/errs"
)

type (
	// Lang identifies the programming language of a Code block.
	//
	// Unlike the other enums in this package, Lang never rejects a wire
	// byte: values outside the defined set are preserved as-is so a
	// payload from a newer encoder round-trips losslessly. Use Known to
	// distinguish defined languages from preserved unknowns.
	Lang uint8

	// Role is the conversation role of a Conversation block.
	Role uint8

	// Status is the execution status of a ToolResult block.
	Status uint8

	// Priority is the content priority carried by a priority Annotation.
	// Lower wire values are more urgent: Critical < High < Normal < Low
	// < Background.
	Priority uint8

	// FormatHint tells the renderer how to interpret a Document body.
	FormatHint uint8

	// DataFormat is the serialization format of a StructuredData body.
	DataFormat uint8

	// AnnotationKind selects how an Annotation's value bytes are read.
	AnnotationKind uint8

	// MediaType is the image encoding of an Image block.
	MediaType uint8
)

const (
	LangRust       Lang = 0x01
	LangTypeScript Lang = 0x02
	LangJavaScript Lang = 0x03
	LangPython     Lang = 0x04
	LangGo         Lang = 0x05
	LangJava       Lang = 0x06
	LangC          Lang = 0x07
	LangCpp        Lang = 0x08
	LangRuby       Lang = 0x09
	LangShell      Lang = 0x0A
	LangSql        Lang = 0x0B
	LangHtml       Lang = 0x0C
	LangCss        Lang = 0x0D
	LangJson       Lang = 0x0E
	LangYaml       Lang = 0x0F
	LangToml       Lang = 0x10
	LangMarkdown   Lang = 0x11
	LangUnknown    Lang = 0xFF
)

// Known reports whether the language byte is in the defined set
// (including the explicit Unknown marker 0xFF).
func (l Lang) Known() bool {
	return (l >= LangRust && l <= LangMarkdown) || l == LangUnknown
}

// DisplayName returns the lowercase language tag used by renderers,
// e.g. for markdown fence info strings. Unrecognized bytes and the
// Unknown marker both display as "text".
func (l Lang) DisplayName() string {
	switch l {
	case LangRust:
		return "rust"
	case LangTypeScript:
		return "typescript"
	case LangJavaScript:
		return "javascript"
	case LangPython:
		return "python"
	case LangGo:
		return "go"
	case LangJava:
		return "java"
	case LangC:
		return "c"
	case LangCpp:
		return "cpp"
	case LangRuby:
		return "ruby"
	case LangShell:
		return "shell"
	case LangSql:
		return "sql"
	case LangHtml:
		return "html"
	case LangCss:
		return "css"
	case LangJson:
		return "json"
	case LangYaml:
		return "yaml"
	case LangToml:
		return "toml"
	case LangMarkdown:
		return "markdown"
	default:
		return "text"
	}
}

const (
	RoleSystem    Role = 0x01
	RoleUser      Role = 0x02
	RoleAssistant Role = 0x03
	RoleTool      Role = 0x04
)

// ParseRole converts a wire byte into a Role.
func ParseRole(b uint8) (Role, error) {
	r := Role(b)
	if r < RoleSystem || r > RoleTool {
		return 0, fmt.Errorf("%w: Role 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return r, nil
}

func (r Role) DisplayName() string {
	switch r {
	case RoleSystem:
		return "system"
	case RoleUser:
		return "user"
	case RoleAssistant:
		return "assistant"
	case RoleTool:
		return "tool"
	default:
		return "unknown"
	}
}

const (
	StatusOk      Status = 0x01
	StatusError   Status = 0x02
	StatusTimeout Status = 0x03
)

// ParseStatus converts a wire byte into a Status.
func ParseStatus(b uint8) (Status, error) {
	s := Status(b)
	if s < StatusOk || s > StatusTimeout {
		return 0, fmt.Errorf("%w: Status 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return s, nil
}

func (s Status) DisplayName() string {
	switch s {
	case StatusOk:
		return "ok"
	case StatusError:
		return "error"
	case StatusTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

const (
	PriorityCritical   Priority = 0x01
	PriorityHigh       Priority = 0x02
	PriorityNormal     Priority = 0x03
	PriorityLow        Priority = 0x04
	PriorityBackground Priority = 0x05
)

// ParsePriority converts a wire byte into a Priority.
func ParsePriority(b uint8) (Priority, error) {
	p := Priority(b)
	if p < PriorityCritical || p > PriorityBackground {
		return 0, fmt.Errorf("%w: Priority 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return p, nil
}

func (p Priority) String() string {
	switch p {
	case PriorityCritical:
		return "Critical"
	case PriorityHigh:
		return "High"
	case PriorityNormal:
		return "Normal"
	case PriorityLow:
		return "Low"
	case PriorityBackground:
		return "Background"
	default:
		return "Unknown"
	}
}

const (
	FormatMarkdown FormatHint = 0x01
	FormatPlain    FormatHint = 0x02
	FormatHtml     FormatHint = 0x03
)

// ParseFormatHint converts a wire byte into a FormatHint.
func ParseFormatHint(b uint8) (FormatHint, error) {
	f := FormatHint(b)
	if f < FormatMarkdown || f > FormatHtml {
		return 0, fmt.Errorf("%w: FormatHint 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return f, nil
}

func (f FormatHint) DisplayName() string {
	switch f {
	case FormatMarkdown:
		return "markdown"
	case FormatPlain:
		return "plain"
	case FormatHtml:
		return "html"
	default:
		return "unknown"
	}
}

const (
	DataJson DataFormat = 0x01
	DataYaml DataFormat = 0x02
	DataToml DataFormat = 0x03
	DataCsv  DataFormat = 0x04
)

// ParseDataFormat converts a wire byte into a DataFormat.
func ParseDataFormat(b uint8) (DataFormat, error) {
	d := DataFormat(b)
	if d < DataJson || d > DataCsv {
		return 0, fmt.Errorf("%w: DataFormat 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return d, nil
}

func (d DataFormat) DisplayName() string {
	switch d {
	case DataJson:
		return "json"
	case DataYaml:
		return "yaml"
	case DataToml:
		return "toml"
	case DataCsv:
		return "csv"
	default:
		return "unknown"
	}
}

const (
	AnnotationPriority AnnotationKind = 0x01
	AnnotationSummary  AnnotationKind = 0x02
	AnnotationTag      AnnotationKind = 0x03
)

// ParseAnnotationKind converts a wire byte into an AnnotationKind.
func ParseAnnotationKind(b uint8) (AnnotationKind, error) {
	k := AnnotationKind(b)
	if k < AnnotationPriority || k > AnnotationTag {
		return 0, fmt.Errorf("%w: AnnotationKind 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return k, nil
}

const (
	MediaPng  MediaType = 0x01
	MediaJpeg MediaType = 0x02
	MediaGif  MediaType = 0x03
	MediaSvg  MediaType = 0x04
	MediaWebp MediaType = 0x05
)

// ParseMediaType converts a wire byte into a MediaType.
func ParseMediaType(b uint8) (MediaType, error) {
	m := MediaType(b)
	if m < MediaPng || m > MediaWebp {
		return 0, fmt.Errorf("%w: MediaType 0x%02X", errs.ErrInvalidEnumValue, b)
	}

	return m, nil
}

func (m MediaType) DisplayName() string {
	switch m {
	case MediaPng:
		return "png"
	case MediaJpeg:
		return "jpeg"
	case MediaGif:
		return "gif"
	case MediaSvg:
		return "svg"
	case MediaWebp:
		return "webp"
	default:
		return "unknown"
	}
}
