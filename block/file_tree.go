package block

import (
	"fmt"
	"strings"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
	"github.com/nicholasgalante1997/bcp/wire"
)

// FileEntryKind distinguishes files from directories in a tree entry.
type FileEntryKind uint8

const (
	FileEntryFile      FileEntryKind = 0
	FileEntryDirectory FileEntryKind = 1
)

// FileEntry is one node of a file tree: a name, a kind, a size (files
// only), and child entries (directories only). Entries nest without
// cycles; each block owns its tree.
type FileEntry struct {
	Name     string
	Kind     FileEntryKind
	Size     uint64
	Children []FileEntry
}

// encode serializes one entry to nested TLV bytes.
// Fields: 1=name (bytes), 2=kind (varint), 3=size (varint),
// 4=child (nested, repeated).
func (e *FileEntry) encode() []byte {
	buf := wire.AppendBytesField(nil, 1, []byte(e.Name))
	buf = wire.AppendVarintField(buf, 2, uint64(e.Kind))
	buf = wire.AppendVarintField(buf, 3, e.Size)
	for i := range e.Children {
		buf = wire.AppendNestedField(buf, 4, e.Children[i].encode())
	}

	return buf
}

// decodeFileEntry deserializes one entry from nested TLV bytes.
func decodeFileEntry(buf []byte) (FileEntry, error) {
	var entry FileEntry
	var haveName, haveKind bool

	for len(buf) > 0 {
		header, n, err := wire.ParseFieldHeader(buf)
		if err != nil {
			return FileEntry{}, err
		}
		buf = buf[n:]

		switch header.ID {
		case 1:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return FileEntry{}, err
			}
			buf = buf[n:]
			entry.Name = lossyString(data)
			haveName = true
		case 2:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return FileEntry{}, err
			}
			buf = buf[n:]
			if v == uint64(FileEntryDirectory) {
				entry.Kind = FileEntryDirectory
			} else {
				entry.Kind = FileEntryFile
			}
			haveKind = true
		case 3:
			v, n, err := wire.ParseVarintValue(buf)
			if err != nil {
				return FileEntry{}, err
			}
			buf = buf[n:]
			entry.Size = v
		case 4:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return FileEntry{}, err
			}
			buf = buf[n:]
			child, err := decodeFileEntry(data)
			if err != nil {
				return FileEntry{}, err
			}
			entry.Children = append(entry.Children, child)
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return FileEntry{}, err
			}
			buf = buf[n:]
		}
	}

	if !haveName {
		return FileEntry{}, fmt.Errorf("%w: FileEntry.name", errs.ErrMissingRequiredField)
	}
	if !haveKind {
		return FileEntry{}, fmt.Errorf("%w: FileEntry.kind", errs.ErrMissingRequiredField)
	}

	return entry, nil
}

// FileTreeBody is a recursive directory listing rooted at a path.
//
// Fields: 1=root_path (bytes), 2=entry (nested, repeated).
type FileTreeBody struct {
	RootPath string
	Entries  []FileEntry
}

var _ Body = (*FileTreeBody)(nil)

// BlockType returns format.BlockFileTree.
func (b *FileTreeBody) BlockType() format.BlockType {
	return format.BlockFileTree
}

// EncodeBody serializes the body's fields to TLV bytes.
func (b *FileTreeBody) EncodeBody() []byte {
	buf := wire.AppendBytesField(nil, 1, []byte(b.RootPath))
	for i := range b.Entries {
		buf = wire.AppendNestedField(buf, 2, b.Entries[i].encode())
	}

	return buf
}

// DecodeFileTree deserializes a FileTree body from TLV bytes.
func DecodeFileTree(buf []byte) (*FileTreeBody, error) {
	var (
		rootPath *string
		entries  []FileEntry
	)

	for len(buf) > 0 {
		header, n, err := wire.ParseFieldHeader(buf)
		if err != nil {
			return nil, err
		}
		buf = buf[n:]

		switch header.ID {
		case 1:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			p := lossyString(data)
			rootPath = &p
		case 2:
			data, n, err := wire.ParseBytesValue(buf)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
			entry, err := decodeFileEntry(data)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		default:
			n, err := wire.SkipField(buf, header.Type)
			if err != nil {
				return nil, err
			}
			buf = buf[n:]
		}
	}

	if rootPath == nil {
		return nil, fmt.Errorf("%w: FileTree.root_path", errs.ErrMissingRequiredField)
	}

	return &FileTreeBody{RootPath: *rootPath, Entries: entries}, nil
}

// TreeText renders the entries as indented text, one node per line:
// directories as "name/", files as "name (N bytes)". Renderers and the
// token estimator share this shape.
func (b *FileTreeBody) TreeText() string {
	var sb strings.Builder
	writeTreeEntries(&sb, b.Entries, 0)

	return sb.String()
}

func writeTreeEntries(sb *strings.Builder, entries []FileEntry, depth int) {
	indent := strings.Repeat("  ", depth)
	for i := range entries {
		entry := &entries[i]
		if entry.Kind == FileEntryDirectory {
			fmt.Fprintf(sb, "%s%s/\n", indent, entry.Name)
			writeTreeEntries(sb, entry.Children, depth+1)
		} else {
			fmt.Fprintf(sb, "%s%s (%d bytes)\n", indent, entry.Name, entry.Size)
		}
	}
}
