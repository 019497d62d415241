package compress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicholasgalante1997/bcp/errs"
	"github.com/nicholasgalante1997/bcp/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCodec(),
		"Zstd": NewZstdCodec(),
		"S2":   NewS2Codec(),
		"LZ4":  NewLZ4Codec(),
	}
}

func TestAllCodecs_Roundtrip(t *testing.T) {
	data := []byte(strings.Repeat("func main() { fmt.Println(\"hello\") }\n", 64))

	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			decompressed, err := codec.Decompress(compressed)
			require.NoError(t, err)
			require.True(t, bytes.Equal(data, decompressed), "roundtrip mismatch")
		})
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd,
		format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "store")
		require.NoError(t, err)
		require.NotNil(t, codec)
	}

	_, err := CreateCodec(format.CompressionType(0x7F), "store")
	require.Error(t, err)
}

func TestGetCodec_UnknownType(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7F))
	require.Error(t, err)
}

func TestOpportunistic_KeepsOnlyStrictlySmaller(t *testing.T) {
	// Repetitive data compresses well.
	compressible := []byte(strings.Repeat("fn main() { }\n", 100))
	compressed, ok := Opportunistic(compressible)
	require.True(t, ok)
	require.Less(t, len(compressed), len(compressible))

	// Tiny incompressible data does not.
	_, ok = Opportunistic([]byte("abc123"))
	require.False(t, ok)
}

func TestOpportunistic_RoundtripThroughBounded(t *testing.T) {
	data := []byte(strings.Repeat("pub fn hello() -> &'static str { \"world\" }\n", 50))

	compressed, ok := Opportunistic(data)
	require.True(t, ok)

	decompressed, err := DecompressBounded(compressed, 1024*1024)
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestDecompressBounded_RejectsBomb(t *testing.T) {
	data := []byte(strings.Repeat("x", 10_000))
	compressed, ok := Opportunistic(data)
	require.True(t, ok)

	_, err := DecompressBounded(compressed, 100)
	require.ErrorIs(t, err, errs.ErrDecompressionBomb)
}

func TestDecompressBounded_ExactLimitAccepted(t *testing.T) {
	data := []byte(strings.Repeat("y", 4096))
	compressed, ok := Opportunistic(data)
	require.True(t, ok)

	decompressed, err := DecompressBounded(compressed, len(data))
	require.NoError(t, err)
	require.Equal(t, data, decompressed)
}

func TestDecompressBounded_RejectsGarbage(t *testing.T) {
	_, err := DecompressBounded([]byte("this is not zstd data"), 1024)
	require.ErrorIs(t, err, errs.ErrDecompressFailed)
}

func TestThresholdValue(t *testing.T) {
	require.Equal(t, 256, Threshold)
}
