// Package compress implements the VTK compressor pipeline for array decoding.
//
// When a VTKFile names a compressor, every binary or appended array is
// stored as a sequence of independently compressed blocks preceded by a
// block header. All header words use the document header width and byte
// order:
//
//	[nblocks][blockSize][lastBlockSize][compressedSize_0]...[compressedSize_n-1]
//
// Every block decompresses to blockSize bytes except the last one, which
// decompresses to lastBlockSize bytes when that value is non-zero.
//
// # Supported Compressors
//
//   - vtkZLibDataCompressor: zlib streams via [Zlib], using
//     github.com/klauspost/compress/zlib.
//
//   - vtkLZ4DataCompressor: raw LZ4 blocks via [LZ4], using
//     github.com/pierrec/lz4/v4.
//
// Documents naming any other compressor (vtkLZMADataCompressor, for
// example) cannot be read.
//
// # Key Types
//
//   - [Decompressor]: interface implemented by all compressors
//   - [BlockHeader]: the parsed block header
//   - [Inflate]: decompresses and concatenates all blocks of one array
package compress
