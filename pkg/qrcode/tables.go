package qrcode

const (
	minVersion = 1
	maxVersion = 40
)

// eccCodewordsPerBlock[level][version] is the number of Reed–Solomon codewords
// appended to every block. Index 0 is unused.
var eccCodewordsPerBlock = [4][41]int{
	Low:      {-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	Medium:   {-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28},
	Quartile: {-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
	High:     {-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},
}

// numErrorCorrectionBlocks[level][version] is the number of blocks the data
// codewords are split into. Index 0 is unused.
var numErrorCorrectionBlocks = [4][41]int{
	Low:      {-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},
	Medium:   {-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},
	Quartile: {-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},
	High:     {-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81},
}

// sizeForVersion returns the side length in modules of a version.
func sizeForVersion(version int) int {
	return 17 + 4*version
}

// versionForSize is the inverse of sizeForVersion; it returns 0 for sizes that
// no version produces.
func versionForSize(size int) int {
	if size < sizeForVersion(minVersion) || size > sizeForVersion(maxVersion) || (size-17)%4 != 0 {
		return 0
	}
	return (size - 17) / 4
}

// numRawDataModules counts the modules left for data and error correction
// codewords after all function patterns, format and version information are
// reserved. Remainder bits are included.
func numRawDataModules(version int) int {
	result := (16*version+128)*version + 64
	if version >= 2 {
		numAlign := version/7 + 2
		result -= (25*numAlign-10)*numAlign - 55
		if version >= 7 {
			result -= 36
		}
	}
	return result
}

// numDataCodewords is the number of 8-bit data codewords available at the
// given version and level, with error correction codewords excluded.
func numDataCodewords(version int, level Level) int {
	return numRawDataModules(version)/8 -
		eccCodewordsPerBlock[level][version]*numErrorCorrectionBlocks[level][version]
}

// alignmentPositions returns the ascending center coordinates of alignment
// patterns, used on both axes.
func alignmentPositions(version int) []int {
	if version == 1 {
		return nil
	}
	numAlign := version/7 + 2
	var step int
	if version == 32 {
		step = 26
	} else {
		step = (version*4 + numAlign*2 + 1) / (numAlign*2 - 2) * 2
	}
	result := make([]int, numAlign)
	result[0] = 6
	for i, pos := numAlign-1, sizeForVersion(version)-7; i >= 1; i, pos = i-1, pos-step {
		result[i] = pos
	}
	return result
}

// charCountBits is the width of the byte-mode character count indicator.
func charCountBits(version int) int {
	if version <= 9 {
		return 8
	}
	return 16
}

// Capacity returns how many bytes of ASCII text fit in a symbol of the given
// version and level. It returns 0 for an unknown version or level.
func Capacity(version int, level Level) int {
	if version < minVersion || version > maxVersion || !level.valid() {
		return 0
	}
	return (numDataCodewords(version, level)*8 - 4 - charCountBits(version)) / 8
}

// MaxPayload returns the largest ASCII payload, in bytes, accepted at level.
func MaxPayload(level Level) int {
	return Capacity(maxVersion, level)
}
