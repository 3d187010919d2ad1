package qrcode

import "errors"

// Encode builds the smallest symbol that carries payload at the given level.
// The result is deterministic for a (payload, level) pair.
func Encode(payload string, level Level) (*Matrix, error) {
	if payload == "" {
		return nil, ErrInvalidPayload
	}
	if !level.valid() {
		return nil, errors.Join(ErrEncodingFault, ErrInvalidLevel)
	}

	seg := newSegment(payload)
	version := chooseVersion(seg, level)
	if version == 0 {
		return nil, ErrCapacityExceeded
	}

	codewords := interleave(seg.codewords(version, level), version, level)

	s := newSymbol(version)
	s.drawFunctionPatterns(level)
	s.drawCodewords(codewords)
	mask := s.applyBestMask(level)

	return s.matrix(level, mask), nil
}

// chooseVersion returns the smallest version that fits seg, or 0 if none does.
func chooseVersion(seg segment, level Level) int {
	for v := minVersion; v <= maxVersion; v++ {
		if seg.fits(v, level) {
			return v
		}
	}
	return 0
}

// interleave splits data into the blocks of version and level, appends the
// Reed–Solomon codewords of each block and interleaves the result. Long blocks
// carry one data codeword more than short blocks.
func interleave(data []byte, version int, level Level) []byte {
	numBlocks := numErrorCorrectionBlocks[level][version]
	eccLen := eccCodewordsPerBlock[level][version]
	rawCodewords := numRawDataModules(version) / 8
	numShortBlocks := numBlocks - rawCodewords%numBlocks
	shortBlockLen := rawCodewords / numBlocks

	divisor := rsDivisor(eccLen)
	blocks := make([][]byte, 0, numBlocks)
	for i, k := 0, 0; i < numBlocks; i++ {
		n := shortBlockLen - eccLen
		if i >= numShortBlocks {
			n++
		}
		dat := data[k : k+n]
		k += n

		block := make([]byte, 0, shortBlockLen+1)
		block = append(block, dat...)
		if i < numShortBlocks {
			// Placeholder keeps all blocks the same length; skipped below.
			block = append(block, 0)
		}
		block = append(block, rsRemainder(dat, divisor)...)
		blocks = append(blocks, block)
	}

	result := make([]byte, 0, rawCodewords)
	for i := range blocks[0] {
		for j, block := range blocks {
			if i != shortBlockLen-eccLen || j >= numShortBlocks {
				result = append(result, block[i])
			}
		}
	}
	return result
}
