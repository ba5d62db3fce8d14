package io

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"math"
	"os"
)

// gridChunkLen is the number of float32 cells read per chunk when scanning
// a grid container out of core.
const gridChunkLen = 1 << 20

// WriteGridFile writes a populated grid to the given location as a flat
// little-endian float32 array with no header, x varying fastest. This is
// the raw container consumed by the downstream slicing and rendering tools.
func WriteGridFile(path string, vals []float64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)

	buf := make([]float32, gridChunkLen)
	for start := 0; start < len(vals); start += gridChunkLen {
		stop := start + gridChunkLen
		if stop > len(vals) {
			stop = len(vals)
		}

		chunk := buf[0 : stop-start]
		for i := range chunk {
			chunk[i] = float32(vals[start+i])
		}
		if err := binary.Write(w, end, chunk); err != nil {
			return err
		}
	}

	return w.Flush()
}

// ReadGridFile reads a grid container holding cells^3 values.
func ReadGridFile(path string, cells int) ([]float32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	n := int64(cells) * int64(cells) * int64(cells)
	if info.Size() != n*4 {
		return nil, fmt.Errorf(
			"%s holds %d bytes, but a %d^3 grid needs %d.",
			path, info.Size(), cells, n*4,
		)
	}

	vals := make([]float32, n)
	if err := binary.Read(bufio.NewReader(f), end, vals); err != nil {
		return nil, err
	}
	return vals, nil
}

// GridMinMax scans a grid container in fixed-size chunks and returns the
// global minimum and maximum cell values. The container is never loaded
// into memory in full, so arbitrarily large grids can be scanned.
func GridMinMax(path string) (min, max float32, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}
	if info.Size() == 0 || info.Size()%4 != 0 {
		return 0, 0, fmt.Errorf(
			"%s does not hold a float32 grid: %d bytes.", path, info.Size(),
		)
	}

	r := bufio.NewReader(f)
	buf := make([]float32, gridChunkLen)
	remaining := info.Size() / 4

	min = float32(math.Inf(1))
	max = float32(math.Inf(-1))

	for remaining > 0 {
		chunk := buf
		if remaining < int64(len(buf)) {
			chunk = buf[0:remaining]
		}
		if err := binary.Read(r, end, chunk); err != nil {
			return 0, 0, err
		}

		for _, v := range chunk {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		remaining -= int64(len(chunk))
	}

	return min, max, nil
}
