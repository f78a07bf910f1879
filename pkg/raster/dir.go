package raster

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var pageDigits = regexp.MustCompile(`(\d+)\D*$`)

// SkippedFile is a directory entry LoadDir could not use
type SkippedFile struct {
	Path   string
	Reason string
}

// LoadResult is the outcome of loading a directory of page images
type LoadResult struct {
	Images  map[int]Image // Images keyed by 1-based page number
	Skipped []SkippedFile // Files that were not used
}

// LoadDir reads every image in dir and keys it by page number.
//
// The page number is the last group of digits in the file name, so
// "page_3.png" and "scan-003.jpg" both belong to page 3. Files without digits
// take the lowest unused page numbers in name order. Files that cannot be
// decoded are skipped; the first image found for a page wins.
func LoadDir(dir string) (*LoadResult, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, fmt.Errorf("failed to list image directory: %w", err)
	}
	sort.Strings(paths)

	result := &LoadResult{Images: make(map[int]Image)}
	var unnumbered []string

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || info.IsDir() {
			continue
		}
		base := filepath.Base(path)
		pageNum, ok := pageNumberFromName(strings.TrimSuffix(base, filepath.Ext(base)))
		if !ok {
			unnumbered = append(unnumbered, path)
			continue
		}
		if _, exists := result.Images[pageNum]; exists {
			result.Skipped = append(result.Skipped, SkippedFile{Path: path, Reason: fmt.Sprintf("page %d already has an image", pageNum)})
			continue
		}
		result.load(path, pageNum)
	}

	next := 1
	for _, path := range unnumbered {
		for {
			if _, exists := result.Images[next]; !exists {
				break
			}
			next++
		}
		if result.load(path, next) {
			next++
		}
	}

	return result, nil
}

// load decodes one file into the result, reporting whether it was used
func (r *LoadResult) load(path string, pageNum int) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		r.Skipped = append(r.Skipped, SkippedFile{Path: path, Reason: err.Error()})
		return false
	}
	img, err := Decode(pageNum, data)
	if err != nil {
		r.Skipped = append(r.Skipped, SkippedFile{Path: path, Reason: err.Error()})
		return false
	}
	r.Images[pageNum] = img
	return true
}

func pageNumberFromName(name string) (int, bool) {
	m := pageDigits.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
