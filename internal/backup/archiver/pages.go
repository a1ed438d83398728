package archiver

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const pageExt = ".json"

// PageName returns the file name of page i of table.
func PageName(table string, i int) string {
	return fmt.Sprintf("%s_%d%s", table, i, pageExt)
}

// ParsePageName splits a page file name into its table and page index.
// Any directory part of name is ignored.
func ParsePageName(name string) (table string, index int, ok bool) {
	base, found := strings.CutSuffix(filepath.Base(name), pageExt)
	if !found {
		return "", 0, false
	}

	sep := strings.LastIndexByte(base, '_')
	if sep <= 0 || sep == len(base)-1 {
		return "", 0, false
	}

	digits := base[sep+1:]
	for _, c := range digits {
		if c < '0' || c > '9' {
			return "", 0, false
		}
	}

	index, err := strconv.Atoi(digits)
	if err != nil {
		return "", 0, false
	}

	return base[:sep], index, true
}
